//go:build wireinject
// +build wireinject

package container

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/wire"

	"github.com/narwhalmedia/requestbot/internal/access"
	"github.com/narwhalmedia/requestbot/internal/bot"
	"github.com/narwhalmedia/requestbot/internal/overseerr"
	"github.com/narwhalmedia/requestbot/internal/telegram"
	"github.com/narwhalmedia/requestbot/pkg/config"
	"github.com/narwhalmedia/requestbot/pkg/logger"
)

// InitializeBot creates the bot with all dependencies
func InitializeBot(ctx context.Context, cfg *config.Config, log *logger.ZapLogger) (*BotContainer, func(), error) {
	wire.Build(
		// Configuration sections
		wire.FieldsOf(new(*config.Config), "Telegram", "Overseerr", "Access", "NATS", "Health"),

		// Media-request service
		provideOverseerrClient,
		wire.Bind(new(bot.Catalog), new(*overseerr.Client)),

		// Access
		provideGuard,
		wire.Bind(new(bot.Authorizer), new(*access.Guard)),

		// Events
		provideNATSClient,
		provideEventBus,

		// Conversation
		provideSettings,
		provideController,
		wire.Bind(new(telegram.Handler), new(*bot.Controller)),

		// Transport
		provideBotAPI,
		wire.Bind(new(telegram.BotAPI), new(*tgbotapi.BotAPI)),
		provideLimiter,
		providePoller,

		// Probes
		provideHealth,

		// Container
		wire.Struct(new(BotContainer), "*"),
	)

	return nil, nil, nil
}
