package container

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/narwhalmedia/requestbot/internal/access"
	"github.com/narwhalmedia/requestbot/internal/bot"
	"github.com/narwhalmedia/requestbot/internal/health"
	"github.com/narwhalmedia/requestbot/internal/infrastructure/events/nats"
	"github.com/narwhalmedia/requestbot/internal/overseerr"
	"github.com/narwhalmedia/requestbot/internal/telegram"
	"github.com/narwhalmedia/requestbot/pkg/config"
	"github.com/narwhalmedia/requestbot/pkg/events"
	"github.com/narwhalmedia/requestbot/pkg/interfaces"
	"github.com/narwhalmedia/requestbot/pkg/logger"
)

var errNATSDisconnected = errors.New("disconnected")

// BotContainer holds all dependencies of the running bot
type BotContainer struct {
	Config     *config.Config
	Logger     *logger.ZapLogger
	Client     *overseerr.Client
	EventBus   interfaces.EventBus
	Controller *bot.Controller
	Poller     *telegram.Poller
	Health     *health.Server
}

func provideOverseerrClient(cfg config.OverseerrConfig) (*overseerr.Client, func()) {
	client := overseerr.NewClient(cfg.URL, cfg.APIKey, overseerr.WithTimeout(cfg.Timeout))
	return client, client.Close
}

func provideGuard(cfg config.AccessConfig, log *logger.ZapLogger) *access.Guard {
	guard := access.NewGuard(cfg, log.Named("access"))
	if guard.Open() {
		log.Warn("no owner configured, the bot answers every user")
	}
	return guard
}

// provideNATSClient returns a nil client when no NATS URL is configured.
func provideNATSClient(cfg config.NATSConfig, log *logger.ZapLogger) (*nats.Client, func(), error) {
	if cfg.URL == "" {
		return nil, func() {}, nil
	}
	return nats.NewClient(cfg, config.ServiceName, log.Zap())
}

func provideEventBus(ctx context.Context, client *nats.Client, cfg config.NATSConfig, log *logger.ZapLogger) (interfaces.EventBus, func(), error) {
	bus := events.NewInMemoryEventBus(log.Named("events"))
	if client != nil {
		publisher := nats.NewPublisher(client, cfg.SubjectPrefix, log.Zap())
		if err := bus.Subscribe(publisher.EventType(), publisher); err != nil {
			return nil, nil, err
		}
	}
	if err := bus.Start(ctx); err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := bus.Stop(); err != nil {
			log.Error("Failed to stop event bus", interfaces.Error(err))
		}
	}
	return bus, cleanup, nil
}

func provideSettings(cfg *config.Config) bot.Settings {
	return bot.Settings{
		ImageBase:     cfg.Overseerr.ImageBase,
		Request4K:     cfg.Overseerr.Request4K,
		EnrichWorkers: cfg.Bot.EnrichWorkers,
	}
}

func provideController(catalog bot.Catalog, guard bot.Authorizer, bus interfaces.EventBus, log *logger.ZapLogger, settings bot.Settings) *bot.Controller {
	return bot.NewController(catalog, guard, bus, log.Named("bot"), settings)
}

func provideBotAPI(cfg config.TelegramConfig, log *logger.ZapLogger) (*tgbotapi.BotAPI, error) {
	return telegram.NewBotAPI(cfg, log)
}

func provideLimiter(cfg config.TelegramConfig) *telegram.Limiter {
	return telegram.NewLimiter(cfg.SendRate, cfg.SendBurst)
}

func providePoller(api telegram.BotAPI, handler telegram.Handler, limiter *telegram.Limiter, log *logger.ZapLogger, cfg config.TelegramConfig) *telegram.Poller {
	return telegram.NewPoller(api, handler, limiter, log.Named("telegram"), cfg)
}

func provideHealth(cfg config.HealthConfig, log *logger.ZapLogger, poller *telegram.Poller, client *nats.Client) *health.Server {
	checks := []health.Check{{Name: "telegram", Fn: poller.Ready}}
	if client != nil {
		checks = append(checks, health.Check{Name: "nats", Fn: func(context.Context) error {
			if !client.IsConnected() {
				return errNATSDisconnected
			}
			return nil
		}})
	}
	return health.NewServer(cfg, log.Named("health"), checks...)
}
