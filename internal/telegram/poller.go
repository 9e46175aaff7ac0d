// Package telegram connects the bot controller to the Telegram Bot API
// through long polling.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/narwhalmedia/requestbot/internal/bot"
	"github.com/narwhalmedia/requestbot/pkg/config"
	"github.com/narwhalmedia/requestbot/pkg/interfaces"
	"github.com/narwhalmedia/requestbot/pkg/logger"
)

// Handler is the conversation logic. *bot.Controller implements it.
type Handler interface {
	HandleStart(ctx context.Context, userID int64, m bot.Messenger) error
	HandleText(ctx context.Context, userID int64, text string, m bot.Messenger) error
	HandleAction(ctx context.Context, userID int64, token string, m bot.Messenger) error
}

// NewBotAPI authenticates against Telegram and routes the library's own
// logging through zap.
func NewBotAPI(cfg config.TelegramConfig, log *logger.ZapLogger) (*tgbotapi.BotAPI, error) {
	if log != nil {
		if err := tgbotapi.SetLogger(zap.NewStdLog(log.Named("tgbotapi").Zap())); err != nil {
			return nil, fmt.Errorf("setting telegram logger: %w", err)
		}
	}
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}
	api.Debug = cfg.Debug
	return api, nil
}

// Poller receives updates and runs each one in its own goroutine.
type Poller struct {
	api         BotAPI
	handler     Handler
	limiter     *Limiter
	logger      interfaces.Logger
	pollTimeout int

	inFlight sync.WaitGroup
	polling  atomic.Bool
}

var errNotPolling = errors.New("not polling")

// NewPoller creates a new poller
func NewPoller(api BotAPI, handler Handler, limiter *Limiter, logger interfaces.Logger, cfg config.TelegramConfig) *Poller {
	return &Poller{
		api:         api,
		handler:     handler,
		limiter:     limiter,
		logger:      logger,
		pollTimeout: cfg.PollTimeout,
	}
}

// Run polls until ctx is cancelled, then waits for in-flight updates.
func (p *Poller) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = p.pollTimeout
	u.AllowedUpdates = []string{"message", "callback_query"}
	updates := p.api.GetUpdatesChan(u)
	p.polling.Store(true)
	defer p.polling.Store(false)

	p.logger.Info("Polling for updates", interfaces.Int("timeout_seconds", p.pollTimeout))

	// Turns outlive shutdown; upstream calls carry their own timeouts.
	turnCtx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			p.api.StopReceivingUpdates()
			p.inFlight.Wait()
			p.logger.Info("Polling stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				p.inFlight.Wait()
				return nil
			}
			p.inFlight.Add(1)
			go func() {
				defer p.inFlight.Done()
				p.Dispatch(turnCtx, update)
			}()
		}
	}
}

// Ready reports whether the update loop is running.
func (p *Poller) Ready(context.Context) error {
	if !p.polling.Load() {
		return errNotPolling
	}
	return nil
}

// Dispatch routes one update to the handler.
func (p *Poller) Dispatch(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Update handler panicked",
				interfaces.Int("update_id", update.UpdateID),
				interfaces.Any("panic", r),
				interfaces.String("stack", string(debug.Stack())))
		}
	}()

	start := time.Now()
	var err error
	switch {
	case update.CallbackQuery != nil:
		err = p.dispatchCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		err = p.dispatchMessage(ctx, update.Message)
	default:
		return
	}
	if err != nil {
		p.logger.Error("Failed to answer update",
			interfaces.Int("update_id", update.UpdateID),
			interfaces.Duration("elapsed", time.Since(start)),
			interfaces.Error(err))
	}
}

func (p *Poller) dispatchMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.Chat == nil {
		return nil
	}
	m := &conversation{api: p.api, limiter: p.limiter, chatID: msg.Chat.ID}
	userID := senderID(msg.From)

	if msg.IsCommand() {
		switch msg.Command() {
		case "start", "help":
			return p.handler.HandleStart(ctx, userID, m)
		default:
			return nil
		}
	}
	if msg.Text == "" {
		// Stickers, photos and other non-text messages.
		return nil
	}
	return p.handler.HandleText(ctx, userID, msg.Text, m)
}

func (p *Poller) dispatchCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	// Every tap is acknowledged so the client stops its spinner.
	if _, err := p.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		p.logger.Warn("Failed to acknowledge callback", interfaces.Error(err))
	}
	if cb.Message == nil || cb.Message.Chat == nil {
		return nil
	}
	m := &conversation{
		api:       p.api,
		limiter:   p.limiter,
		chatID:    cb.Message.Chat.ID,
		messageID: cb.Message.MessageID,
	}
	return p.handler.HandleAction(ctx, senderID(cb.From), cb.Data, m)
}

func senderID(u *tgbotapi.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}
