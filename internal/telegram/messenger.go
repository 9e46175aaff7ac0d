package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/narwhalmedia/requestbot/internal/presenter"
)

// BotAPI is the part of *tgbotapi.BotAPI the adapter uses.
type BotAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	StopReceivingUpdates()
}

// conversation replies into one chat. messageID is the message whose
// buttons were tapped, zero for plain messages.
type conversation struct {
	api       BotAPI
	limiter   *Limiter
	chatID    int64
	messageID int
}

func (c *conversation) SendText(ctx context.Context, text string) error {
	return c.send(ctx, tgbotapi.NewMessage(c.chatID, text))
}

func (c *conversation) SendCard(ctx context.Context, card presenter.Card) error {
	msg := tgbotapi.NewMessage(c.chatID, card.Caption)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if kb, ok := keyboard(card.Buttons); ok {
		msg.ReplyMarkup = kb
	}
	return c.send(ctx, msg)
}

func (c *conversation) SendPhoto(ctx context.Context, photoURL string, card presenter.Card) error {
	photo := tgbotapi.NewPhoto(c.chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = card.Caption
	photo.ParseMode = tgbotapi.ModeHTML
	if kb, ok := keyboard(card.Buttons); ok {
		photo.ReplyMarkup = kb
	}
	return c.send(ctx, photo)
}

func (c *conversation) ClearButtons(ctx context.Context) error {
	if c.messageID == 0 {
		return nil
	}
	if err := c.limiter.Wait(ctx, c.chatID); err != nil {
		return err
	}
	edit := tgbotapi.NewEditMessageReplyMarkup(c.chatID, c.messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := c.api.Request(edit); err != nil {
		return fmt.Errorf("clearing buttons: %w", err)
	}
	return nil
}

func (c *conversation) send(ctx context.Context, msg tgbotapi.Chattable) error {
	if err := c.limiter.Wait(ctx, c.chatID); err != nil {
		return err
	}
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}

// keyboard renders buttons as a single inline row.
func keyboard(buttons []presenter.Button) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(buttons) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Action.Token()))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row), true
}
