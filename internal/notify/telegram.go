// Package notify delivers hostel events to staff chat channels.
package notify

import (
	"context"
	"fmt"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/osa911/hostelhub/internal/models"
)

// TelegramNotifier posts new complaints to the warden's Telegram chat
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier connects the bot identified by token.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect telegram bot: %w", err)
	}
	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

// NewTelegramNotifierWithAPI wraps an existing bot client
func NewTelegramNotifierWithAPI(api *tgbotapi.BotAPI, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{api: api, chatID: chatID}
}

func (n *TelegramNotifier) ComplaintFiled(ctx context.Context, user *models.User, c *models.Complaint) error {
	text := fmt.Sprintf(
		"<b>New complaint</b>\n\n<b>From:</b> %s (%s)\n<b>Room:</b> %s\n<b>Status:</b> %s\n\n%s",
		html.EscapeString(user.Name),
		html.EscapeString(user.Email),
		html.EscapeString(c.RoomID),
		html.EscapeString(string(c.Status)),
		html.EscapeString(c.Issue),
	)

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
