package delivery

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"gopkg.in/telebot.v4"
)

// TelegramDeliverer pushes reports to the configured review chat. One
// delivery is two sequential calls: the plain-text summary first, then the
// PDF as a document attachment. The mutex keeps the two calls of
// concurrent deliveries from interleaving in the chat.
type TelegramDeliverer struct {
	bot    *telebot.Bot
	chatID int64
	mu     sync.Mutex
}

// NewTelegramDeliverer creates a deliverer targeting the given chat.
func NewTelegramDeliverer(bot *telebot.Bot, chatID int64) *TelegramDeliverer {
	return &TelegramDeliverer{bot: bot, chatID: chatID}
}

// Deliver sends the summary message and then the document.
func (d *TelegramDeliverer) Deliver(ctx context.Context, summary string, document []byte, filename string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	recipient := telebot.ChatID(d.chatID)
	if _, err := d.bot.Send(recipient, summary); err != nil {
		return fmt.Errorf("failed to send summary message: %w", err)
	}
	doc := &telebot.Document{
		File:     telebot.FromReader(bytes.NewReader(document)),
		FileName: filename,
		MIME:     "application/pdf",
	}
	if _, err := d.bot.Send(recipient, doc); err != nil {
		return fmt.Errorf("failed to send report document: %w", err)
	}
	return nil
}
