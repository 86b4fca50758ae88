// Package bot runs the long-polling echo bot. It is a separate process
// from the pipeline and shares nothing with it beyond the config.
package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const pollTimeoutSeconds = 30

// Sender is the slice of the Telegram API the handler needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot polls for updates and echoes every text message back.
type Bot struct {
	api *tgbotapi.BotAPI
	log *zap.SugaredLogger
}

// New authenticates against the Telegram API with the given token.
func New(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("authenticating bot: %w", err)
	}
	return &Bot{api: api, log: zap.S()}, nil
}

// Run polls until the context is canceled.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Infow("bot polling started", "username", b.api.Self.UserName)

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.log.Info("bot polling stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			HandleUpdate(b.api, update, b.log)
		}
	}
}

// HandleUpdate replies to a text message with identical text. Non-text
// updates are ignored.
func HandleUpdate(s Sender, update tgbotapi.Update, log *zap.SugaredLogger) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	reply := tgbotapi.NewMessage(update.Message.Chat.ID, update.Message.Text)
	reply.ReplyToMessageID = update.Message.MessageID

	if _, err := s.Send(reply); err != nil {
		log.Warnw("sending reply", "chat", update.Message.Chat.ID, "error", err)
	}
}
