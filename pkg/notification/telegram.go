package notification

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram is a notify.Notifier sending HTML messages to a set of chats.
type Telegram struct {
	client  sender
	chatIDs []int64
}

func (t *Telegram) SetClient(client sender) {
	t.client = client
}

func (t *Telegram) AddReceivers(chatIDs ...int64) {
	t.chatIDs = append(t.chatIDs, chatIDs...)
}

func (t *Telegram) Send(ctx context.Context, subject, message string) error {
	if t.client == nil {
		return errors.New("telegram client not set")
	}
	for _, chatID := range t.chatIDs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg := tgbotapi.NewMessage(chatID, subject+"\n"+message)
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := t.client.Send(msg); err != nil {
			return errors.Wrapf(err, "sending message to chat %d", chatID)
		}
	}
	return nil
}
