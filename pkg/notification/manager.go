package notification

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nikoksr/notify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"f1racepredictor/pkg/pipeline"
	"f1racepredictor/pkg/report"
)

const (
	EnvTelegramToken  = "TELEGRAM_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"
)

var ErrNotConfigured = errors.New("telegram notifications not configured")

var apiEndpoint = tgbotapi.APIEndpoint

// Manager sends finished prediction reports to the configured receivers.
type Manager struct {
	notifier notify.Notifier
	log      *logrus.Entry
}

func NewManager(notifier notify.Notifier, log *logrus.Entry) *Manager {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Manager{
		notifier: notifier,
		log:      log,
	}
}

// NewTelegramManager reads the bot token and chat id from the environment.
func NewTelegramManager(getenv func(string) string, log *logrus.Entry) (*Manager, error) {
	token := getenv(EnvTelegramToken)
	chat := getenv(EnvTelegramChatID)
	if token == "" || chat == "" {
		return nil, ErrNotConfigured
	}
	chatId, err := strconv.ParseInt(chat, 0, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", EnvTelegramChatID)
	}

	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, apiEndpoint)
	if err != nil {
		return nil, errors.Wrap(err, "connecting telegram bot")
	}

	tg := &Telegram{}
	tg.SetClient(bot)
	tg.AddReceivers(chatId)

	return NewManager(notify.NewWithServices(tg), log), nil
}

func NewTelegramManagerFromEnv(log *logrus.Entry) (*Manager, error) {
	return NewTelegramManager(os.Getenv, log)
}

func (m *Manager) Publish(ctx context.Context, r *pipeline.Report) error {
	subject, message := formatReport(r)
	m.log.WithField("event", r.Event).Info("sending prediction notification")
	if err := m.notifier.Send(ctx, subject, message); err != nil {
		return errors.Wrap(err, "sending prediction notification")
	}
	return nil
}

func formatReport(r *pipeline.Report) (string, string) {
	var b bytes.Buffer
	report.RenderReport(&b, r)
	subject := fmt.Sprintf("<b>Predicted %s GP results</b>", html.EscapeString(r.Event))
	return subject, "<pre>" + html.EscapeString(b.String()) + "</pre>"
}
