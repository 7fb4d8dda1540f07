package notification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f1racepredictor/pkg/model"
	"f1racepredictor/pkg/pipeline"
)

type testNotifier struct {
	SendFunc func(ctx context.Context, subject, message string) error
}

func (n *testNotifier) Send(ctx context.Context, subject, message string) error {
	return n.SendFunc(ctx, subject, message)
}

func testReport() *pipeline.Report {
	return &pipeline.Report{
		Event:     "Emilia Romagna",
		UsedYears: []int{2024},
		Predictions: []model.PredictionResult{
			{Driver: "PIA", FullName: "Oscar Piastri", PredictedLapTime: 80.5},
		},
		MAE: 0.3,
	}
}

func TestPublish(t *testing.T) {
	var gotSubject, gotMessage string
	n := &testNotifier{SendFunc: func(ctx context.Context, subject, message string) error {
		gotSubject, gotMessage = subject, message
		return nil
	}}

	require.NoError(t, NewManager(n, nil).Publish(context.Background(), testReport()))
	assert.Equal(t, "<b>Predicted Emilia Romagna GP results</b>", gotSubject)
	assert.Contains(t, gotMessage, "<pre>")
	assert.Contains(t, gotMessage, "PIA")
	assert.Contains(t, gotMessage, "Model Error (MAE): 0.30 seconds")
}

func TestPublishError(t *testing.T) {
	n := &testNotifier{SendFunc: func(ctx context.Context, subject, message string) error {
		return errors.New("bluh")
	}}
	err := NewManager(n, nil).Publish(context.Background(), testReport())
	assert.EqualError(t, err, "sending prediction notification: bluh")
}

func TestNewTelegramManagerNotConfigured(t *testing.T) {
	_, err := NewTelegramManager(func(string) string { return "" }, nil)
	assert.Equal(t, ErrNotConfigured, err)

	env := map[string]string{EnvTelegramToken: "token", EnvTelegramChatID: "not-a-number"}
	_, err = NewTelegramManager(func(k string) string { return env[k] }, nil)
	assert.Error(t, err)
}

type testSender struct {
	SendFunc func(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

func (s *testSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return s.SendFunc(c)
}

func TestTelegramSend(t *testing.T) {
	var sent []tgbotapi.MessageConfig
	tg := &Telegram{}
	tg.SetClient(&testSender{SendFunc: func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
		sent = append(sent, c.(tgbotapi.MessageConfig))
		return tgbotapi.Message{}, nil
	}})
	tg.AddReceivers(1, 2)

	require.NoError(t, NewManager(tg, nil).Publish(context.Background(), testReport()))
	require.Len(t, sent, 2)
	assert.Equal(t, int64(1), sent[0].ChatID)
	assert.Equal(t, int64(2), sent[1].ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, sent[0].ParseMode)
	assert.Contains(t, sent[0].Text, "<b>Predicted Emilia Romagna GP results</b>\n<pre>")
}

func TestTelegramSendErrors(t *testing.T) {
	tg := &Telegram{}
	tg.AddReceivers(1)
	assert.Error(t, tg.Send(context.Background(), "s", "m"))

	tg.SetClient(&testSender{SendFunc: func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
		return tgbotapi.Message{}, errors.New("forbidden")
	}})
	assert.EqualError(t, tg.Send(context.Background(), "s", "m"), "sending message to chat 1: forbidden")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, context.Canceled, tg.Send(ctx, "s", "m"))
}

// fakeBotAPI answers getMe and records sendMessage calls.
func fakeBotAPI(t *testing.T) (*httptest.Server, func() []map[string]string) {
	var mu sync.Mutex
	var messages []map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("/bottoken/getMe", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"result":{"id":7,"is_bot":true,"first_name":"predictor","username":"predictor_bot"}}`))
	})
	mux.HandleFunc("/bottoken/sendMessage", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		mu.Lock()
		messages = append(messages, map[string]string{
			"chat_id":    r.FormValue("chat_id"),
			"parse_mode": r.FormValue("parse_mode"),
			"text":       r.FormValue("text"),
		})
		mu.Unlock()
		w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	old := apiEndpoint
	apiEndpoint = srv.URL + "/bot%s/%s"
	t.Cleanup(func() { apiEndpoint = old })

	return srv, func() []map[string]string {
		mu.Lock()
		defer mu.Unlock()
		return append([]map[string]string(nil), messages...)
	}
}

func TestNewTelegramManagerFromEnvironment(t *testing.T) {
	_, messages := fakeBotAPI(t)
	env := map[string]string{EnvTelegramToken: "token", EnvTelegramChatID: "42"}

	m, err := NewTelegramManager(func(k string) string { return env[k] }, nil)
	require.NoError(t, err)
	require.NoError(t, m.Publish(context.Background(), testReport()))

	got := messages()
	require.Len(t, got, 1)
	assert.Equal(t, "42", got[0]["chat_id"])
	assert.Equal(t, tgbotapi.ModeHTML, got[0]["parse_mode"])
	assert.Contains(t, got[0]["text"], "Oscar Piastri")
}
