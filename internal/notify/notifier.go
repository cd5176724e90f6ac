package notify

import (
	"context"
	"net/http"
	"sync"
	"time"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"bot_executor/pkg/logger"
)

// Notifier: best-effort канал уведомлений. Ошибки не возвращаются.
type Notifier interface {
	Send(ctx context.Context, msg string)
}

type sender interface {
	Send(c tgbot.Chattable) (tgbot.Message, error)
}

// Telegram шлёт HTML-сообщения в один операторский чат.
// Send только ставит сообщение в очередь, доставка идёт в отдельной горутине,
// поэтому медленный api.telegram.org не держит воркер цикла.
type Telegram struct {
	bot    sender
	chatID int64

	mu     sync.Mutex
	closed bool
	queue  chan string
	done   chan struct{}
}

func NewTelegram(token string, chatID int64, timeout time.Duration, queue int) (*Telegram, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	b, err := tgbot.NewBotAPIWithClient(token, tgbot.APIEndpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, err
	}
	return newTelegram(b, chatID, queue), nil
}

func newTelegram(bot sender, chatID int64, queue int) *Telegram {
	if queue <= 0 {
		queue = 64
	}
	t := &Telegram{
		bot:    bot,
		chatID: chatID,
		queue:  make(chan string, queue),
		done:   make(chan struct{}),
	}
	go t.loop()
	return t
}

func (t *Telegram) Send(ctx context.Context, msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	if ctx.Err() != nil {
		logger.Warn("telegram: skip send, %v", ctx.Err())
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		logger.Warn("telegram: notifier closed, drop message")
		return
	}
	select {
	case t.queue <- msg:
	default:
		logger.Warn("telegram: queue full (%d), drop message", cap(t.queue))
	}
}

// Close перестаёт принимать сообщения и ждёт, пока очередь разберётся,
// но не дольше ctx.
func (t *Telegram) Close(ctx context.Context) error {
	t.mu.Lock()
	if !t.closed {
		t.closed = true
		close(t.queue)
	}
	t.mu.Unlock()

	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		logger.Warn("telegram: %d messages not delivered: %v", len(t.queue), ctx.Err())
		return ctx.Err()
	}
}

func (t *Telegram) loop() {
	defer close(t.done)
	for msg := range t.queue {
		t.deliver(msg)
	}
}

func (t *Telegram) deliver(msg string) {
	m := tgbot.NewMessage(t.chatID, msg)
	m.ParseMode = tgbot.ModeHTML
	m.DisableWebPagePreview = true

	if _, err := t.bot.Send(m); err != nil {
		logger.Error("telegram: send failed: %v", err)
	}
}

// Log: заглушка, всё пишет в лог.
type Log struct{}

func NewLog() *Log { return &Log{} }

func (*Log) Send(_ context.Context, msg string) { logger.Info("notify: %s", msg) }
