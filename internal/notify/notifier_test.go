package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type SenderMock struct {
	mock.Mock
}

func (m *SenderMock) Send(c tgbot.Chattable) (tgbot.Message, error) {
	args := m.Called(c)
	return tgbot.Message{}, args.Error(0)
}

func closeNow(t *testing.T, tg *Telegram) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, tg.Close(ctx))
}

func TestTelegram_SendsHTML(t *testing.T) {
	s := new(SenderMock)
	s.On("Send", mock.MatchedBy(func(c tgbot.Chattable) bool {
		m, ok := c.(tgbot.MessageConfig)
		return ok && m.ChatID == 777 && m.ParseMode == tgbot.ModeHTML && m.Text == "<b>hi</b>"
	})).Return(nil).Once()

	tg := newTelegram(s, 777, 4)
	tg.Send(context.Background(), "<b>hi</b>")
	closeNow(t, tg)

	s.AssertExpectations(t)
}

func TestTelegram_ErrorsSwallowed(t *testing.T) {
	s := new(SenderMock)
	s.On("Send", mock.Anything).Return(errors.New("Bad Request: chat not found"))

	tg := newTelegram(s, 1, 4)
	assert.NotPanics(t, func() { tg.Send(context.Background(), "x") })
	closeNow(t, tg)
	s.AssertNumberOfCalls(t, "Send", 1)
}

func TestTelegram_SkipsWithoutChatOrCancelled(t *testing.T) {
	s := new(SenderMock)

	noChat := newTelegram(s, 0, 4)
	noChat.Send(context.Background(), "x")
	closeNow(t, noChat)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tg := newTelegram(s, 1, 4)
	tg.Send(ctx, "x")
	closeNow(t, tg)

	var nilTG *Telegram
	nilTG.Send(context.Background(), "x")

	s.AssertNotCalled(t, "Send", mock.Anything)
}

func TestTelegram_SendDoesNotWaitForDelivery(t *testing.T) {
	started := make(chan struct{}, 4)
	release := make(chan struct{})
	s := new(SenderMock)
	s.On("Send", mock.Anything).Run(func(mock.Arguments) {
		started <- struct{}{}
		<-release
	}).Return(nil)

	tg := newTelegram(s, 1, 1)

	tg.Send(context.Background(), "first")
	<-started // доставка "first" висит

	sent := make(chan struct{})
	go func() {
		tg.Send(context.Background(), "second") // в очередь
		tg.Send(context.Background(), "third")  // очередь полна, отброшено
		close(sent)
	}()
	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("Send blocked on a stuck delivery")
	}

	close(release)
	closeNow(t, tg)
	s.AssertNumberOfCalls(t, "Send", 2)
}

func TestTelegram_CloseRespectsDeadline(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	started := make(chan struct{}, 1)
	s := new(SenderMock)
	s.On("Send", mock.Anything).Run(func(mock.Arguments) {
		started <- struct{}{}
		<-release
	}).Return(nil)

	tg := newTelegram(s, 1, 4)
	tg.Send(context.Background(), "stuck")
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, tg.Close(ctx), context.DeadlineExceeded)

	// после Close сообщения молча отбрасываются
	assert.NotPanics(t, func() { tg.Send(context.Background(), "late") })
	s.AssertNumberOfCalls(t, "Send", 1)
}

func TestLog_Send(t *testing.T) {
	assert.NotPanics(t, func() { NewLog().Send(context.Background(), "hello") })
}
