package runner

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bot_executor/internal/models"
)

type BotStoreMock struct {
	mock.Mock
}

func (m *BotStoreMock) ListActive(ctx context.Context) ([]models.BotConfig, error) {
	args := m.Called(ctx)
	bots, _ := args.Get(0).([]models.BotConfig)
	return bots, args.Error(1)
}

func (m *BotStoreMock) MarkEntry(ctx context.Context, userID int64, botID string, side models.OrderSide) error {
	args := m.Called(ctx, userID, botID, side)
	return args.Error(0)
}

type CredentialStoreMock struct {
	mock.Mock
}

func (m *CredentialStoreMock) Lookup(ctx context.Context, userID int64, exchange string) (models.Credentials, error) {
	args := m.Called(ctx, userID, exchange)
	creds, _ := args.Get(0).(models.Credentials)
	return creds, args.Error(1)
}

type MarketDataMock struct {
	mock.Mock
}

func (m *MarketDataMock) Candles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	args := m.Called(ctx, symbol, interval, limit)
	candles, _ := args.Get(0).([]models.Candle)
	return candles, args.Error(1)
}

type ExchangeMock struct {
	mock.Mock
}

func (m *ExchangeMock) Position(ctx context.Context, creds models.Credentials, symbol string) (models.LivePosition, error) {
	args := m.Called(ctx, creds, symbol)
	pos, _ := args.Get(0).(models.LivePosition)
	return pos, args.Error(1)
}

func (m *ExchangeMock) PlaceMarketOrder(ctx context.Context, creds models.Credentials, o models.Order) (string, error) {
	args := m.Called(ctx, creds, o)
	return args.String(0), args.Error(1)
}

type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) Send(ctx context.Context, msg string) {
	m.Called(ctx, msg)
}

type JournalMock struct {
	mock.Mock
}

func (m *JournalMock) Append(ctx context.Context, cycleID string, results []models.ActionResult) error {
	args := m.Called(ctx, cycleID, results)
	return args.Error(0)
}
