package exchange

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bot_executor/internal/models"
)

var creds = models.Credentials{APIKey: "key-1", APISecret: "secret-1"}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL, RatePerSec: 1000, Burst: 100, Timeout: 2 * time.Second})
	c.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return c
}

func TestSign_KnownVector(t *testing.T) {
	got := Sign("secret", "1700000000000", "key", "5000", "category=linear")
	assert.Equal(t, "e6c3e971c517d999338172674f1c633b9016addf8f8c632372232076767b4c07", got)
	assert.NotEqual(t, got, Sign("secret", "1700000000001", "key", "5000", "category=linear"))
}

func TestCandles_ReversedAndParsed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v5/market/kline", r.URL.Path)
		assert.Equal(t, "linear", r.URL.Query().Get("category"))
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "15", r.URL.Query().Get("interval"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		assert.Empty(t, r.Header.Get("X-BAPI-SIGN"))

		_, _ = io.WriteString(w, `{"retCode":0,"retMsg":"OK","result":{"category":"linear","symbol":"BTCUSDT","list":[
			["1700001800000","103","104","102","103.5","7","700"],
			["1700000900000","102","103","101","102.5","6","600"],
			["1700000900000","102","103","101","102.5","6","600"],
			["1700000000000","101","102","100","101.5","5","500"]
		]}}`)
	})

	candles, err := c.Candles(context.Background(), "BTCUSDT", "15", 3)
	require.NoError(t, err)
	require.Len(t, candles, 3)

	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), candles[0].OpenTime)
	assert.Equal(t, 101.5, candles[0].Close)
	assert.Equal(t, 100.0, candles[0].Low)
	assert.Equal(t, 5.0, candles[0].Volume)
	assert.Equal(t, 103.5, candles[2].Close)
	for i := 1; i < len(candles); i++ {
		assert.True(t, candles[i].OpenTime.After(candles[i-1].OpenTime))
	}
}

func TestCandles_Failures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"retCode": func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"retCode":10001,"retMsg":"params error","result":{}}`)
		},
		"http": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		},
		"garbage": func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `<html>`)
		},
		"row": func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"retCode":0,"retMsg":"OK","result":{"list":[["1700000000000","x","1","1","1","1"]]}}`)
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, h)
			_, err := c.Candles(context.Background(), "BTCUSDT", "15", 200)
			assert.ErrorIs(t, err, models.ErrMarketDataUnavailable)
		})
	}
}

func TestPosition_SignedAndParsed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v5/position/list", r.URL.Path)
		assert.Equal(t, "category=linear&symbol=ETHUSDT", r.URL.RawQuery)

		assert.Equal(t, "key-1", r.Header.Get("X-BAPI-API-KEY"))
		assert.Equal(t, "1700000000000", r.Header.Get("X-BAPI-TIMESTAMP"))
		assert.Equal(t, "5000", r.Header.Get("X-BAPI-RECV-WINDOW"))
		want := Sign("secret-1", "1700000000000", "key-1", "5000", r.URL.RawQuery)
		assert.Equal(t, want, r.Header.Get("X-BAPI-SIGN"))

		_, _ = io.WriteString(w, `{"retCode":0,"retMsg":"OK","result":{"list":[
			{"symbol":"ETHUSDT","side":"","size":"0","avgPrice":"0","unrealisedPnl":"","positionIdx":1},
			{"symbol":"ETHUSDT","side":"Sell","size":"0.05","avgPrice":"3100.5","unrealisedPnl":"-1.25","positionIdx":2}
		]}}`)
	})

	pos, err := c.Position(context.Background(), creds, "ETHUSDT")
	require.NoError(t, err)
	assert.Equal(t, models.PositionShort, pos.Side)
	assert.True(t, decimal.RequireFromString("0.05").Equal(pos.Size))
	assert.Equal(t, 3100.5, pos.EntryPrice)
	assert.Equal(t, -1.25, pos.UnrealizedPnl)
}

func TestPosition_Flat(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"retCode":0,"retMsg":"OK","result":{"list":[{"symbol":"BTCUSDT","side":"","size":"0"}]}}`)
	})

	pos, err := c.Position(context.Background(), creds, "BTCUSDT")
	require.NoError(t, err)
	assert.True(t, pos.IsFlat())
	assert.Equal(t, models.PositionFlat, pos.Side)
}

func TestPosition_InvalidKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"retCode":10003,"retMsg":"API key is invalid.","result":{}}`)
	})

	_, err := c.Position(context.Background(), creds, "BTCUSDT")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrExchangeRequestFailed)

	var exErr *models.ExchangeError
	require.True(t, errors.As(err, &exErr))
	assert.Equal(t, 10003, exErr.RetCode)
}

func TestPlaceMarketOrder_Body(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v5/order/create", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		want := Sign("secret-1", r.Header.Get("X-BAPI-TIMESTAMP"), "key-1", "5000", string(body))
		assert.Equal(t, want, r.Header.Get("X-BAPI-SIGN"))

		var req createOrderRequest
		require.NoError(t, sonic.Unmarshal(body, &req))
		assert.Equal(t, "linear", req.Category)
		assert.Equal(t, "BTCUSDT", req.Symbol)
		assert.Equal(t, "Sell", req.Side)
		assert.Equal(t, "Market", req.OrderType)
		assert.Equal(t, "0.002", req.Qty)
		assert.Equal(t, "GTC", req.TimeInForce)
		assert.True(t, req.ReduceOnly)
		assert.Len(t, req.OrderLinkID, 36)

		_, _ = io.WriteString(w, `{"retCode":0,"retMsg":"OK","result":{"orderId":"ord-77","orderLinkId":"x"}}`)
	})

	id, err := c.PlaceMarketOrder(context.Background(), creds, models.Order{
		Symbol:     "BTCUSDT",
		Side:       models.OrderSell,
		Qty:        decimal.RequireFromString("0.002"),
		ReduceOnly: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "ord-77", id)
}

func TestPlaceMarketOrder_Rejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"retCode":110007,"retMsg":"ab not enough for new order","result":{}}`)
	})

	_, err := c.PlaceMarketOrder(context.Background(), creds, models.Order{
		Symbol: "BTCUSDT", Side: models.OrderBuy, Qty: decimal.RequireFromString("0.001"),
	})
	assert.ErrorIs(t, err, models.ErrExchangeRequestFailed)
	assert.Contains(t, err.Error(), "110007")
}

func TestPlaceMarketOrder_Validation(t *testing.T) {
	c := NewClient(Options{})

	_, err := c.PlaceMarketOrder(context.Background(), creds, models.Order{Symbol: "BTCUSDT", Side: models.OrderBuy})
	assert.Error(t, err)

	_, err = c.PlaceMarketOrder(context.Background(), creds, models.Order{
		Symbol: "BTCUSDT", Side: "Long", Qty: decimal.NewFromInt(1),
	})
	assert.Error(t, err)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond, RatePerSec: 100})
	_, err := c.Position(context.Background(), creds, "BTCUSDT")
	assert.ErrorIs(t, err, models.ErrExchangeRequestFailed)
}

func TestClient_CancelledContext(t *testing.T) {
	c := NewClient(Options{BaseURL: "http://127.0.0.1:1", RatePerSec: 0.001, Burst: 1})
	// первый токен свободен, второй пришлось бы ждать ~1000с
	require.True(t, c.limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Candles(ctx, "BTCUSDT", "15", 200)
	assert.ErrorIs(t, err, models.ErrMarketDataUnavailable)
}
