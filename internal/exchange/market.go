package exchange

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"bot_executor/internal/models"
)

// CandleSource: источник свечей, от старой к новой.
type CandleSource interface {
	Candles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error)
}

// Candles: публичный /v5/market/kline. Bybit отдаёт список от новой свечи к старой,
// поэтому список разворачивается; дубли по времени отбрасываются.
func (c *Client) Candles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	q := url.Values{}
	q.Set("category", c.category)
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("limit", strconv.Itoa(limit))

	status, data, err := c.do(ctx, "Candles", http.MethodGet, "/v5/market/kline", q, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrMarketDataUnavailable, symbol, err)
	}
	res, err := decode[klineResult]("Candles", status, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrMarketDataUnavailable, symbol, err)
	}

	candles := make([]models.Candle, 0, len(res.List))
	for _, row := range res.List {
		k, err := parseKline(row)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", models.ErrMarketDataUnavailable, symbol, err)
		}
		candles = append(candles, k)
	}

	slices.SortFunc(candles, func(a, b models.Candle) int {
		return a.OpenTime.Compare(b.OpenTime)
	})
	candles = slices.CompactFunc(candles, func(a, b models.Candle) bool {
		return a.OpenTime.Equal(b.OpenTime)
	})
	return candles, nil
}

// parseKline: [startTime, open, high, low, close, volume, turnover], всё строками.
func parseKline(row []string) (models.Candle, error) {
	if len(row) < 6 {
		return models.Candle{}, fmt.Errorf("kline row has %d fields", len(row))
	}

	ms, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return models.Candle{}, fmt.Errorf("kline start %q: %w", row[0], err)
	}

	var vals [5]float64
	for i := range vals {
		if vals[i], err = strconv.ParseFloat(row[i+1], 64); err != nil {
			return models.Candle{}, fmt.Errorf("kline field %d %q: %w", i+1, row[i+1], err)
		}
	}

	return models.Candle{
		OpenTime: time.UnixMilli(ms).UTC(),
		Open:     vals[0],
		High:     vals[1],
		Low:      vals[2],
		Close:    vals[3],
		Volume:   vals[4],
	}, nil
}
