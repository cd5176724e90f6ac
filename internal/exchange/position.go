package exchange

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"bot_executor/internal/models"
)

// Position: подписанный /v5/position/list. Берётся первая запись с size > 0,
// её нет, позиция Flat.
func (c *Client) Position(ctx context.Context, creds models.Credentials, symbol string) (models.LivePosition, error) {
	q := url.Values{}
	q.Set("category", c.category)
	q.Set("symbol", symbol)

	status, data, err := c.do(ctx, "Position", http.MethodGet, "/v5/position/list", q, nil, &creds)
	if err != nil {
		return models.LivePosition{}, fmt.Errorf("%w: %w", models.ErrExchangeRequestFailed, err)
	}
	res, err := decode[positionResult]("Position", status, data)
	if err != nil {
		return models.LivePosition{}, err
	}

	for _, p := range res.List {
		size, err := decimal.NewFromString(orZero(p.Size))
		if err != nil {
			return models.LivePosition{}, fmt.Errorf("%w: Position size %q: %w", models.ErrExchangeRequestFailed, p.Size, err)
		}
		if !size.IsPositive() {
			continue
		}

		side := models.PositionLong
		if p.Side == string(models.OrderSell) {
			side = models.PositionShort
		}
		entry, _ := strconv.ParseFloat(orZero(p.AvgPrice), 64)
		upnl, _ := strconv.ParseFloat(orZero(p.UnrealisedPnl), 64)

		return models.LivePosition{
			Side:          side,
			Size:          size,
			EntryPrice:    entry,
			UnrealizedPnl: upnl,
		}, nil
	}
	return models.FlatPosition(), nil
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
