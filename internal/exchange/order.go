package exchange

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"bot_executor/internal/models"
)

// PlaceMarketOrder: подписанный POST /v5/order/create. Возвращает orderId.
func (c *Client) PlaceMarketOrder(ctx context.Context, creds models.Credentials, o models.Order) (string, error) {
	if !o.Qty.IsPositive() {
		return "", fmt.Errorf("PlaceMarketOrder: qty must be positive, got %s", o.Qty)
	}
	if o.Side != models.OrderBuy && o.Side != models.OrderSell {
		return "", fmt.Errorf("PlaceMarketOrder: bad side %q", o.Side)
	}

	body := createOrderRequest{
		Category:    c.category,
		Symbol:      o.Symbol,
		Side:        string(o.Side),
		OrderType:   "Market",
		Qty:         o.Qty.String(),
		TimeInForce: "GTC",
		ReduceOnly:  o.ReduceOnly,
		OrderLinkID: uuid.NewString(),
	}

	status, data, err := c.do(ctx, "PlaceMarketOrder", http.MethodPost, "/v5/order/create", nil, body, &creds)
	if err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrExchangeRequestFailed, err)
	}
	res, err := decode[createOrderResult]("PlaceMarketOrder", status, data)
	if err != nil {
		return "", err
	}
	if res.OrderID == "" {
		return "", &models.ExchangeError{Op: "PlaceMarketOrder", HTTPStatus: status, RetMsg: "empty orderId"}
	}
	return res.OrderID, nil
}
