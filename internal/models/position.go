package models

import "github.com/shopspring/decimal"

type PositionSide string

const (
	PositionFlat  PositionSide = "FLAT"
	PositionLong  PositionSide = "LONG"
	PositionShort PositionSide = "SHORT"
)

// LivePosition: позиция, запрошенная с биржи в начале хода бота.
// Между циклами не кэшируется.
type LivePosition struct {
	Side          PositionSide    `json:"side"`
	Size          decimal.Decimal `json:"size"`
	EntryPrice    float64         `json:"entryPrice"`
	UnrealizedPnl float64         `json:"unrealizedPnl"`
}

func FlatPosition() LivePosition {
	return LivePosition{Side: PositionFlat, Size: decimal.Zero}
}

func (p LivePosition) IsFlat() bool {
	return p.Side == PositionFlat || p.Side == "" || !p.Size.IsPositive()
}

// OrderSide: сторона ордера в терминах Bybit.
type OrderSide string

const (
	OrderBuy  OrderSide = "Buy"
	OrderSell OrderSide = "Sell"
)

func (s OrderSide) Opposite() OrderSide {
	if s == OrderBuy {
		return OrderSell
	}
	return OrderBuy
}

// EntrySide: значение для аудита в bots.entry_signal.
func (s OrderSide) EntrySide() string {
	if s == OrderBuy {
		return "BUY"
	}
	return "SELL"
}

// OpeningSide: сторона ордера, которая открывает позицию данного направления.
func (p PositionSide) OpeningSide() OrderSide {
	if p == PositionShort {
		return OrderSell
	}
	return OrderBuy
}

// Order: рыночный ордер.
type Order struct {
	Symbol     string
	Side       OrderSide
	Qty        decimal.Decimal
	ReduceOnly bool
}
