// Package reconciler решает, какое действие выполнить по боту, из живой позиции и нового сигнала.
//
// Состояние всегда берётся из свежезапрошенной LivePosition, а не из bots.entry_signal:
// позиция могла быть закрыта вручную вне системы. За цикл, не более одного действия.
package reconciler

import (
	"github.com/shopspring/decimal"

	"bot_executor/internal/models"
)

type Kind string

const (
	Hold  Kind = "HOLD"
	Open  Kind = "OPEN"
	Close Kind = "CLOSE"
)

const (
	ReasonEntry    = "entry"
	ReasonReversal = "reversal"
	ReasonNoSignal = "no_signal"
	ReasonSameSide = "same_direction"
)

// Action: решение по боту. Для Open Side, направление новой позиции,
// для Close, направление закрываемой.
type Action struct {
	Kind   Kind
	Side   models.PositionSide
	Reason string
}

// Order: ордер, которым исполняется действие. Для Hold ok == false.
func (a Action) Order(symbol string, pos models.LivePosition, openQty decimal.Decimal) (models.Order, bool) {
	switch a.Kind {
	case Open:
		return models.Order{
			Symbol: symbol,
			Side:   a.Side.OpeningSide(),
			Qty:    openQty,
		}, true
	case Close:
		return models.Order{
			Symbol:     symbol,
			Side:       a.Side.OpeningSide().Opposite(),
			Qty:        pos.Size,
			ReduceOnly: true,
		}, true
	default:
		return models.Order{}, false
	}
}

func Decide(pos models.LivePosition, sig models.Signal) Action {
	state := models.PositionFlat
	if !pos.IsFlat() {
		state = pos.Side
	}

	switch state {
	case models.PositionLong:
		if sig.Type == models.SignalSell {
			return Action{Kind: Close, Side: models.PositionLong, Reason: ReasonReversal}
		}
		return Action{Kind: Hold, Side: models.PositionLong, Reason: holdReason(sig)}

	case models.PositionShort:
		if sig.Type == models.SignalBuy {
			return Action{Kind: Close, Side: models.PositionShort, Reason: ReasonReversal}
		}
		return Action{Kind: Hold, Side: models.PositionShort, Reason: holdReason(sig)}

	default:
		switch sig.Type {
		case models.SignalBuy:
			return Action{Kind: Open, Side: models.PositionLong, Reason: ReasonEntry}
		case models.SignalSell:
			return Action{Kind: Open, Side: models.PositionShort, Reason: ReasonEntry}
		}
		return Action{Kind: Hold, Side: models.PositionFlat, Reason: ReasonNoSignal}
	}
}

func holdReason(sig models.Signal) string {
	if sig.Type == models.SignalNone {
		return ReasonNoSignal
	}
	return ReasonSameSide
}
