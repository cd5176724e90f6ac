package models

type SignalType string

const (
	SignalNone SignalType = "NONE"
	SignalBuy  SignalType = "BUY"
	SignalSell SignalType = "SELL"
)

// Signal: производное значение, не сохраняется.
// Детерминированно пересчитывается из того же окна свечей.
type Signal struct {
	Type             SignalType `json:"type"`
	StrategyKey      string     `json:"strategy"`
	EvaluatedAtIndex int        `json:"index"`
	Reason           string     `json:"reason,omitempty"`
}

func NoSignal(key string, idx int, reason string) Signal {
	return Signal{Type: SignalNone, StrategyKey: key, EvaluatedAtIndex: idx, Reason: reason}
}
