package strategy

import "bot_executor/internal/indicator"

// Key: внутренний ключ стратегии.
type Key string

const (
	KeyUnknown     Key = ""
	KeyMACrossover Key = "ma-crossover"
	KeyRSI         Key = "rsi"
	KeyBollinger   Key = "bollinger"
	KeyMACD        Key = "macd"
	KeyMartingale  Key = "martingale"
)

// Причины в Signal.Reason.
const (
	ReasonInsufficientHistory = "insufficient_history"
	ReasonInconsistent        = "inconsistent_signal"
	ReasonNoCross             = "no_cross"
	ReasonTrendFilter         = "trend_filter"
	ReasonPositionSizingOnly  = "position_sizing_only"
)

// Verdict: сырые условия стратегии на индексе idx.
type Verdict struct {
	Buy    bool
	Sell   bool
	Reason string
}

// Strategy: один вариант генератора сигналов. Check смотрит на idx и idx-1,
// idx >= 1 гарантирует вызывающий.
type Strategy interface {
	Key() Key
	Check(s *indicator.Snapshot, idx int) Verdict
}

func crossedAbove(a, b []float64, idx int) bool {
	return a[idx-1] <= b[idx-1] && a[idx] > b[idx]
}

func crossedBelow(a, b []float64, idx int) bool {
	return a[idx-1] >= b[idx-1] && a[idx] < b[idx]
}

func crossedAboveLevel(a []float64, level float64, idx int) bool {
	return a[idx-1] <= level && a[idx] > level
}

func crossedBelowLevel(a []float64, level float64, idx int) bool {
	return a[idx-1] >= level && a[idx] < level
}

// trendVerdict собирает Verdict из двух событий и фильтра тренда close vs trend.
func trendVerdict(close, trend float64, up, down bool, upReason, downReason string) Verdict {
	v := Verdict{
		Buy:  up && close > trend,
		Sell: down && close < trend,
	}
	switch {
	case v.Buy && v.Sell:
		v.Reason = ReasonInconsistent
	case v.Buy:
		v.Reason = upReason
	case v.Sell:
		v.Reason = downReason
	case up || down:
		v.Reason = ReasonTrendFilter
	default:
		v.Reason = ReasonNoCross
	}
	return v
}
