package strategy

import "bot_executor/internal/indicator"

const (
	RSIOversold   = 35.0
	RSIOverbought = 65.0
)

// RSI: выход RSI14 из зоны перепроданности/перекупленности, тренд по EMA50.
type RSI struct{}

func (RSI) Key() Key { return KeyRSI }

func (RSI) Check(s *indicator.Snapshot, idx int) Verdict {
	return trendVerdict(
		s.Close[idx], s.EMA50[idx],
		crossedAboveLevel(s.RSI14, RSIOversold, idx),
		crossedBelowLevel(s.RSI14, RSIOverbought, idx),
		"rsi_cross_up_35", "rsi_cross_down_65",
	)
}
