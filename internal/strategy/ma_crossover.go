package strategy

import "bot_executor/internal/indicator"

// MACrossover: EMA9/EMA21 пересечение с фильтром тренда по EMA55.
type MACrossover struct{}

func (MACrossover) Key() Key { return KeyMACrossover }

func (MACrossover) Check(s *indicator.Snapshot, idx int) Verdict {
	return trendVerdict(
		s.Close[idx], s.EMA55[idx],
		crossedAbove(s.EMA9, s.EMA21, idx),
		crossedBelow(s.EMA9, s.EMA21, idx),
		"ema9_cross_up_ema21", "ema9_cross_down_ema21",
	)
}
