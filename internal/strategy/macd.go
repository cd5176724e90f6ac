package strategy

import "bot_executor/internal/indicator"

// MACD: гистограмма пересекает ноль против знака линии MACD, тренд по EMA200.
type MACD struct{}

func (MACD) Key() Key { return KeyMACD }

func (MACD) Check(s *indicator.Snapshot, idx int) Verdict {
	hist, line := s.MACD.Histogram, s.MACD.Line

	return trendVerdict(
		s.Close[idx], s.EMA200[idx],
		crossedAboveLevel(hist, 0, idx) && line[idx] < 0,
		crossedBelowLevel(hist, 0, idx) && line[idx] > 0,
		"histogram_cross_up", "histogram_cross_down",
	)
}
