package strategy

import "bot_executor/internal/indicator"

// Bollinger: касание полосы тенью при закрытии внутри канала, тренд по EMA50.
type Bollinger struct{}

func (Bollinger) Key() Key { return KeyBollinger }

func (Bollinger) Check(s *indicator.Snapshot, idx int) Verdict {
	c := s.Close[idx]
	lower, upper := s.Bollinger.Lower[idx], s.Bollinger.Upper[idx]

	return trendVerdict(
		c, s.EMA50[idx],
		s.Low[idx] <= lower && c > lower,
		s.High[idx] >= upper && c < upper,
		"lower_band_rejection", "upper_band_rejection",
	)
}
