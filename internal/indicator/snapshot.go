package indicator

import "bot_executor/internal/models"

const (
	BollingerPeriod = 20
	BollingerMult   = 2.0
	RSIPeriod       = 14
	MACDFast        = 12
	MACDSlow        = 26
	MACDSignal      = 9
)

// Snapshot: все серии, нужные стратегиям, для одного окна свечей.
// Каждая серия выровнена с окном индекс в индекс.
type Snapshot struct {
	Close []float64
	High  []float64
	Low   []float64

	EMA9   []float64
	EMA21  []float64
	EMA50  []float64
	EMA55  []float64
	EMA200 []float64

	RSI14     []float64
	MACD      MACDSeries
	Bollinger Bands
}

func NewSnapshot(candles []models.Candle) (*Snapshot, error) {
	s := &Snapshot{
		Close: models.Closes(candles),
		High:  models.Highs(candles),
		Low:   models.Lows(candles),
	}

	var err error
	emas := []struct {
		dst    *[]float64
		period int
	}{
		{&s.EMA9, 9},
		{&s.EMA21, 21},
		{&s.EMA50, 50},
		{&s.EMA55, 55},
		{&s.EMA200, 200},
	}
	for _, e := range emas {
		if *e.dst, err = EMA(s.Close, e.period); err != nil {
			return nil, err
		}
	}

	if s.RSI14, err = RSI(s.Close, RSIPeriod); err != nil {
		return nil, err
	}
	if s.MACD, err = MACD(s.Close, MACDFast, MACDSlow, MACDSignal); err != nil {
		return nil, err
	}
	if s.Bollinger, err = BollingerBands(s.Close, BollingerPeriod, BollingerMult); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Snapshot) Len() int { return len(s.Close) }
