package indicator

import "github.com/markcheno/go-talib"

// EMA засевается первой ценой, а не SMA первых period значений:
// ema[0] = prices[0], далее ema[i] = (prices[i]-ema[i-1])*k + ema[i-1], k = 2/(period+1).
// talib.Ema засевает SMA, поэтому EMA (и MACD поверх неё) считаются здесь.
func EMA(prices []float64, period int) ([]float64, error) {
	if err := check(prices, period); err != nil {
		return nil, err
	}

	k := 2.0 / float64(period+1)
	out := make([]float64, len(prices))
	out[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		out[i] = (prices[i]-out[i-1])*k + out[i-1]
	}
	return out, nil
}

// SMA: для i < period-1 среднее prices[0..i], дальше скользящее окно ровно из
// period значений (talib.Sma).
func SMA(prices []float64, period int) ([]float64, error) {
	if err := check(prices, period); err != nil {
		return nil, err
	}

	out := make([]float64, len(prices))
	head := min(period-1, len(prices))
	var sum float64
	for i := 0; i < head; i++ {
		sum += prices[i]
		out[i] = sum / float64(i+1)
	}
	if len(prices) >= period {
		full := talib.Sma(prices, period)
		copy(out[period-1:], full[period-1:])
	}
	return out, nil
}
