package indicator

import "github.com/markcheno/go-talib"

// NeutralRSI: значение для индексов, где ещё нет period приращений.
const NeutralRSI = 50.0

// RSI по Уайлдеру (talib.Rsi). Первое значение (индекс period) считается по простым
// средним прироста и падения за первые period приращений, далее
// avg = (avg*(period-1) + x) / period. При avgLoss == 0 RSI = 100.
func RSI(prices []float64, period int) ([]float64, error) {
	if err := check(prices, period); err != nil {
		return nil, err
	}

	out := make([]float64, len(prices))
	for i := range out {
		out[i] = NeutralRSI
	}
	if len(prices) <= period {
		return out, nil
	}

	// talib при period < 2 возвращает нули
	if period == 1 {
		for i := 1; i < len(prices); i++ {
			out[i] = 0
			if prices[i] >= prices[i-1] {
				out[i] = 100
			}
		}
		return out, nil
	}

	full := talib.Rsi(prices, period)
	copy(out[period:], full[period:])

	// talib отдаёт 0, пока не было ни роста, ни падения; avgLoss == 0 здесь даёт 100
	for i := 1; i < len(prices) && prices[i] == prices[0]; i++ {
		if i >= period {
			out[i] = 100
		}
	}
	return out, nil
}
