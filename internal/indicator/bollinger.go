package indicator

import (
	"math"

	"github.com/markcheno/go-talib"
)

type Bands struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// BollingerBands: middle = SMA, полосы = middle ± mult * σ, где σ это стандартное
// отклонение генеральной совокупности по тому же окну, что и у middle.
// Полные окна считает talib.BBands, первые period-1 индексов идут по укороченному окну.
func BollingerBands(prices []float64, period int, mult float64) (Bands, error) {
	middle, err := SMA(prices, period)
	if err != nil {
		return Bands{}, err
	}

	n := len(prices)
	b := Bands{
		Upper:  make([]float64, n),
		Middle: middle,
		Lower:  make([]float64, n),
	}

	head := min(period-1, n)
	for i := 0; i < head; i++ {
		window := prices[:i+1]
		var variance float64
		for _, p := range window {
			d := p - middle[i]
			variance += d * d
		}
		sd := math.Sqrt(variance / float64(len(window)))

		b.Upper[i] = middle[i] + mult*sd
		b.Lower[i] = middle[i] - mult*sd
	}

	if n >= period {
		upper, _, lower := talib.BBands(prices, period, mult, mult, talib.SMA)
		copy(b.Upper[period-1:], upper[period-1:])
		copy(b.Lower[period-1:], lower[period-1:])
	}
	return b, nil
}
