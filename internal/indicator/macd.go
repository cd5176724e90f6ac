package indicator

type MACDSeries struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// MACD: line = EMA(fast) - EMA(slow), signal = EMA(line, signalPeriod), histogram = line - signal.
func MACD(prices []float64, fast, slow, signalPeriod int) (MACDSeries, error) {
	if err := check(prices, fast, slow, signalPeriod); err != nil {
		return MACDSeries{}, err
	}

	emaFast, err := EMA(prices, fast)
	if err != nil {
		return MACDSeries{}, err
	}
	emaSlow, err := EMA(prices, slow)
	if err != nil {
		return MACDSeries{}, err
	}

	line := make([]float64, len(prices))
	for i := range prices {
		line[i] = emaFast[i] - emaSlow[i]
	}

	signal, err := EMA(line, signalPeriod)
	if err != nil {
		return MACDSeries{}, err
	}

	hist := make([]float64, len(prices))
	for i := range line {
		hist[i] = line[i] - signal[i]
	}
	return MACDSeries{Line: line, Signal: signal, Histogram: hist}, nil
}
