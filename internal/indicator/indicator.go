// Package indicator содержит чистые функции технических индикаторов.
//
// Каждая функция возвращает последовательность той же длины, что и вход:
// ведущие значения, для которых окно ещё не заполнено, считаются по
// укороченному окну либо заполняются документированным значением по умолчанию.
package indicator

import "errors"

var (
	ErrInsufficientData = errors.New("indicator: insufficient data")
	ErrInvalidPeriod    = errors.New("indicator: period must be positive")
)

func check(prices []float64, periods ...int) error {
	if len(prices) == 0 {
		return ErrInsufficientData
	}
	for _, p := range periods {
		if p <= 0 {
			return ErrInvalidPeriod
		}
	}
	return nil
}
