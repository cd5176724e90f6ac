package strategy

import (
	"fmt"

	"bot_executor/internal/indicator"
	"bot_executor/internal/models"
	"bot_executor/pkg/logger"
)

const DefaultMinHistory = 200

// Evaluator сводит ключ стратегии и окно свечей к одному Signal.
type Evaluator struct {
	minHistory int
	strategies map[Key]Strategy
}

func NewEvaluator(minHistory int) *Evaluator {
	if minHistory <= 0 {
		minHistory = DefaultMinHistory
	}
	e := &Evaluator{
		minHistory: minHistory,
		strategies: make(map[Key]Strategy),
	}
	for _, s := range defaultStrategies() {
		e.Register(s)
	}
	return e
}

func (e *Evaluator) Register(s Strategy) { e.strategies[s.Key()] = s }

func (e *Evaluator) MinHistory() int { return e.minHistory }

func (e *Evaluator) Supports(key Key) bool {
	_, ok := e.strategies[key]
	return ok
}

// Evaluate: чистая функция окна: одинаковые свечи дают одинаковый сигнал.
func (e *Evaluator) Evaluate(key Key, candles []models.Candle) (models.Signal, error) {
	st, ok := e.strategies[key]
	if !ok {
		return models.Signal{}, fmt.Errorf("%w: %q", models.ErrUnknownStrategy, string(key))
	}

	n := len(candles)
	idx := n - 1
	if n < e.minHistory || n < 2 {
		return models.NoSignal(string(key), idx, ReasonInsufficientHistory), nil
	}

	snap, err := indicator.NewSnapshot(candles)
	if err != nil {
		return models.Signal{}, err
	}

	v := st.Check(snap, idx)
	sig := models.Signal{
		Type:             models.SignalNone,
		StrategyKey:      string(key),
		EvaluatedAtIndex: idx,
		Reason:           v.Reason,
	}
	switch {
	case v.Buy && v.Sell:
		logger.Warn("strategy %s: buy and sell both fired at index %d, signal suppressed", key, idx)
		sig.Reason = ReasonInconsistent
	case v.Buy:
		sig.Type = models.SignalBuy
	case v.Sell:
		sig.Type = models.SignalSell
	}
	return sig, nil
}
