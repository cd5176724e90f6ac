package strategy

import "strings"

// labels: человекочитаемые названия из bots.strategy.
var labels = map[string]Key{
	"EMA 9/21/55 (тренд + кросс)": KeyMACrossover,
	"RSI 14 + EMA 50":             KeyRSI,
	"Bollinger Bands + EMA 50":    KeyBollinger,
	"MACD + EMA 200":              KeyMACD,
	"Мартингейл":                  KeyMartingale,
}

var keys = map[Key]struct{}{
	KeyMACrossover: {},
	KeyRSI:         {},
	KeyBollinger:   {},
	KeyMACD:        {},
	KeyMartingale:  {},
}

// KeyFromLabel переводит название стратегии в ключ. Принимает и сам ключ.
// Всё остальное, KeyUnknown, живая стратегия по умолчанию не подставляется.
func KeyFromLabel(label string) Key {
	label = strings.TrimSpace(label)
	if k, ok := labels[label]; ok {
		return k
	}
	k := Key(strings.ToLower(label))
	if _, ok := keys[k]; ok {
		return k
	}
	return KeyUnknown
}

func defaultStrategies() []Strategy {
	return []Strategy{
		MACrossover{},
		RSI{},
		Bollinger{},
		MACD{},
		Martingale{},
	}
}
