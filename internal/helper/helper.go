package helper

import (
	"strings"
)

// NormInterval приводит таймфрейм к формату интервала Bybit v5:
// "15m" -> "15", "1h" -> "60", "1d" -> "D".
func NormInterval(raw string) string {
	s := strings.TrimSpace(strings.ToLower(raw))
	switch s {
	case "1m", "1":
		return "1"
	case "3m", "3":
		return "3"
	case "5m", "5":
		return "5"
	case "15m", "15":
		return "15"
	case "30m", "30":
		return "30"
	case "60m", "1h", "60":
		return "60"
	case "2h", "120":
		return "120"
	case "4h", "240":
		return "240"
	case "1d", "d":
		return "D"
	case "1w", "w":
		return "W"
	default:
		return strings.ToUpper(s)
	}
}

// NormSymbol: "btc/usdt" -> "BTCUSDT".
func NormSymbol(pair string) string {
	s := strings.TrimSpace(strings.ToUpper(pair))
	s = strings.ReplaceAll(s, "/", "")
	return strings.ReplaceAll(s, "-", "")
}

// PrettySymbol: "BTCUSDT" -> "BTC/USDT" для сообщений.
func PrettySymbol(symbol string) string {
	if strings.HasSuffix(symbol, "USDT") && len(symbol) > 4 {
		return strings.TrimSuffix(symbol, "USDT") + "/USDT"
	}
	return symbol
}
