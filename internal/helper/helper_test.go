package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormInterval(t *testing.T) {
	cases := map[string]string{
		"15m": "15", "15": "15", " 1H ": "60", "60m": "60", "4h": "240", "1d": "D", "5m": "5",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormInterval(in), in)
	}
}

func TestNormSymbol(t *testing.T) {
	assert.Equal(t, "BTCUSDT", NormSymbol("BTC/USDT"))
	assert.Equal(t, "ETHUSDT", NormSymbol(" eth-usdt "))
	assert.Equal(t, "SOLUSDT", NormSymbol("SOLUSDT"))
}

func TestPrettySymbol(t *testing.T) {
	assert.Equal(t, "BTC/USDT", PrettySymbol("BTCUSDT"))
	assert.Equal(t, "USDT", PrettySymbol("USDT"))
	assert.Equal(t, "BTCUSDC", PrettySymbol("BTCUSDC"))
}
