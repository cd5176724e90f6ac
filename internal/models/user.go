package models

import "bot_executor/internal/helper"

// BotConfig: строка таблицы bots. Ядро читает её только на время одного цикла.
type BotConfig struct {
	UserID        int64  `json:"userId"`
	BotID         string `json:"botId"`
	TradingPair   string `json:"pair"`   // "BTC/USDT"
	MarketType    string `json:"market"` // futures | spot
	StrategyLabel string `json:"strategy"`
	Active        bool   `json:"active"`
	// LastEntrySide пишется только как аудит после успешного открытия,
	// решение всегда принимается по живой позиции с биржи.
	LastEntrySide string `json:"entrySignal"`
}

// Symbol: тикер в формате биржи.
func (b BotConfig) Symbol() string {
	return helper.NormSymbol(b.TradingPair)
}

// Credentials: API-ключи пользователя для биржи.
type Credentials struct {
	APIKey    string
	APISecret string
}

func (c Credentials) Empty() bool {
	return c.APIKey == "" || c.APISecret == ""
}
