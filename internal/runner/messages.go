package runner

import (
	"fmt"
	"html"
	"strconv"

	"bot_executor/internal/helper"
	"bot_executor/internal/models"
)

func sideEmoji(side models.PositionSide) string {
	if side == models.PositionShort {
		return "🔴"
	}
	return "🟢"
}

func openedMessage(symbol string, side models.PositionSide, price float64, strategyLabel string) string {
	return fmt.Sprintf(
		"%s <b>Открыта позиция</b> %s\n"+
			"Направление: <b>%s</b>\n"+
			"Цена: %s\n"+
			"Стратегия: %s",
		sideEmoji(side),
		helper.PrettySymbol(symbol),
		side,
		strconv.FormatFloat(price, 'f', -1, 64),
		html.EscapeString(strategyLabel),
	)
}

func closedMessage(symbol string, side models.PositionSide, pnl float64) string {
	return fmt.Sprintf(
		"🔴 <b>Закрыта позиция</b> %s %s\n"+
			"PnL: %.2f USDT\n"+
			"Причина: обратный сигнал",
		helper.PrettySymbol(symbol),
		side,
		pnl,
	)
}
