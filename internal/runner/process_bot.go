package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/opentracing/opentracing-go"

	"bot_executor/internal/models"
	"bot_executor/internal/reconciler"
	"bot_executor/internal/strategy"
	"bot_executor/pkg/logger"
	"bot_executor/pkg/tracing"
)

// processBot: ход одного бота. Любая ошибка и паника остаются внутри
// и превращаются в ActionResult.
func (r *Runner) processBot(ctx context.Context, cycleID string, bot models.BotConfig) (res models.ActionResult) {
	symbol := bot.Symbol()
	res = models.ActionResult{
		BotID:    bot.BotID,
		UserID:   bot.UserID,
		Symbol:   symbol,
		Strategy: bot.StrategyLabel,
	}

	span, ctx := tracing.StartSpan(ctx, "bot",
		opentracing.Tag{Key: "cycle.id", Value: cycleID},
		opentracing.Tag{Key: "bot.id", Value: bot.BotID},
		opentracing.Tag{Key: "symbol", Value: symbol},
	)
	defer func() {
		if p := recover(); p != nil {
			logger.Error("cycle %s bot %s: panic: %v\n%s", cycleID, bot.BotID, p, debug.Stack())
			res.Outcome = models.OutcomeFailed
			res.Detail = fmt.Sprintf("panic: %v", p)
		}
		span.SetTag("outcome", string(res.Outcome))
		span.Finish()
		logger.Info("cycle %s bot %s [%s]: %s %s", cycleID, bot.BotID, symbol, res.Outcome, res.Detail)
	}()

	if err := ctx.Err(); err != nil {
		return failed(res, fmt.Errorf("cycle deadline: %w", err))
	}

	creds, err := r.Creds.Lookup(ctx, bot.UserID, r.cfg.Exchange)
	if errors.Is(err, models.ErrCredentialsMissing) {
		return skipped(res, "no api keys")
	}
	if err != nil {
		return failed(res, err)
	}

	key := strategy.KeyFromLabel(bot.StrategyLabel)
	if !r.Evaluator.Supports(key) {
		return skipped(res, fmt.Sprintf("unknown strategy %q", bot.StrategyLabel))
	}
	res.Strategy = string(key)

	candles, err := r.Market.Candles(ctx, symbol, r.cfg.KlineInterval, r.cfg.KlineLimit)
	if err != nil {
		if !errors.Is(err, models.ErrMarketDataUnavailable) {
			err = fmt.Errorf("%w: %w", models.ErrMarketDataUnavailable, err)
		}
		return failed(res, err)
	}
	if len(candles) < r.Evaluator.MinHistory() {
		return skipped(res, fmt.Sprintf("%s: %d of %d candles", strategy.ReasonInsufficientHistory, len(candles), r.Evaluator.MinHistory()))
	}

	sig, err := r.Evaluator.Evaluate(key, candles)
	if err != nil {
		return failed(res, err)
	}

	// состояние: только с биржи, не из bots.entry_signal
	pos, err := r.Exchange.Position(ctx, creds, symbol)
	if err != nil {
		return failed(res, err)
	}

	action := reconciler.Decide(pos, sig)
	res.Side = action.Side

	order, ok := action.Order(symbol, pos, r.cfg.OrderQty)
	if !ok {
		res.Outcome = models.OutcomeHeld
		res.Detail = fmt.Sprintf("%s (%s)", action.Reason, sig.Reason)
		return res
	}

	orderID, err := r.Exchange.PlaceMarketOrder(ctx, creds, order)
	if err != nil {
		return failed(res, fmt.Errorf("%s %s %s: %w", action.Kind, order.Side, symbol, err))
	}
	res.OrderID = orderID

	switch action.Kind {
	case reconciler.Open:
		res.Outcome = models.OutcomeOpened
		res.Detail = sig.Reason
		if mErr := r.Bots.MarkEntry(ctx, bot.UserID, bot.BotID, order.Side); mErr != nil {
			logger.Warn("cycle %s bot %s: entry audit: %v", cycleID, bot.BotID, mErr)
			res.Detail += "; entry audit not saved"
		}
		price := candles[len(candles)-1].Close
		r.Notifier.Send(ctx, openedMessage(symbol, action.Side, price, bot.StrategyLabel))

	case reconciler.Close:
		pnl := pos.UnrealizedPnl
		res.Outcome = models.OutcomeClosed
		res.RealizedPnl = &pnl
		res.Detail = action.Reason
		r.Notifier.Send(ctx, closedMessage(symbol, action.Side, pnl))
	}
	return res
}

func failed(res models.ActionResult, err error) models.ActionResult {
	res.Outcome = models.OutcomeFailed
	res.Detail = err.Error()
	return res
}

func skipped(res models.ActionResult, detail string) models.ActionResult {
	res.Outcome = models.OutcomeSkipped
	res.Detail = detail
	return res
}
