package bootstrap

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"bot_executor/internal/exchange"
	bootstrap "bot_executor/internal/modules/bootstrap/service"
	"bot_executor/internal/modules/config"
	storesvc "bot_executor/internal/modules/store/service"
	"bot_executor/pkg/logger"
)

// Module прогревает кэш свечей при старте. Без redis прогревать нечего.
func Module() fx.Option {
	return fx.Module("bootstrap",
		fx.Provide(
			func(cfg *config.Config, bots *storesvc.Bots, candles exchange.CandleSource) *bootstrap.Warmuper {
				return bootstrap.NewWarmuper(bots, candles, exchange.Interval(cfg), cfg.Cycle.KlineLimit, cfg.Cycle.Workers)
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, rdb *goredis.Client, wu *bootstrap.Warmuper) {
			if rdb == nil {
				return
			}
			ctx, cancel := context.WithCancel(context.Background())
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						n, err := wu.Warmup(ctx)
						if err != nil {
							logger.Warn("[BOOT] warmup error: %v", err)
						}
						logger.Info("[BOOT] warmup done: %d symbols", n)
					}()
					return nil
				},
				OnStop: func(context.Context) error {
					cancel()
					return nil
				},
			})
		}),
	)
}
