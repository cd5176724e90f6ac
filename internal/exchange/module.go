package exchange

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"bot_executor/internal/helper"
	"bot_executor/internal/modules/config"
)

func Module() fx.Option {
	return fx.Module("exchange",
		fx.Provide(
			func(cfg *config.Config) *Client {
				return NewClient(Options{
					BaseURL:    cfg.Bybit.BaseURL,
					RecvWindow: cfg.Bybit.RecvWindow,
					Timeout:    cfg.Bybit.Timeout,
					RatePerSec: cfg.Bybit.RatePerSec,
					Burst:      cfg.Bybit.Burst,
					Category:   cfg.Bybit.Category,
				})
			},
			// без redis свечи идут напрямую с биржи
			func(cfg *config.Config, c *Client, rdb *redis.Client) CandleSource {
				if rdb == nil {
					return c
				}
				return NewCachedCandles(c, rdb, cfg.Redis.KlineTTL)
			},
		),
	)
}

// Interval: интервал свечей из конфига в формате Bybit.
func Interval(cfg *config.Config) string {
	return helper.NormInterval(cfg.Cycle.KlineInterval)
}
