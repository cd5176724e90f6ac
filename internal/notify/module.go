package notify

import (
	"context"

	"go.uber.org/fx"

	"bot_executor/internal/modules/config"
	"bot_executor/pkg/logger"
)

func Module() fx.Option {
	return fx.Module("notify",
		fx.Provide(
			// Notifier: если TELEGRAM_* нет или бот не поднялся, пишем в лог
			func(lc fx.Lifecycle, cfg *config.Config) Notifier {
				if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0 {
					return NewLog()
				}
				tg, err := NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, cfg.Telegram.Timeout, cfg.Telegram.Queue)
				if err != nil {
					logger.Error("telegram init: %v, falling back to log notifier", err)
					return NewLog()
				}
				lc.Append(fx.Hook{
					OnStop: func(ctx context.Context) error {
						return tg.Close(ctx)
					},
				})
				return tg
			},
		),
	)
}
