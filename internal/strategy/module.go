package strategy

import (
	"go.uber.org/fx"

	"bot_executor/internal/modules/config"
)

func Module() fx.Option {
	return fx.Module("strategy",
		fx.Provide(
			func(cfg *config.Config) *Evaluator {
				return NewEvaluator(cfg.Cycle.MinHistory)
			},
		),
	)
}
