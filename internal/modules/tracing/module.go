package tracing

import (
	"go.uber.org/fx"

	"bot_executor/internal/modules/config"
	"bot_executor/pkg/logger"
	"bot_executor/pkg/tracing"
)

// Module поднимает jaeger-трейсер, если tracing.enabled. Иначе остаётся noop.
func Module(service string) fx.Option {
	return fx.Module("tracing",
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) error {
			if !cfg.Tracing.Enabled {
				return nil
			}

			tracing.SetServiceName(service)
			_, closer, err := tracing.InitTracer(tracing.Config{
				Host: cfg.Tracing.Host,
				Port: cfg.Tracing.Port,
			})
			if err != nil {
				return err
			}
			logger.Info("tracing: jaeger agent %s:%d", cfg.Tracing.Host, cfg.Tracing.Port)
			lc.Append(fx.StopHook(closer))
			return nil
		}),
	)
}
