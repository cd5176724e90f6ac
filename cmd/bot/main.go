package main

import (
	"context"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"bot_executor/internal/exchange"
	"bot_executor/internal/metrics"
	"bot_executor/internal/modules/bootstrap"
	"bot_executor/internal/modules/config"
	"bot_executor/internal/modules/health"
	"bot_executor/internal/modules/postgres"
	"bot_executor/internal/modules/redis"
	"bot_executor/internal/modules/store"
	"bot_executor/internal/modules/tracing"
	"bot_executor/internal/notify"
	"bot_executor/internal/runner"
	"bot_executor/internal/strategy"
	"bot_executor/pkg/logger"
)

const serviceName = "bot_executor"

func main() {
	if err := logger.Init(os.Getenv("LOG_LEVEL"), serviceName); err != nil {
		panic(err)
	}
	defer logger.Sync()

	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.L()}
		}),
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		tracing.Module(serviceName),
		postgres.Module(),
		redis.Module(),
		store.Module(),
		exchange.Module(),
		notify.Module(),
		strategy.Module(),
		metrics.Module(),
		health.Module(),
		bootstrap.Module(),
		runner.Module(),
	)
	app.Run()
}
