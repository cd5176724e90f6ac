// cycle: один проход по всем активным ботам (cron, ручной запуск).
// Печатает отчёт в stdout, код выхода 1 если список ботов недоступен.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"bot_executor/internal/exchange"
	"bot_executor/internal/models"
	"bot_executor/internal/modules/config"
	"bot_executor/internal/modules/postgres"
	"bot_executor/internal/modules/redis"
	"bot_executor/internal/modules/store"
	"bot_executor/internal/modules/tracing"
	"bot_executor/internal/notify"
	"bot_executor/internal/runner"
	"bot_executor/internal/strategy"
	"bot_executor/pkg/logger"
)

const serviceName = "bot_executor_cycle"

type report struct {
	Success bool                   `json:"success"`
	CycleAt time.Time              `json:"cycleAt"`
	Error   string                 `json:"error,omitempty"`
	Summary map[models.Outcome]int `json:"summary"`
	Actions []models.ActionResult  `json:"actions"`
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := logger.Init(os.Getenv("LOG_LEVEL"), serviceName); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logger.Sync()

	ctx := context.Background()

	var r *runner.Runner
	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.L()}
		}),
		fx.Provide(
			func() context.Context {
				return ctx
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
		runner.CoreModule(),
		fx.Populate(&r),
	)
	if err := app.Start(ctx); err != nil {
		logger.Error("start: %v", err)
		return 1
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Stop(stopCtx); err != nil {
			logger.Error("stop: %v", err)
		}
	}()

	rep := report{CycleAt: time.Now().UTC(), Success: true, Actions: []models.ActionResult{}}
	results, err := r.RunCycle(ctx)
	if err != nil {
		rep.Success = false
		rep.Error = err.Error()
	} else if results != nil {
		rep.Actions = results
	}
	rep.Summary = models.Summary(results)

	body, mErr := sonic.ConfigStd.MarshalIndent(rep, "", "  ")
	if mErr != nil {
		logger.Error("encode report: %v", mErr)
		return 1
	}
	fmt.Println(string(body))

	if err != nil {
		return 1
	}
	return 0
}
