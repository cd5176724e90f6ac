package runner

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"bot_executor/internal/exchange"
	"bot_executor/internal/metrics"
	"bot_executor/internal/modules/config"
	healthsvc "bot_executor/internal/modules/health/service"
	storesvc "bot_executor/internal/modules/store/service"
	"bot_executor/internal/notify"
	"bot_executor/internal/strategy"
	"bot_executor/pkg/logger"
)

type runnerParams struct {
	fx.In

	Cfg       *config.Config
	Bots      *storesvc.Bots
	Keys      *storesvc.APIKeys
	Journal   *storesvc.Journal
	Client    *exchange.Client
	Candles   exchange.CandleSource
	Notifier  notify.Notifier
	Evaluator *strategy.Evaluator
	Metrics   *metrics.Metrics `optional:"true"`
}

func NewConfig(cfg *config.Config) (Config, error) {
	qty, err := decimal.NewFromString(cfg.Cycle.OrderQty)
	if err != nil {
		return Config{}, fmt.Errorf("runner: order qty %q: %w", cfg.Cycle.OrderQty, err)
	}
	return Config{
		Exchange:      "bybit",
		KlineInterval: exchange.Interval(cfg),
		KlineLimit:    cfg.Cycle.KlineLimit,
		OrderQty:      qty,
		Workers:       cfg.Cycle.Workers,
		CycleTimeout:  cfg.Cycle.Timeout,
	}, nil
}

func newRunner(p runnerParams) (*Runner, error) {
	rc, err := NewConfig(p.Cfg)
	if err != nil {
		return nil, err
	}
	d := Deps{
		Bots:      p.Bots,
		Creds:     p.Keys,
		Market:    p.Candles,
		Exchange:  p.Client,
		Notifier:  p.Notifier,
		Evaluator: p.Evaluator,
		Metrics:   p.Metrics,
	}
	if p.Cfg.Cycle.Journal {
		d.Journal = p.Journal
	}
	return New(rc, d), nil
}

// CoreModule: только раннер, без расписания (cmd/cycle).
func CoreModule() fx.Option {
	return fx.Module("runner-core",
		fx.Provide(
			newRunner, // *Runner
		),
	)
}

// Module: раннер + периодический запуск + POST /cycle на admin mux.
func Module() fx.Option {
	return fx.Options(
		CoreModule(),
		fx.Module("scheduler",
			fx.Provide(
				func(cfg *config.Config, r *Runner, state *healthsvc.State) *Scheduler {
					return NewScheduler(r, cfg.Cycle.Interval, state)
				},
			),
			fx.Invoke(func(mux *http.ServeMux, s *Scheduler) {
				mux.HandleFunc("/cycle", s.HandleTrigger)
			}),
			fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config, s *Scheduler) {
				ctx, cancel := context.WithCancel(context.Background())
				done := make(chan struct{})

				lc.Append(fx.Hook{
					OnStart: func(_ context.Context) error {
						logger.Info("scheduler: every %s, %d workers", cfg.Cycle.Interval, cfg.Cycle.Workers)
						go func() {
							defer close(done)
							s.Run(ctx)
						}()
						return nil
					},
					OnStop: func(stopCtx context.Context) error {
						cancel()
						select {
						case <-done:
						case <-stopCtx.Done():
						}
						return nil
					},
				})
			}),
		),
	)
}
