package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"bot_executor/internal/models"
)

// Metrics: метрики циклов исполнения ботов.
type Metrics struct {
	CyclesTotal   *prometheus.CounterVec // labels: result=ok|fatal
	CycleDuration prometheus.Histogram
	BotsPerCycle  prometheus.Gauge
	ActionsTotal  *prometheus.CounterVec // labels: outcome
	LastCycleUnix prometheus.Gauge
}

// NewMetrics регистрирует метрики в reg. Отдельный реестр позволяет
// создавать Metrics в тестах сколько угодно раз.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CyclesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bot_executor_cycles_total",
			Help: "Total executed cycles by result",
		}, []string{"result"}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bot_executor_cycle_duration_seconds",
			Help:    "Cycle wall time",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 240},
		}),
		BotsPerCycle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bot_executor_cycle_bots",
			Help: "Active bots processed in the last cycle",
		}),
		ActionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bot_executor_actions_total",
			Help: "Per-bot action results by outcome",
		}, []string{"outcome"}),
		LastCycleUnix: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bot_executor_last_cycle_timestamp_seconds",
			Help: "Unix time of the last finished cycle",
		}),
	}

	reg.MustRegister(
		m.CyclesTotal,
		m.CycleDuration,
		m.BotsPerCycle,
		m.ActionsTotal,
		m.LastCycleUnix,
	)
	return m
}

// ObserveCycle. Nil-safe: раннер без метрик просто ничего не пишет.
func (m *Metrics) ObserveCycle(started time.Time, results []models.ActionResult, err error) {
	if m == nil {
		return
	}

	m.CycleDuration.Observe(time.Since(started).Seconds())
	m.LastCycleUnix.Set(float64(time.Now().Unix()))
	if err != nil {
		m.CyclesTotal.WithLabelValues("fatal").Inc()
		return
	}
	m.CyclesTotal.WithLabelValues("ok").Inc()
	m.BotsPerCycle.Set(float64(len(results)))
	for _, r := range results {
		m.ActionsTotal.WithLabelValues(string(r.Outcome)).Inc()
	}
}

func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(
			prometheus.NewRegistry,
			func(reg *prometheus.Registry) prometheus.Registerer { return reg },
			func(reg *prometheus.Registry) prometheus.Gatherer { return reg },
			NewMetrics,
		),
	)
}
