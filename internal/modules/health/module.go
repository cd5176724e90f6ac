package health

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"bot_executor/internal/models"
	"bot_executor/internal/modules/config"
	"bot_executor/internal/modules/health/service"
	"bot_executor/pkg/logger"
)

type Config struct {
	Addr string // например ":8080"
	// StaleAfter: если циклов не было дольше, /readyz отвечает 503. 0, не проверять.
	StaleAfter time.Duration
}

func NewConfig(cfg *config.Config) Config {
	return Config{
		Addr:       cfg.AdminAddr(),
		StaleAfter: 3 * cfg.Cycle.Interval,
	}
}

type healthResponse struct {
	Ready         bool                   `json:"ready"`
	Stale         bool                   `json:"stale"`
	LastCycleOk   bool                   `json:"lastCycleOk"`
	LastCycleUnix int64                  `json:"lastCycleUnix"`
	UptimeSec     int64                  `json:"uptimeSec"`
	LastSummary   map[models.Outcome]int `json:"lastSummary"`
}

type handlers struct {
	cfg   Config
	state *service.State
}

func (h handlers) stale() bool {
	if h.cfg.StaleAfter <= 0 {
		return false
	}
	last := h.state.LastCycle()
	return !last.IsZero() && time.Since(last) > h.cfg.StaleAfter
}

func (h handlers) livez(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readyz: был хотя бы один цикл и расписание не встало
func (h handlers) readyz(w http.ResponseWriter, _ *http.Request) {
	switch {
	case !h.state.Ready():
		http.Error(w, "not ready", http.StatusServiceUnavailable)
	case h.stale():
		http.Error(w, "cycles are stale", http.StatusServiceUnavailable)
	default:
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}
}

func (h handlers) healthz(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Ready:       h.state.Ready(),
		Stale:       h.stale(),
		LastCycleOk: h.state.LastCycleOK(),
		UptimeSec:   int64(h.state.Uptime().Seconds()),
		LastSummary: h.state.LastSummary(),
	}
	if t := h.state.LastCycle(); !t.IsZero() {
		resp.LastCycleUnix = t.Unix()
	}

	body, err := sonic.Marshal(resp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// NewMux: admin mux. Раннер добавляет сюда /cycle.
func NewMux(cfg Config, state *service.State, gatherer prometheus.Gatherer) *http.ServeMux {
	h := handlers{cfg: cfg, state: state}

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", h.livez)
	mux.HandleFunc("/readyz", h.readyz)
	mux.HandleFunc("/healthz", h.healthz)
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

func RunHTTP(lc fx.Lifecycle, cfg Config, mux *http.ServeMux) {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return err
			}
			logger.Info("admin http listening on %s", ln.Addr())
			go func() {
				if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
					logger.Error("admin http: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func Module() fx.Option {
	return fx.Module("health",
		fx.Provide(
			service.NewState,
			NewConfig,
			NewMux,
		),
		fx.Invoke(RunHTTP),
	)
}
