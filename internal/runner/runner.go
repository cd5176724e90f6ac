package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"bot_executor/internal/metrics"
	"bot_executor/internal/models"
	"bot_executor/internal/strategy"
	"bot_executor/pkg/logger"
	"bot_executor/pkg/tracing"
)

type BotStore interface {
	ListActive(ctx context.Context) ([]models.BotConfig, error)
	MarkEntry(ctx context.Context, userID int64, botID string, side models.OrderSide) error
}

type CredentialStore interface {
	Lookup(ctx context.Context, userID int64, exchange string) (models.Credentials, error)
}

type MarketData interface {
	Candles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error)
}

type Exchange interface {
	Position(ctx context.Context, creds models.Credentials, symbol string) (models.LivePosition, error)
	PlaceMarketOrder(ctx context.Context, creds models.Credentials, o models.Order) (string, error)
}

type Notifier interface {
	Send(ctx context.Context, msg string)
}

type Journal interface {
	Append(ctx context.Context, cycleID string, results []models.ActionResult) error
}

type Config struct {
	Exchange      string // exchange в user_api_keys
	KlineInterval string // формат Bybit: "15"
	KlineLimit    int
	OrderQty      decimal.Decimal
	Workers       int
	CycleTimeout  time.Duration
}

// Deps: коллабораторы раннера. Journal, Notifier и Metrics опциональны.
type Deps struct {
	Bots      BotStore
	Creds     CredentialStore
	Market    MarketData
	Exchange  Exchange
	Notifier  Notifier
	Journal   Journal
	Evaluator *strategy.Evaluator
	Metrics   *metrics.Metrics
}

// Runner исполняет цикл: для каждого активного бота
// свечи -> индикаторы -> сигнал -> сверка с позицией -> ордер -> уведомление.
type Runner struct {
	cfg Config
	Deps
}

type nopNotifier struct{}

func (nopNotifier) Send(context.Context, string) {}

func New(cfg Config, d Deps) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Exchange == "" {
		cfg.Exchange = "bybit"
	}
	if d.Notifier == nil {
		d.Notifier = nopNotifier{}
	}
	if d.Evaluator == nil {
		d.Evaluator = strategy.NewEvaluator(strategy.DefaultMinHistory)
	}
	return &Runner{cfg: cfg, Deps: d}
}

// RunCycle: одна ограниченная по времени итерация по всем активным ботам.
// Ошибка возвращается только если не удалось получить список ботов; сбои
// отдельных ботов попадают в отчёт как Failed. Порядок отчёта совпадает с
// порядком ботов. Ретраев внутри цикла нет.
func (r *Runner) RunCycle(ctx context.Context) (results []models.ActionResult, err error) {
	started := time.Now()
	cycleID := uuid.NewString()

	span, ctx := tracing.StartSpan(ctx, "cycle", opentracing.Tag{Key: "cycle.id", Value: cycleID})
	defer func() {
		tracing.Finish(span, err)
		r.Metrics.ObserveCycle(started, results, err)
	}()

	if r.cfg.CycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.CycleTimeout)
		defer cancel()
	}

	bots, err := r.Bots.ListActive(ctx)
	if err != nil {
		logger.Error("cycle %s: list active bots: %v", cycleID, err)
		return nil, fmt.Errorf("%w: %w", models.ErrBotsUnavailable, err)
	}

	results = make([]models.ActionResult, len(bots))

	var g errgroup.Group
	g.SetLimit(r.cfg.Workers)
	for i, bot := range bots {
		g.Go(func() error {
			results[i] = r.processBot(ctx, cycleID, bot)
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("cycle %s: %d bots in %s, %v", cycleID, len(bots), time.Since(started).Round(time.Millisecond), models.Summary(results))

	if r.Journal != nil {
		// отчёт пишем даже если дедлайн цикла уже истёк
		jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if jErr := r.Journal.Append(jctx, cycleID, results); jErr != nil {
			logger.Error("cycle %s: journal: %v", cycleID, jErr)
		}
	}

	return results, nil
}
