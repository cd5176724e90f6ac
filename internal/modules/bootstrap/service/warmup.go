package service

import (
	"context"
	"fmt"
	"sync"

	"bot_executor/internal/models"
	"bot_executor/pkg/logger"
)

type BotLister interface {
	ListActive(ctx context.Context) ([]models.BotConfig, error)
}

type CandleSource interface {
	Candles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error)
}

// Warmuper прогревает кэш свечей по символам активных ботов, чтобы первый
// цикл после старта не упирался в rate limit биржи.
type Warmuper struct {
	bots     BotLister
	candles  CandleSource
	interval string
	limit    int

	// ограничитель параллелизма, чтобы не словить rate limit
	sem chan struct{}
}

func NewWarmuper(bots BotLister, candles CandleSource, interval string, limit, parallel int) *Warmuper {
	if parallel <= 0 {
		parallel = 1
	}
	return &Warmuper{
		bots:     bots,
		candles:  candles,
		interval: interval,
		limit:    limit,
		sem:      make(chan struct{}, parallel),
	}
}

// Warmup возвращает число прогретых символов и первую ошибку.
// Ошибка по одному символу не останавливает остальные.
func (w *Warmuper) Warmup(ctx context.Context) (int, error) {
	bots, err := w.bots.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("warmup: list bots: %w", err)
	}
	symbols := uniqueSymbols(bots)
	if len(symbols) == 0 {
		return 0, nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		warmed   int
	)
	for _, sym := range symbols {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.sem <- struct{}{}
			defer func() { <-w.sem }()

			if _, err := w.candles.Candles(ctx, sym, w.interval, w.limit); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("warmup %s: %w", sym, err)
				}
				mu.Unlock()
				return
			}
			mu.Lock()
			warmed++
			mu.Unlock()
		}()
	}
	wg.Wait()

	logger.Debug("warmup: %d of %d symbols", warmed, len(symbols))
	return warmed, firstErr
}

func uniqueSymbols(bots []models.BotConfig) []string {
	seen := make(map[string]struct{}, len(bots))
	out := make([]string, 0, len(bots))
	for _, b := range bots {
		s := b.Symbol()
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
