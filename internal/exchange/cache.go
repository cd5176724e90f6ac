package exchange

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"bot_executor/internal/models"
	"bot_executor/pkg/logger"
)

// KV: часть *redis.Client, нужная кэшу.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedCandles кэширует свечи в redis на короткий TTL, чтобы боты на одной паре
// в пределах цикла делали один запрос к бирже. Ошибки redis не ломают выдачу.
type CachedCandles struct {
	src CandleSource
	rdb KV
	ttl time.Duration
}

func NewCachedCandles(src CandleSource, rdb KV, ttl time.Duration) *CachedCandles {
	return &CachedCandles{src: src, rdb: rdb, ttl: ttl}
}

func cacheKey(symbol, interval string, limit int) string {
	return fmt.Sprintf("klines:%s:%s:%d", symbol, interval, limit)
}

func (c *CachedCandles) Candles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	key := cacheKey(symbol, interval, limit)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var batch []models.Candle
		if uErr := sonic.Unmarshal(raw, &batch); uErr == nil && len(batch) > 0 {
			return batch, nil
		}
		logger.Warn("[%s] kline cache %s invalid", symbol, key)
	case !errors.Is(err, redis.Nil):
		logger.Warn("[%s] kline cache get: %v", symbol, err)
	}

	candles, err := c.src.Candles(ctx, symbol, interval, limit)
	if err != nil {
		return nil, err
	}

	payload, err := sonic.Marshal(candles)
	if err == nil {
		if sErr := c.rdb.Set(ctx, key, payload, c.ttl).Err(); sErr != nil {
			logger.Warn("[%s] kline cache set: %v", symbol, sErr)
		}
	}
	return candles, nil
}
