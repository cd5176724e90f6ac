package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bot_executor/internal/models"
	"bot_executor/pkg/db"
)

const (
	listActiveBots = `
SELECT user_id, bot_id::text, pair, market, strategy, entry_signal
FROM bots
WHERE active = true
ORDER BY user_id, bot_id`

	markEntry = `
UPDATE bots SET entry_signal = $1, updated_at = now()
WHERE user_id = $2 AND bot_id = $3`
)

// Bots: таблица bots.
type Bots struct {
	tm db.TxManager
}

func NewBots(tm *db.PgTxManager) *Bots {
	return &Bots{tm: tm}
}

func (b *Bots) ListActive(ctx context.Context) (bots []models.BotConfig, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Bots.ListActive: %w", err)
		}
	}()

	err = b.tm.RunReadOnly(ctx, func(ctx context.Context, tx pgx.Tx) error {
		rows, qErr := tx.Query(ctx, listActiveBots)
		if qErr != nil {
			return qErr
		}
		bots, qErr = pgx.CollectRows(rows, scanBot)
		return qErr
	})
	return bots, err
}

func scanBot(row pgx.CollectableRow) (models.BotConfig, error) {
	var (
		b     models.BotConfig
		entry *string
	)
	if err := row.Scan(&b.UserID, &b.BotID, &b.TradingPair, &b.MarketType, &b.StrategyLabel, &entry); err != nil {
		return models.BotConfig{}, err
	}
	b.Active = true
	if entry != nil {
		b.LastEntrySide = *entry
	}
	return b, nil
}

// MarkEntry пишет аудит entry_signal после успешного открытия.
func (b *Bots) MarkEntry(ctx context.Context, userID int64, botID string, side models.OrderSide) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Bots.MarkEntry: %w", err)
		}
	}()

	return b.tm.RunMaster(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, eErr := tx.Exec(ctx, markEntry, side.EntrySide(), userID, botID)
		if eErr != nil {
			return eErr
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("bot %d/%s not found", userID, botID)
		}
		return nil
	})
}
