package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bot_executor/internal/models"
	"bot_executor/pkg/db"
)

const insertAction = `
INSERT INTO bot_actions
	(id, cycle_id, user_id, bot_id, symbol, strategy, outcome, side, detail, realized_pnl, order_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// Journal: аудит-журнал отчётов циклов (bot_actions).
type Journal struct {
	tm  db.TxManager
	now func() time.Time
}

func NewJournal(tm *db.PgTxManager) *Journal {
	return &Journal{tm: tm, now: time.Now}
}

func (j *Journal) Append(ctx context.Context, cycleID string, results []models.ActionResult) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Journal.Append: %w", err)
		}
	}()
	if len(results) == 0 {
		return nil
	}

	batch := actionsBatch(cycleID, results, j.now().UTC())
	return j.tm.RunMaster(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return tx.SendBatch(ctx, batch).Close()
	})
}

func actionsBatch(cycleID string, results []models.ActionResult, at time.Time) *pgx.Batch {
	b := &pgx.Batch{}
	for _, r := range results {
		b.Queue(insertAction,
			uuid.New(),
			cycleID,
			r.UserID,
			r.BotID,
			r.Symbol,
			r.Strategy,
			string(r.Outcome),
			string(r.Side),
			r.Detail,
			r.RealizedPnl,
			r.OrderID,
			at,
		)
	}
	return b
}
