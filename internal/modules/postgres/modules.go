package postgres

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"bot_executor/internal/modules/config"
	"bot_executor/pkg/db"
)

func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			func(lc fx.Lifecycle, ctx context.Context, cfg *config.Config) (*db.PgTxManager, error) {
				poolMaster, err := db.NewPool(ctx, db.PoolConfig{
					DSN:      cfg.DB,
					MaxConns: int32(cfg.Cycle.Workers) + 2,
				})
				if err != nil {
					return nil, fmt.Errorf("failed to create poolMaster: %w", err)
				}

				if err = poolMaster.Ping(ctx); err != nil {
					poolMaster.Close()
					return nil, fmt.Errorf("postgres ping: %w", err)
				}

				tm := db.NewPgTxManager(poolMaster)
				lc.Append(fx.StopHook(tm.Close))
				return tm, nil
			},
		),
	)
}
