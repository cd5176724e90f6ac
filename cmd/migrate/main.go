// migrate применяет migrations/*.sql по порядку имён, каждую в своей транзакции.
// Применённые версии хранятся в schema_migrations.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"bot_executor/pkg/db"
)

const createVersionsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type summary struct {
	DSNHost string   `yaml:"host"`
	Dir     string   `yaml:"dir"`
	Applied []string `yaml:"applied"`
	Skipped []string `yaml:"skipped"`
}

func loadConfig() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName(".migrate")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetDefault("dir", "migrations")
	v.SetDefault("timeout", "1m")
	if err := v.BindEnv("dsn", "DATABASE_DSN"); err != nil {
		return nil, errors.Wrap(err, "bind env")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read .migrate.yaml")
		}
	}
	if v.GetString("dsn") == "" {
		return nil, errors.New("dsn is empty: set it in .migrate.yaml or DATABASE_DSN")
	}
	return v, nil
}

func migrationFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, errors.Wrap(err, "glob migrations")
	}
	sort.Strings(files)
	return files, nil
}

func apply(ctx context.Context, tm *db.PgTxManager, file string) (bool, error) {
	version := strings.TrimSuffix(filepath.Base(file), ".sql")
	body, err := os.ReadFile(file)
	if err != nil {
		return false, errors.Wrapf(err, "read %s", file)
	}

	applied := false
	err = tm.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctxTx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
		).Scan(&exists); err != nil {
			return errors.Wrap(err, "check version")
		}
		if exists {
			return nil
		}
		if _, err := tx.Exec(ctxTx, string(body)); err != nil {
			return errors.Wrapf(err, "exec %s", version)
		}
		if _, err := tx.Exec(ctxTx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return errors.Wrap(err, "save version")
		}
		applied = true
		return nil
	})
	return applied, err
}

func main() {
	v, err := loadConfig()
	if err != nil {
		panic(fmt.Errorf("fatal error config: %w", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), v.GetDuration("timeout"))
	defer cancel()

	pool, err := db.NewPool(ctx, db.PoolConfig{DSN: v.GetString("dsn"), MaxConns: 2})
	if err != nil {
		panic(errors.Wrap(err, "connect"))
	}
	tm := db.NewPgTxManager(pool)
	defer tm.Close()

	if _, err = tm.Conn().Exec(ctx, createVersionsTable); err != nil {
		panic(errors.Wrap(err, "create schema_migrations"))
	}

	files, err := migrationFiles(v.GetString("dir"))
	if err != nil {
		panic(err)
	}

	res := summary{DSNHost: pool.Config().ConnConfig.Host, Dir: v.GetString("dir")}
	for _, file := range files {
		started := time.Now()
		applied, aErr := apply(ctx, tm, file)
		if aErr != nil {
			panic(fmt.Errorf("migration %s: %w", file, aErr))
		}
		if applied {
			res.Applied = append(res.Applied, filepath.Base(file))
			fmt.Fprintf(os.Stderr, "%s applied in %s\n", file, time.Since(started).Round(time.Millisecond))
		} else {
			res.Skipped = append(res.Skipped, filepath.Base(file))
		}
	}

	out, err := yaml.Marshal(res)
	if err != nil {
		panic(errors.Wrap(err, "marshal summary"))
	}
	fmt.Print(string(out))
}
