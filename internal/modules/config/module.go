package config

import (
	"go.uber.org/fx"

	"bot_executor/pkg/logger"
)

func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			NewConfig,
		),
		fx.Invoke(ApplyLogLevel),
	)
}

// ApplyLogLevel переключает логгер на log.level из конфига.
// До загрузки конфига уровень берётся из LOG_LEVEL.
func ApplyLogLevel(cfg *Config) error {
	return logger.SetLevel(cfg.Log.Level)
}
