package store

import (
	"go.uber.org/fx"

	"bot_executor/internal/modules/store/service"
)

func Module() fx.Option {
	return fx.Module("store",
		fx.Provide(
			service.NewBots,    // *service.Bots
			service.NewAPIKeys, // *service.APIKeys
			service.NewJournal, // *service.Journal
		),
	)
}
