package components

import (
	"vantage-backend/internal/pkg/clock"
	"vantage-backend/internal/usecase/analysis"
	"vantage-backend/internal/usecase/commands"
	"vantage-backend/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,

		commands.NewQuoteCommands,
		commands.NewResponseCommands,
		commands.NewNotificationCommands,
		func(n commands.NotificationCommands) commands.QuoteRequestCreatedEmitter { return n },

		queries.NewQuoteQueries,
		queries.NewNotificationQueries,

		analysis.NewEngine,
	),
)
