package components

import (
	"vantage-backend/internal/infra/db"
	"vantage-backend/internal/infra/readstore"
	"vantage-backend/internal/infra/repository"
	"vantage-backend/internal/usecase/analysis"
	"vantage-backend/internal/usecase/commands"
	"vantage-backend/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,

		// Write-side repositories
		fx.Annotate(
			repository.NewQuoteRepository,
			fx.As(new(commands.QuoteRepository)),
		),
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(commands.NotificationRepository)),
		),
		fx.Annotate(
			repository.NewAnalysisRepository,
			fx.As(new(analysis.AnalysisStore)),
		),

		// Read-side stores
		fx.Annotate(
			readstore.NewQuoteReadStore,
			fx.As(new(queries.QuoteReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(commands.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewProviderReadStore,
			fx.As(new(queries.ProviderReadStore)),
		),
		fx.Annotate(
			readstore.NewCatalogReadStore,
			fx.As(new(commands.CatalogReadStore)),
			fx.As(new(analysis.CatalogSearcher)),
		),
		fx.Annotate(
			readstore.NewBranchReadStore,
			fx.As(new(commands.BranchReadStore)),
		),
		fx.Annotate(
			readstore.NewNotificationReadStore,
			fx.As(new(queries.NotificationReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
