package bootstrap

import (
	"vantage-backend/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	ExternalModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
