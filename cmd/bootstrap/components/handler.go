package components

import (
	"vantage-backend/internal/handler"
	"vantage-backend/internal/handler/api"
	"vantage-backend/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewQuoteHandler,
		api.NewResponseHandler,
		api.NewAnalysisHandler,
		api.NewNotificationHandler,
		api.NewFileHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
