package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"vantage-backend/internal/domain/user"
	"vantage-backend/internal/handler/api"
	"vantage-backend/internal/handler/middleware"
	"vantage-backend/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	quoteHandler *api.QuoteHandler,
	responseHandler *api.ResponseHandler,
	analysisHandler *api.AnalysisHandler,
	notificationHandler *api.NotificationHandler,
	fileHandler *api.FileHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, quoteHandler, responseHandler, analysisHandler, notificationHandler, fileHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	quoteHandler *api.QuoteHandler,
	responseHandler *api.ResponseHandler,
	analysisHandler *api.AnalysisHandler,
	notificationHandler *api.NotificationHandler,
	fileHandler *api.FileHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/uploads/quotes/:filename", fileHandler.ServeQuoteFile)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	quotes := engine.Group("/quotes")
	quotes.Use(authMiddleware.RequireAuth())
	{
		addRoutes(quotes, []route{
			{Method: http.MethodPost, Path: "/request", Handler: quoteHandler.CreateRequest},
			{Method: http.MethodGet, Path: "/my-requests", Handler: quoteHandler.ListMyRequests},
			{Method: http.MethodGet, Path: "/received", Handler: quoteHandler.ListReceived},
			{Method: http.MethodGet, Path: "/:id", Handler: quoteHandler.GetDetails},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: quoteHandler.CancelRequest},
			{Method: http.MethodPost, Path: "/:id/attachments", Handler: quoteHandler.AttachFile},
			{Method: http.MethodGet, Path: "/:id/attachments", Handler: quoteHandler.ListAttachments},
		})
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/quotes/:id/responses", Handler: responseHandler.SubmitResponse},
			{Method: http.MethodGet, Path: "/quotes/:id/responses", Handler: responseHandler.ListResponses},
			{Method: http.MethodGet, Path: "/quotes/:id/full-analysis", Handler: analysisHandler.GetFullAnalysis},
			{Method: http.MethodPost, Path: "/ia/analyze-quotes", Handler: analysisHandler.AnalyzeDocuments},
			{Method: http.MethodPost, Path: "/ia/filter-quotes", Handler: analysisHandler.FilterQuotes},
			{
				Method:  http.MethodPost,
				Path:    "/ia/search-catalog",
				Handler: analysisHandler.SearchCatalog,
				Mw:      []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleClient)},
			},
		})
	}

	notifications := engine.Group("/provider/notifications")
	notifications.Use(authMiddleware.RequireAuth())
	{
		addRoutes(notifications, []route{
			{Method: http.MethodGet, Path: "", Handler: notificationHandler.Inbox},
			{Method: http.MethodPut, Path: "/mark-all-read", Handler: notificationHandler.MarkAllRead},
			{Method: http.MethodPut, Path: "/:id/read", Handler: notificationHandler.MarkRead},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
