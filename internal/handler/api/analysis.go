package api

import (
	"errors"
	"net/http"

	reqdto "vantage-backend/internal/handler/dto/request"
	"vantage-backend/internal/handler/middleware"
	"vantage-backend/internal/usecase/analysis"
	"vantage-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AnalysisHandler struct {
	engine *analysis.Engine
}

func NewAnalysisHandler(engine *analysis.Engine) *AnalysisHandler {
	return &AnalysisHandler{engine: engine}
}

// @Summary Full comparative analysis
// @Description Comparative report over all responses of a quote request; always succeeds once authorized
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote request ID"
// @Success 200 {object} analysis.FullAnalysis
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/quotes/{id}/full-analysis [get]
func (h *AnalysisHandler) GetFullAnalysis(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quote request ID"})
		return
	}

	report, err := h.engine.GetFullAnalysis(c.Request.Context(), quoteID, userID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrQuoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote request not found"})
		case errors.Is(err, queries.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Batch document analysis
// @Description Extract structured data from a batch of response documents; failures are isolated per document
// @Tags analysis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AnalyzeDocumentsRequest true "Documents to analyze"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /api/ia/analyze-quotes [post]
func (h *AnalysisHandler) AnalyzeDocuments(c *gin.Context) {
	var req reqdto.AnalyzeDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No documents provided"})
		return
	}

	results := h.engine.AnalyzeDocuments(c.Request.Context(), req.Documents)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// @Summary Filter quotes with natural language
// @Description Ask the model which of the supplied quotes match a natural-language condition
// @Tags analysis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.FilterQuotesRequest true "Filter query and quote data"
// @Success 200 {object} analysis.FilterResult
// @Failure 400 {object} map[string]string
// @Router /api/ia/filter-quotes [post]
func (h *AnalysisHandler) FilterQuotes(c *gin.Context) {
	var req reqdto.FilterQuotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query and quote data required"})
		return
	}

	result, err := h.engine.FilterQuotes(c.Request.Context(), req.Query, req.QuotesData)
	if err != nil {
		if errors.Is(err, analysis.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query cannot be empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Catalog similarity search
// @Description Word-overlap similarity search over active catalog items, featured first
// @Tags analysis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SearchCatalogRequest true "Search query"
// @Success 200 {object} analysis.SearchResult
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/ia/search-catalog [post]
func (h *AnalysisHandler) SearchCatalog(c *gin.Context) {
	var req reqdto.SearchCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query required"})
		return
	}

	result, err := h.engine.SearchCatalog(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, analysis.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query cannot be empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, result)
}
