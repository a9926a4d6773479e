package api

import (
	"errors"
	"net/http"

	reqdto "vantage-backend/internal/handler/dto/request"
	resdto "vantage-backend/internal/handler/dto/response"
	"vantage-backend/internal/handler/middleware"
	"vantage-backend/internal/usecase/commands"
	"vantage-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ResponseHandler struct {
	commands commands.ResponseCommands
	queries  queries.QuoteQueries
}

func NewResponseHandler(cmds commands.ResponseCommands, qrys queries.QuoteQueries) *ResponseHandler {
	return &ResponseHandler{commands: cmds, queries: qrys}
}

// @Summary Submit quote response
// @Description Provider submits a priced response document for a quote request
// @Tags responses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote request ID"
// @Param file formData file true "Response document (PDF)"
// @Param total_price formData string false "Total price"
// @Param currency formData string false "Currency code"
// @Param certifications_count formData string false "Number of certifications"
// @Success 201 {object} resdto.QuoteResponseCreated
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/quotes/{id}/responses [post]
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
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

	var form reqdto.SubmitQuoteResponseForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	f, err := form.File.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer f.Close()

	params := form.ToParams(commands.UploadedFile{
		Filename: form.File.Filename,
		Size:     form.File.Size,
		Content:  f,
	})

	created, err := h.commands.SubmitResponse(c.Request.Context(), quoteID, userID, params)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNotProvider):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only providers can submit responses"})
		case errors.Is(err, commands.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		case errors.Is(err, commands.ErrProviderProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider profile not found"})
		case errors.Is(err, commands.ErrQuoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote request not found"})
		case errors.Is(err, commands.ErrNotAddressedProvider):
			c.JSON(http.StatusForbidden, gin.H{"error": "Quote request is addressed to another provider"})
		case errors.Is(err, commands.ErrQuoteAlreadyCancelled):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quote request is cancelled"})
		case errors.Is(err, commands.ErrEmptyFile):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid response data"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromQuoteResponse(created))
}

// @Summary List quote responses
// @Description List the responses submitted for a quote request
// @Tags responses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote request ID"
// @Success 200 {array} resdto.QuoteResponseItem
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/quotes/{id}/responses [get]
func (h *ResponseHandler) ListResponses(c *gin.Context) {
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

	views, err := h.queries.ListResponses(c.Request.Context(), quoteID, userID)
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

	c.JSON(http.StatusOK, resdto.FromResponseViews(views))
}
