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

type QuoteHandler struct {
	commands commands.QuoteCommands
	queries  queries.QuoteQueries
}

func NewQuoteHandler(cmds commands.QuoteCommands, qrys queries.QuoteQueries) *QuoteHandler {
	return &QuoteHandler{commands: cmds, queries: qrys}
}

// @Summary Create quote request
// @Description Create a quote request addressed to one provider for one catalog item
// @Tags quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateQuoteRequest true "Quote request"
// @Success 201 {object} resdto.QuoteRequestResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /quotes/request [post]
func (h *QuoteHandler) CreateRequest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	created, err := h.commands.CreateRequest(c.Request.Context(), userID, req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNotClient):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only clients can create quote requests"})
		case errors.Is(err, commands.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		case errors.Is(err, commands.ErrProviderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
		case errors.Is(err, commands.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Catalog item not found"})
		case errors.Is(err, commands.ErrBranchNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		case errors.Is(err, commands.ErrBranchNotAllowed):
			c.JSON(http.StatusForbidden, gin.H{"error": "Branch does not belong to your company"})
		case errors.Is(err, commands.ErrInvalidItemType), errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quote request data"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromQuoteRequest(created))
}

// @Summary List my quote requests
// @Description List the authenticated client's quote requests, newest first
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.RequestListItem
// @Router /quotes/my-requests [get]
func (h *QuoteHandler) ListMyRequests(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	items, err := h.queries.ListForClient(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if items == nil {
		items = []*queries.RequestListItem{}
	}
	c.JSON(http.StatusOK, items)
}

// @Summary List received quote requests
// @Description List quote requests addressed to the authenticated provider
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.ReceivedRequestItem
// @Failure 403 {object} map[string]string
// @Router /quotes/received [get]
func (h *QuoteHandler) ListReceived(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	items, err := h.queries.ListForProvider(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, queries.ErrAccessDenied) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if items == nil {
		items = []*queries.ReceivedRequestItem{}
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Get quote request details
// @Description Full view of one quote request for either involved party
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote request ID"
// @Success 200 {object} queries.RequestDetails
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetDetails(c *gin.Context) {
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

	details, err := h.queries.GetDetails(c.Request.Context(), quoteID, userID)
	if err != nil {
		h.writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// @Summary Cancel quote request
// @Description Cancel the authenticated client's own quote request
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote request ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /quotes/{id}/cancel [post]
func (h *QuoteHandler) CancelRequest(c *gin.Context) {
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

	if err := h.commands.CancelRequest(c.Request.Context(), quoteID, userID); err != nil {
		switch {
		case errors.Is(err, commands.ErrQuoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote request not found"})
		case errors.Is(err, commands.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		case errors.Is(err, commands.ErrQuoteAlreadyCancelled):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quote request is already cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quote request cancelled"})
}

// @Summary Attach file to quote request
// @Description Upload a supporting file; allowed for either involved party
// @Tags quotes
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote request ID"
// @Param file formData file true "File to attach"
// @Success 201 {object} resdto.AttachmentResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /quotes/{id}/attachments [post]
func (h *QuoteHandler) AttachFile(c *gin.Context) {
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

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer f.Close()

	attachment, err := h.commands.AttachFile(c.Request.Context(), quoteID, userID, commands.UploadedFile{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  f,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrQuoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote request not found"})
		case errors.Is(err, commands.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		case errors.Is(err, commands.ErrEmptyFile):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromAttachment(attachment))
}

// @Summary List quote request attachments
// @Description List files attached to a quote request
// @Tags quotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quote request ID"
// @Success 200 {array} queries.AttachmentView
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /quotes/{id}/attachments [get]
func (h *QuoteHandler) ListAttachments(c *gin.Context) {
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

	attachments, err := h.queries.ListAttachments(c.Request.Context(), quoteID, userID)
	if err != nil {
		h.writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, attachments)
}

func (h *QuoteHandler) writeQueryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrQuoteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Quote request not found"})
	case errors.Is(err, queries.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
