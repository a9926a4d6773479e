package api

import (
	"errors"
	"net/http"

	"vantage-backend/internal/handler/middleware"
	"vantage-backend/internal/usecase/commands"
	"vantage-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	commands commands.NotificationCommands
	queries  queries.NotificationQueries
}

func NewNotificationHandler(cmds commands.NotificationCommands, qrys queries.NotificationQueries) *NotificationHandler {
	return &NotificationHandler{commands: cmds, queries: qrys}
}

// @Summary Notification inbox
// @Description Latest notifications for the authenticated user with unread count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.NotificationInbox
// @Router /provider/notifications [get]
func (h *NotificationHandler) Inbox(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	inbox, err := h.queries.Inbox(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if inbox.Notifications == nil {
		inbox.Notifications = []*queries.NotificationView{}
	}
	c.JSON(http.StatusOK, inbox)
}

// @Summary Mark notification read
// @Description Mark one of the authenticated user's notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /provider/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	if err := h.commands.MarkRead(c.Request.Context(), notificationID, userID); err != nil {
		if errors.Is(err, commands.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// @Summary Mark all notifications read
// @Description Mark all of the authenticated user's notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router /provider/notifications/mark-all-read [put]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	updated, err := h.commands.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read", "updated": updated})
}
