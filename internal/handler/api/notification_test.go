//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"vantage-backend/internal/domain/user"
	"vantage-backend/internal/handler/api"
	"vantage-backend/internal/usecase/commands"
	"vantage-backend/internal/usecase/queries"
	"vantage-backend/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type NotificationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCommands *MockNotificationCommands
	mockQueries  *MockNotificationQueries
	handler      *api.NotificationHandler
	userID       uuid.UUID
}

func (s *NotificationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCommands = new(MockNotificationCommands)
	s.mockQueries = new(MockNotificationQueries)
	s.handler = api.NewNotificationHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleProvider)
		c.Next()
	}

	s.router.GET("/provider/notifications", authMiddleware, s.handler.Inbox)
	s.router.PUT("/provider/notifications/mark-all-read", authMiddleware, s.handler.MarkAllRead)
	s.router.PUT("/provider/notifications/:id/read", authMiddleware, s.handler.MarkRead)
}

func TestNotificationHandlerSuite(t *testing.T) {
	suite.Run(t, new(NotificationHandlerTestSuite))
}

func (s *NotificationHandlerTestSuite) TestInbox() {
	url := "/provider/notifications"

	s.Run("success: returns notifications and unread count", func() {
		s.SetupTest()
		s.mockQueries.On("Inbox", mock.Anything, s.userID).
			Return(&queries.NotificationInbox{
				Notifications: []*queries.NotificationView{
					{ID: uuid.New(), Type: "quote_request", Title: "New quote request", IsRead: false},
				},
				UnreadCount: 1,
			}, nil)

		var inbox queries.NotificationInbox
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &inbox)
		s.Len(inbox.Notifications, 1)
		s.Equal(1, inbox.UnreadCount)
	})

	s.Run("empty inbox serializes as an array, not null", func() {
		s.SetupTest()
		s.mockQueries.On("Inbox", mock.Anything, s.userID).
			Return(&queries.NotificationInbox{}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		s.Equal(http.StatusOK, w.Code)
		s.JSONEq(`{"notifications": [], "unread_count": 0}`, w.Body.String())
	})
}

func (s *NotificationHandlerTestSuite) TestMarkRead() {
	notificationID := uuid.New()
	url := "/provider/notifications/" + notificationID.String() + "/read"

	s.Run("success: returns 200", func() {
		s.SetupTest()
		s.mockCommands.On("MarkRead", mock.Anything, notificationID, s.userID).Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "token")
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("someone else's notification returns 404", func() {
		s.SetupTest()
		s.mockCommands.On("MarkRead", mock.Anything, notificationID, s.userID).
			Return(commands.ErrNotificationNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "not found")
	})

	s.Run("malformed id returns 400", func() {
		s.SetupTest()
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/provider/notifications/abc/read", nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid notification ID")
	})
}

func (s *NotificationHandlerTestSuite) TestMarkAllRead() {
	url := "/provider/notifications/mark-all-read"

	s.Run("success: reports how many got marked", func() {
		s.SetupTest()
		s.mockCommands.On("MarkAllRead", mock.Anything, s.userID).Return(int64(3), nil)

		var body map[string]any
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "token")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
		s.EqualValues(3, body["updated"])
	})

	s.Run("nothing unread still succeeds", func() {
		s.SetupTest()
		s.mockCommands.On("MarkAllRead", mock.Anything, s.userID).Return(int64(0), nil)

		var body map[string]any
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "token")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
		s.EqualValues(0, body["updated"])
	})
}
