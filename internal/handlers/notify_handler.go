package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/placepulse/notifier/internal/dispatch"
	"github.com/placepulse/notifier/internal/models"
	"github.com/placepulse/notifier/internal/repositories"
	"github.com/placepulse/notifier/internal/rules"
)

// NotifyHandler handles token registration and direct notification sends
type NotifyHandler struct {
	userRepository repositories.UserRepository
	dispatcher     *dispatch.Dispatcher
}

// NewNotifyHandler creates a new NotifyHandler
func NewNotifyHandler(userRepo repositories.UserRepository, dispatcher *dispatch.Dispatcher) *NotifyHandler {
	return &NotifyHandler{
		userRepository: userRepo,
		dispatcher:     dispatcher,
	}
}

// RegisterNotifyRoutes registers the notify routes
func (h *NotifyHandler) RegisterNotifyRoutes(e *echo.Echo) {
	e.POST("/register-token", h.RegisterToken)
	e.POST("/send-notification", h.SendNotification)
	e.POST("/test-notification", h.TestNotification)
}

// RegisterToken stores a push token on the user's document
func (h *NotifyHandler) RegisterToken(c echo.Context) error {
	var req models.RegisterTokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "userId and pushToken are required"})
	}

	if err := h.userRepository.SetPushToken(c.Request().Context(), req.UserID, req.PushToken); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Failed to store push token"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// SendNotification dispatches a notification built from the request body
func (h *NotifyHandler) SendNotification(c echo.Context) error {
	var req models.SendNotificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "toUserId, type, title and body are required"})
	}

	intent := models.NotificationIntent{
		RecipientID: req.ToUserID,
		Category:    req.Type,
		Title:       req.Title,
		Body:        req.Body,
		Sender: models.Sender{
			ID:        req.SenderID,
			Name:      req.SenderName,
			AvatarURL: req.SenderAvatar,
		},
		Target: rules.Reconcile(models.Target{
			TargetID:   req.TargetID,
			TargetType: req.TargetType,
			PostID:     req.PostID,
			PlaceID:    req.PlaceID,
			ReviewID:   req.ReviewID,
			CommentID:  req.CommentID,
		}),
		Extra: req.ExtraData,
	}

	if _, err := h.dispatcher.Dispatch(c.Request().Context(), intent); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Failed to dispatch notification"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// TestNotification dispatches a test notification with defaulted fields
func (h *NotifyHandler) TestNotification(c echo.Context) error {
	var req models.TestNotificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "userId is required"})
	}

	category := req.Type
	if category == "" {
		category = models.CategoryTest
	}
	title := req.Title
	if title == "" {
		title = "Test notification"
	}
	body := req.Body
	if body == "" {
		body = "This is a test notification"
	}

	intent := models.NotificationIntent{
		RecipientID: req.UserID,
		Category:    category,
		Title:       title,
		Body:        body,
	}

	if _, err := h.dispatcher.Dispatch(c.Request().Context(), intent); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Test notification sent"})
}
