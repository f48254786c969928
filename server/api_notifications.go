package pawsitserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/pawsit/pawsit-server/internal/domains/notifications/application"
	"github.com/pawsit/pawsit-server/internal/domains/notifications/domain"
	"github.com/pawsit/pawsit-server/internal/domains/notifications/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

// NotificationAPI handles notification endpoints.
type NotificationAPI struct {
	service ports.Service
}

// NewNotificationAPI wires the notification endpoints to the notification service.
func NewNotificationAPI(service ports.Service) NotificationAPI {
	return NotificationAPI{service: service}
}

// CreateNotification stores and dispatches a notification.
func (api NotificationAPI) CreateNotification(c *gin.Context) {
	var payload Notification
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	notification, err := domain.NewNotification(payload.ID, payload.UserID, domain.Type(payload.Type), payload.Message)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	notification.AttachData(payload.Data)
	created, err := api.service.Create(c.Request.Context(), notification)
	if err != nil {
		respondNotificationServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toNotificationModel(created))
}

// GetNotification returns a single notification by id.
func (api NotificationAPI) GetNotification(c *gin.Context) {
	id, err := parseIDParam(c, "notificationId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	notification, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondNotificationServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toNotificationModel(notification))
}

// ListUserNotifications returns the notifications of a user, optionally only
// the unread ones.
func (api NotificationAPI) ListUserNotifications(c *gin.Context) {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var notifications []*projection.Projection[*domain.Notification]
	if c.Query("unread") == "true" {
		notifications, err = api.service.FindUnreadByUser(c.Request.Context(), userID)
	} else {
		notifications, err = api.service.FindByUser(c.Request.Context(), userID)
	}
	if err != nil {
		respondNotificationServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toNotificationModels(notifications))
}

// MarkNotificationRead flips a notification to read.
func (api NotificationAPI) MarkNotificationRead(c *gin.Context) {
	id, err := parseIDParam(c, "notificationId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	notification, err := api.service.MarkRead(c.Request.Context(), id)
	if err != nil {
		respondNotificationServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toNotificationModel(notification))
}

// DeleteNotification removes a notification.
func (api NotificationAPI) DeleteNotification(c *gin.Context) {
	id, err := parseIDParam(c, "notificationId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		respondNotificationServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondNotificationServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrAlreadyRead):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, app.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}

func toNotificationModel(notification *projection.Projection[*domain.Notification]) Notification {
	if notification == nil || notification.Entity == nil {
		return Notification{}
	}
	entity := notification.Entity
	return Notification{
		ID:        entity.ID,
		UserID:    entity.UserID,
		Type:      string(entity.Type),
		Message:   entity.Message,
		Data:      entity.Data,
		IsRead:    entity.IsRead,
		CreatedAt: notification.Metadata.CreatedAt,
	}
}

func toNotificationModels(notifications []*projection.Projection[*domain.Notification]) []Notification {
	models := make([]Notification, 0, len(notifications))
	for _, notification := range notifications {
		models = append(models, toNotificationModel(notification))
	}
	return models
}
