package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/consulting-backend/internal/dto"
	"github.com/ignatzorin/consulting-backend/internal/http/handlers/common"
	"github.com/ignatzorin/consulting-backend/internal/service"
)

// NotificationHandler обслуживает уведомления пользователя.
type NotificationHandler struct {
	notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List обслуживает GET /api/notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	limit, offset := common.GetPagination(c)
	notifications, err := h.notifications.List(c.Request.Context(), actor.ID, limit, offset)
	if err != nil {
		_ = c.Error(err)
		return
	}

	unread, err := h.notifications.CountUnread(c.Request.Context(), actor.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, gin.H{
		"notifications": dto.FromNotifications(notifications),
		"unread":        unread,
	})
}

// MarkRead обслуживает POST /api/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	notificationID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), notificationID, actor.ID); err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, gin.H{"message": "уведомление прочитано"})
}

// MarkAllRead обслуживает POST /api/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	if err := h.notifications.MarkAllRead(c.Request.Context(), actor.ID); err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, gin.H{"message": "все уведомления прочитаны"})
}
