package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cortedigital/salon-api/internal/httperr"
	"github.com/cortedigital/salon-api/internal/httpresp"
	"github.com/cortedigital/salon-api/internal/middleware"
	"github.com/cortedigital/salon-api/internal/models"
	"github.com/cortedigital/salon-api/internal/notify"
	"github.com/cortedigital/salon-api/internal/realtime"
)

type NotificationHandler struct {
	db       *gorm.DB
	hub      *realtime.Hub
	notifier *notify.Service
}

func NewNotificationHandler(db *gorm.DB, hub *realtime.Hub, notifier *notify.Service) *NotificationHandler {
	return &NotificationHandler{db: db, hub: hub, notifier: notifier}
}

func (h *NotificationHandler) list(c *gin.Context, onlyUnread bool) {
	userID := c.GetUint(middleware.ContextUserID)
	userType := c.GetString(middleware.ContextUserType)

	q := h.db.Where("user_id = ? AND user_type = ?", userID, userType)
	if onlyUnread {
		q = q.Where("read = ?", false)
	}

	var ns []models.Notification
	if err := q.Order("created_at DESC").Limit(50).Find(&ns).Error; err != nil {
		httperr.Internal(c, "Erro ao listar notificações")
		return
	}

	unread, err := h.notifier.UnreadCount(c.Request.Context(), userID, userType)
	if err != nil {
		unread = int64(models.CountUnread(ns))
	}

	httpresp.Payload(c, 200, gin.H{
		"notifications": ns,
		"unread_count":  unread,
	})
}

func (h *NotificationHandler) List(c *gin.Context) {
	h.list(c, false)
}

func (h *NotificationHandler) Unread(c *gin.Context) {
	h.list(c, true)
}

// pushUnreadCount atualiza o sino das conexões abertas do usuário.
func (h *NotificationHandler) pushUnreadCount(c *gin.Context, userID uint, userType string) {
	count, err := h.notifier.UnreadCount(c.Request.Context(), userID, userType)
	if err != nil {
		return
	}
	h.hub.Emit(realtime.NotificationRoom(userType, userID), nil, "unread_count", gin.H{"count": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Identificador inválido")
		return
	}

	userID := c.GetUint(middleware.ContextUserID)
	userType := c.GetString(middleware.ContextUserType)

	result := h.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND user_type = ?", id, userID, userType).
		Update("read", true)
	if result.Error != nil {
		httperr.Internal(c, "Erro ao marcar notificação")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "Notificação não encontrada")
		return
	}

	h.pushUnreadCount(c, userID, userType)
	httpresp.Message(c, "Notificação marcada como lida")
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	userType := c.GetString(middleware.ContextUserType)

	err := h.db.Model(&models.Notification{}).
		Where("user_id = ? AND user_type = ? AND read = ?", userID, userType, false).
		Update("read", true).Error
	if err != nil {
		httperr.Internal(c, "Erro ao marcar notificações")
		return
	}

	h.pushUnreadCount(c, userID, userType)
	httpresp.Message(c, "Todas as notificações foram marcadas como lidas")
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Identificador inválido")
		return
	}

	userID := c.GetUint(middleware.ContextUserID)
	userType := c.GetString(middleware.ContextUserType)

	result := h.db.
		Where("id = ? AND user_id = ? AND user_type = ?", id, userID, userType).
		Delete(&models.Notification{})
	if result.Error != nil {
		httperr.Internal(c, "Erro ao remover notificação")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "Notificação não encontrada")
		return
	}

	h.pushUnreadCount(c, userID, userType)
	httpresp.Message(c, "Notificação removida")
}
