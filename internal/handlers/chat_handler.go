package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cortedigital/salon-api/internal/chat"
	"github.com/cortedigital/salon-api/internal/httperr"
	"github.com/cortedigital/salon-api/internal/httpresp"
	"github.com/cortedigital/salon-api/internal/middleware"
	"github.com/cortedigital/salon-api/internal/models"
	"github.com/cortedigital/salon-api/internal/realtime"
)

type ChatHandler struct {
	chat *chat.Service
	hub  *realtime.Hub
}

func NewChatHandler(chatSvc *chat.Service, hub *realtime.Hub) *ChatHandler {
	return &ChatHandler{chat: chatSvc, hub: hub}
}

func (h *ChatHandler) Conversations(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	userType := c.GetString(middleware.ContextUserType)

	views, err := h.chat.ListConversations(c.Request.Context(), userID, userType)
	if err != nil {
		httperr.Internal(c, "Erro ao listar conversas")
		return
	}

	unread, err := h.chat.TotalUnread(c.Request.Context(), userID, userType)
	if err != nil {
		unread = 0
	}

	httpresp.Payload(c, 200, gin.H{
		"conversations": views,
		"unread_count":  unread,
	})
}

// Messages lista as mensagens de uma conversa e as marca como lidas.
func (h *ChatHandler) Messages(c *gin.Context) {
	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Identificador inválido")
		return
	}

	userID := c.GetUint(middleware.ContextUserID)
	ctx := c.Request.Context()

	conv, err := h.chat.GetConversation(ctx, uint(conversationID))
	if err != nil {
		httperr.NotFound(c, "Conversa não encontrada")
		return
	}
	if !h.chat.IsParticipant(conv, userID) {
		httperr.NotFound(c, "Conversa não encontrada")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	msgs, err := h.chat.ListMessages(ctx, conv.ID, limit)
	if err != nil {
		httperr.Internal(c, "Erro ao listar mensagens")
		return
	}

	if err := h.chat.MarkRead(ctx, conv.ID, userID); err == nil {
		h.hub.Emit(realtime.ConversationRoom(conv.ID), nil, "messages_read", gin.H{
			"conversation_id": conv.ID,
			"reader_id":       userID,
		})
	}

	httpresp.Payload(c, 200, gin.H{"messages": msgs})
}

// Conversation devolve (criando se preciso) a conversa com outro usuário.
func (h *ChatHandler) Conversation(c *gin.Context) {
	otherID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Identificador inválido")
		return
	}

	userID := c.GetUint(middleware.ContextUserID)
	userType := c.GetString(middleware.ContextUserType)

	clientID, barberID := uint(otherID), userID
	if userType == models.UserTypeClient {
		clientID, barberID = userID, uint(otherID)
	}

	conversationID, err := h.chat.GetOrCreateConversation(c.Request.Context(), clientID, barberID)
	if err != nil {
		httperr.Internal(c, "Erro ao abrir conversa")
		return
	}

	httpresp.Payload(c, 200, gin.H{"conversation_id": conversationID})
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Identificador inválido")
		return
	}

	userID := c.GetUint(middleware.ContextUserID)
	ctx := c.Request.Context()

	conv, err := h.chat.GetConversation(ctx, uint(conversationID))
	if err != nil || !h.chat.IsParticipant(conv, userID) {
		httperr.NotFound(c, "Conversa não encontrada")
		return
	}

	if err := h.chat.MarkRead(ctx, conv.ID, userID); err != nil {
		httperr.Internal(c, "Erro ao marcar como lida")
		return
	}

	h.hub.Emit(realtime.ConversationRoom(conv.ID), nil, "messages_read", gin.H{
		"conversation_id": conv.ID,
		"reader_id":       userID,
	})

	httpresp.Message(c, "Mensagens marcadas como lidas")
}

// AvailableUsers lista com quem o usuário pode conversar.
func (h *ChatHandler) AvailableUsers(c *gin.Context) {
	userType := c.GetString(middleware.ContextUserType)

	users, err := h.chat.AvailableUsers(c.Request.Context(), userType)
	if err != nil {
		httperr.Internal(c, "Erro ao listar usuários")
		return
	}

	httpresp.Payload(c, 200, gin.H{"users": users})
}
