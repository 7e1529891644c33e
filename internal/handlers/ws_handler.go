package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/cortedigital/salon-api/internal/chat"
	"github.com/cortedigital/salon-api/internal/config"
	"github.com/cortedigital/salon-api/internal/middleware"
	"github.com/cortedigital/salon-api/internal/notify"
	"github.com/cortedigital/salon-api/internal/observability"
	"github.com/cortedigital/salon-api/internal/realtime"
)

// WSHandler faz o upgrade autenticado e roteia os eventos de chat e
// notificações recebidos pela conexão.
type WSHandler struct {
	cfg      *config.Config
	hub      *realtime.Hub
	chat     *chat.Service
	notifier *notify.Service
	metrics  *observability.Metrics
	log      *zap.Logger

	upgrader websocket.Upgrader
}

func NewWSHandler(
	cfg *config.Config,
	hub *realtime.Hub,
	chatSvc *chat.Service,
	notifier *notify.Service,
	metrics *observability.Metrics,
	log *zap.Logger,
) *WSHandler {
	h := &WSHandler{
		cfg:      cfg,
		hub:      hub,
		chat:     chatSvc,
		notifier: notifier,
		metrics:  metrics,
		log:      log,
	}

	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range cfg.AllowedOrigins {
				if allowed == "*" || strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}

	return h
}

func (h *WSHandler) Serve(c *gin.Context) {
	token := middleware.TokenFromRequest(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Não autenticado",
		})
		return
	}

	userID, userType, userName, err := middleware.ParseSession(token, h.cfg.JWTSecret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Sessão inválida ou expirada",
		})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// o upgrader já escreveu a resposta de erro
		return
	}

	client := realtime.NewClient(h.hub, conn, userID, userType, userName, h.log)
	h.hub.Register(client)
	h.hub.Join(client, realtime.UserRoom(userID))

	h.metrics.WSConnections.Inc()

	client.Send("connected", gin.H{
		"user_id":   userID,
		"user_type": userType,
	})

	go client.WritePump()
	go func() {
		defer h.metrics.WSConnections.Dec()
		client.ReadPump(h.route)
	}()
}

// route trata um evento vindo do cliente.
func (h *WSHandler) route(c *realtime.Client, ev realtime.ClientEvent) {
	ctx := context.Background()

	switch ev.Type {
	case "join_conversation":
		h.joinConversation(ctx, c, ev.ConversationID)

	case "leave_conversation":
		h.hub.Leave(c, realtime.ConversationRoom(ev.ConversationID))

	case "send_message":
		h.sendMessage(ctx, c, ev)

	case "typing":
		h.typing(ctx, c, ev)

	case "join_notifications":
		h.joinNotifications(ctx, c)

	default:
		c.SendError("Evento desconhecido: " + ev.Type)
	}
}

func (h *WSHandler) conversationFor(ctx context.Context, c *realtime.Client, conversationID uint) (uint, bool) {
	conv, err := h.chat.GetConversation(ctx, conversationID)
	if err != nil || !h.chat.IsParticipant(conv, c.UserID) {
		c.SendError("Conversa não encontrada")
		return 0, false
	}
	return conv.ID, true
}

func (h *WSHandler) joinConversation(ctx context.Context, c *realtime.Client, conversationID uint) {
	id, ok := h.conversationFor(ctx, c, conversationID)
	if !ok {
		return
	}

	room := realtime.ConversationRoom(id)
	h.hub.Join(c, room)

	// abrir a conversa marca as mensagens pendentes como lidas
	if err := h.chat.MarkRead(ctx, id, c.UserID); err == nil {
		h.hub.Emit(room, nil, "messages_read", map[string]any{
			"conversation_id": id,
			"reader_id":       c.UserID,
		})
	}
}

func (h *WSHandler) sendMessage(ctx context.Context, c *realtime.Client, ev realtime.ClientEvent) {
	body := strings.TrimSpace(ev.Message)
	if body == "" {
		c.SendError("Mensagem vazia")
		return
	}

	id, ok := h.conversationFor(ctx, c, ev.ConversationID)
	if !ok {
		return
	}

	msg, conv, err := h.chat.SendMessage(ctx, id, c.UserID, c.UserType, body)
	if err != nil {
		c.SendError("Erro ao enviar mensagem")
		return
	}

	h.hub.Emit(realtime.ConversationRoom(id), nil, "new_message", msg)

	// atualiza a lista de conversas do interlocutor mesmo com o chat fechado
	recipient := h.chat.Recipient(conv, c.UserID)
	h.hub.Emit(realtime.UserRoom(recipient), nil, "conversation_updated", map[string]any{
		"conversation_id": conv.ID,
		"last_message":    msg.Body,
		"unread":          conv.UnreadFor(recipient),
	})
}

func (h *WSHandler) typing(ctx context.Context, c *realtime.Client, ev realtime.ClientEvent) {
	id, ok := h.conversationFor(ctx, c, ev.ConversationID)
	if !ok {
		return
	}

	h.hub.Emit(realtime.ConversationRoom(id), c, "user_typing", map[string]any{
		"conversation_id": id,
		"user_id":         c.UserID,
		"user_nome":       c.UserName,
		"is_typing":       ev.IsTyping,
	})
}

func (h *WSHandler) joinNotifications(ctx context.Context, c *realtime.Client) {
	h.hub.Join(c, realtime.NotificationRoom(c.UserType, c.UserID))

	unread, err := h.notifier.UnreadCount(ctx, c.UserID, c.UserType)
	if err != nil {
		return
	}
	c.Send("unread_count", map[string]int64{"count": unread})
}
