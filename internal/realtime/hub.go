package realtime

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Hub mantém as conexões WebSocket ativas organizadas em salas lógicas:
// user_{id} para entrega direta, conversation_{id} para chats abertos e
// notifications_{type}_{id} para o sino de notificações.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Client]bool
	clients map[*Client]map[string]bool

	log *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		rooms:   make(map[string]map[*Client]bool),
		clients: make(map[*Client]map[string]bool),
		log:     log,
	}
}

func UserRoom(userID uint) string {
	return fmt.Sprintf("user_%d", userID)
}

func ConversationRoom(conversationID uint) string {
	return fmt.Sprintf("conversation_%d", conversationID)
}

func NotificationRoom(userType string, userID uint) string {
	return fmt.Sprintf("notifications_%s_%d", userType, userID)
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = make(map[string]bool)
	h.mu.Unlock()

	h.log.Info("websocket connected",
		zap.String("client", c.ID.String()),
		zap.Uint("user_id", c.UserID),
	)
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	rooms, ok := h.clients[c]
	if ok {
		for room := range rooms {
			h.removeFromRoom(c, room)
		}
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()

	if ok {
		h.log.Info("websocket disconnected", zap.String("client", c.ID.String()))
	}
}

func (h *Hub) Join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][c] = true
	h.clients[c][room] = true
}

func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoom(c, room)
	if set, ok := h.clients[c]; ok {
		delete(set, room)
	}
}

// caller segura h.mu
func (h *Hub) removeFromRoom(c *Client, room string) {
	if set, ok := h.rooms[room]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Emit envia um evento para todos os clientes de uma sala. except pula o
// remetente (eventos de digitação). Cliente com buffer cheio é ignorado:
// entrega em tempo real nunca bloqueia o servidor.
func (h *Hub) Emit(room string, except *Client, eventType string, payload any) {
	data, err := NewMessage(eventType, payload)
	if err != nil {
		h.log.Warn("websocket marshal failed", zap.String("event", eventType), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[room] {
		if c == except {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.log.Warn("websocket send buffer full, dropping event",
				zap.String("client", c.ID.String()),
				zap.String("event", eventType),
			)
		}
	}
}
