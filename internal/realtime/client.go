package realtime

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var (
	newline = []byte{'\n'}
	space   = []byte{' '}
)

// Client representa uma conexão WebSocket autenticada.
type Client struct {
	ID       uuid.UUID
	UserID   uint
	UserType string
	UserName string

	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	log  *zap.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uint, userType, userName string, log *zap.Logger) *Client {
	return &Client{
		ID:       uuid.New(),
		UserID:   userID,
		UserType: userType,
		UserName: userName,
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		log:      log,
	}
}

// Send enfileira um evento só para esta conexão.
func (c *Client) Send(eventType string, payload any) {
	data, err := NewMessage(eventType, payload)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) SendError(message string) {
	c.Send("error", map[string]string{"message": message})
}

// ReadPump lê mensagens do WebSocket e repassa para o roteador de eventos.
func (c *Client) ReadPump(handler func(c *Client, ev ClientEvent)) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("websocket unexpected close",
					zap.String("client", c.ID.String()),
					zap.Error(err),
				)
			}
			break
		}

		raw = bytes.TrimSpace(bytes.Replace(raw, newline, space, -1))

		var ev ClientEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			c.SendError("Evento inválido")
			continue
		}

		if handler != nil {
			handler(c, ev)
		}
	}
}

// WritePump drena o canal send para o socket e mantém o keepalive.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// canal fechado pelo Hub
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// drena mensagens acumuladas no mesmo frame
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write(newline)
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
