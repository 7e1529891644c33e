package realtime

import (
	"encoding/json"
	"testing"

	"go.uber.org/zap"
)

func newTestClient(hub *Hub, userID uint) *Client {
	return NewClient(hub, nil, userID, "client", "Teste", zap.NewNop())
}

func receive(t *testing.T, c *Client) ServerMessage {
	t.Helper()

	select {
	case raw := <-c.send:
		var msg ServerMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return msg
	default:
		t.Fatal("no message queued")
		return ServerMessage{}
	}
}

func TestEmitToRoom(t *testing.T) {
	hub := NewHub(zap.NewNop())

	a := newTestClient(hub, 1)
	b := newTestClient(hub, 2)
	outsider := newTestClient(hub, 3)

	hub.Register(a)
	hub.Register(b)
	hub.Register(outsider)

	room := ConversationRoom(10)
	hub.Join(a, room)
	hub.Join(b, room)

	hub.Emit(room, nil, "new_message", map[string]string{"message": "oi"})

	for _, c := range []*Client{a, b} {
		msg := receive(t, c)
		if msg.Type != "new_message" {
			t.Errorf("type = %s, want new_message", msg.Type)
		}
	}

	select {
	case <-outsider.send:
		t.Error("outsider received a room event")
	default:
	}
}

func TestEmitExceptSender(t *testing.T) {
	hub := NewHub(zap.NewNop())

	sender := newTestClient(hub, 1)
	other := newTestClient(hub, 2)
	hub.Register(sender)
	hub.Register(other)

	room := ConversationRoom(10)
	hub.Join(sender, room)
	hub.Join(other, room)

	hub.Emit(room, sender, "user_typing", map[string]bool{"is_typing": true})

	if msg := receive(t, other); msg.Type != "user_typing" {
		t.Errorf("type = %s, want user_typing", msg.Type)
	}
	select {
	case <-sender.send:
		t.Error("sender received its own typing event")
	default:
	}
}

func TestLeaveStopsDelivery(t *testing.T) {
	hub := NewHub(zap.NewNop())

	c := newTestClient(hub, 1)
	hub.Register(c)

	room := ConversationRoom(10)
	hub.Join(c, room)
	hub.Leave(c, room)

	hub.Emit(room, nil, "new_message", nil)

	select {
	case <-c.send:
		t.Error("received event after leaving the room")
	default:
	}
}

func TestUnregisterClosesSend(t *testing.T) {
	hub := NewHub(zap.NewNop())

	c := newTestClient(hub, 1)
	hub.Register(c)
	hub.Join(c, UserRoom(1))

	hub.Unregister(c)

	if _, open := <-c.send; open {
		t.Error("send channel still open after unregister")
	}

	// emitir para a sala antiga não pode entrar em pânico
	hub.Emit(UserRoom(1), nil, "new_notification", nil)
}

func TestSlowClientDoesNotBlock(t *testing.T) {
	hub := NewHub(zap.NewNop())

	c := newTestClient(hub, 1)
	hub.Register(c)

	room := UserRoom(1)
	hub.Join(c, room)

	// estoura o buffer: os excedentes são descartados sem bloquear
	for i := 0; i < 300; i++ {
		hub.Emit(room, nil, "unread_count", map[string]int{"count": i})
	}

	if len(c.send) != cap(c.send) {
		t.Errorf("len(send) = %d, want full buffer %d", len(c.send), cap(c.send))
	}
}
