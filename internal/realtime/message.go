package realtime

import "encoding/json"

// Evento servidor → cliente.
type ServerMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func NewMessage(messageType string, payload any) ([]byte, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(ServerMessage{
		Type:    messageType,
		Payload: payloadJSON,
	})
}

// Evento cliente → servidor: join_conversation, leave_conversation,
// send_message, typing, join_notifications.
type ClientEvent struct {
	Type           string `json:"type"`
	ConversationID uint   `json:"conversation_id,omitempty"`
	Message        string `json:"message,omitempty"`
	IsTyping       bool   `json:"is_typing,omitempty"`
}
