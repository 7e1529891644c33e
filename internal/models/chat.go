package models

import "time"

type Conversation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint `gorm:"not null;uniqueIndex:idx_conv_pair" json:"cliente_id"`
	BarberID uint `gorm:"not null;uniqueIndex:idx_conv_pair" json:"barbeiro_id"`

	ClientUnread int `gorm:"default:0" json:"cliente_unread"`
	BarberUnread int `gorm:"default:0" json:"barbeiro_unread"`

	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// UnreadFor devolve o contador de não lidas do lado informado.
func (c *Conversation) UnreadFor(userID uint) int {
	if c.ClientID == userID {
		return c.ClientUnread
	}
	return c.BarberUnread
}

type ChatMessage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ConversationID uint   `gorm:"index;not null" json:"conversation_id"`
	SenderID       uint   `gorm:"not null" json:"sender_id"`
	SenderType     string `gorm:"size:20;not null" json:"sender_type"`
	Body           string `gorm:"size:2000;not null" json:"message"`
	Read           bool   `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`

	SenderName string `gorm:"-" json:"sender_nome,omitempty"`
}
