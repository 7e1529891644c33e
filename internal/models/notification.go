package models

import "time"

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID   uint   `gorm:"index:idx_notif_user" json:"user_id"`
	UserType string `gorm:"size:20;index:idx_notif_user" json:"user_type"`

	Type    string `gorm:"size:50;default:'info'" json:"type"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Message string `gorm:"size:500;not null" json:"message"`
	Link    string `gorm:"size:255" json:"link,omitempty"`

	Read bool `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}

// CountUnread conta notificações não lidas de uma lista já carregada.
func CountUnread(ns []Notification) int {
	total := 0
	for _, n := range ns {
		if !n.Read {
			total++
		}
	}
	return total
}
