package models

import "time"

type Appointment struct {
	ID string `gorm:"primaryKey;size:50" json:"id"`

	ClientID    uint   `gorm:"index" json:"client_id"`
	ClientName  string `gorm:"size:150" json:"cliente"`
	ClientEmail string `gorm:"size:150" json:"cliente_email"`

	BarberID   uint   `gorm:"index" json:"barbeiro_id"`
	BarberName string `gorm:"size:150" json:"barbeiro"`

	ServiceID   uint   `json:"servico_id"`
	ServiceName string `gorm:"size:200" json:"servico"`

	Date string `gorm:"size:10;index" json:"date"`
	Time string `gorm:"size:5" json:"time"`

	Status     string  `gorm:"size:20;default:'scheduled'" json:"status"`
	TotalPrice float64 `json:"total_price"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
