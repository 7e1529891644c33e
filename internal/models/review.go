package models

import "time"

// Review é a avaliação em estrelas de um agendamento concluído.
// Um agendamento só pode ser avaliado uma vez.
type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID string `gorm:"size:50;uniqueIndex;not null" json:"appointment_id"`
	BarberID      uint   `gorm:"index;not null" json:"barbeiro_id"`
	ClientID      uint   `gorm:"index;not null" json:"cliente_id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"size:1000" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientName string `gorm:"-" json:"cliente_nome,omitempty"`
	BarberName string `gorm:"-" json:"barbeiro_nome,omitempty"`
}

const (
	MinRating = 1
	MaxRating = 5
)

func IsRatingValid(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
