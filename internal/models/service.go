package models

import "time"

type Service struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:200;not null" json:"nome"`
	Description string  `gorm:"size:500" json:"descricao"`
	DurationMin int     `json:"duracao"`
	Price       float64 `json:"preco"`
	Category    string  `gorm:"size:100" json:"categoria"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BarberPrice guarda o preço personalizado de um profissional para um serviço.
type BarberPrice struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	BarberID    uint    `gorm:"not null;uniqueIndex:idx_barber_service" json:"barbeiro_id"`
	ServiceName string  `gorm:"size:200;not null;uniqueIndex:idx_barber_service" json:"servico_nome"`
	Price       float64 `gorm:"not null" json:"preco"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
