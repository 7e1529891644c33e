package models

import "time"

const (
	UserTypeClient       = "client"
	UserTypeProfessional = "professional"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:150;not null" json:"name"`
	Email        string `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Type         string `gorm:"size:20;default:'client'" json:"type"`
	Phone        string `gorm:"size:20" json:"phone"`
	Address      string `gorm:"size:300" json:"address"`

	// Campos de profissional
	Category    string  `gorm:"size:100" json:"category,omitempty"`
	Specialties string  `gorm:"type:text" json:"specialties,omitempty"`
	BasePrice   float64 `gorm:"default:50" json:"base_price,omitempty"`
	Rating      float64 `gorm:"default:5" json:"rating,omitempty"`
	Bio         string  `gorm:"size:500" json:"bio,omitempty"`
	AvatarURL   string  `gorm:"size:500" json:"avatar_url,omitempty"`
	Schedule    string  `gorm:"type:text" json:"schedule,omitempty"`
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsProfessional() bool {
	return u.Type == UserTypeProfessional
}
