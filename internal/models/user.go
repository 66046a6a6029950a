package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'student'" json:"role"`

	// Instrutores só recebem novas aulas depois da verificação de identidade.
	// O fluxo de verificação em si acontece fora daqui; guardamos o resultado.
	Verified bool `gorm:"default:false" json:"verified"`

	PricePerHour decimal.Decimal `gorm:"type:numeric(12,2)" json:"price_per_hour"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
