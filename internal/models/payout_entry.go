package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayoutEntry struct {
	ID uint `gorm:"primaryKey" json:"id"`

	InstructorID uint `gorm:"index" json:"instructor_id"`
	Instructor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// Exatamente um lançamento por aula concluída; o índice único é a
	// garantia de idempotência da confirmação (manual ou automática).
	BookingID uint    `gorm:"uniqueIndex" json:"booking_id"`
	Booking   Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	GrossAmount   decimal.Decimal `gorm:"type:numeric(12,2)" json:"gross_amount"`
	FeePercentage decimal.Decimal `gorm:"type:numeric(5,2)" json:"fee_percentage"`
	PlatformFee   decimal.Decimal `gorm:"type:numeric(12,2)" json:"platform_fee"`
	NetAmount     decimal.Decimal `gorm:"type:numeric(12,2)" json:"net_amount"`

	Status string `gorm:"size:20;default:'waiting';index" json:"status"`

	AvailableAt    time.Time `gorm:"index" json:"available_at"`
	IsAnticipation bool      `gorm:"default:false" json:"is_anticipation"`

	// Referência enviada ao provedor de transferência e casada no retorno.
	TransferRef string `gorm:"size:64;index" json:"transfer_ref"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
