package models

import "time"

const (
	MethodTypePix     = "pix"
	MethodTypeCustody = "custody_account"

	MethodPending   = "pending"
	MethodValidated = "validated"
	MethodRejected  = "rejected"
)

type WithdrawalMethod struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Um método ativo por instrutor; um novo cadastro substitui o anterior.
	InstructorID uint `gorm:"uniqueIndex" json:"instructor_id"`
	Instructor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	MethodType string `gorm:"size:20" json:"method_type"` // pix | custody_account

	PixKeyType string `gorm:"size:20" json:"pix_key_type"` // cpf | email | phone | random
	PixKey     string `gorm:"size:140" json:"pix_key"`

	CustodyEmail string `gorm:"size:100" json:"custody_email"`

	Status string `gorm:"size:20;default:'pending'" json:"status"` // pending | validated | rejected

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
