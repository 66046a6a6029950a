package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StudentID uint `gorm:"index" json:"student_id"`
	Student   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"student"`

	InstructorID uint `gorm:"index" json:"instructor_id"`
	Instructor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"instructor"`

	ScheduledDate   time.Time `json:"scheduled_date"`
	DurationMinutes int       `json:"duration_minutes"`
	Location        string    `gorm:"size:255" json:"location"`

	// TotalPrice é derivado de PricePerHour na criação e congelado;
	// mudanças de tarifa do instrutor nunca alteram aulas já criadas.
	PricePerHour decimal.Decimal `gorm:"type:numeric(12,2)" json:"price_per_hour"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_price"`

	Status string `gorm:"size:30;default:'pending';index" json:"status"`

	ConfirmedAt            *time.Time `json:"confirmed_at"`
	StartedAt              *time.Time `json:"started_at"`
	FinishedByInstructorAt *time.Time `json:"finished_by_instructor_at"`
	CompletedByStudentAt   *time.Time `json:"completed_by_student_at"`
	CancelledAt            *time.Time `json:"cancelled_at"`

	// Código de 4 dígitos apresentado pelo aluno no início da aula.
	StartCode     string `gorm:"size:4" json:"-"`
	StartCodeUsed bool   `gorm:"default:false" json:"start_code_used"`

	PaymentStatus string `gorm:"size:20" json:"payment_status"`
	PaymentMethod string `gorm:"size:30" json:"payment_method"`
	PaymentID     string `gorm:"size:64;index" json:"payment_id"`

	CancelledBy            string `gorm:"size:20" json:"cancelled_by"`
	CancellationReasonCode string `gorm:"size:40" json:"cancellation_reason_code"`
	CancellationReasonText string `gorm:"size:140" json:"cancellation_reason_text"`

	AutoConfirmationDeadline *time.Time `gorm:"index" json:"auto_confirmation_deadline"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
