package dto

import (
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/booking"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

// BookingDTO é a visão da aula entregue ao cliente: o status exibido é
// derivado (awaiting_student_confirmation, refunded) e as capacidades
// por ator poupam o app de reimplementar a máquina de estados.
type BookingDTO struct {
	ID uint `json:"id"`

	StudentID    uint `json:"student_id"`
	InstructorID uint `json:"instructor_id"`

	ScheduledDate   time.Time `json:"scheduled_date"`
	DurationMinutes int       `json:"duration_minutes"`
	Location        string    `json:"location"`

	PricePerHour decimal.Decimal `json:"price_per_hour"`
	TotalPrice   decimal.Decimal `json:"total_price"`

	Status        string `json:"status"`
	DisplayStatus string `json:"display_status"`
	PaymentStatus string `json:"payment_status"`
	PaymentMethod string `json:"payment_method"`

	ConfirmedAt              *time.Time `json:"confirmed_at"`
	StartedAt                *time.Time `json:"started_at"`
	FinishedByInstructorAt   *time.Time `json:"finished_by_instructor_at"`
	CompletedByStudentAt     *time.Time `json:"completed_by_student_at"`
	CancelledAt              *time.Time `json:"cancelled_at"`
	AutoConfirmationDeadline *time.Time `json:"auto_confirmation_deadline"`

	CancelledBy            string `json:"cancelled_by,omitempty"`
	CancellationReasonCode string `json:"cancellation_reason_code,omitempty"`
	CancellationReasonText string `json:"cancellation_reason_text,omitempty"`

	Capabilities Capabilities `json:"capabilities"`
}

type Capabilities struct {
	CanAccept  bool `json:"can_accept"`
	CanReject  bool `json:"can_reject"`
	CanStart   bool `json:"can_start"`
	CanFinish  bool `json:"can_finish"`
	CanCancel  bool `json:"can_cancel"`
	CanConfirm bool `json:"can_confirm"`
	CanDispute bool `json:"can_dispute"`
	CanReview  bool `json:"can_review"`
}

func FromBooking(b *models.Booking, actorRole string, now time.Time) BookingDTO {
	caps := Capabilities{}
	switch actorRole {
	case models.RoleInstructor:
		caps.CanAccept = domain.CanAccept(b)
		caps.CanReject = domain.CanReject(b)
		caps.CanStart = domain.CanStart(b)
		caps.CanFinish = domain.CanFinish(b)
		caps.CanCancel = domain.CanInstructorCancel(b)
	case models.RoleStudent:
		caps.CanCancel = domain.CanStudentCancel(b) && domain.StudentCanCancelAt(b, now)
		caps.CanConfirm = domain.CanConfirmCompletion(b)
		caps.CanDispute = domain.CanDispute(b)
		caps.CanReview = domain.CanReview(b)
	}

	return BookingDTO{
		ID:              b.ID,
		StudentID:       b.StudentID,
		InstructorID:    b.InstructorID,
		ScheduledDate:   b.ScheduledDate,
		DurationMinutes: b.DurationMinutes,
		Location:        b.Location,
		PricePerHour:    b.PricePerHour,
		TotalPrice:      b.TotalPrice,

		Status:        b.Status,
		DisplayStatus: domain.DisplayStatus(b),
		PaymentStatus: b.PaymentStatus,
		PaymentMethod: b.PaymentMethod,

		ConfirmedAt:              b.ConfirmedAt,
		StartedAt:                b.StartedAt,
		FinishedByInstructorAt:   b.FinishedByInstructorAt,
		CompletedByStudentAt:     b.CompletedByStudentAt,
		CancelledAt:              b.CancelledAt,
		AutoConfirmationDeadline: b.AutoConfirmationDeadline,

		CancelledBy:            b.CancelledBy,
		CancellationReasonCode: b.CancellationReasonCode,
		CancellationReasonText: b.CancellationReasonText,

		Capabilities: caps,
	}
}

func FromBookings(bookings []models.Booking, actorRole string, now time.Time) []BookingDTO {
	out := make([]BookingDTO, 0, len(bookings))
	for i := range bookings {
		out = append(out, FromBooking(&bookings[i], actorRole, now))
	}
	return out
}
