package booking

import (
	"context"
	"time"

	"github.com/PilotarApp/lesson-scheduler/internal/audit"
	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/booking"
	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
	"github.com/PilotarApp/lesson-scheduler/internal/payment"
)

// Cancelamento (por qualquer lado) dispara o reembolso DEPOIS que a
// transição local foi gravada; falha no provedor nunca desfaz o estado.

type CancelByStudent struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	refunds *payment.RefundDispatcher
}

func NewCancelByStudent(
	repo domain.Repository,
	audit *audit.Dispatcher,
	refunds *payment.RefundDispatcher,
) *CancelByStudent {
	return &CancelByStudent{
		repo:    repo,
		audit:   audit,
		refunds: refunds,
	}
}

func (uc *CancelByStudent) Execute(
	ctx context.Context,
	studentID uint,
	bookingID uint,
	reason domain.ReasonPayload,
) (*models.Booking, error) {

	now := time.Now().UTC()

	b, err := uc.repo.Transition(ctx, bookingID, func(b *models.Booking) error {
		if b.StudentID != studentID {
			return httperr.ErrBusiness("booking_not_found")
		}
		return domain.CancelByStudent(b, reason, now)
	})
	if err != nil {
		return nil, err
	}

	if b.PaymentStatus == domain.PaymentSucceeded {
		uc.refunds.Dispatch(b.PaymentID)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &studentID,
		Actor:    domain.ActorStudent,
		Action:   "booking_cancelled_by_student",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]string{"reason_code": reason.Code},
	})

	return b, nil
}

type CancelByInstructor struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	refunds *payment.RefundDispatcher
}

func NewCancelByInstructor(
	repo domain.Repository,
	audit *audit.Dispatcher,
	refunds *payment.RefundDispatcher,
) *CancelByInstructor {
	return &CancelByInstructor{
		repo:    repo,
		audit:   audit,
		refunds: refunds,
	}
}

func (uc *CancelByInstructor) Execute(
	ctx context.Context,
	instructorID uint,
	bookingID uint,
	reason domain.ReasonPayload,
) (*models.Booking, error) {

	now := time.Now().UTC()

	b, err := uc.repo.Transition(ctx, bookingID, func(b *models.Booking) error {
		if b.InstructorID != instructorID {
			return httperr.ErrBusiness("booking_not_found")
		}
		return domain.CancelByInstructor(b, reason, now)
	})
	if err != nil {
		return nil, err
	}

	if b.PaymentStatus == domain.PaymentSucceeded {
		uc.refunds.Dispatch(b.PaymentID)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &instructorID,
		Actor:    domain.ActorInstructor,
		Action:   "booking_cancelled_by_instructor",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]string{"reason_code": reason.Code},
	})

	return b, nil
}
