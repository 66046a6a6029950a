package booking

import (
	"context"
	"time"

	"github.com/PilotarApp/lesson-scheduler/internal/audit"
	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/booking"
	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

type RejectBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRejectBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RejectBooking {
	return &RejectBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RejectBooking) Execute(
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
		return domain.Reject(b, reason, now)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &instructorID,
		Actor:    domain.ActorInstructor,
		Action:   "booking_rejected",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]string{"reason_code": reason.Code},
	})

	return b, nil
}
