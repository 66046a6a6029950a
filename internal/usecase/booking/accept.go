package booking

import (
	"context"
	"time"

	"github.com/PilotarApp/lesson-scheduler/internal/audit"
	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/booking"
	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

type AcceptBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAcceptBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AcceptBooking {
	return &AcceptBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AcceptBooking) Execute(
	ctx context.Context,
	instructorID uint,
	bookingID uint,
) (*models.Booking, error) {

	now := time.Now().UTC()

	b, err := uc.repo.Transition(ctx, bookingID, func(b *models.Booking) error {
		if b.InstructorID != instructorID {
			return httperr.ErrBusiness("booking_not_found")
		}
		return domain.Accept(b, now)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &instructorID,
		Actor:    domain.ActorInstructor,
		Action:   "booking_accepted",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
