package booking

import (
	"context"
	"time"

	"github.com/PilotarApp/lesson-scheduler/internal/audit"
	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/booking"
	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

type DisputeBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDisputeBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DisputeBooking {
	return &DisputeBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DisputeBooking) Execute(
	ctx context.Context,
	studentID uint,
	bookingID uint,
	reasonText string,
) (*models.Booking, error) {

	now := time.Now().UTC()

	b, err := uc.repo.Transition(ctx, bookingID, func(b *models.Booking) error {
		if b.StudentID != studentID {
			return httperr.ErrBusiness("booking_not_found")
		}
		return domain.Dispute(b, reasonText, now)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &studentID,
		Actor:    domain.ActorStudent,
		Action:   "booking_disputed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
