package booking

import (
	"context"
	"time"

	"github.com/PilotarApp/lesson-scheduler/internal/audit"
	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/booking"
	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

type StartLesson struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewStartLesson(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *StartLesson {
	return &StartLesson{
		repo:  repo,
		audit: audit,
	}
}

func (uc *StartLesson) Execute(
	ctx context.Context,
	instructorID uint,
	bookingID uint,
	presentedCode string,
) (*models.Booking, error) {

	now := time.Now().UTC()

	b, err := uc.repo.Transition(ctx, bookingID, func(b *models.Booking) error {
		if b.InstructorID != instructorID {
			return httperr.ErrBusiness("booking_not_found")
		}
		return domain.Start(b, presentedCode, now)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &instructorID,
		Actor:    domain.ActorInstructor,
		Action:   "lesson_started",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
