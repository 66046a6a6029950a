package booking

import (
	"context"
	"time"

	"github.com/PilotarApp/lesson-scheduler/internal/audit"
	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/booking"
	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

type FinishLesson struct {
	repo          domain.Repository
	audit         *audit.Dispatcher
	confirmWindow time.Duration
}

func NewFinishLesson(
	repo domain.Repository,
	audit *audit.Dispatcher,
	confirmWindow time.Duration,
) *FinishLesson {
	return &FinishLesson{
		repo:          repo,
		audit:         audit,
		confirmWindow: confirmWindow,
	}
}

func (uc *FinishLesson) Execute(
	ctx context.Context,
	instructorID uint,
	bookingID uint,
) (*models.Booking, error) {

	now := time.Now().UTC()

	b, err := uc.repo.Transition(ctx, bookingID, func(b *models.Booking) error {
		if b.InstructorID != instructorID {
			return httperr.ErrBusiness("booking_not_found")
		}
		return domain.Finish(b, now, uc.confirmWindow)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &instructorID,
		Actor:    domain.ActorInstructor,
		Action:   "lesson_finished",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
