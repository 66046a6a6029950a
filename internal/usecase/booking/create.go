package booking

import (
	"context"
	"time"

	"github.com/PilotarApp/lesson-scheduler/internal/audit"
	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/booking"
	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	StudentID    uint
	InstructorID uint

	ScheduledAt     time.Time
	DurationMinutes int
	Location        string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	instructor, err := uc.repo.GetUserByID(ctx, in.InstructorID)
	if err != nil {
		return nil, httperr.ErrBusiness("instructor_not_found")
	}
	if instructor.Role != models.RoleInstructor {
		return nil, httperr.ErrValidation("instructor_id")
	}

	// instrutor não verificado não recebe novas aulas
	if !instructor.Verified {
		return nil, httperr.ErrBusiness("instructor_not_verified")
	}

	b, err := domain.New(
		in.StudentID,
		instructor,
		in.ScheduledAt,
		in.DurationMinutes,
		in.Location,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.StudentID,
		Actor:    domain.ActorStudent,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
