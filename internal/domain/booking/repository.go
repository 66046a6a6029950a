package booking

import (
	"context"
	"time"

	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

type Repository interface {
	// -------- Users --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Booking (create / read) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBooking(
		ctx context.Context,
		bookingID uint,
	) (*models.Booking, error)

	GetBookingByPaymentID(
		ctx context.Context,
		paymentID string,
	) (*models.Booking, error)

	// -------- Booking (state change) --------
	// Transition carrega a aula com lock de linha dentro de uma
	// transação, aplica fn e persiste. Transições concorrentes sobre a
	// mesma aula são serializadas; a segunda enxerga o estado resultante
	// da primeira.
	Transition(
		ctx context.Context,
		bookingID uint,
		fn func(b *models.Booking) error,
	) (*models.Booking, error)

	// -------- Listings --------
	ListByStudent(
		ctx context.Context,
		studentID uint,
	) ([]models.Booking, error)

	ListByInstructorForPeriod(
		ctx context.Context,
		instructorID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	// -------- Sweeps (indexadas por deadline) --------
	ListAutoConfirmDue(
		ctx context.Context,
		now time.Time,
		limit int,
	) ([]uint, error)

	ListNoShowDue(
		ctx context.Context,
		now time.Time,
		limit int,
	) ([]uint, error)
}
