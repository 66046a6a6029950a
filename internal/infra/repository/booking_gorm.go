package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/booking"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *BookingGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Booking (create / read)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, bookingID).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingByPaymentID(
	ctx context.Context,
	paymentID string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

// Transition serializa transições concorrentes sobre a mesma aula com
// SELECT ... FOR UPDATE: a segunda transação espera a primeira e valida
// contra o estado já resultante.
func (r *BookingGormRepository) Transition(
	ctx context.Context,
	bookingID uint,
	fn func(b *models.Booking) error,
) (*models.Booking, error) {

	var out models.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, bookingID).Error; err != nil {
			return err
		}

		if err := fn(&b); err != nil {
			return err
		}

		if err := tx.Save(&b).Error; err != nil {
			return err
		}

		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *BookingGormRepository) ListByStudent(
	ctx context.Context,
	studentID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Instructor").
		Where("student_id = ?", studentID).
		Order("scheduled_date DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListByInstructorForPeriod(
	ctx context.Context,
	instructorID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where(
			"instructor_id = ? AND scheduled_date >= ? AND scheduled_date < ?",
			instructorID, start, end,
		).
		Order("scheduled_date ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Sweeps
// --------------------------------------------------

// ListAutoConfirmDue seleciona aulas concluídas com janela vencida e,
// como rede de segurança, aulas já confirmadas e pagas que ficaram sem
// lançamento de repasse (falha transiente depois do commit da
// confirmação). Aula congelada por reembolso fica fora: a varredura
// não tem nada a fazer com ela.
func (r *BookingGormRepository) ListAutoConfirmDue(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			`status = ? AND payment_status <> ? AND (
				(completed_by_student_at IS NULL AND auto_confirmation_deadline <= ?)
				OR (completed_by_student_at IS NOT NULL AND payment_status = ?
					AND NOT EXISTS (
						SELECT 1 FROM payout_entries
						WHERE payout_entries.booking_id = bookings.id
					))
			)`,
			string(domain.StatusCompleted), domain.PaymentRefunded, now, domain.PaymentSucceeded,
		).
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *BookingGormRepository) ListNoShowDue(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"status = ? AND scheduled_date + (duration_minutes * interval '1 minute') <= ?",
			string(domain.StatusAccepted), now,
		).
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
