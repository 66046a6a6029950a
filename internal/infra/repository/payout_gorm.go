package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/payout"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

type PayoutGormRepository struct {
	db *gorm.DB
}

func NewPayoutGormRepository(db *gorm.DB) *PayoutGormRepository {
	return &PayoutGormRepository{db: db}
}

// --------------------------------------------------
// Entries
// --------------------------------------------------

// CreateEntry apoia a idempotência da confirmação no índice único de
// booking_id: a segunda tentativa vira no-op em vez de duplicar.
func (r *PayoutGormRepository) CreateEntry(
	ctx context.Context,
	e *models.PayoutEntry,
) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "booking_id"}},
			DoNothing: true,
		}).
		Create(e).Error
}

func (r *PayoutGormRepository) GetEntryForInstructor(
	ctx context.Context,
	entryID uint,
	instructorID uint,
) (*models.PayoutEntry, error) {

	var e models.PayoutEntry
	if err := r.db.WithContext(ctx).
		Where("id = ? AND instructor_id = ?", entryID, instructorID).
		First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PayoutGormRepository) GetEntryByTransferRef(
	ctx context.Context,
	transferRef string,
) (*models.PayoutEntry, error) {

	var e models.PayoutEntry
	if err := r.db.WithContext(ctx).
		Where("transfer_ref = ?", transferRef).
		First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PayoutGormRepository) Transition(
	ctx context.Context,
	entryID uint,
	fn func(e *models.PayoutEntry) error,
) (*models.PayoutEntry, error) {

	var out models.PayoutEntry

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e models.PayoutEntry
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&e, entryID).Error; err != nil {
			return err
		}

		if err := fn(&e); err != nil {
			return err
		}

		if err := tx.Save(&e).Error; err != nil {
			return err
		}

		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *PayoutGormRepository) ListByInstructor(
	ctx context.Context,
	instructorID uint,
) ([]models.PayoutEntry, error) {

	var entries []models.PayoutEntry
	if err := r.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// --------------------------------------------------
// Balance
// --------------------------------------------------

func (r *PayoutGormRepository) GetBalance(
	ctx context.Context,
	instructorID uint,
) (*domain.Balance, error) {

	type row struct {
		Status string
		Total  decimal.Decimal
		Count  int
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.PayoutEntry{}).
		Select("status, COALESCE(SUM(net_amount), 0) AS total, COUNT(*) AS count").
		Where("instructor_id = ? AND status IN ?", instructorID,
			[]string{string(domain.StatusWaiting), string(domain.StatusAvailable)}).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	balance := &domain.Balance{
		Available: decimal.Zero,
		Waiting:   decimal.Zero,
	}
	for _, rw := range rows {
		switch domain.Status(rw.Status) {
		case domain.StatusAvailable:
			balance.Available = rw.Total
			balance.AvailableCount = rw.Count
		case domain.StatusWaiting:
			balance.Waiting = rw.Total
			balance.WaitingCount = rw.Count
		}
	}

	return balance, nil
}

// --------------------------------------------------
// Sweep
// --------------------------------------------------

func (r *PayoutGormRepository) ListReleaseDue(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.PayoutEntry{}).
		Where("status = ? AND available_at <= ?", string(domain.StatusWaiting), now).
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// --------------------------------------------------
// Withdrawal method
// --------------------------------------------------

func (r *PayoutGormRepository) GetMethod(
	ctx context.Context,
	instructorID uint,
) (*models.WithdrawalMethod, error) {

	var m models.WithdrawalMethod
	if err := r.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveMethod substitui o método ativo do instrutor (um por instrutor).
func (r *PayoutGormRepository) SaveMethod(
	ctx context.Context,
	m *models.WithdrawalMethod,
) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "instructor_id"}},
			UpdateAll: true,
		}).
		Create(m).Error
}

// Compile-time check
var _ domain.Repository = (*PayoutGormRepository)(nil)
