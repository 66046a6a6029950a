package payout

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

// Balance agrega os lançamentos do instrutor por disponibilidade.
type Balance struct {
	Available      decimal.Decimal `json:"available_balance"`
	Waiting        decimal.Decimal `json:"waiting_balance"`
	AvailableCount int             `json:"available_count"`
	WaitingCount   int             `json:"waiting_count"`
}

type Repository interface {
	// -------- Entries --------
	// CreateEntry é idempotente por booking_id: confirmação repetida
	// (manual correndo com a varredura) não duplica lançamento.
	CreateEntry(
		ctx context.Context,
		e *models.PayoutEntry,
	) error

	GetEntryForInstructor(
		ctx context.Context,
		entryID uint,
		instructorID uint,
	) (*models.PayoutEntry, error)

	GetEntryByTransferRef(
		ctx context.Context,
		transferRef string,
	) (*models.PayoutEntry, error)

	// Transition: mesma semântica do repositório de aulas — lock de
	// linha, fn, persistência, tudo na mesma transação.
	Transition(
		ctx context.Context,
		entryID uint,
		fn func(e *models.PayoutEntry) error,
	) (*models.PayoutEntry, error)

	ListByInstructor(
		ctx context.Context,
		instructorID uint,
	) ([]models.PayoutEntry, error)

	GetBalance(
		ctx context.Context,
		instructorID uint,
	) (*Balance, error)

	// -------- Sweep --------
	ListReleaseDue(
		ctx context.Context,
		now time.Time,
		limit int,
	) ([]uint, error)

	// -------- Withdrawal method --------
	GetMethod(
		ctx context.Context,
		instructorID uint,
	) (*models.WithdrawalMethod, error)

	SaveMethod(
		ctx context.Context,
		m *models.WithdrawalMethod,
	) error
}
