package payout

import (
	"context"
	"time"

	"github.com/PilotarApp/lesson-scheduler/internal/audit"
	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/payout"
	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

// RequestAnticipation antecipa um repasse em retenção: taxa adicional em
// troca de janela menor. Irreversível; duplo pedido falha.
type RequestAnticipation struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	policy domain.Policy
}

func NewRequestAnticipation(
	repo domain.Repository,
	audit *audit.Dispatcher,
	policy domain.Policy,
) *RequestAnticipation {
	return &RequestAnticipation{
		repo:   repo,
		audit:  audit,
		policy: policy,
	}
}

func (uc *RequestAnticipation) Execute(
	ctx context.Context,
	instructorID uint,
	entryID uint,
) (*models.PayoutEntry, error) {

	now := time.Now().UTC()

	e, err := uc.repo.Transition(ctx, entryID, func(e *models.PayoutEntry) error {
		if e.InstructorID != instructorID {
			return httperr.ErrBusiness("payout_entry_not_found")
		}
		return domain.Anticipate(e, uc.policy.AnticipationSurcharge, now, uc.policy.AnticipatedWait)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &instructorID,
		Actor:    "instructor",
		Action:   "payout_anticipated",
		Entity:   "payout_entry",
		EntityID: &e.ID,
		Metadata: map[string]string{"fee_percentage": e.FeePercentage.String()},
	})

	return e, nil
}
