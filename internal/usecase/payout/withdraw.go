package payout

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/PilotarApp/lesson-scheduler/internal/audit"
	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/payout"
	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
	"github.com/PilotarApp/lesson-scheduler/internal/payoutrail"
)

// RequestWithdrawal move available → pending_transfer e notifica o rail
// de transferência com destino + valor líquido. A notificação acontece
// depois do commit local; falha nela não desfaz a transição (o rail tem
// política própria de retry e o retorno chega por webhook).
type RequestWithdrawal struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	rail  payoutrail.Client
}

func NewRequestWithdrawal(
	repo domain.Repository,
	audit *audit.Dispatcher,
	rail payoutrail.Client,
) *RequestWithdrawal {
	return &RequestWithdrawal{
		repo:  repo,
		audit: audit,
		rail:  rail,
	}
}

func (uc *RequestWithdrawal) Execute(
	ctx context.Context,
	instructorID uint,
	entryID uint,
) (*models.PayoutEntry, error) {

	method, err := uc.repo.GetMethod(ctx, instructorID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNoValidatedMethod)
	}

	transferRef := uuid.NewString()

	e, err := uc.repo.Transition(ctx, entryID, func(e *models.PayoutEntry) error {
		if e.InstructorID != instructorID {
			return httperr.ErrBusiness("payout_entry_not_found")
		}
		return domain.RequestTransfer(e, method, transferRef)
	})
	if err != nil {
		return nil, err
	}

	if err := uc.rail.RequestTransfer(ctx, payoutrail.FromMethod(method, transferRef, e.NetAmount)); err != nil {
		log.Println("payout rail error:", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &instructorID,
		Actor:    "instructor",
		Action:   "withdrawal_requested",
		Entity:   "payout_entry",
		EntityID: &e.ID,
		Metadata: map[string]string{"transfer_ref": transferRef},
	})

	return e, nil
}

// SettleTransfer aplica o retorno assíncrono do rail: pago (terminal) ou
// de volta para available quando a transferência falhou.
type SettleTransfer struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSettleTransfer(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SettleTransfer {
	return &SettleTransfer{
		repo:  repo,
		audit: audit,
	}
}

func (uc *SettleTransfer) Execute(
	ctx context.Context,
	transferRef string,
	succeeded bool,
) (*models.PayoutEntry, error) {

	found, err := uc.repo.GetEntryByTransferRef(ctx, transferRef)
	if err != nil {
		return nil, httperr.ErrBusiness("payout_entry_not_found")
	}

	e, err := uc.repo.Transition(ctx, found.ID, func(e *models.PayoutEntry) error {
		return domain.SettleTransfer(e, succeeded)
	})
	if err != nil {
		return nil, err
	}

	action := "withdrawal_paid"
	if !succeeded {
		action = "withdrawal_failed"
	}
	uc.audit.Dispatch(audit.Event{
		Actor:    "system",
		Action:   action,
		Entity:   "payout_entry",
		EntityID: &e.ID,
		Metadata: map[string]string{"transfer_ref": transferRef},
	})

	return e, nil
}
