package payout

import (
	"context"

	"github.com/PilotarApp/lesson-scheduler/internal/audit"
	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/payout"
	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

// ValidateMethod aplica o resultado da verificação externa de
// titularidade do destino de saque. O cadastro entra como pending e só
// este retorno abre (validated) ou fecha (rejected) o portão de saque;
// nenhuma operação interna promove o status.
type ValidateMethod struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewValidateMethod(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ValidateMethod {
	return &ValidateMethod{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ValidateMethod) Execute(
	ctx context.Context,
	instructorID uint,
	approved bool,
) (*models.WithdrawalMethod, error) {

	m, err := uc.repo.GetMethod(ctx, instructorID)
	if err != nil {
		return nil, httperr.ErrBusiness("withdrawal_method_not_found")
	}

	if approved {
		m.Status = models.MethodValidated
	} else {
		m.Status = models.MethodRejected
	}

	if err := uc.repo.SaveMethod(ctx, m); err != nil {
		return nil, err
	}

	action := "withdrawal_method_validated"
	if !approved {
		action = "withdrawal_method_rejected"
	}
	uc.audit.Dispatch(audit.Event{
		Actor:    "system",
		Action:   action,
		Entity:   "withdrawal_method",
		EntityID: &m.ID,
	})

	return m, nil
}
