package payout

import (
	"context"

	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/payout"
	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

// GetBalance exige método de saque validado: sem destino confirmado o
// instrutor não consulta saldo nem movimenta repasses.
type GetBalance struct {
	repo domain.Repository
}

func NewGetBalance(repo domain.Repository) *GetBalance {
	return &GetBalance{repo: repo}
}

func (uc *GetBalance) Execute(
	ctx context.Context,
	instructorID uint,
) (*domain.Balance, error) {

	if err := requireValidatedMethod(ctx, uc.repo, instructorID); err != nil {
		return nil, err
	}

	return uc.repo.GetBalance(ctx, instructorID)
}

func requireValidatedMethod(
	ctx context.Context,
	repo domain.Repository,
	instructorID uint,
) error {

	m, err := repo.GetMethod(ctx, instructorID)
	if err != nil || m.Status != models.MethodValidated {
		return httperr.ErrBusiness(httperr.CodeNoValidatedMethod)
	}
	return nil
}
