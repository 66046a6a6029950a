package payout

import (
	"context"
	"strings"

	"github.com/PilotarApp/lesson-scheduler/internal/audit"
	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/payout"
	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
	"github.com/PilotarApp/lesson-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type RegisterMethodInput struct {
	InstructorID uint

	MethodType   string
	PixKeyType   string
	PixKey       string
	CustodyEmail string
}

// ======================================================
// USE CASE
// ======================================================

// RegisterWithdrawalMethod cadastra o destino de saque do instrutor.
// Entra como pending; a validação de titularidade é externa e o
// resultado chega como atualização de status.
type RegisterWithdrawalMethod struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRegisterWithdrawalMethod(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RegisterWithdrawalMethod {
	return &RegisterWithdrawalMethod{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RegisterWithdrawalMethod) Execute(
	ctx context.Context,
	in RegisterMethodInput,
) (*models.WithdrawalMethod, error) {

	m := &models.WithdrawalMethod{
		InstructorID: in.InstructorID,
		MethodType:   in.MethodType,
		Status:       models.MethodPending,
	}

	switch in.MethodType {
	case models.MethodTypePix:
		if !validators.IsPixKeyTypeValid(in.PixKeyType) {
			return nil, httperr.ErrValidation("pix_key_type")
		}
		if !validators.IsPixKeyValid(in.PixKeyType, in.PixKey) {
			return nil, httperr.ErrValidation("pix_key")
		}
		m.PixKeyType = in.PixKeyType
		m.PixKey = strings.TrimSpace(in.PixKey)

	case models.MethodTypeCustody:
		if in.CustodyEmail == "" || !strings.Contains(in.CustodyEmail, "@") {
			return nil, httperr.ErrValidation("custody_email")
		}
		m.CustodyEmail = strings.ToLower(strings.TrimSpace(in.CustodyEmail))

	default:
		return nil, httperr.ErrValidation("method_type")
	}

	if err := uc.repo.SaveMethod(ctx, m); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.InstructorID,
		Actor:    "instructor",
		Action:   "withdrawal_method_registered",
		Entity:   "withdrawal_method",
		EntityID: &m.ID,
	})

	return m, nil
}
