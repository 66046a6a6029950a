package booking

import (
	"context"
	"time"

	"github.com/PilotarApp/lesson-scheduler/internal/audit"
	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/booking"
	payoutdomain "github.com/PilotarApp/lesson-scheduler/internal/domain/payout"
	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

// ConfirmCompletion registra a confirmação do aluno e cria o lançamento
// de repasse do instrutor. A criação é idempotente por booking_id, então
// a confirmação manual pode correr com a varredura automática sem
// duplicar dinheiro.
type ConfirmCompletion struct {
	repo       domain.Repository
	payoutRepo payoutdomain.Repository
	audit      *audit.Dispatcher
	policy     payoutdomain.Policy
}

func NewConfirmCompletion(
	repo domain.Repository,
	payoutRepo payoutdomain.Repository,
	audit *audit.Dispatcher,
	policy payoutdomain.Policy,
) *ConfirmCompletion {
	return &ConfirmCompletion{
		repo:       repo,
		payoutRepo: payoutRepo,
		audit:      audit,
		policy:     policy,
	}
}

func (uc *ConfirmCompletion) Execute(
	ctx context.Context,
	studentID uint,
	bookingID uint,
) (*models.Booking, error) {

	now := time.Now().UTC()

	b, err := uc.repo.Transition(ctx, bookingID, func(b *models.Booking) error {
		if b.StudentID != studentID {
			return httperr.ErrBusiness("booking_not_found")
		}
		return domain.ConfirmByStudent(b, now)
	})
	if err != nil {
		return nil, err
	}

	if err := CreatePayoutEntry(ctx, uc.payoutRepo, b, uc.policy, now); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &studentID,
		Actor:    domain.ActorStudent,
		Action:   "booking_confirmed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

// CreatePayoutEntry cria (idempotentemente) o lançamento de uma aula
// concluída com pagamento confirmado. Compartilhado entre a confirmação
// manual e a automática.
func CreatePayoutEntry(
	ctx context.Context,
	payoutRepo payoutdomain.Repository,
	b *models.Booking,
	policy payoutdomain.Policy,
	now time.Time,
) error {

	if b.PaymentStatus != domain.PaymentSucceeded {
		return nil
	}

	entry := payoutdomain.NewEntry(b, policy.BaseFeePercent, now, policy.StandardWait)
	return payoutRepo.CreateEntry(ctx, entry)
}
