package booking

import (
	"context"
	"log"
	"time"

	"github.com/PilotarApp/lesson-scheduler/internal/audit"
	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/booking"
	payoutdomain "github.com/PilotarApp/lesson-scheduler/internal/domain/payout"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

const sweepBatchSize = 200

// AutoConfirmSweep avança aulas cuja janela de confirmação do aluno
// venceu. Segura para rodar em qualquer frequência: a seleção é por
// deadline vencido e a transição + criação do lançamento são
// idempotentes. A mesma varredura repara confirmações que commitaram
// mas ficaram sem lançamento por falha transiente: o repositório
// devolve essas aulas até o lançamento existir.
type AutoConfirmSweep struct {
	repo       domain.Repository
	payoutRepo payoutdomain.Repository
	audit      *audit.Dispatcher
	policy     payoutdomain.Policy
}

func NewAutoConfirmSweep(
	repo domain.Repository,
	payoutRepo payoutdomain.Repository,
	audit *audit.Dispatcher,
	policy payoutdomain.Policy,
) *AutoConfirmSweep {
	return &AutoConfirmSweep{
		repo:       repo,
		payoutRepo: payoutRepo,
		audit:      audit,
		policy:     policy,
	}
}

// Run processa cada aula vencida de forma independente; erro em uma não
// interrompe as demais. Retorna quantas foram confirmadas.
func (uc *AutoConfirmSweep) Run(ctx context.Context, now time.Time) (int, error) {
	ids, err := uc.repo.ListAutoConfirmDue(ctx, now, sweepBatchSize)
	if err != nil {
		return 0, err
	}

	confirmed := 0
	for _, id := range ids {
		changed := false

		b, err := uc.repo.Transition(ctx, id, func(b *models.Booking) error {
			var err error
			changed, err = domain.AutoConfirm(b, now)
			return err
		})
		if err != nil {
			log.Println("auto-confirm sweep: booking", id, "error:", err)
			continue
		}

		// o lançamento é criado (idempotente) mesmo quando a aula já
		// estava confirmada: é o caminho de reparo de uma criação que
		// falhou depois do commit da confirmação
		if b.CompletedByStudentAt != nil {
			if err := CreatePayoutEntry(ctx, uc.payoutRepo, b, uc.policy, now); err != nil {
				log.Println("auto-confirm sweep: payout entry for booking", id, "error:", err)
				continue
			}
		}

		if !changed {
			continue
		}

		uc.audit.Dispatch(audit.Event{
			Actor:    domain.ActorSystem,
			Action:   "booking_auto_confirmed",
			Entity:   "booking",
			EntityID: &b.ID,
		})
		confirmed++
	}

	return confirmed, nil
}
