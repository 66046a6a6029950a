package booking

import (
	"context"
	"log"
	"time"

	"github.com/PilotarApp/lesson-scheduler/internal/audit"
	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/booking"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

// NoShowSweep marca aulas aceitas cuja janela passou sem código de
// início apresentado.
type NoShowSweep struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewNoShowSweep(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *NoShowSweep {
	return &NoShowSweep{
		repo:  repo,
		audit: audit,
	}
}

func (uc *NoShowSweep) Run(ctx context.Context, now time.Time) (int, error) {
	ids, err := uc.repo.ListNoShowDue(ctx, now, sweepBatchSize)
	if err != nil {
		return 0, err
	}

	marked := 0
	for _, id := range ids {
		changed := false

		b, err := uc.repo.Transition(ctx, id, func(b *models.Booking) error {
			changed = domain.MarkNoShow(b, now)
			return nil
		})
		if err != nil {
			log.Println("no-show sweep: booking", id, "error:", err)
			continue
		}

		if !changed {
			continue
		}

		uc.audit.Dispatch(audit.Event{
			Actor:    domain.ActorSystem,
			Action:   "booking_no_show",
			Entity:   "booking",
			EntityID: &b.ID,
		})
		marked++
	}

	return marked, nil
}
