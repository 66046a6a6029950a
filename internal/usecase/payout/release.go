package payout

import (
	"context"
	"log"
	"time"

	"github.com/PilotarApp/lesson-scheduler/internal/audit"
	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/payout"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

const sweepBatchSize = 200

// ReleaseSweep libera lançamentos cuja retenção venceu
// (waiting → available). É assim que o tempo, sem antecipação, destrava
// o dinheiro. Re-execução sobre lançamento já liberado é no-op.
type ReleaseSweep struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReleaseSweep(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ReleaseSweep {
	return &ReleaseSweep{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ReleaseSweep) Run(ctx context.Context, now time.Time) (int, error) {
	ids, err := uc.repo.ListReleaseDue(ctx, now, sweepBatchSize)
	if err != nil {
		return 0, err
	}

	released := 0
	for _, id := range ids {
		changed := false

		e, err := uc.repo.Transition(ctx, id, func(e *models.PayoutEntry) error {
			changed = domain.Release(e, now)
			return nil
		})
		if err != nil {
			log.Println("release sweep: entry", id, "error:", err)
			continue
		}

		if !changed {
			continue
		}

		uc.audit.Dispatch(audit.Event{
			Actor:    "system",
			Action:   "payout_released",
			Entity:   "payout_entry",
			EntityID: &e.ID,
		})
		released++
	}

	return released, nil
}
