package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/PilotarApp/lesson-scheduler/internal/locker"
)

// Sweep é uma varredura idempotente: processa entidades com deadline
// vencido e devolve quantas mudou.
type Sweep interface {
	Run(ctx context.Context, now time.Time) (int, error)
}

// Scheduler dispara as varreduras periódicas (auto-confirmação, no-show
// e liberação de repasses). O lock em Redis evita trabalho duplicado
// entre instâncias; como as varreduras são idempotentes, perder o lock
// nunca é um problema de correção.
type Scheduler struct {
	sweeps   map[string]Sweep
	locker   *locker.Locker
	interval time.Duration
}

func New(locker *locker.Locker, interval time.Duration) *Scheduler {
	return &Scheduler{
		sweeps:   make(map[string]Sweep),
		locker:   locker,
		interval: interval,
	}
}

func (s *Scheduler) Register(name string, sweep Sweep) {
	s.sweeps[name] = sweep
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("scheduler started (interval %s)", s.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	now := time.Now().UTC()

	for name, sweep := range s.sweeps {
		ok, err := s.locker.Acquire(ctx, "sweep:"+name, s.interval)
		if err != nil {
			log.Println("scheduler: lock error:", err)
			continue
		}
		if !ok {
			continue
		}

		changed, err := sweep.Run(ctx, now)
		if err != nil {
			log.Printf("scheduler: sweep %s error: %v", name, err)
		} else if changed > 0 {
			log.Printf("scheduler: sweep %s processed %d", name, changed)
		}

		if err := s.locker.Release(ctx, "sweep:"+name); err != nil {
			log.Println("scheduler: unlock error:", err)
		}
	}
}
