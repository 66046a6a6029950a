package payout

import (
	"context"

	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/payout"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
)

type ListPayouts struct {
	repo domain.Repository
}

func NewListPayouts(repo domain.Repository) *ListPayouts {
	return &ListPayouts{repo: repo}
}

func (uc *ListPayouts) Execute(
	ctx context.Context,
	instructorID uint,
) ([]models.PayoutEntry, error) {
	return uc.repo.ListByInstructor(ctx, instructorID)
}
