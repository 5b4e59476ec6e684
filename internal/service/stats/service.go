package stats

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/findamedi/clinics-api/internal/model"
	"github.com/findamedi/clinics-api/internal/repository"
)

type StatsServicer interface {
	ListRange(ctx context.Context, clinicID uuid.UUID, from, to time.Time) ([]*model.ClinicStats, error)
}

type Service struct {
	repo repository.StatsRepository
}

func NewService(repo repository.StatsRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListRange(ctx context.Context, clinicID uuid.UUID, from, to time.Time) ([]*model.ClinicStats, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	return s.repo.ListRange(ctx, clinicID, from, to)
}
