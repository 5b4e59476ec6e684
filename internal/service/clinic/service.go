package clinic

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/findamedi/clinics-api/internal/model"
	"github.com/findamedi/clinics-api/internal/repository"
	"github.com/findamedi/clinics-api/pkg/logger"
	"github.com/findamedi/clinics-api/pkg/messaging"
	"github.com/findamedi/clinics-api/pkg/metrics"
)

type ClinicServicer interface {
	ListClinics(ctx context.Context, filter *model.ClinicFilter) ([]*model.Clinic, int, error)
	GetClinicBySlug(ctx context.Context, slug string, view model.ViewEvent) (*model.Clinic, error)
	CompareClinics(ctx context.Context, ids []uuid.UUID) ([]*model.Clinic, error)
}

type Service struct {
	repo        repository.ClinicRepository
	broker      messaging.Broker
	viewChannel string
	logger      *logger.Logger
	metrics     *metrics.Metrics
}

func NewService(
	repo repository.ClinicRepository,
	broker messaging.Broker,
	viewChannel string,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Service {
	return &Service{
		repo:        repo,
		broker:      broker,
		viewChannel: viewChannel,
		logger:      logger,
		metrics:     metrics,
	}
}

func (s *Service) ListClinics(ctx context.Context, filter *model.ClinicFilter) ([]*model.Clinic, int, error) {
	filter.Normalize()

	clinics, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, total, nil
}

// GetClinicBySlug returns the clinic with its nested relations and, on
// success, bumps the view counter atomically and publishes a view event
// for the stats worker. Neither side effect can fail the request.
func (s *Service) GetClinicBySlug(ctx context.Context, slug string, view model.ViewEvent) (*model.Clinic, error) {
	clinic, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementViewCount(ctx, clinic.ID); err != nil {
		s.logger.Error(err, "failed to increment view count", "clinic_id", clinic.ID.String())
	} else {
		clinic.ViewCount++
	}
	s.metrics.ClinicViews.Inc()

	view.ClinicID = clinic.ID
	if view.OccurredAt.IsZero() {
		view.OccurredAt = time.Now()
	}
	if s.broker != nil {
		if err := s.broker.Publish(ctx, s.viewChannel, view); err != nil {
			s.metrics.ViewEventsFailed.Inc()
			s.logger.Warn("failed to publish view event", "clinic_id", clinic.ID.String(), "error", err.Error())
		} else {
			s.metrics.ViewEventsPublished.Inc()
		}
	}

	return clinic, nil
}

// CompareClinics resolves every id concurrently. Ids that fail to
// resolve, including ones hidden from the public catalog, are dropped
// from the result; input order is preserved for the rest.
func (s *Service) CompareClinics(ctx context.Context, ids []uuid.UUID) ([]*model.Clinic, error) {
	results := make([]*model.Clinic, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			clinic, err := s.repo.GetByID(ctx, id)
			if err != nil {
				if err != repository.ErrNotFound {
					s.logger.Warn("failed to resolve comparison clinic", "clinic_id", id.String(), "error", err.Error())
				}
				return
			}
			results[i] = clinic
		}(i, id)
	}
	wg.Wait()

	clinics := make([]*model.Clinic, 0, len(ids))
	for _, c := range results {
		if c != nil {
			clinics = append(clinics, c)
		}
	}
	return clinics, nil
}
