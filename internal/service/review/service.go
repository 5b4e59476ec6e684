package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/findamedi/clinics-api/internal/model"
	"github.com/findamedi/clinics-api/internal/repository"
	"github.com/findamedi/clinics-api/pkg/metrics"
)

type ReviewServicer interface {
	SubmitReview(ctx context.Context, clinicSlug string, review *model.Review) error
	ListByStatus(ctx context.Context, status string) ([]*model.Review, error)
	Approve(ctx context.Context, id uuid.UUID, adminResponse string) error
	Reject(ctx context.Context, id uuid.UUID, adminResponse string) error
}

type Service struct {
	reviews repository.ReviewRepository
	clinics repository.ClinicRepository
	metrics *metrics.Metrics
}

func NewService(reviews repository.ReviewRepository, clinics repository.ClinicRepository, metrics *metrics.Metrics) *Service {
	return &Service{
		reviews: reviews,
		clinics: clinics,
		metrics: metrics,
	}
}

// SubmitReview records a visitor review for a publicly visible clinic.
// New reviews always enter moderation as PENDING.
func (s *Service) SubmitReview(ctx context.Context, clinicSlug string, review *model.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	clinicID, err := s.clinics.ResolveSlug(ctx, clinicSlug)
	if err != nil {
		return err
	}
	review.ClinicID = clinicID

	review.Status = model.ReviewStatusPending
	review.IsVerified = false

	if err := s.reviews.Create(ctx, review); err != nil {
		return fmt.Errorf("failed to submit review: %w", err)
	}

	s.metrics.ReviewsSubmitted.Inc()
	return nil
}

func (s *Service) ListByStatus(ctx context.Context, status string) ([]*model.Review, error) {
	if status == "" {
		status = model.ReviewStatusPending
	}
	return s.reviews.ListByStatus(ctx, status)
}

// Approve publishes the review; the repository recomputes the clinic's
// rating and review count in the same transaction.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, adminResponse string) error {
	if err := s.reviews.SetStatus(ctx, id, model.ReviewStatusApproved, adminResponse); err != nil {
		return err
	}
	s.metrics.ReviewsModerated.WithLabelValues("approved").Inc()
	return nil
}

func (s *Service) Reject(ctx context.Context, id uuid.UUID, adminResponse string) error {
	if err := s.reviews.SetStatus(ctx, id, model.ReviewStatusRejected, adminResponse); err != nil {
		return err
	}
	s.metrics.ReviewsModerated.WithLabelValues("rejected").Inc()
	return nil
}
