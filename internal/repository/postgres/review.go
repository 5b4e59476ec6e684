package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/findamedi/clinics-api/internal/model"
	"github.com/findamedi/clinics-api/internal/repository"
)

type reviewRepository struct {
	BaseRepository
}

func NewReviewRepository(base BaseRepository) repository.ReviewRepository {
	return &reviewRepository{base}
}

const reviewColumns = `
	id, clinic_id, name,
	COALESCE(country, '') AS country,
	rating, comment,
	COALESCE(treatment, '') AS treatment,
	is_verified, status,
	COALESCE(admin_response, '') AS admin_response,
	created_at, updated_at
`

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (
			id, clinic_id, name, country, rating, comment, treatment,
			is_verified, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`
	review.ID = uuid.New()
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		review.ID,
		review.ClinicID,
		review.Name,
		review.Country,
		review.Rating,
		review.Comment,
		review.Treatment,
		review.IsVerified,
		review.Status,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) Get(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE id = $1`, reviewColumns)

	var review model.Review
	if err := r.db.GetContext(ctx, &review, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

func (r *reviewRepository) ListByStatus(ctx context.Context, status string) ([]*model.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM reviews
		WHERE status = $1
		ORDER BY created_at DESC
	`, reviewColumns)

	var reviews []*model.Review
	if err := r.db.SelectContext(ctx, &reviews, query, status); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// SetStatus moves a review through moderation. Approvals recompute the
// clinic's aggregate rating and review count inside the same transaction
// so the derived fields always reflect approved reviews.
func (r *reviewRepository) SetStatus(ctx context.Context, id uuid.UUID, status, adminResponse string) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var clinicID uuid.UUID
		err := tx.QueryRowxContext(ctx, `
			UPDATE reviews
			SET status = $1, admin_response = NULLIF($2, ''), updated_at = now()
			WHERE id = $3
			RETURNING clinic_id
		`, status, adminResponse, id).Scan(&clinicID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrNotFound
			}
			return fmt.Errorf("failed to update review status: %w", err)
		}

		if status != model.ReviewStatusApproved && status != model.ReviewStatusRejected {
			return nil
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE clinics SET
				rating = COALESCE((
					SELECT ROUND(AVG(rating)::numeric, 1)
					FROM reviews WHERE clinic_id = $1 AND status = $2
				), 0),
				review_count = (
					SELECT COUNT(*) FROM reviews WHERE clinic_id = $1 AND status = $2
				),
				updated_at = now()
			WHERE id = $1
		`, clinicID, model.ReviewStatusApproved)
		if err != nil {
			return fmt.Errorf("failed to recompute clinic aggregates: %w", err)
		}

		return nil
	})
}
