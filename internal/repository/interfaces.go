package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/findamedi/clinics-api/internal/model"
)

// ErrNotFound is returned when a query matches no row. Handlers map it
// to a 404.
var ErrNotFound = errors.New("not found")

type ClinicRepository interface {
	// List returns one page of publicly visible clinics matching the
	// filter, plus the total match count. Rows and count are computed
	// from the same predicate.
	List(ctx context.Context, filter *model.ClinicFilter) ([]*model.Clinic, int, error)
	// GetBySlug returns an active clinic with its nested relations:
	// categories, active doctors, active treatments (with category),
	// active before/afters (with doctor and treatment), and the 10
	// newest approved reviews.
	GetBySlug(ctx context.Context, slug string) (*model.Clinic, error)
	// GetByID returns a publicly visible clinic with its categories;
	// used by the comparison view.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
	// ResolveSlug maps a slug to the id of a publicly visible clinic.
	ResolveSlug(ctx context.Context, slug string) (uuid.UUID, error)
	// IncrementViewCount atomically bumps the clinic's view counter.
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}

type CategoryRepository interface {
	ListActive(ctx context.Context) ([]*model.Category, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	Get(ctx context.Context, id uuid.UUID) (*model.Review, error)
	ListByStatus(ctx context.Context, status string) ([]*model.Review, error)
	// SetStatus updates the moderation status and, when the review is
	// approved, recomputes the clinic's rating and review count from
	// approved reviews in the same transaction.
	SetStatus(ctx context.Context, id uuid.UUID, status, adminResponse string) error
}

type StatsRepository interface {
	ApplyDelta(ctx context.Context, delta *model.StatsDelta) error
	ListRange(ctx context.Context, clinicID uuid.UUID, from, to time.Time) ([]*model.ClinicStats, error)
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
