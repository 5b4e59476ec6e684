package review

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findamedi/clinics-api/internal/model"
	"github.com/findamedi/clinics-api/internal/repository"
	"github.com/findamedi/clinics-api/pkg/metrics"
)

var testMetrics = metrics.New("review_service_test")

type fakeReviewRepo struct {
	created  []*model.Review
	statuses map[uuid.UUID]string
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{statuses: make(map[uuid.UUID]string)}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *model.Review) error {
	review.ID = uuid.New()
	r.created = append(r.created, review)
	return nil
}

func (r *fakeReviewRepo) Get(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeReviewRepo) ListByStatus(ctx context.Context, status string) ([]*model.Review, error) {
	var out []*model.Review
	for _, rev := range r.created {
		if rev.Status == status {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) SetStatus(ctx context.Context, id uuid.UUID, status, adminResponse string) error {
	if _, ok := r.statuses[id]; !ok {
		return repository.ErrNotFound
	}
	r.statuses[id] = status
	return nil
}

type fakeSlugResolver struct {
	slugs map[string]uuid.UUID
}

func (r *fakeSlugResolver) List(ctx context.Context, filter *model.ClinicFilter) ([]*model.Clinic, int, error) {
	return nil, 0, nil
}

func (r *fakeSlugResolver) GetBySlug(ctx context.Context, slug string) (*model.Clinic, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeSlugResolver) GetByID(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeSlugResolver) ResolveSlug(ctx context.Context, slug string) (uuid.UUID, error) {
	id, ok := r.slugs[slug]
	if !ok {
		return uuid.Nil, repository.ErrNotFound
	}
	return id, nil
}

func (r *fakeSlugResolver) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return nil
}

func TestSubmitReviewForcesPending(t *testing.T) {
	clinicID := uuid.New()
	reviews := newFakeReviewRepo()
	clinics := &fakeSlugResolver{slugs: map[string]uuid.UUID{"esteworld": clinicID}}

	svc := NewService(reviews, clinics, testMetrics)

	review := &model.Review{
		Name:       "Ayşe K.",
		Rating:     5,
		Comment:    "Çok memnun kaldım.",
		Status:     model.ReviewStatusApproved, // caller cannot self-approve
		IsVerified: true,
	}
	err := svc.SubmitReview(context.Background(), "esteworld", review)
	require.NoError(t, err)

	require.Len(t, reviews.created, 1)
	created := reviews.created[0]
	assert.Equal(t, clinicID, created.ClinicID)
	assert.Equal(t, model.ReviewStatusPending, created.Status)
	assert.False(t, created.IsVerified)
}

func TestSubmitReviewUnknownClinic(t *testing.T) {
	svc := NewService(newFakeReviewRepo(), &fakeSlugResolver{slugs: map[string]uuid.UUID{}}, testMetrics)

	err := svc.SubmitReview(context.Background(), "ghost-clinic", &model.Review{
		Name: "X", Rating: 4, Comment: "ok",
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSubmitReviewRejectsOutOfRangeRating(t *testing.T) {
	svc := NewService(newFakeReviewRepo(), &fakeSlugResolver{slugs: map[string]uuid.UUID{}}, testMetrics)

	for _, rating := range []int{0, 6, -1} {
		err := svc.SubmitReview(context.Background(), "esteworld", &model.Review{
			Name: "X", Rating: rating, Comment: "ok",
		})
		assert.Error(t, err)
	}
}

func TestListByStatusDefaultsToPending(t *testing.T) {
	reviews := newFakeReviewRepo()
	clinics := &fakeSlugResolver{slugs: map[string]uuid.UUID{"a": uuid.New()}}
	svc := NewService(reviews, clinics, testMetrics)

	require.NoError(t, svc.SubmitReview(context.Background(), "a", &model.Review{
		Name: "X", Rating: 4, Comment: "ok",
	}))

	got, err := svc.ListByStatus(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestApproveUnknownReview(t *testing.T) {
	svc := NewService(newFakeReviewRepo(), &fakeSlugResolver{}, testMetrics)

	err := svc.Approve(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestApproveAndReject(t *testing.T) {
	reviews := newFakeReviewRepo()
	id := uuid.New()
	reviews.statuses[id] = model.ReviewStatusPending

	svc := NewService(reviews, &fakeSlugResolver{}, testMetrics)

	require.NoError(t, svc.Approve(context.Background(), id, "Teşekkürler"))
	assert.Equal(t, model.ReviewStatusApproved, reviews.statuses[id])

	require.NoError(t, svc.Reject(context.Background(), id, ""))
	assert.Equal(t, model.ReviewStatusRejected, reviews.statuses[id])
}
