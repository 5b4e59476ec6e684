package category

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findamedi/clinics-api/internal/model"
)

type fakeCategoryRepo struct {
	categories []*model.Category
	calls      int
	err        error
}

func (r *fakeCategoryRepo) ListActive(ctx context.Context) ([]*model.Category, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.categories, nil
}

func TestListCategoriesCachesResult(t *testing.T) {
	repo := &fakeCategoryRepo{categories: []*model.Category{
		{Slug: "sac-ekimi", Name: "Saç Ekimi"},
		{Slug: "dis-tedavileri", Name: "Diş Tedavileri"},
	}}
	svc := NewService(repo, time.Minute)

	first, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls)
}

func TestListCategoriesDoesNotCacheErrors(t *testing.T) {
	repo := &fakeCategoryRepo{err: errors.New("database down")}
	svc := NewService(repo, time.Minute)

	_, err := svc.ListCategories(context.Background())
	require.Error(t, err)

	repo.err = nil
	repo.categories = []*model.Category{{Slug: "estetik", Name: "Estetik"}}

	got, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 2, repo.calls)
}
