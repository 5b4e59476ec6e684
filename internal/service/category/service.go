package category

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/findamedi/clinics-api/internal/model"
	"github.com/findamedi/clinics-api/internal/repository"
)

const cacheKey = "categories.active"

type CategoryServicer interface {
	ListCategories(ctx context.Context) ([]*model.Category, error)
}

// Service serves the category catalog through a small TTL cache; the
// catalog is tiny and read on nearly every page.
type Service struct {
	repo  repository.CategoryRepository
	cache *gocache.Cache
}

func NewService(repo repository.CategoryRepository, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		repo:  repo,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (s *Service) ListCategories(ctx context.Context) ([]*model.Category, error) {
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.([]*model.Category), nil
	}

	categories, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	s.cache.SetDefault(cacheKey, categories)
	return categories, nil
}
