package postgres

import (
	"context"
	"fmt"

	"github.com/findamedi/clinics-api/internal/model"
	"github.com/findamedi/clinics-api/internal/repository"
)

type categoryRepository struct {
	BaseRepository
}

func NewCategoryRepository(base BaseRepository) repository.CategoryRepository {
	return &categoryRepository{base}
}

func (r *categoryRepository) ListActive(ctx context.Context) ([]*model.Category, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM categories c
		WHERE c.is_active = TRUE
		ORDER BY c.display_order
	`, categoryColumns)

	var categories []*model.Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
