package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/findamedi/clinics-api/internal/model"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestBuildListPredicateBase(t *testing.T) {
	where, args := BuildListPredicate(&model.ClinicFilter{})

	assert.Equal(t, "is_active = TRUE AND is_verified = TRUE", where)
	assert.Empty(t, args)
}

func TestBuildListPredicateAllFiltersAreANDed(t *testing.T) {
	f := &model.ClinicFilter{
		Category: "sac-ekimi",
		PriceMin: intPtr(1000),
		PriceMax: intPtr(5000),
		Rating:   floatPtr(4),
		Location: "Şişli",
	}

	where, args := BuildListPredicate(f)

	assert.Equal(t, []interface{}{"sac-ekimi", 1000, 5000, 4.0, "%Şişli%"}, args)
	assert.True(t, strings.HasPrefix(where, "is_active = TRUE AND is_verified = TRUE AND "))
	assert.Contains(t, where, "cat.slug = $1")
	assert.Contains(t, where, "price_range_min >= $2")
	assert.Contains(t, where, "price_range_max <= $3")
	assert.Contains(t, where, "rating >= $4")
	assert.Contains(t, where, "city ILIKE $5 OR district ILIKE $5 OR address ILIKE $5")
}

func TestBuildListPredicatePriceBoundsIndependent(t *testing.T) {
	where, args := BuildListPredicate(&model.ClinicFilter{PriceMax: intPtr(3000)})

	assert.Equal(t, []interface{}{3000}, args)
	assert.Contains(t, where, "price_range_max <= $1")
	assert.NotContains(t, where, "price_range_min")
}

func TestBuildListPredicateLocationWildcards(t *testing.T) {
	_, args := BuildListPredicate(&model.ClinicFilter{Location: "Kadıköy"})

	assert.Equal(t, []interface{}{"%Kadıköy%"}, args)
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "price_range_min ASC NULLS LAST", OrderClause(model.SortPriceAsc))
	assert.Equal(t, "price_range_max DESC NULLS LAST", OrderClause(model.SortPriceDesc))
	assert.Equal(t, "rating DESC", OrderClause(model.SortRating))
	assert.Equal(t, "is_featured DESC, rating DESC", OrderClause(model.SortFeatured))
	// Unknown keys fall back to the featured ordering, never into SQL.
	assert.Equal(t, "is_featured DESC, rating DESC", OrderClause("updated_at; --"))
}
