package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClinicFilterNormalize(t *testing.T) {
	f := &ClinicFilter{}
	f.Normalize()

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, DefaultPageSize, f.Limit)
	assert.Equal(t, SortFeatured, f.Sort)
}

func TestClinicFilterNormalizeKeepsValidValues(t *testing.T) {
	f := &ClinicFilter{Page: 3, Limit: 24, Sort: SortPriceAsc}
	f.Normalize()

	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 24, f.Limit)
	assert.Equal(t, SortPriceAsc, f.Sort)
}

func TestClinicFilterNormalizeRejectsUnknownSort(t *testing.T) {
	f := &ClinicFilter{Sort: "view_count; DROP TABLE clinics"}
	f.Normalize()

	assert.Equal(t, SortFeatured, f.Sort)
}

func TestClinicFilterOffset(t *testing.T) {
	f := &ClinicFilter{Page: 1, Limit: 12}
	assert.Equal(t, 0, f.Offset())

	f.Page = 2
	assert.Equal(t, 12, f.Offset())

	f.Page = 5
	f.Limit = 20
	assert.Equal(t, 80, f.Offset())
}
