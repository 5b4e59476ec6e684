package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int
		totalPages int
	}{
		{"exact multiple", 1, 12, 24, 2},
		{"partial last page", 1, 12, 15, 2},
		{"single page", 1, 12, 5, 1},
		{"empty result", 1, 12, 0, 0},
		{"one item", 1, 12, 1, 1},
		{"zero limit", 1, 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.totalPages, p.TotalPages)
		})
	}
}
