package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/findamedi/clinics-api/internal/model"
	"github.com/findamedi/clinics-api/internal/repository"
)

type statsRepository struct {
	BaseRepository
}

func NewStatsRepository(base BaseRepository) repository.StatsRepository {
	return &statsRepository{base}
}

// ApplyDelta upserts one clinic/date stats row, adding the delta's
// counters and merging the per-country view breakdown.
func (r *statsRepository) ApplyDelta(ctx context.Context, delta *model.StatsDelta) error {
	countryJSON, err := json.Marshal(delta.CountryViews)
	if err != nil {
		return fmt.Errorf("failed to marshal country views: %w", err)
	}

	query := `
		INSERT INTO clinic_stats (
			id, clinic_id, date, views, unique_visitors, country_views, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, now(), now()
		)
		ON CONFLICT (clinic_id, date) DO UPDATE SET
			views = clinic_stats.views + EXCLUDED.views,
			unique_visitors = clinic_stats.unique_visitors + EXCLUDED.unique_visitors,
			country_views = (
				SELECT COALESCE(jsonb_object_agg(key, total), '{}'::jsonb)
				FROM (
					SELECT key, SUM(value::bigint) AS total
					FROM (
						SELECT key, value FROM jsonb_each_text(clinic_stats.country_views)
						UNION ALL
						SELECT key, value FROM jsonb_each_text(EXCLUDED.country_views)
					) merged
					GROUP BY key
				) totals
			),
			updated_at = now()
	`

	_, err = r.db.ExecContext(ctx, query,
		uuid.New(),
		delta.ClinicID,
		delta.Date,
		delta.Views,
		delta.UniqueVisitors,
		countryJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert clinic stats: %w", err)
	}
	return nil
}

func (r *statsRepository) ListRange(ctx context.Context, clinicID uuid.UUID, from, to time.Time) ([]*model.ClinicStats, error) {
	query := `
		SELECT id, clinic_id, date, views, clicks, unique_visitors, country_views,
			created_at, updated_at
		FROM clinic_stats
		WHERE clinic_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`

	var stats []*model.ClinicStats
	if err := r.db.SelectContext(ctx, &stats, query, clinicID, from, to); err != nil {
		return nil, fmt.Errorf("failed to list clinic stats: %w", err)
	}
	return stats, nil
}
