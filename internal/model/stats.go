package model

import (
	"time"

	"github.com/google/uuid"
)

// ClinicStats holds per-clinic per-date view counters. Write-mostly;
// maintained by the stats worker from view events.
type ClinicStats struct {
	Base
	ClinicID       uuid.UUID `db:"clinic_id" json:"clinicId"`
	Date           time.Time `db:"date" json:"date"`
	Views          int64     `db:"views" json:"views"`
	Clicks         int64     `db:"clicks" json:"clicks"`
	UniqueVisitors int64     `db:"unique_visitors" json:"uniqueVisitors"`
	CountryViews   JSONMap   `db:"country_views" json:"countryViews"`
}

// ViewEvent is published on every successful clinic detail fetch and
// consumed by the stats worker. Losing events is acceptable.
type ViewEvent struct {
	ClinicID   uuid.UUID `json:"clinicId"`
	VisitorID  string    `json:"visitorId,omitempty"`
	Country    string    `json:"country,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// StatsDelta is an aggregated batch of view events for one clinic and date.
type StatsDelta struct {
	ClinicID       uuid.UUID
	Date           time.Time
	Views          int64
	UniqueVisitors int64
	CountryViews   map[string]int64
}
