package model

import "github.com/google/uuid"

// Treatment belongs to a clinic and a category.
type Treatment struct {
	Base
	ClinicID    uuid.UUID `db:"clinic_id" json:"clinicId"`
	CategoryID  uuid.UUID `db:"category_id" json:"categoryId"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	PriceMin    *int      `db:"price_min" json:"priceMin,omitempty"`
	PriceMax    *int      `db:"price_max" json:"priceMax,omitempty"`
	Duration    string    `db:"duration" json:"duration,omitempty"`
	IsActive    bool      `db:"is_active" json:"isActive"`

	Category *Category `db:"-" json:"category,omitempty"`
}
