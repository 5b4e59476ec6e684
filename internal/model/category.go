package model

// Category groups clinics and treatments (e.g. dentistry, hair transplant).
type Category struct {
	Base
	Slug         string `db:"slug" json:"slug"`
	Name         string `db:"name" json:"name"`
	Description  string `db:"description" json:"description,omitempty"`
	Icon         string `db:"icon" json:"icon,omitempty"`
	DisplayOrder int    `db:"display_order" json:"displayOrder"`
	IsActive     bool   `db:"is_active" json:"isActive"`
}
