package model

import "github.com/google/uuid"

// Doctor belongs to a single clinic.
type Doctor struct {
	Base
	ClinicID        uuid.UUID  `db:"clinic_id" json:"clinicId"`
	Name            string     `db:"name" json:"name"`
	Specialty       string     `db:"specialty" json:"specialty"`
	Title           string     `db:"title" json:"title,omitempty"`
	Bio             string     `db:"bio" json:"bio,omitempty"`
	PhotoURL        string     `db:"photo_url" json:"photoUrl,omitempty"`
	ExperienceYears *int       `db:"experience_years" json:"experienceYears,omitempty"`
	Education       JSONMap    `db:"education" json:"education,omitempty"`
	Certifications  StringList `db:"certifications" json:"certifications,omitempty"`
	Languages       StringList `db:"languages" json:"languages,omitempty"`
	IsActive        bool       `db:"is_active" json:"isActive"`
}
