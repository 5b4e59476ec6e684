package model

import (
	"time"

	"github.com/google/uuid"
)

// BeforeAfter is a paired image record demonstrating a treatment outcome.
type BeforeAfter struct {
	Base
	ClinicID       uuid.UUID  `db:"clinic_id" json:"clinicId"`
	TreatmentID    *uuid.UUID `db:"treatment_id" json:"treatmentId,omitempty"`
	DoctorID       *uuid.UUID `db:"doctor_id" json:"doctorId,omitempty"`
	Title          string     `db:"title" json:"title,omitempty"`
	BeforeImageURL string     `db:"before_image_url" json:"beforeImageUrl"`
	AfterImageURL  string     `db:"after_image_url" json:"afterImageUrl"`
	TreatmentDate  *time.Time `db:"treatment_date" json:"treatmentDate,omitempty"`
	PatientAge     *int       `db:"patient_age" json:"patientAge,omitempty"`
	PatientGender  string     `db:"patient_gender" json:"patientGender,omitempty"`
	IsActive       bool       `db:"is_active" json:"isActive"`

	Doctor    *Doctor    `db:"-" json:"doctor,omitempty"`
	Treatment *Treatment `db:"-" json:"treatment,omitempty"`
}
