package model

import "github.com/google/uuid"

// Review moderation states. Only approved reviews are publicly visible.
const (
	ReviewStatusPending  = "PENDING"
	ReviewStatusApproved = "APPROVED"
	ReviewStatusRejected = "REJECTED"
)

// Review is a visitor-submitted clinic review subject to moderation.
type Review struct {
	Base
	ClinicID      uuid.UUID `db:"clinic_id" json:"clinicId"`
	Name          string    `db:"name" json:"name"`
	Country       string    `db:"country" json:"country,omitempty"`
	Rating        int       `db:"rating" json:"rating"`
	Comment       string    `db:"comment" json:"comment"`
	Treatment     string    `db:"treatment" json:"treatment,omitempty"`
	IsVerified    bool      `db:"is_verified" json:"isVerified"`
	Status        string    `db:"status" json:"status"`
	AdminResponse string    `db:"admin_response" json:"adminResponse,omitempty"`
}
