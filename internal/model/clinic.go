package model

import "time"

// Clinic is a medical provider listed in the directory. Slug is the
// external identity used in URLs; the UUID is the join currency.
type Clinic struct {
	Base
	Slug                  string     `db:"slug" json:"slug"`
	Name                  string     `db:"name" json:"name"`
	Description           string     `db:"description" json:"description,omitempty"`
	ShortDescription      string     `db:"short_description" json:"shortDescription,omitempty"`
	Email                 string     `db:"email" json:"email,omitempty"`
	Phone                 string     `db:"phone" json:"phone"`
	Whatsapp              string     `db:"whatsapp" json:"whatsapp,omitempty"`
	Website               string     `db:"website" json:"website,omitempty"`
	LogoURL               string     `db:"logo_url" json:"logoUrl,omitempty"`
	Address               string     `db:"address" json:"address"`
	City                  string     `db:"city" json:"city"`
	District              string     `db:"district" json:"district"`
	Latitude              *float64   `db:"latitude" json:"latitude,omitempty"`
	Longitude             *float64   `db:"longitude" json:"longitude,omitempty"`
	Rating                float64    `db:"rating" json:"rating"`
	ReviewCount           int        `db:"review_count" json:"reviewCount"`
	PriceRangeMin         *int       `db:"price_range_min" json:"priceRangeMin,omitempty"`
	PriceRangeMax         *int       `db:"price_range_max" json:"priceRangeMax,omitempty"`
	EstablishedYear       *int       `db:"established_year" json:"establishedYear,omitempty"`
	IsActive              bool       `db:"is_active" json:"isActive"`
	IsVerified            bool       `db:"is_verified" json:"isVerified"`
	IsFeatured            bool       `db:"is_featured" json:"isFeatured"`
	SubscriptionPlan      string     `db:"subscription_plan" json:"subscriptionPlan,omitempty"`
	SubscriptionStatus    string     `db:"subscription_status" json:"subscriptionStatus,omitempty"`
	SubscriptionStartDate *time.Time `db:"subscription_start_date" json:"subscriptionStartDate,omitempty"`
	SubscriptionEndDate   *time.Time `db:"subscription_end_date" json:"subscriptionEndDate,omitempty"`
	ViewCount             int64      `db:"view_count" json:"viewCount"`

	// Relations, loaded by the detail query.
	Categories        []*Category    `db:"-" json:"categories,omitempty"`
	Doctors           []*Doctor      `db:"-" json:"doctors,omitempty"`
	Treatments        []*Treatment   `db:"-" json:"treatments,omitempty"`
	BeforeAfterImages []*BeforeAfter `db:"-" json:"beforeAfterImages,omitempty"`
	Reviews           []*Review      `db:"-" json:"reviews,omitempty"`
}

// ClinicFilter carries the listing query parameters. Nil pointer bounds
// mean the filter is absent; all present filters are ANDed together.
type ClinicFilter struct {
	Category string
	PriceMin *int
	PriceMax *int
	Rating   *float64
	Location string
	Sort     string
	Page     int
	Limit    int
}

// Listing sort keys.
const (
	SortFeatured  = "featured"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortRating    = "rating"
)

const DefaultPageSize = 12

// Normalize applies the listing defaults from the public API contract.
func (f *ClinicFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	switch f.Sort {
	case SortPriceAsc, SortPriceDesc, SortRating:
	default:
		f.Sort = SortFeatured
	}
}

// Offset returns the row offset for the current page.
func (f *ClinicFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
