package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/findamedi/clinics-api/internal/model"
	"github.com/findamedi/clinics-api/internal/repository"
)

type clinicRepository struct {
	BaseRepository
}

func NewClinicRepository(base BaseRepository) repository.ClinicRepository {
	return &clinicRepository{base}
}

// clinicColumns coalesces nullable text columns so rows scan into plain
// string fields.
const clinicColumns = `
	id, slug, name,
	COALESCE(description, '') AS description,
	COALESCE(short_description, '') AS short_description,
	COALESCE(email, '') AS email,
	phone,
	COALESCE(whatsapp, '') AS whatsapp,
	COALESCE(website, '') AS website,
	COALESCE(logo_url, '') AS logo_url,
	address, city, district, latitude, longitude,
	rating, review_count, price_range_min, price_range_max, established_year,
	is_active, is_verified, is_featured,
	COALESCE(subscription_plan, '') AS subscription_plan,
	COALESCE(subscription_status, '') AS subscription_status,
	subscription_start_date, subscription_end_date,
	view_count, created_at, updated_at
`

// BuildListPredicate translates a listing filter into a WHERE clause and
// its positional arguments. Every supplied filter is ANDed; within the
// price filter both bounds are ANDed, and the location match is its own
// clause over city, district and address.
func BuildListPredicate(f *model.ClinicFilter) (string, []interface{}) {
	conds := []string{"is_active = TRUE", "is_verified = TRUE"}
	args := []interface{}{}

	next := func() string { return fmt.Sprintf("$%d", len(args)+1) }

	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM clinic_categories cc
			JOIN categories cat ON cat.id = cc.category_id
			WHERE cc.clinic_id = clinics.id AND cat.slug = %s AND cat.is_active = TRUE
		)`, next()))
	}

	if f.PriceMin != nil {
		args = append(args, *f.PriceMin)
		conds = append(conds, "price_range_min >= "+next())
	}
	if f.PriceMax != nil {
		args = append(args, *f.PriceMax)
		conds = append(conds, "price_range_max <= "+next())
	}

	if f.Rating != nil {
		args = append(args, *f.Rating)
		conds = append(conds, "rating >= "+next())
	}

	if f.Location != "" {
		args = append(args, "%"+f.Location+"%")
		p := next()
		conds = append(conds, fmt.Sprintf("(city ILIKE %s OR district ILIKE %s OR address ILIKE %s)", p, p, p))
	}

	return strings.Join(conds, " AND "), args
}

// OrderClause maps a sort key to a whitelisted ORDER BY expression.
func OrderClause(sort string) string {
	switch sort {
	case model.SortPriceAsc:
		return "price_range_min ASC NULLS LAST"
	case model.SortPriceDesc:
		return "price_range_max DESC NULLS LAST"
	case model.SortRating:
		return "rating DESC"
	default:
		return "is_featured DESC, rating DESC"
	}
}

func (r *clinicRepository) List(ctx context.Context, filter *model.ClinicFilter) ([]*model.Clinic, int, error) {
	where, args := BuildListPredicate(filter)

	listQuery := fmt.Sprintf(`
		SELECT %s FROM clinics
		WHERE %s
		ORDER BY %s
		LIMIT %d OFFSET %d
	`, clinicColumns, where, OrderClause(filter.Sort), filter.Limit, filter.Offset())

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM clinics WHERE %s`, where)

	// Rows and total share one predicate but run as independent queries;
	// skew under concurrent writes is acceptable for catalog browsing.
	var (
		wg       sync.WaitGroup
		clinics  []*model.Clinic
		total    int
		listErr  error
		countErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		listErr = r.db.SelectContext(ctx, &clinics, listQuery, args...)
	}()
	go func() {
		defer wg.Done()
		countErr = r.db.GetContext(ctx, &total, countQuery, args...)
	}()
	wg.Wait()

	if listErr != nil {
		return nil, 0, fmt.Errorf("failed to list clinics: %w", listErr)
	}
	if countErr != nil {
		return nil, 0, fmt.Errorf("failed to count clinics: %w", countErr)
	}

	if err := r.attachCategories(ctx, clinics); err != nil {
		return nil, 0, err
	}

	return clinics, total, nil
}

func (r *clinicRepository) GetBySlug(ctx context.Context, slug string) (*model.Clinic, error) {
	query := fmt.Sprintf(`SELECT %s FROM clinics WHERE slug = $1 AND is_active = TRUE`, clinicColumns)

	var clinic model.Clinic
	if err := r.db.GetContext(ctx, &clinic, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}

	if err := r.loadRelations(ctx, &clinic); err != nil {
		return nil, err
	}

	return &clinic, nil
}

func (r *clinicRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	query := fmt.Sprintf(`SELECT %s FROM clinics WHERE id = $1 AND is_active = TRUE AND is_verified = TRUE`, clinicColumns)

	var clinic model.Clinic
	if err := r.db.GetContext(ctx, &clinic, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}

	if err := r.attachCategories(ctx, []*model.Clinic{&clinic}); err != nil {
		return nil, err
	}

	return &clinic, nil
}

func (r *clinicRepository) ResolveSlug(ctx context.Context, slug string) (uuid.UUID, error) {
	var id uuid.UUID
	query := `SELECT id FROM clinics WHERE slug = $1 AND is_active = TRUE AND is_verified = TRUE`
	if err := r.db.GetContext(ctx, &id, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, repository.ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to resolve clinic slug: %w", err)
	}
	return id, nil
}

func (r *clinicRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE clinics SET view_count = view_count + 1, updated_at = now() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}

type categoryLink struct {
	LinkClinicID uuid.UUID `db:"link_clinic_id"`
	model.Category
}

const categoryColumns = `
	c.id, c.slug, c.name,
	COALESCE(c.description, '') AS description,
	COALESCE(c.icon, '') AS icon,
	c.display_order, c.is_active, c.created_at, c.updated_at
`

func (r *clinicRepository) attachCategories(ctx context.Context, clinics []*model.Clinic) error {
	if len(clinics) == 0 {
		return nil
	}

	ids := make([]string, len(clinics))
	byID := make(map[uuid.UUID]*model.Clinic, len(clinics))
	for i, c := range clinics {
		ids[i] = c.ID.String()
		byID[c.ID] = c
	}

	query := fmt.Sprintf(`
		SELECT cc.clinic_id AS link_clinic_id, %s
		FROM clinic_categories cc
		JOIN categories c ON c.id = cc.category_id
		WHERE cc.clinic_id = ANY($1) AND c.is_active = TRUE
		ORDER BY c.display_order
	`, categoryColumns)

	var links []categoryLink
	if err := r.db.SelectContext(ctx, &links, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to load clinic categories: %w", err)
	}

	for i := range links {
		link := links[i]
		if clinic, ok := byID[link.LinkClinicID]; ok {
			cat := link.Category
			clinic.Categories = append(clinic.Categories, &cat)
		}
	}

	return nil
}

func (r *clinicRepository) loadRelations(ctx context.Context, clinic *model.Clinic) error {
	if err := r.attachCategories(ctx, []*model.Clinic{clinic}); err != nil {
		return err
	}

	doctorsQuery := `
		SELECT id, clinic_id, name, specialty,
			COALESCE(title, '') AS title,
			COALESCE(bio, '') AS bio,
			COALESCE(photo_url, '') AS photo_url,
			experience_years, education, certifications, languages,
			is_active, created_at, updated_at
		FROM doctors
		WHERE clinic_id = $1 AND is_active = TRUE
		ORDER BY name
	`
	if err := r.db.SelectContext(ctx, &clinic.Doctors, doctorsQuery, clinic.ID); err != nil {
		return fmt.Errorf("failed to load doctors: %w", err)
	}

	treatmentsQuery := `
		SELECT id, clinic_id, category_id, name,
			COALESCE(description, '') AS description,
			price_min, price_max,
			COALESCE(duration, '') AS duration,
			is_active, created_at, updated_at
		FROM treatments
		WHERE clinic_id = $1 AND is_active = TRUE
		ORDER BY name
	`
	if err := r.db.SelectContext(ctx, &clinic.Treatments, treatmentsQuery, clinic.ID); err != nil {
		return fmt.Errorf("failed to load treatments: %w", err)
	}

	if err := r.attachTreatmentCategories(ctx, clinic.Treatments); err != nil {
		return err
	}

	beforeAfterQuery := `
		SELECT id, clinic_id, treatment_id, doctor_id,
			COALESCE(title, '') AS title,
			before_image_url, after_image_url, treatment_date,
			patient_age,
			COALESCE(patient_gender, '') AS patient_gender,
			is_active, created_at, updated_at
		FROM before_after_images
		WHERE clinic_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &clinic.BeforeAfterImages, beforeAfterQuery, clinic.ID); err != nil {
		return fmt.Errorf("failed to load before/after images: %w", err)
	}

	// Resolve before/after references against the already loaded rows.
	doctorsByID := make(map[uuid.UUID]*model.Doctor, len(clinic.Doctors))
	for _, d := range clinic.Doctors {
		doctorsByID[d.ID] = d
	}
	treatmentsByID := make(map[uuid.UUID]*model.Treatment, len(clinic.Treatments))
	for _, t := range clinic.Treatments {
		treatmentsByID[t.ID] = t
	}
	for _, ba := range clinic.BeforeAfterImages {
		if ba.DoctorID != nil {
			ba.Doctor = doctorsByID[*ba.DoctorID]
		}
		if ba.TreatmentID != nil {
			ba.Treatment = treatmentsByID[*ba.TreatmentID]
		}
	}

	reviewsQuery := `
		SELECT id, clinic_id, name,
			COALESCE(country, '') AS country,
			rating, comment,
			COALESCE(treatment, '') AS treatment,
			is_verified, status,
			COALESCE(admin_response, '') AS admin_response,
			created_at, updated_at
		FROM reviews
		WHERE clinic_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 10
	`
	if err := r.db.SelectContext(ctx, &clinic.Reviews, reviewsQuery, clinic.ID, model.ReviewStatusApproved); err != nil {
		return fmt.Errorf("failed to load reviews: %w", err)
	}

	return nil
}

func (r *clinicRepository) attachTreatmentCategories(ctx context.Context, treatments []*model.Treatment) error {
	if len(treatments) == 0 {
		return nil
	}

	ids := make([]string, 0, len(treatments))
	seen := make(map[uuid.UUID]struct{}, len(treatments))
	for _, t := range treatments {
		if _, ok := seen[t.CategoryID]; !ok {
			seen[t.CategoryID] = struct{}{}
			ids = append(ids, t.CategoryID.String())
		}
	}

	query := fmt.Sprintf(`SELECT %s FROM categories c WHERE c.id = ANY($1)`, categoryColumns)

	var categories []*model.Category
	if err := r.db.SelectContext(ctx, &categories, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to load treatment categories: %w", err)
	}

	byID := make(map[uuid.UUID]*model.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	for _, t := range treatments {
		t.Category = byID[t.CategoryID]
	}

	return nil
}
