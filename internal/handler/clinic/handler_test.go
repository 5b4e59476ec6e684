package clinic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findamedi/clinics-api/internal/handler"
	"github.com/findamedi/clinics-api/internal/model"
	"github.com/findamedi/clinics-api/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
	handler.RegisterValidations()
}

type fakeClinicService struct {
	clinics    []*model.Clinic
	total      int
	bySlug     map[string]*model.Clinic
	byID       map[uuid.UUID]*model.Clinic
	lastFilter *model.ClinicFilter
	lastView   model.ViewEvent
}

func (s *fakeClinicService) ListClinics(ctx context.Context, filter *model.ClinicFilter) ([]*model.Clinic, int, error) {
	s.lastFilter = filter
	return s.clinics, s.total, nil
}

func (s *fakeClinicService) GetClinicBySlug(ctx context.Context, slug string, view model.ViewEvent) (*model.Clinic, error) {
	s.lastView = view
	c, ok := s.bySlug[slug]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (s *fakeClinicService) CompareClinics(ctx context.Context, ids []uuid.UUID) ([]*model.Clinic, error) {
	var out []*model.Clinic
	for _, id := range ids {
		if c, ok := s.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func setupRouter(svc *fakeClinicService) *gin.Engine {
	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func makeClinics(n int) []*model.Clinic {
	out := make([]*model.Clinic, n)
	for i := range out {
		c := &model.Clinic{Slug: fmt.Sprintf("clinic-%d", i), Name: fmt.Sprintf("Clinic %d", i)}
		c.ID = uuid.New()
		out[i] = c
	}
	return out
}

func TestListClinicsPagination(t *testing.T) {
	svc := &fakeClinicService{clinics: makeClinics(12), total: 15}
	r := setupRouter(svc)

	w := doRequest(r, http.MethodGet, "/api/v1/clinics")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Clinics    []json.RawMessage `json:"clinics"`
		Pagination struct {
			Page       int `json:"page"`
			Limit      int `json:"limit"`
			Total      int `json:"total"`
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Len(t, resp.Clinics, 12)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 12, resp.Pagination.Limit)
	assert.Equal(t, 15, resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
}

func TestListClinicsPassesFilters(t *testing.T) {
	svc := &fakeClinicService{}
	r := setupRouter(svc)

	w := doRequest(r, http.MethodGet,
		"/api/v1/clinics?category=dis-tedavileri&priceMin=1000&priceMax=4000&rating=4&location=Kadikoy&sort=rating&page=2")
	require.Equal(t, http.StatusOK, w.Code)

	f := svc.lastFilter
	require.NotNil(t, f)
	assert.Equal(t, "dis-tedavileri", f.Category)
	require.NotNil(t, f.PriceMin)
	assert.Equal(t, 1000, *f.PriceMin)
	require.NotNil(t, f.PriceMax)
	assert.Equal(t, 4000, *f.PriceMax)
	require.NotNil(t, f.Rating)
	assert.Equal(t, 4.0, *f.Rating)
	assert.Equal(t, "Kadikoy", f.Location)
	assert.Equal(t, model.SortRating, f.Sort)
	assert.Equal(t, 2, f.Page)
}

func TestListClinicsRejectsBadQuery(t *testing.T) {
	r := setupRouter(&fakeClinicService{})

	for _, path := range []string{
		"/api/v1/clinics?rating=9",
		"/api/v1/clinics?sort=view_count",
		"/api/v1/clinics?limit=1000",
		"/api/v1/clinics?category=Not%20A%20Slug",
	} {
		w := doRequest(r, http.MethodGet, path)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestGetClinic(t *testing.T) {
	clinic := &model.Clinic{Slug: "esteworld", Name: "Esteworld"}
	clinic.ID = uuid.New()
	svc := &fakeClinicService{bySlug: map[string]*model.Clinic{"esteworld": clinic}}
	r := setupRouter(svc)

	w := doRequest(r, http.MethodGet, "/api/v1/clinics/esteworld")
	require.Equal(t, http.StatusOK, w.Code)

	var got model.Clinic
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "esteworld", got.Slug)
	assert.NotEmpty(t, svc.lastView.VisitorID)
}

func TestGetClinicNotFound(t *testing.T) {
	r := setupRouter(&fakeClinicService{bySlug: map[string]*model.Clinic{}})

	w := doRequest(r, http.MethodGet, "/api/v1/clinics/no-such-clinic")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Clinic not found"}`, w.Body.String())
}

func TestCompareClinics(t *testing.T) {
	a := &model.Clinic{Slug: "a"}
	a.ID = uuid.New()
	b := &model.Clinic{Slug: "b"}
	b.ID = uuid.New()
	svc := &fakeClinicService{byID: map[uuid.UUID]*model.Clinic{a.ID: a, b.ID: b}}
	r := setupRouter(svc)

	// A malformed id in the list is skipped, not an error.
	path := fmt.Sprintf("/api/v1/clinics/compare?ids=%s,not-a-uuid,%s", a.ID, b.ID)
	w := doRequest(r, http.MethodGet, path)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Clinics []model.Clinic `json:"clinics"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Clinics, 2)
	assert.Equal(t, "a", resp.Clinics[0].Slug)
	assert.Equal(t, "b", resp.Clinics[1].Slug)
}

func TestCompareClinicsRequiresIds(t *testing.T) {
	r := setupRouter(&fakeClinicService{})

	w := doRequest(r, http.MethodGet, "/api/v1/clinics/compare")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
