package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findamedi/clinics-api/internal/model"
	"github.com/findamedi/clinics-api/internal/repository"
	"github.com/findamedi/clinics-api/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeClinicService struct {
	clinics []*model.Clinic
	total   int
	bySlug  map[string]*model.Clinic
	byID    map[uuid.UUID]*model.Clinic
}

func (s *fakeClinicService) ListClinics(ctx context.Context, filter *model.ClinicFilter) ([]*model.Clinic, int, error) {
	return s.clinics, s.total, nil
}

func (s *fakeClinicService) GetClinicBySlug(ctx context.Context, slug string, view model.ViewEvent) (*model.Clinic, error) {
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

type fakeCategoryService struct {
	categories []*model.Category
}

func (s *fakeCategoryService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categories, nil
}

type fakeContactService struct {
	submitted []*model.ContactSubmission
}

func (s *fakeContactService) Submit(ctx context.Context, sub *model.ContactSubmission) error {
	s.submitted = append(s.submitted, sub)
	return nil
}

func setupPages(clinics *fakeClinicService, contact *fakeContactService) *gin.Engine {
	r := gin.New()
	h := NewHandler(
		clinics,
		&fakeCategoryService{categories: []*model.Category{{Slug: "sac-ekimi", Name: "Saç Ekimi"}}},
		contact,
		logger.New(&logger.Config{Output: io.Discard}),
		"http://localhost:8080",
		"../../web/templates/**/*.html",
	)
	h.RegisterRoutes(r)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func compareClinic(name string) *model.Clinic {
	c := &model.Clinic{
		Slug:     strings.ToLower(name),
		Name:     name,
		Phone:    "+90 212 555 0101",
		Whatsapp: "902125550101",
		Website:  "https://example.com",
		City:     "İstanbul",
		District: "Şişli",
		Categories: []*model.Category{
			{Slug: "sac-ekimi", Name: "Saç Ekimi"},
		},
	}
	c.ID = uuid.New()
	return c
}

func TestCompareRedirectsWithoutIDs(t *testing.T) {
	r := setupPages(&fakeClinicService{}, &fakeContactService{})

	for _, path := range []string{"/karsilastir", "/karsilastir?ids=", "/karsilastir?ids=not-a-uuid"} {
		w := get(r, path)
		require.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/klinikler", w.Header().Get("Location"), path)
	}
}

func TestCompareRedirectsWhenNothingResolves(t *testing.T) {
	r := setupPages(&fakeClinicService{byID: map[uuid.UUID]*model.Clinic{}}, &fakeContactService{})

	w := get(r, "/karsilastir?ids="+uuid.New().String())
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/klinikler", w.Header().Get("Location"))
}

func TestCompareRendersAttributesAndRemoveLinks(t *testing.T) {
	a := compareClinic("Esteworld")
	b := compareClinic("Dentgroup")
	svc := &fakeClinicService{byID: map[uuid.UUID]*model.Clinic{a.ID: a, b.ID: b}}
	r := setupPages(svc, &fakeContactService{})

	w := get(r, fmt.Sprintf("/karsilastir?ids=%s,%s", a.ID, b.ID))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Saç Ekimi")
	assert.Contains(t, body, "+90 212 555 0101")
	assert.Contains(t, body, "wa.me/902125550101")
	assert.Contains(t, body, "https://example.com")
	// Removing one clinic links to a comparison holding only the other.
	assert.Contains(t, body, "/karsilastir?ids="+b.ID.String())
	assert.Contains(t, body, "/karsilastir?ids="+a.ID.String())
	assert.Contains(t, body, "Kaldır")
}

func TestCompareSingleClinicRemoveLinksToBareCompare(t *testing.T) {
	a := compareClinic("Esteworld")
	svc := &fakeClinicService{byID: map[uuid.UUID]*model.Clinic{a.ID: a}}
	r := setupPages(svc, &fakeContactService{})

	w := get(r, "/karsilastir?ids="+a.ID.String())
	require.Equal(t, http.StatusOK, w.Code)

	// The only remove target is /karsilastir without ids, which redirects
	// to the listing when followed.
	assert.Contains(t, w.Body.String(), `href="/karsilastir"`)
}

func TestClinicDetailNotFoundPage(t *testing.T) {
	r := setupPages(&fakeClinicService{bySlug: map[string]*model.Clinic{}}, &fakeContactService{})

	w := get(r, "/klinik/no-such-clinic")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Klinik bulunamadı")
}

func TestContactSubmitMissingFieldsRerenders(t *testing.T) {
	contact := &fakeContactService{}
	r := setupPages(&fakeClinicService{}, contact)

	w := postForm(r, "/iletisim", url.Values{
		"name":  {"Mehmet"},
		"email": {"mehmet@example.com"},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Tüm alanlar zorunludur")
	// The filled fields are echoed back into the form.
	assert.Contains(t, w.Body.String(), "Mehmet")
	assert.Empty(t, contact.submitted)
}

func TestContactSubmitComplete(t *testing.T) {
	contact := &fakeContactService{}
	r := setupPages(&fakeClinicService{}, contact)

	w := postForm(r, "/iletisim", url.Values{
		"name":    {"Mehmet"},
		"email":   {"mehmet@example.com"},
		"subject": {"Saç ekimi"},
		"message": {"Bilgi almak istiyorum."},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mesaj başarıyla alındı")
	require.Len(t, contact.submitted, 1)
	assert.Equal(t, "mehmet@example.com", contact.submitted[0].Email)
}

func TestListingRendersResultCountAndSidebar(t *testing.T) {
	svc := &fakeClinicService{clinics: []*model.Clinic{compareClinic("Esteworld")}, total: 1}
	r := setupPages(svc, &fakeContactService{})

	w := get(r, "/klinikler?category=sac-ekimi")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1 klinik bulundu")
	assert.Contains(t, w.Body.String(), "Saç Ekimi")
}
