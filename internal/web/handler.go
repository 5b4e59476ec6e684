package web

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/findamedi/clinics-api/internal/model"
	"github.com/findamedi/clinics-api/internal/repository"
	categoryService "github.com/findamedi/clinics-api/internal/service/category"
	clinicService "github.com/findamedi/clinics-api/internal/service/clinic"
	contactService "github.com/findamedi/clinics-api/internal/service/contact"
	"github.com/findamedi/clinics-api/pkg/httputil"
	"github.com/findamedi/clinics-api/pkg/logger"
)

// Handler renders the visitor-facing pages. The pages consume the same
// services as the JSON API; templating is the only difference.
type Handler struct {
	clinics      clinicService.ClinicServicer
	categories   categoryService.CategoryServicer
	contact      contactService.ContactServicer
	logger       *logger.Logger
	baseURL      string
	templateGlob string
}

func NewHandler(
	clinics clinicService.ClinicServicer,
	categories categoryService.CategoryServicer,
	contact contactService.ContactServicer,
	logger *logger.Logger,
	baseURL string,
	templateGlob string,
) *Handler {
	if templateGlob == "" {
		templateGlob = "web/templates/**/*.html"
	}
	return &Handler{
		clinics:      clinics,
		categories:   categories,
		contact:      contact,
		logger:       logger,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		templateGlob: templateGlob,
	}
}

// render injects the canonical self link before handing off to the
// template.
func (h *Handler) render(c *gin.Context, status int, page string, data gin.H) {
	if h.baseURL != "" {
		data["Canonical"] = h.baseURL + c.Request.URL.Path
	}
	c.HTML(status, page, data)
}

func (h *Handler) RegisterRoutes(e *gin.Engine) {
	e.SetFuncMap(template.FuncMap{
		"priceRange": priceRange,
		"stars":      stars,
		"seq":        seq,
		"inc":        func(i int) int { return i + 1 },
		"dec":        func(i int) int { return i - 1 },
	})
	e.LoadHTMLGlob(h.templateGlob)
	e.Static("/static", "web/static")

	e.GET("/", h.Home)
	e.GET("/klinikler", h.Clinics)
	e.GET("/klinik/:slug", h.ClinicDetail)
	e.GET("/karsilastir", h.Compare)
	e.GET("/hakkimizda", h.About)
	e.GET("/iletisim", h.ContactForm)
	e.POST("/iletisim", h.ContactSubmit)
}

// priceRange renders a clinic's price band for display; either bound may
// be absent.
func priceRange(min, max *int) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("€%d – €%d", *min, *max)
	case min != nil:
		return fmt.Sprintf("€%d+", *min)
	case max != nil:
		return fmt.Sprintf("€%d'ye kadar", *max)
	default:
		return "Fiyat bilgisi yok"
	}
}

// stars maps a rating to filled star count for the template loop.
func stars(rating float64) int {
	n := int(rating + 0.5)
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return n
}

func seq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i + 1
	}
	return s
}

func (h *Handler) Home(c *gin.Context) {
	featured := &model.ClinicFilter{Limit: 6}
	clinics, _, err := h.clinics.ListClinics(c.Request.Context(), featured)
	if err != nil {
		h.renderError(c, err)
		return
	}

	categories, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.render(c, http.StatusOK, "pages/home", gin.H{
		"Title":      "İstanbul'un En İyi Klinikleri",
		"Clinics":    clinics,
		"Categories": categories,
	})
}

// filterFromQuery builds the listing filter from the sidebar form. The
// form submits via GET so the resulting URL is shareable.
func filterFromQuery(c *gin.Context) *model.ClinicFilter {
	filter := &model.ClinicFilter{
		Category: c.Query("category"),
		Location: c.Query("location"),
		Sort:     c.Query("sort"),
	}
	if v, err := strconv.Atoi(c.Query("priceMin")); err == nil && v >= 0 {
		filter.PriceMin = &v
	}
	if v, err := strconv.Atoi(c.Query("priceMax")); err == nil && v >= 0 {
		filter.PriceMax = &v
	}
	if v, err := strconv.ParseFloat(c.Query("rating"), 64); err == nil && v >= 0 && v <= 5 {
		filter.Rating = &v
	}
	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		filter.Page = v
	}
	return filter
}

func (h *Handler) Clinics(c *gin.Context) {
	filter := filterFromQuery(c)

	clinics, total, err := h.clinics.ListClinics(c.Request.Context(), filter)
	if err != nil {
		h.renderError(c, err)
		return
	}

	categories, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.render(c, http.StatusOK, "pages/klinikler", gin.H{
		"Title":      "Klinikler",
		"Clinics":    clinics,
		"Categories": categories,
		"Filter":     filter,
		"Query":      c.Request.URL.Query(),
		"Pagination": httputil.NewPagination(filter.Page, filter.Limit, total),
	})
}

func (h *Handler) ClinicDetail(c *gin.Context) {
	view := model.ViewEvent{
		VisitorID: c.ClientIP(),
		Country:   c.GetHeader("CF-IPCountry"),
	}

	clinic, err := h.clinics.GetClinicBySlug(c.Request.Context(), c.Param("slug"), view)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.render(c, http.StatusNotFound, "pages/notfound", gin.H{
				"Title": "Klinik bulunamadı",
			})
			return
		}
		h.renderError(c, err)
		return
	}

	h.render(c, http.StatusOK, "pages/klinik", gin.H{
		"Title":  clinic.Name,
		"Clinic": clinic,
	})
}

// compareEntry pairs a clinic with the URL that drops it from the
// comparison; removing the last clinic lands on the listing redirect.
type compareEntry struct {
	Clinic    *model.Clinic
	RemoveURL string
}

func compareEntries(clinics []*model.Clinic) []compareEntry {
	entries := make([]compareEntry, len(clinics))
	for i, clinic := range clinics {
		rest := make([]string, 0, len(clinics)-1)
		for j, other := range clinics {
			if j != i {
				rest = append(rest, other.ID.String())
			}
		}
		url := "/karsilastir"
		if len(rest) > 0 {
			url += "?ids=" + strings.Join(rest, ",")
		}
		entries[i] = compareEntry{Clinic: clinic, RemoveURL: url}
	}
	return entries
}

func (h *Handler) Compare(c *gin.Context) {
	var ids []uuid.UUID
	for _, raw := range strings.Split(c.Query("ids"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		c.Redirect(http.StatusFound, "/klinikler")
		return
	}

	clinics, err := h.clinics.CompareClinics(c.Request.Context(), ids)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if len(clinics) == 0 {
		c.Redirect(http.StatusFound, "/klinikler")
		return
	}

	h.render(c, http.StatusOK, "pages/karsilastir", gin.H{
		"Title":   "Klinik Karşılaştırma",
		"Clinics": clinics,
		"Entries": compareEntries(clinics),
	})
}

func (h *Handler) About(c *gin.Context) {
	h.render(c, http.StatusOK, "pages/hakkimizda", gin.H{
		"Title": "Hakkımızda",
	})
}

func (h *Handler) ContactForm(c *gin.Context) {
	h.render(c, http.StatusOK, "pages/iletisim", gin.H{
		"Title": "İletişim",
	})
}

func (h *Handler) ContactSubmit(c *gin.Context) {
	sub := &model.ContactSubmission{
		Name:    strings.TrimSpace(c.PostForm("name")),
		Email:   strings.TrimSpace(c.PostForm("email")),
		Subject: strings.TrimSpace(c.PostForm("subject")),
		Message: strings.TrimSpace(c.PostForm("message")),
	}

	if sub.Name == "" || sub.Email == "" || sub.Subject == "" || sub.Message == "" {
		h.render(c, http.StatusBadRequest, "pages/iletisim", gin.H{
			"Title": "İletişim",
			"Error": "Tüm alanlar zorunludur",
			"Form":  sub,
		})
		return
	}

	if err := h.contact.Submit(c.Request.Context(), sub); err != nil {
		h.renderError(c, err)
		return
	}

	h.render(c, http.StatusOK, "pages/iletisim", gin.H{
		"Title":   "İletişim",
		"Success": "Mesaj başarıyla alındı",
	})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	h.logger.Error(err, "page render failed", "path", c.Request.URL.Path)
	h.render(c, http.StatusInternalServerError, "pages/error", gin.H{
		"Title": "Bir şeyler ters gitti",
	})
}
