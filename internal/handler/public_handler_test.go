package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/optimizerlabs/site/internal/db"
	"github.com/optimizerlabs/site/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestAPI(t *testing.T) (*API, *gorm.DB, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return NewAPI(gdb, "https://www.example.test"), gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

func testEngine(api *API) *gin.Engine {
	r := gin.New()
	r.GET("/api/pages/home", api.ShowHome)
	r.GET("/api/pages/case-studies", api.ShowCaseStudyIndex)
	r.GET("/api/pages/case-studies/:slug", api.ShowCaseStudy)
	r.GET("/api/pages/about", api.ShowAbout)
	r.GET("/api/press", api.ListPress)
	return r
}

func seedHome(t *testing.T, gdb *gorm.DB) *db.Page {
	t.Helper()

	page, err := service.NewPageTreeService(gdb).CreatePage(service.PageInput{
		Kind:   db.PageKindHome,
		Title:  "Accueil",
		Live:   true,
		Public: true,
		Home:   &service.HomePageInput{HeroTitle: "Optimiser votre production"},
	})
	if err != nil {
		t.Fatalf("seed home page: %v", err)
	}
	return page
}

func seedIndexWithStudies(t *testing.T, gdb *gorm.DB, homeID uint, dates []string) (*db.Page, []*db.Page) {
	t.Helper()

	pages := service.NewPageTreeService(gdb)
	index, err := pages.CreatePage(service.PageInput{
		Kind:           db.PageKindCaseStudyIndex,
		ParentID:       &homeID,
		Title:          "Études de cas",
		Live:           true,
		Public:         true,
		CaseStudyIndex: &service.CaseStudyIndexInput{Intro: "Nos projets"},
	})
	if err != nil {
		t.Fatalf("seed index: %v", err)
	}

	var studies []*db.Page
	for i, d := range dates {
		projectDate, err := time.Parse("2006-01-02", d)
		if err != nil {
			t.Fatalf("parse date: %v", err)
		}
		study, err := pages.CreatePage(service.PageInput{
			Kind:     db.PageKindCaseStudy,
			ParentID: &index.ID,
			Slug:     fmt.Sprintf("projet-%d", i),
			Title:    fmt.Sprintf("Projet %d", i),
			Live:     true,
			Public:   true,
			CaseStudy: &service.CaseStudyInput{
				ProjectDate:  projectDate,
				ClientSector: "Industrie",
			},
		})
		if err != nil {
			t.Fatalf("seed case study: %v", err)
		}
		studies = append(studies, study)
	}
	return index, studies
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestShowHomeContextShape(t *testing.T) {
	api, gdb, cleanup := setupTestAPI(t)
	defer cleanup()

	home := seedHome(t, gdb)
	seedIndexWithStudies(t, gdb, home.ID, []string{"2024-01-01", "2024-06-01"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/pages/home", nil)
	testEngine(api).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["template"] != "home/home_page.html" {
		t.Fatalf("unexpected template: %v", body["template"])
	}

	ctx, ok := body["context"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing context object: %v", body)
	}
	if ctx["hero_title"] != "Optimiser votre production" {
		t.Fatalf("unexpected hero title: %v", ctx["hero_title"])
	}
	if ctx["canonical_url"] != "https://www.example.test/api/pages/home" {
		t.Fatalf("unexpected canonical url: %v", ctx["canonical_url"])
	}

	featured, ok := ctx["featured_projects"].([]interface{})
	if !ok {
		t.Fatalf("featured_projects must be a list, got %T", ctx["featured_projects"])
	}
	if len(featured) != 2 {
		t.Fatalf("expected 2 featured projects, got %d", len(featured))
	}
	if ctx["case_study_index"] == nil {
		t.Fatal("expected case_study_index link")
	}

	// Empty snippet slots stay present as empty lists.
	if testimonials, ok := ctx["testimonials"].([]interface{}); !ok || len(testimonials) != 0 {
		t.Fatalf("expected empty testimonials list, got %v", ctx["testimonials"])
	}
	if press, ok := ctx["press_cuts"].([]interface{}); !ok || len(press) != 0 {
		t.Fatalf("expected empty press list, got %v", ctx["press_cuts"])
	}
}

func TestShowHomeWithoutRootReturnsNotFound(t *testing.T) {
	api, _, cleanup := setupTestAPI(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/pages/home", nil)
	testEngine(api).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestShowCaseStudyIndexFiltersByTagParam(t *testing.T) {
	api, gdb, cleanup := setupTestAPI(t)
	defer cleanup()

	home := seedHome(t, gdb)
	_, studies := seedIndexWithStudies(t, gdb, home.ID, []string{"2024-01-01", "2024-06-01", "2023-12-01"})

	tags := service.NewTagService(gdb)
	if err := tags.Attach(studies[0].ID, "a"); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := tags.Attach(studies[1].ID, "a"); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := tags.Attach(studies[2].ID, "b"); err != nil {
		t.Fatalf("attach: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/pages/case-studies?tag=a", nil)
	testEngine(api).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	ctx := body["context"].(map[string]interface{})
	if ctx["current_tag"] != "a" {
		t.Fatalf("expected echoed tag, got %v", ctx["current_tag"])
	}

	projects := ctx["projects"].([]interface{})
	if len(projects) != 2 {
		t.Fatalf("expected 2 filtered projects, got %d", len(projects))
	}
	first := projects[0].(map[string]interface{})
	if first["project_date"] != "2024-06-01" {
		t.Fatalf("expected most recent first, got %v", first["project_date"])
	}
}

func TestShowCaseStudyRendersSanitizedSections(t *testing.T) {
	api, gdb, cleanup := setupTestAPI(t)
	defer cleanup()

	home := seedHome(t, gdb)
	pages := service.NewPageTreeService(gdb)
	index, err := pages.CreatePage(service.PageInput{
		Kind:           db.PageKindCaseStudyIndex,
		ParentID:       &home.ID,
		Title:          "Études de cas",
		Live:           true,
		Public:         true,
		CaseStudyIndex: &service.CaseStudyIndexInput{},
	})
	if err != nil {
		t.Fatalf("seed index: %v", err)
	}

	projectDate, _ := time.Parse("2006-01-02", "2024-03-01")
	if _, err := pages.CreatePage(service.PageInput{
		Kind:     db.PageKindCaseStudy,
		ParentID: &index.ID,
		Slug:     "boucherie",
		Title:    "Boucherie Martin",
		Live:     true,
		Public:   true,
		CaseStudy: &service.CaseStudyInput{
			ProjectDate:  projectDate,
			ClientSector: "Artisan boucher",
			Context:      "Un **gros** volume\n\n<script>alert(1)</script>",
		},
	}); err != nil {
		t.Fatalf("seed case study: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/pages/case-studies/boucherie", nil)
	testEngine(api).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	ctx := body["context"].(map[string]interface{})
	rendered, _ := ctx["context"].(string)
	if rendered == "" {
		t.Fatal("expected rendered context section")
	}
	if strings.Contains(rendered, "<script>") {
		t.Fatalf("expected scripts to be sanitized, got %q", rendered)
	}
	if !strings.Contains(rendered, "<strong>") {
		t.Fatalf("expected markdown emphasis to render, got %q", rendered)
	}
}

func TestShowCaseStudyUnknownSlugReturnsNotFound(t *testing.T) {
	api, gdb, cleanup := setupTestAPI(t)
	defer cleanup()

	seedHome(t, gdb)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/pages/case-studies/inconnu", nil)
	testEngine(api).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
