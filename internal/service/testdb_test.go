package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/optimizerlabs/site/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

func mustCreateHome(t *testing.T, gdb *gorm.DB) *db.Page {
	t.Helper()

	page, err := NewPageTreeService(gdb).CreatePage(PageInput{
		Kind:   db.PageKindHome,
		Title:  "Accueil",
		Live:   true,
		Public: true,
		Home:   &HomePageInput{HeroTitle: "Optimiser votre production"},
	})
	if err != nil {
		t.Fatalf("create home page: %v", err)
	}
	return page
}

func mustCreateIndex(t *testing.T, gdb *gorm.DB, homeID uint) *db.Page {
	t.Helper()

	page, err := NewPageTreeService(gdb).CreatePage(PageInput{
		Kind:           db.PageKindCaseStudyIndex,
		ParentID:       &homeID,
		Title:          "Études de cas",
		Live:           true,
		Public:         true,
		CaseStudyIndex: &CaseStudyIndexInput{Intro: "Nos projets"},
	})
	if err != nil {
		t.Fatalf("create case study index: %v", err)
	}
	return page
}

func mustCreateCaseStudy(t *testing.T, gdb *gorm.DB, indexID uint, slug string, projectDate time.Time) *db.Page {
	t.Helper()

	page, err := NewPageTreeService(gdb).CreatePage(PageInput{
		Kind:     db.PageKindCaseStudy,
		ParentID: &indexID,
		Slug:     slug,
		Title:    "Projet " + slug,
		Live:     true,
		Public:   true,
		CaseStudy: &CaseStudyInput{
			ProjectDate:  projectDate,
			ClientSector: "Industrie agroalimentaire",
		},
	})
	if err != nil {
		t.Fatalf("create case study %s: %v", slug, err)
	}
	return page
}

func date(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date %s: %v", value, err)
	}
	return parsed
}
