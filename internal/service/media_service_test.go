package service

import (
	"errors"
	"testing"

	"github.com/optimizerlabs/site/internal/db"
)

func TestDeleteMediaNullsReferencingFields(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	home := mustCreateHome(t, gdb)
	media := NewMediaService(gdb)

	schema, err := media.Register(db.MediaKindImage, "https://media.example.com/schema.png", "schéma")
	if err != nil {
		t.Fatalf("register media: %v", err)
	}

	methode, err := NewPageTreeService(gdb).CreatePage(PageInput{
		Kind:     db.PageKindMethode,
		ParentID: &home.ID,
		Title:    "Méthode",
		Live:     true,
		Public:   true,
		Methode:  &MethodeInput{Intro: "intro", GlobalSchemaID: &schema.ID},
	})
	if err != nil {
		t.Fatalf("create methode page: %v", err)
	}

	steps := NewMethodeService(gdb)
	step, err := steps.AddStep(methode.ID, MethodeStepInput{
		Title:       "Audit",
		Description: "détail",
		SchemaID:    &schema.ID,
	})
	if err != nil {
		t.Fatalf("add step: %v", err)
	}

	if err := media.Delete(schema.Key); err != nil {
		t.Fatalf("delete media: %v", err)
	}

	var reloadedStep db.MethodeStep
	if err := gdb.First(&reloadedStep, step.ID).Error; err != nil {
		t.Fatalf("expected step to survive: %v", err)
	}
	if reloadedStep.SchemaID != nil {
		t.Fatalf("expected nulled schema ref, got %v", *reloadedStep.SchemaID)
	}

	var reloadedPage db.MethodePage
	if err := gdb.Where("page_id = ?", methode.ID).First(&reloadedPage).Error; err != nil {
		t.Fatalf("reload methode payload: %v", err)
	}
	if reloadedPage.GlobalSchemaID != nil {
		t.Fatalf("expected nulled global schema ref, got %v", *reloadedPage.GlobalSchemaID)
	}

	if _, err := media.GetByKey(schema.Key); !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
}

func TestDeleteMediaRemovesGalleryRows(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	home := mustCreateHome(t, gdb)
	index := mustCreateIndex(t, gdb, home.ID)
	study := mustCreateCaseStudy(t, gdb, index.ID, "galerie", date(t, "2024-01-01"))

	media := NewMediaService(gdb)
	kept, err := media.Register(db.MediaKindImage, "https://media.example.com/kept.jpg", "")
	if err != nil {
		t.Fatalf("register media: %v", err)
	}
	removed, err := media.Register(db.MediaKindImage, "https://media.example.com/removed.jpg", "")
	if err != nil {
		t.Fatalf("register media: %v", err)
	}

	svc := NewCaseStudyService(gdb)
	if _, err := svc.AddGalleryImage(study.ID, kept.ID, "reste"); err != nil {
		t.Fatalf("add gallery image: %v", err)
	}
	if _, err := svc.AddGalleryImage(study.ID, removed.ID, "part"); err != nil {
		t.Fatalf("add gallery image: %v", err)
	}

	if err := media.Delete(removed.Key); err != nil {
		t.Fatalf("delete media: %v", err)
	}

	images, err := svc.GalleryImages(study.ID)
	if err != nil {
		t.Fatalf("list gallery: %v", err)
	}
	if len(images) != 1 || images[0].Caption != "reste" {
		t.Fatalf("expected only the kept image, got %+v", images)
	}

	// The page itself is untouched.
	if _, err := NewPageTreeService(gdb).GetPage(study.ID); err != nil {
		t.Fatalf("expected page to survive: %v", err)
	}
}

func TestGetByIDResolvesDanglingRefToNil(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	media := NewMediaService(gdb)
	missing := uint(12345)
	ref, err := media.GetByID(&missing)
	if err != nil {
		t.Fatalf("expected nil resolution, got error %v", err)
	}
	if ref != nil {
		t.Fatalf("expected nil ref, got %+v", ref)
	}
}

func TestRegisterMediaValidatesKind(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	media := NewMediaService(gdb)
	_, err := media.Register("video", "https://media.example.com/clip.mp4", "")

	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
