package service

import (
	"errors"
	"testing"

	"github.com/optimizerlabs/site/internal/db"
	"gorm.io/gorm"
)

func createMethodePage(t *testing.T, gdb *gorm.DB) *db.Page {
	t.Helper()

	home := mustCreateHome(t, gdb)
	page, err := NewPageTreeService(gdb).CreatePage(PageInput{
		Kind:     db.PageKindMethode,
		ParentID: &home.ID,
		Title:    "Méthode",
		Live:     true,
		Public:   true,
		Methode:  &MethodeInput{Intro: "Trois étapes"},
	})
	if err != nil {
		t.Fatalf("create methode page: %v", err)
	}
	return page
}

func TestAddStepAppendsAtEnd(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	page := createMethodePage(t, gdb)
	svc := NewMethodeService(gdb)

	titles := []string{"Audit", "Plan d'action", "Suivi"}
	for _, title := range titles {
		if _, err := svc.AddStep(page.ID, MethodeStepInput{Title: title, Description: "détail"}); err != nil {
			t.Fatalf("add step %s: %v", title, err)
		}
	}

	steps, err := svc.Steps(page.ID)
	if err != nil {
		t.Fatalf("list steps: %v", err)
	}
	if len(steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(steps))
	}
	for i, step := range steps {
		if step.Title != titles[i] {
			t.Fatalf("unexpected order at %d: %s", i, step.Title)
		}
		if step.SortOrder != i {
			t.Fatalf("expected sort_order %d, got %d", i, step.SortOrder)
		}
	}
}

func TestReorderStepsMatchesGivenSequence(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	page := createMethodePage(t, gdb)
	svc := NewMethodeService(gdb)

	var ids []uint
	for _, title := range []string{"A", "B", "C"} {
		step, err := svc.AddStep(page.ID, MethodeStepInput{Title: title, Description: "x"})
		if err != nil {
			t.Fatalf("add step: %v", err)
		}
		ids = append(ids, step.ID)
	}

	if err := svc.ReorderSteps(page.ID, []uint{ids[2], ids[0], ids[1]}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	steps, err := svc.Steps(page.ID)
	if err != nil {
		t.Fatalf("list steps: %v", err)
	}
	got := []string{steps[0].Title, steps[1].Title, steps[2].Title}
	if got[0] != "C" || got[1] != "A" || got[2] != "B" {
		t.Fatalf("unexpected order after reorder: %+v", got)
	}
}

func TestReorderStepsRejectsDuplicatesAndForeignIDs(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	page := createMethodePage(t, gdb)
	svc := NewMethodeService(gdb)

	step, err := svc.AddStep(page.ID, MethodeStepInput{Title: "Audit", Description: "x"})
	if err != nil {
		t.Fatalf("add step: %v", err)
	}

	if err := svc.ReorderSteps(page.ID, []uint{step.ID, step.ID}); !errors.Is(err, ErrOrderInvalid) {
		t.Fatalf("expected ErrOrderInvalid for duplicates, got %v", err)
	}
	if err := svc.ReorderSteps(page.ID, []uint{step.ID, 9999}); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for foreign id, got %v", err)
	}
}

func TestRemoveStepLeavesOrderGaps(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	page := createMethodePage(t, gdb)
	svc := NewMethodeService(gdb)

	var ids []uint
	for _, title := range []string{"A", "B", "C"} {
		step, err := svc.AddStep(page.ID, MethodeStepInput{Title: title, Description: "x"})
		if err != nil {
			t.Fatalf("add step: %v", err)
		}
		ids = append(ids, step.ID)
	}

	if err := svc.RemoveStep(ids[1]); err != nil {
		t.Fatalf("remove step: %v", err)
	}

	steps, err := svc.Steps(page.ID)
	if err != nil {
		t.Fatalf("list steps: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	// Indices keep their gap: 0 and 2.
	if steps[0].SortOrder != 0 || steps[1].SortOrder != 2 {
		t.Fatalf("expected gap to survive, got %d and %d", steps[0].SortOrder, steps[1].SortOrder)
	}

	// A later append goes after the gap, not into it.
	added, err := svc.AddStep(page.ID, MethodeStepInput{Title: "D", Description: "x"})
	if err != nil {
		t.Fatalf("add after removal: %v", err)
	}
	if added.SortOrder != 3 {
		t.Fatalf("expected sort_order 3, got %d", added.SortOrder)
	}
}

func TestAddStepRejectsWrongPageKind(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	home := mustCreateHome(t, gdb)
	svc := NewMethodeService(gdb)

	_, err := svc.AddStep(home.ID, MethodeStepInput{Title: "Audit", Description: "x"})
	if !errors.Is(err, ErrTreeConstraint) {
		t.Fatalf("expected ErrTreeConstraint, got %v", err)
	}
}
