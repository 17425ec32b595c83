package service

import (
	"errors"
	"testing"

	"github.com/optimizerlabs/site/internal/db"
	"gorm.io/gorm"
)

func createContactPage(t *testing.T, gdb *gorm.DB) *db.Page {
	t.Helper()

	home := mustCreateHome(t, gdb)
	page, err := NewPageTreeService(gdb).CreatePage(PageInput{
		Kind:     db.PageKindContact,
		ParentID: &home.ID,
		Title:    "Contact",
		Live:     true,
		Public:   true,
		Contact: &ContactInput{
			Intro:       "Écrivez-moi",
			FromAddress: "site@optimizer-labs.fr",
			ToAddress:   "contact@optimizer-labs.fr",
			Subject:     "Nouveau message",
		},
	})
	if err != nil {
		t.Fatalf("create contact page: %v", err)
	}
	return page
}

func TestContactSchemaExportsOrderedFields(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	page := createContactPage(t, gdb)
	svc := NewContactService(gdb)

	fields := []ContactFormFieldInput{
		{Label: "Nom", FieldType: db.FormFieldSingleLine, Required: true},
		{Label: "Email", FieldType: db.FormFieldEmail, Required: true},
		{Label: "Sujet", FieldType: db.FormFieldDropdown, Choices: []string{"Devis", "Question", "Autre"}},
		{Label: "Message", FieldType: db.FormFieldMultiLine, Required: true},
	}
	for _, input := range fields {
		if _, err := svc.AddField(page.ID, input); err != nil {
			t.Fatalf("add field %s: %v", input.Label, err)
		}
	}

	schema, err := svc.Schema(page.ID)
	if err != nil {
		t.Fatalf("export schema: %v", err)
	}

	if schema.FromAddress != "site@optimizer-labs.fr" || schema.ToAddress != "contact@optimizer-labs.fr" {
		t.Fatalf("unexpected email routing: %+v", schema)
	}
	if len(schema.Fields) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(schema.Fields))
	}
	for i, want := range []string{"Nom", "Email", "Sujet", "Message"} {
		if schema.Fields[i].Label != want {
			t.Fatalf("unexpected field order at %d: %s", i, schema.Fields[i].Label)
		}
	}
	if got := schema.Fields[2].Choices; len(got) != 3 || got[0] != "Devis" {
		t.Fatalf("unexpected choices: %+v", got)
	}
}

func TestContactFieldReorderAndRemoval(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	page := createContactPage(t, gdb)
	svc := NewContactService(gdb)

	var ids []uint
	for _, label := range []string{"Nom", "Email", "Message"} {
		field, err := svc.AddField(page.ID, ContactFormFieldInput{
			Label:     label,
			FieldType: db.FormFieldSingleLine,
		})
		if err != nil {
			t.Fatalf("add field: %v", err)
		}
		ids = append(ids, field.ID)
	}

	if err := svc.ReorderFields(page.ID, []uint{ids[2], ids[0], ids[1]}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if err := svc.RemoveField(ids[0]); err != nil {
		t.Fatalf("remove field: %v", err)
	}

	remaining, err := svc.Fields(page.ID)
	if err != nil {
		t.Fatalf("list fields: %v", err)
	}
	if len(remaining) != 2 || remaining[0].Label != "Message" || remaining[1].Label != "Email" {
		t.Fatalf("unexpected remaining fields: %+v", remaining)
	}
}

func TestContactChoiceFieldsRequireChoices(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	page := createContactPage(t, gdb)
	svc := NewContactService(gdb)

	_, err := svc.AddField(page.ID, ContactFormFieldInput{
		Label:     "Sujet",
		FieldType: db.FormFieldDropdown,
	})

	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdateEmailSettings(t *testing.T) {
	gdb, cleanup := setupTestDB(t)
	defer cleanup()

	page := createContactPage(t, gdb)
	svc := NewContactService(gdb)

	detail, err := svc.UpdateEmailSettings(page.ID, " noreply@optimizer-labs.fr ", "direction@optimizer-labs.fr", "Formulaire")
	if err != nil {
		t.Fatalf("update email settings: %v", err)
	}
	if detail.FromAddress != "noreply@optimizer-labs.fr" || detail.Subject != "Formulaire" {
		t.Fatalf("unexpected settings: %+v", detail)
	}
}
