package service

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/optimizerlabs/site/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContactService reads the contact page and maintains its ordered form
// field definitions. Submissions never land here; the exported schema feeds
// an external form handler.
type ContactService struct {
	db *gorm.DB
}

// ContactFormFieldInput carries the editable form field definition.
type ContactFormFieldInput struct {
	Label     string
	FieldType string
	Required  bool
	Choices   []string
	HelpText  string
}

// FormFieldSchema is one field definition as handed to the external form
// handler.
type FormFieldSchema struct {
	ID       uint     `json:"id"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Choices  []string `json:"choices,omitempty"`
	HelpText string   `json:"help_text,omitempty"`
}

// FormSchema bundles the ordered field definitions with the email routing
// settings of one contact page.
type FormSchema struct {
	PageID      uint              `json:"page_id"`
	Fields      []FormFieldSchema `json:"fields"`
	FromAddress string            `json:"from_address"`
	ToAddress   string            `json:"to_address"`
	Subject     string            `json:"subject"`
}

// NewContactService returns a new ContactService instance.
func NewContactService(gdb *gorm.DB) *ContactService {
	return &ContactService{db: gdb}
}

// Detail fetches the contact payload for a page.
func (s *ContactService) Detail(pageID uint) (*db.ContactPage, error) {
	var detail db.ContactPage
	if err := s.db.Where("page_id = ?", pageID).First(&detail).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &detail, nil
}

// Fields lists the page's form fields in display order.
func (s *ContactService) Fields(pageID uint) ([]db.ContactFormField, error) {
	var fields []db.ContactFormField
	if err := s.db.Where("page_id = ?", pageID).
		Order(collectionOrder).Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

// Schema exports the ordered field definitions plus email routing for the
// external submission handler.
func (s *ContactService) Schema(pageID uint) (*FormSchema, error) {
	detail, err := s.Detail(pageID)
	if err != nil {
		return nil, err
	}
	fields, err := s.Fields(pageID)
	if err != nil {
		return nil, err
	}

	schema := &FormSchema{
		PageID:      pageID,
		Fields:      make([]FormFieldSchema, 0, len(fields)),
		FromAddress: detail.FromAddress,
		ToAddress:   detail.ToAddress,
		Subject:     detail.Subject,
	}
	for _, field := range fields {
		schema.Fields = append(schema.Fields, FormFieldSchema{
			ID:       field.ID,
			Label:    field.Label,
			Type:     field.FieldType,
			Required: field.Required,
			Choices:  decodeChoices(field.Choices),
			HelpText: field.HelpText,
		})
	}
	return schema, nil
}

// UpdateEmailSettings rewrites the email routing of a contact page.
func (s *ContactService) UpdateEmailSettings(pageID uint, from, to, subject string) (*db.ContactPage, error) {
	detail, err := s.Detail(pageID)
	if err != nil {
		return nil, err
	}

	detail.FromAddress = strings.TrimSpace(from)
	detail.ToAddress = strings.TrimSpace(to)
	detail.Subject = strings.TrimSpace(subject)

	if err := s.db.Save(detail).Error; err != nil {
		return nil, err
	}
	return detail, nil
}

// AddField appends a form field at the end of the page's sequence.
func (s *ContactService) AddField(pageID uint, input ContactFormFieldInput) (*db.ContactFormField, error) {
	if err := validateFormField(input); err != nil {
		return nil, err
	}
	if err := s.requireContactPage(pageID); err != nil {
		return nil, err
	}

	choices, err := encodeChoices(input.Choices)
	if err != nil {
		return nil, err
	}

	var field db.ContactFormField
	err = s.db.Transaction(func(tx *gorm.DB) error {
		sortOrder, err := nextSortOrder(tx, &db.ContactFormField{}, pageID)
		if err != nil {
			return err
		}
		field = db.ContactFormField{
			PageID:    pageID,
			Label:     strings.TrimSpace(input.Label),
			FieldType: input.FieldType,
			Required:  input.Required,
			Choices:   choices,
			HelpText:  strings.TrimSpace(input.HelpText),
			SortOrder: sortOrder,
		}
		return tx.Create(&field).Error
	})
	if err != nil {
		return nil, err
	}
	return &field, nil
}

// UpdateField rewrites a form field definition, keeping its position.
func (s *ContactService) UpdateField(id uint, input ContactFormFieldInput) (*db.ContactFormField, error) {
	if err := validateFormField(input); err != nil {
		return nil, err
	}

	var field db.ContactFormField
	if err := s.db.First(&field, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	choices, err := encodeChoices(input.Choices)
	if err != nil {
		return nil, err
	}

	field.Label = strings.TrimSpace(input.Label)
	field.FieldType = input.FieldType
	field.Required = input.Required
	field.Choices = choices
	field.HelpText = strings.TrimSpace(input.HelpText)

	if err := s.db.Save(&field).Error; err != nil {
		return nil, err
	}
	return &field, nil
}

// ReorderFields rewrites the field order to the given id sequence.
func (s *ContactService) ReorderFields(pageID uint, ids []uint) error {
	return reorderChildren(s.db, &db.ContactFormField{}, pageID, ids)
}

// RemoveField deletes one form field, leaving order gaps as-is.
func (s *ContactService) RemoveField(id uint) error {
	result := s.db.Unscoped().Delete(&db.ContactFormField{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *ContactService) requireContactPage(pageID uint) error {
	var page db.Page
	if err := s.db.First(&page, pageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPageNotFound
		}
		return err
	}
	if page.Kind != db.PageKindContact {
		return ErrTreeConstraint
	}
	return nil
}

func validateFormField(input ContactFormFieldInput) error {
	v := &ValidationError{}
	requireText(v, "label", input.Label, 255)
	if !validFormFieldType(input.FieldType) {
		v.add("field_type", "is not a supported field type")
	}
	switch input.FieldType {
	case db.FormFieldDropdown, db.FormFieldRadio:
		if len(input.Choices) == 0 {
			v.add("choices", "are required for choice fields")
		}
	}
	limitText(v, "help_text", input.HelpText, 255)
	return v.orNil()
}

func encodeChoices(choices []string) (datatypes.JSON, error) {
	if len(choices) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(choices)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func decodeChoices(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var choices []string
	if err := json.Unmarshal(raw, &choices); err != nil {
		return nil
	}
	return choices
}
