package db

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Contact form field types.
const (
	FormFieldSingleLine = "singleline"
	FormFieldMultiLine  = "multiline"
	FormFieldEmail      = "email"
	FormFieldNumber     = "number"
	FormFieldCheckbox   = "checkbox"
	FormFieldDropdown   = "dropdown"
	FormFieldRadio      = "radio"
	FormFieldDate       = "date"
)

// ContactPage holds the contact form copy and the email routing settings
// handed to the external submission handler.
type ContactPage struct {
	gorm.Model
	PageID       uint   `gorm:"uniqueIndex;not null"`
	Intro        string `gorm:"type:text"`
	ThankYouText string `gorm:"type:text"`
	FromAddress  string `gorm:"size:255"`
	ToAddress    string `gorm:"size:255"`
	Subject      string `gorm:"size:255"`
}

// ContactFormField defines one ordered form field of a ContactPage.
// Choices is a JSON array of strings, used by dropdown and radio fields.
type ContactFormField struct {
	gorm.Model
	PageID    uint   `gorm:"not null;index"`
	Label     string `gorm:"size:255;not null"`
	FieldType string `gorm:"size:32;not null"`
	Required  bool
	Choices   datatypes.JSON
	HelpText  string `gorm:"size:255"`
	SortOrder int    `gorm:"default:0"`
}
