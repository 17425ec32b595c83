package db

import "gorm.io/gorm"

// Media reference kinds.
const (
	MediaKindImage    = "image"
	MediaKindDocument = "document"
)

// MediaRef is an opaque handle to an externally stored image or document.
// Pages reference it by id but never own it: deleting a ref nulls the
// referencing columns instead of cascading.
type MediaRef struct {
	gorm.Model
	Key  string `gorm:"size:36;uniqueIndex;not null"`
	Kind string `gorm:"size:16;not null"`
	URL  string `gorm:"size:512;not null"`
	Alt  string `gorm:"size:255"`
}
