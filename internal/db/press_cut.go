package db

import (
	"time"

	"gorm.io/gorm"
)

// PressCut is a standalone press clipping snippet, usually a PDF with a
// cover image.
type PressCut struct {
	gorm.Model
	Title        string    `gorm:"size:200;not null"`
	Source       string    `gorm:"size:100;not null"`
	Date         time.Time `gorm:"not null;index"`
	FileID       *uint
	CoverImageID *uint
}
