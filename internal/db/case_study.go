package db

import (
	"time"

	"gorm.io/gorm"
)

// CaseStudyIndexPage introduces the case study listing.
type CaseStudyIndexPage struct {
	gorm.Model
	PageID uint   `gorm:"uniqueIndex;not null"`
	Intro  string `gorm:"type:text"`
}

// CaseStudyPage is a single project write-up with a fixed four-part
// structure: context, problem, solution, results. Rich text is markdown.
type CaseStudyPage struct {
	gorm.Model
	PageID       uint      `gorm:"uniqueIndex;not null"`
	ProjectDate  time.Time `gorm:"not null;index"`
	ClientSector string    `gorm:"size:100;not null"`
	MainImageID  *uint
	Context      string `gorm:"type:text"`
	Problem      string `gorm:"type:text"`
	Solution     string `gorm:"type:text"`
	Results      string `gorm:"type:text"`
}

// CaseStudyGalleryImage is an ordered extra image attached to one case study.
type CaseStudyGalleryImage struct {
	gorm.Model
	PageID    uint   `gorm:"not null;index"`
	ImageID   uint   `gorm:"not null"`
	Caption   string `gorm:"size:255"`
	SortOrder int    `gorm:"default:0"`
}
