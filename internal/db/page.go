package db

import (
	"time"

	"gorm.io/gorm"
)

// Page kinds. Every tree node carries exactly one kind which decides its
// payload table and its allowed tree placement.
const (
	PageKindHome           = "home"
	PageKindCaseStudyIndex = "case_study_index"
	PageKindCaseStudy      = "case_study"
	PageKindAbout          = "about"
	PageKindMethode        = "methode"
	PageKindContact        = "contact"
)

// Page is a node of the site tree. Kind-specific fields live in the
// payload tables keyed by PageID.
type Page struct {
	gorm.Model
	Kind             string `gorm:"size:32;not null;index"`
	ParentID         *uint  `gorm:"uniqueIndex:idx_pages_parent_slug"`
	Path             string `gorm:"size:255;not null;index"`
	Depth            int    `gorm:"not null;default:0"`
	Slug             string `gorm:"size:255;not null;uniqueIndex:idx_pages_parent_slug"`
	Title            string `gorm:"size:255;not null"`
	Live             bool   `gorm:"default:false"`
	Public           bool   `gorm:"default:true"`
	FirstPublishedAt *time.Time
}

// Visible reports whether the page may be shown to end users.
func (p *Page) Visible() bool {
	return p.Live && p.Public
}
