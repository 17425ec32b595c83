package db

import "gorm.io/gorm"

// Tag is a free-text label, stored case-normalized.
type Tag struct {
	gorm.Model
	Name string `gorm:"size:100;uniqueIndex;not null"`
	Slug string `gorm:"size:100;uniqueIndex;not null"`
}

// CaseStudyTag links one tag to one case study page. The pair is unique so
// attaching twice cannot create a second row.
type CaseStudyTag struct {
	gorm.Model
	TagID  uint `gorm:"not null;uniqueIndex:idx_case_study_tags_pair"`
	PageID uint `gorm:"not null;uniqueIndex:idx_case_study_tags_pair"`
	Tag    Tag
}
