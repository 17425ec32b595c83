package db

import "gorm.io/gorm"

// MethodePage describes the working method, introduced by a global schema
// image and detailed by ordered steps.
type MethodePage struct {
	gorm.Model
	PageID         uint   `gorm:"uniqueIndex;not null"`
	Intro          string `gorm:"type:text"`
	GlobalSchemaID *uint
}

// MethodeStep is one ordered step of the method, owned by one MethodePage.
type MethodeStep struct {
	gorm.Model
	PageID      uint   `gorm:"not null;index"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`
	SchemaID    *uint
	SortOrder   int `gorm:"default:0"`
}
