package db

import "gorm.io/gorm"

// SiteSetting stores site-level key/value configuration.
type SiteSetting struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName keeps the table name explicit.
func (SiteSetting) TableName() string {
	return "site_settings"
}

const (
	// SettingKeySiteName is the public site name.
	SettingKeySiteName = "site_name"
	// SettingKeyRootPageID identifies the home page serving as site root.
	SettingKeyRootPageID = "root_page_id"
)
