package db

import "gorm.io/gorm"

// Social link platforms.
const (
	SocialPlatformLinkedIn = "linkedin"
	SocialPlatformGitHub   = "github"
	SocialPlatformTwitter  = "twitter"
	SocialPlatformWebsite  = "website"
	SocialPlatformOther    = "other"
)

// AboutPage carries the biography and skills of the about page.
type AboutPage struct {
	gorm.Model
	PageID         uint `gorm:"uniqueIndex;not null"`
	ProfileImageID *uint
	Biography      string `gorm:"type:text"`
	Skills         string `gorm:"type:text"`
}

// SocialLink is an ordered external profile link owned by one AboutPage.
type SocialLink struct {
	gorm.Model
	PageID    uint   `gorm:"not null;index"`
	Platform  string `gorm:"size:50;not null"`
	URL       string `gorm:"size:512;not null"`
	SortOrder int    `gorm:"default:0"`
}
