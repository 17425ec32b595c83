package db

import "gorm.io/gorm"

// HomePage holds the hero block and the section titles of the site root.
type HomePage struct {
	gorm.Model
	PageID                   uint   `gorm:"uniqueIndex;not null"`
	HeroTitle                string `gorm:"size:150;not null"`
	HeroSubtitle             string `gorm:"type:text"`
	HeroCTAText              string `gorm:"size:50;default:'Voir mes projets'"`
	HeroImageID              *uint
	ProjectsSectionTitle     string `gorm:"size:100;default:'Mes projets'"`
	TestimonialsSectionTitle string `gorm:"size:100;default:'Ils me font confiance'"`
	PressSectionTitle        string `gorm:"size:100;default:'Dans la presse'"`
}
