package db

import "gorm.io/gorm"

// ClientTestimonial is a standalone snippet shown in the home page carousel.
// It never belongs to the page tree.
type ClientTestimonial struct {
	gorm.Model
	ClientName    string `gorm:"size:100;not null"`
	ClientCompany string `gorm:"size:100"`
	LogoID        *uint
	Testimonial   string `gorm:"type:text;not null"`
	Sector        string `gorm:"size:100"`
}
