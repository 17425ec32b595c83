package service

import (
	"errors"
	"strings"

	"github.com/optimizerlabs/site/internal/db"
	"gorm.io/gorm"
)

// TestimonialService manages the client testimonial snippets shown in the
// home page carousel.
type TestimonialService struct {
	db *gorm.DB
}

// TestimonialInput carries the editable testimonial fields.
type TestimonialInput struct {
	ClientName    string
	ClientCompany string
	LogoID        *uint
	Testimonial   string
	Sector        string
}

// NewTestimonialService returns a new TestimonialService instance.
func NewTestimonialService(gdb *gorm.DB) *TestimonialService {
	return &TestimonialService{db: gdb}
}

// List returns all testimonials in display order, client name ascending.
func (s *TestimonialService) List() ([]db.ClientTestimonial, error) {
	var testimonials []db.ClientTestimonial
	if err := s.db.Order("client_name asc").Order("id asc").
		Find(&testimonials).Error; err != nil {
		return nil, err
	}
	return testimonials, nil
}

// Create inserts a new testimonial.
func (s *TestimonialService) Create(input TestimonialInput) (*db.ClientTestimonial, error) {
	if err := validateTestimonial(input); err != nil {
		return nil, err
	}

	testimonial := db.ClientTestimonial{
		ClientName:    strings.TrimSpace(input.ClientName),
		ClientCompany: strings.TrimSpace(input.ClientCompany),
		LogoID:        input.LogoID,
		Testimonial:   strings.TrimSpace(input.Testimonial),
		Sector:        strings.TrimSpace(input.Sector),
	}
	if err := s.db.Create(&testimonial).Error; err != nil {
		return nil, err
	}
	return &testimonial, nil
}

// Update rewrites an existing testimonial.
func (s *TestimonialService) Update(id uint, input TestimonialInput) (*db.ClientTestimonial, error) {
	if err := validateTestimonial(input); err != nil {
		return nil, err
	}

	var testimonial db.ClientTestimonial
	if err := s.db.First(&testimonial, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSnippetNotFound
		}
		return nil, err
	}

	testimonial.ClientName = strings.TrimSpace(input.ClientName)
	testimonial.ClientCompany = strings.TrimSpace(input.ClientCompany)
	testimonial.LogoID = input.LogoID
	testimonial.Testimonial = strings.TrimSpace(input.Testimonial)
	testimonial.Sector = strings.TrimSpace(input.Sector)

	if err := s.db.Save(&testimonial).Error; err != nil {
		return nil, err
	}
	return &testimonial, nil
}

// Delete removes a testimonial.
func (s *TestimonialService) Delete(id uint) error {
	result := s.db.Unscoped().Delete(&db.ClientTestimonial{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSnippetNotFound
	}
	return nil
}

func validateTestimonial(input TestimonialInput) error {
	v := &ValidationError{}
	requireText(v, "client_name", input.ClientName, 100)
	limitText(v, "client_company", input.ClientCompany, 100)
	requireText(v, "testimonial", input.Testimonial, 0)
	limitText(v, "sector", input.Sector, 100)
	return v.orNil()
}
