package service

import (
	"errors"
	"strings"
	"time"

	"github.com/optimizerlabs/site/internal/db"
	"gorm.io/gorm"
)

// PressService manages press cut snippets.
type PressService struct {
	db *gorm.DB
}

// PressCutInput carries the editable press cut fields.
type PressCutInput struct {
	Title        string
	Source       string
	Date         time.Time
	FileID       *uint
	CoverImageID *uint
}

// NewPressService returns a new PressService instance.
func NewPressService(gdb *gorm.DB) *PressService {
	return &PressService{db: gdb}
}

// List returns all press cuts, most recent publication first.
func (s *PressService) List() ([]db.PressCut, error) {
	var cuts []db.PressCut
	if err := s.db.Order("date desc").Order("id desc").Find(&cuts).Error; err != nil {
		return nil, err
	}
	return cuts, nil
}

// Recent returns up to limit press cuts, most recent publication first.
// The home page aggregation consumes this.
func (s *PressService) Recent(limit int) ([]db.PressCut, error) {
	var cuts []db.PressCut
	if err := s.db.Order("date desc").Order("id desc").Limit(limit).Find(&cuts).Error; err != nil {
		return nil, err
	}
	return cuts, nil
}

// Create inserts a new press cut.
func (s *PressService) Create(input PressCutInput) (*db.PressCut, error) {
	if err := validatePressCut(input); err != nil {
		return nil, err
	}

	cut := db.PressCut{
		Title:        strings.TrimSpace(input.Title),
		Source:       strings.TrimSpace(input.Source),
		Date:         input.Date,
		FileID:       input.FileID,
		CoverImageID: input.CoverImageID,
	}
	if err := s.db.Create(&cut).Error; err != nil {
		return nil, err
	}
	return &cut, nil
}

// Update rewrites an existing press cut.
func (s *PressService) Update(id uint, input PressCutInput) (*db.PressCut, error) {
	if err := validatePressCut(input); err != nil {
		return nil, err
	}

	var cut db.PressCut
	if err := s.db.First(&cut, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSnippetNotFound
		}
		return nil, err
	}

	cut.Title = strings.TrimSpace(input.Title)
	cut.Source = strings.TrimSpace(input.Source)
	cut.Date = input.Date
	cut.FileID = input.FileID
	cut.CoverImageID = input.CoverImageID

	if err := s.db.Save(&cut).Error; err != nil {
		return nil, err
	}
	return &cut, nil
}

// Delete removes a press cut.
func (s *PressService) Delete(id uint) error {
	result := s.db.Unscoped().Delete(&db.PressCut{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSnippetNotFound
	}
	return nil
}

func validatePressCut(input PressCutInput) error {
	v := &ValidationError{}
	requireText(v, "title", input.Title, 200)
	requireText(v, "source", input.Source, 100)
	if input.Date.IsZero() {
		v.add("date", "is required")
	}
	return v.orNil()
}
