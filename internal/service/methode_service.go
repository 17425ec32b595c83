package service

import (
	"errors"
	"strings"

	"github.com/optimizerlabs/site/internal/db"
	"gorm.io/gorm"
)

// MethodeService reads the methode page and maintains its ordered steps.
type MethodeService struct {
	db *gorm.DB
}

// MethodeStepInput carries the editable step fields.
type MethodeStepInput struct {
	Title       string
	Description string
	SchemaID    *uint
}

// NewMethodeService returns a new MethodeService instance.
func NewMethodeService(gdb *gorm.DB) *MethodeService {
	return &MethodeService{db: gdb}
}

// Detail fetches the methode payload for a page.
func (s *MethodeService) Detail(pageID uint) (*db.MethodePage, error) {
	var detail db.MethodePage
	if err := s.db.Where("page_id = ?", pageID).First(&detail).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &detail, nil
}

// Steps lists the method steps in display order.
func (s *MethodeService) Steps(pageID uint) ([]db.MethodeStep, error) {
	var steps []db.MethodeStep
	if err := s.db.Where("page_id = ?", pageID).
		Order(collectionOrder).Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}

// AddStep appends a step at the end of the page's sequence.
func (s *MethodeService) AddStep(pageID uint, input MethodeStepInput) (*db.MethodeStep, error) {
	if err := validateMethodeStep(input); err != nil {
		return nil, err
	}
	if err := s.requireMethodePage(pageID); err != nil {
		return nil, err
	}

	var step db.MethodeStep
	err := s.db.Transaction(func(tx *gorm.DB) error {
		sortOrder, err := nextSortOrder(tx, &db.MethodeStep{}, pageID)
		if err != nil {
			return err
		}
		step = db.MethodeStep{
			PageID:      pageID,
			Title:       strings.TrimSpace(input.Title),
			Description: input.Description,
			SchemaID:    input.SchemaID,
			SortOrder:   sortOrder,
		}
		return tx.Create(&step).Error
	})
	if err != nil {
		return nil, err
	}
	return &step, nil
}

// UpdateStep rewrites a step's fields, keeping its position.
func (s *MethodeService) UpdateStep(id uint, input MethodeStepInput) (*db.MethodeStep, error) {
	if err := validateMethodeStep(input); err != nil {
		return nil, err
	}

	var step db.MethodeStep
	if err := s.db.First(&step, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	step.Title = strings.TrimSpace(input.Title)
	step.Description = input.Description
	step.SchemaID = input.SchemaID

	if err := s.db.Save(&step).Error; err != nil {
		return nil, err
	}
	return &step, nil
}

// ReorderSteps rewrites the step order to the given id sequence.
func (s *MethodeService) ReorderSteps(pageID uint, ids []uint) error {
	return reorderChildren(s.db, &db.MethodeStep{}, pageID, ids)
}

// RemoveStep deletes one step, leaving order gaps as-is.
func (s *MethodeService) RemoveStep(id uint) error {
	result := s.db.Unscoped().Delete(&db.MethodeStep{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *MethodeService) requireMethodePage(pageID uint) error {
	var page db.Page
	if err := s.db.First(&page, pageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPageNotFound
		}
		return err
	}
	if page.Kind != db.PageKindMethode {
		return ErrTreeConstraint
	}
	return nil
}

func validateMethodeStep(input MethodeStepInput) error {
	v := &ValidationError{}
	requireText(v, "title", input.Title, 200)
	requireText(v, "description", input.Description, 0)
	return v.orNil()
}
