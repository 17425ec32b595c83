package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/optimizerlabs/site/internal/db"
	"gorm.io/gorm"
)

// MediaService manages opaque references to externally stored images and
// documents. Content never owns media: deleting a reference nulls every
// column pointing at it and removes gallery rows that require an image.
type MediaService struct {
	db *gorm.DB
}

// NewMediaService returns a new MediaService instance.
func NewMediaService(gdb *gorm.DB) *MediaService {
	return &MediaService{db: gdb}
}

// Register records a new media reference and assigns its opaque key.
func (s *MediaService) Register(kind, url, alt string) (*db.MediaRef, error) {
	v := &ValidationError{}
	if kind != db.MediaKindImage && kind != db.MediaKindDocument {
		v.add("kind", "must be image or document")
	}
	requireText(v, "url", url, 512)
	if err := v.orNil(); err != nil {
		return nil, err
	}

	ref := db.MediaRef{
		Key:  uuid.NewString(),
		Kind: kind,
		URL:  strings.TrimSpace(url),
		Alt:  strings.TrimSpace(alt),
	}
	if err := s.db.Create(&ref).Error; err != nil {
		return nil, err
	}
	return &ref, nil
}

// GetByKey fetches a media reference by its opaque key.
func (s *MediaService) GetByKey(key string) (*db.MediaRef, error) {
	var ref db.MediaRef
	if err := s.db.Where("key = ?", key).First(&ref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return &ref, nil
}

// GetByID fetches a media reference by id. Dangling ids resolve to nil so
// read paths can render a missing image as an empty slot.
func (s *MediaService) GetByID(id *uint) (*db.MediaRef, error) {
	if id == nil {
		return nil, nil
	}
	var ref db.MediaRef
	if err := s.db.First(&ref, *id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ref, nil
}

// Delete removes a media reference and clears every field pointing at it.
// Case study gallery rows require their image and are removed instead.
func (s *MediaService) Delete(key string) error {
	ref, err := s.GetByKey(key)
	if err != nil {
		return err
	}

	type nullable struct {
		model  interface{}
		column string
	}
	columns := []nullable{
		{&db.HomePage{}, "hero_image_id"},
		{&db.CaseStudyPage{}, "main_image_id"},
		{&db.AboutPage{}, "profile_image_id"},
		{&db.MethodePage{}, "global_schema_id"},
		{&db.MethodeStep{}, "schema_id"},
		{&db.ClientTestimonial{}, "logo_id"},
		{&db.PressCut{}, "file_id"},
		{&db.PressCut{}, "cover_image_id"},
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, target := range columns {
			if err := tx.Model(target.model).
				Where(target.column+" = ?", ref.ID).
				Update(target.column, nil).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().
			Where("image_id = ?", ref.ID).
			Delete(&db.CaseStudyGalleryImage{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&db.MediaRef{}, ref.ID).Error
	})
}
