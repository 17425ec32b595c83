package service

import (
	"errors"
	"strings"

	"github.com/optimizerlabs/site/internal/db"
	"gorm.io/gorm"
)

// AboutService reads the about page and maintains its ordered social links.
type AboutService struct {
	db *gorm.DB
}

// SocialLinkInput carries the editable social link fields.
type SocialLinkInput struct {
	Platform string
	URL      string
}

// NewAboutService returns a new AboutService instance.
func NewAboutService(gdb *gorm.DB) *AboutService {
	return &AboutService{db: gdb}
}

// Detail fetches the about payload for a page.
func (s *AboutService) Detail(pageID uint) (*db.AboutPage, error) {
	var detail db.AboutPage
	if err := s.db.Where("page_id = ?", pageID).First(&detail).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &detail, nil
}

// SocialLinks lists the page's social links in display order.
func (s *AboutService) SocialLinks(pageID uint) ([]db.SocialLink, error) {
	var links []db.SocialLink
	if err := s.db.Where("page_id = ?", pageID).
		Order(collectionOrder).Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// AddSocialLink appends a link at the end of the page's sequence.
func (s *AboutService) AddSocialLink(pageID uint, input SocialLinkInput) (*db.SocialLink, error) {
	if err := validateSocialLink(input); err != nil {
		return nil, err
	}
	if err := s.requireAboutPage(pageID); err != nil {
		return nil, err
	}

	var link db.SocialLink
	err := s.db.Transaction(func(tx *gorm.DB) error {
		sortOrder, err := nextSortOrder(tx, &db.SocialLink{}, pageID)
		if err != nil {
			return err
		}
		link = db.SocialLink{
			PageID:    pageID,
			Platform:  input.Platform,
			URL:       strings.TrimSpace(input.URL),
			SortOrder: sortOrder,
		}
		return tx.Create(&link).Error
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// ReorderSocialLinks rewrites the link order to the given id sequence.
func (s *AboutService) ReorderSocialLinks(pageID uint, ids []uint) error {
	return reorderChildren(s.db, &db.SocialLink{}, pageID, ids)
}

// RemoveSocialLink deletes one link, leaving order gaps as-is.
func (s *AboutService) RemoveSocialLink(id uint) error {
	result := s.db.Unscoped().Delete(&db.SocialLink{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *AboutService) requireAboutPage(pageID uint) error {
	var page db.Page
	if err := s.db.First(&page, pageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPageNotFound
		}
		return err
	}
	if page.Kind != db.PageKindAbout {
		return ErrTreeConstraint
	}
	return nil
}

func validateSocialLink(input SocialLinkInput) error {
	v := &ValidationError{}
	if !validSocialPlatform(input.Platform) {
		v.add("platform", "is not a supported platform")
	}
	requireText(v, "url", input.URL, 512)
	return v.orNil()
}
