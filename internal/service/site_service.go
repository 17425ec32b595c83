package service

import (
	"errors"
	"strconv"
	"strings"

	"github.com/optimizerlabs/site/internal/db"
	"gorm.io/gorm"
)

// SiteService manages site-level settings, including the explicit root page
// record that replaces positional "first home page" lookups.
type SiteService struct {
	db *gorm.DB
}

// NewSiteService returns a new SiteService instance.
func NewSiteService(gdb *gorm.DB) *SiteService {
	return &SiteService{db: gdb}
}

// Get returns the raw value for a setting key.
func (s *SiteService) Get(key string) (string, error) {
	var setting db.SiteSetting
	if err := s.db.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrSettingNotFound
		}
		return "", err
	}
	return setting.Value, nil
}

// Set creates or updates a setting value.
func (s *SiteService) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("setting key is required")
	}

	var setting db.SiteSetting
	err := s.db.Where("key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.db.Create(&db.SiteSetting{Key: key, Value: value}).Error
		}
		return err
	}

	setting.Value = value
	return s.db.Save(&setting).Error
}

// RootPage resolves the configured root page of the site.
func (s *SiteService) RootPage() (*db.Page, error) {
	raw, err := s.Get(db.SettingKeyRootPageID)
	if err != nil {
		if errors.Is(err, ErrSettingNotFound) {
			return nil, ErrRootPageUndefined
		}
		return nil, err
	}

	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return nil, ErrRootPageUndefined
	}

	var page db.Page
	if err := s.db.First(&page, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRootPageUndefined
		}
		return nil, err
	}
	return &page, nil
}

// SetRootPage points the site root at the given home page.
func (s *SiteService) SetRootPage(pageID uint) error {
	var page db.Page
	if err := s.db.First(&page, pageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPageNotFound
		}
		return err
	}
	if page.Kind != db.PageKindHome {
		return ErrTreeConstraint
	}
	return s.Set(db.SettingKeyRootPageID, strconv.FormatUint(uint64(pageID), 10))
}

// seedRootPage records the first created home page as site root. A root
// already configured is left alone.
func seedRootPage(tx *gorm.DB, pageID uint) error {
	var existing db.SiteSetting
	err := tx.Where("key = ?", db.SettingKeyRootPageID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(&db.SiteSetting{
		Key:   db.SettingKeyRootPageID,
		Value: strconv.FormatUint(uint64(pageID), 10),
	}).Error
}
