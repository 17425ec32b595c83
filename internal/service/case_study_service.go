package service

import (
	"errors"

	"github.com/optimizerlabs/site/internal/db"
	"gorm.io/gorm"
)

// CaseStudyService reads case study pages and maintains their ordered
// gallery images.
type CaseStudyService struct {
	db   *gorm.DB
	tags *TagService
}

// CaseStudyItem pairs a tree node with its case study payload.
type CaseStudyItem struct {
	Page   db.Page
	Detail db.CaseStudyPage
	Tags   []string
}

// IndexListing is the computed case study index: visible children sorted by
// project date, optionally narrowed to one tag. CurrentTag echoes the
// filter, empty when none was applied.
type IndexListing struct {
	Items      []CaseStudyItem
	CurrentTag string
}

// NewCaseStudyService returns a new CaseStudyService instance.
func NewCaseStudyService(gdb *gorm.DB) *CaseStudyService {
	return &CaseStudyService{db: gdb, tags: NewTagService(gdb)}
}

// IndexListing lists the live, public case studies under the given index
// page, newest project first. Equal project dates fall back to page id
// descending so the listing stays deterministic.
func (s *CaseStudyService) IndexListing(indexPageID uint, tagFilter string) (*IndexListing, error) {
	query := s.db.Model(&db.Page{}).
		Where("pages.parent_id = ? AND pages.kind = ? AND pages.live = ? AND pages.public = ?",
			indexPageID, db.PageKindCaseStudy, true, true)

	filter := NormalizeLabel(tagFilter)
	if filter != "" {
		ids, err := s.tags.PagesWithTag(filter)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return &IndexListing{Items: []CaseStudyItem{}, CurrentTag: filter}, nil
		}
		query = query.Where("pages.id IN ?", ids)
	}

	var pages []db.Page
	if err := query.
		Joins("JOIN case_study_pages ON case_study_pages.page_id = pages.id").
		Order("case_study_pages.project_date desc").
		Order("pages.id desc").
		Find(&pages).Error; err != nil {
		return nil, err
	}

	items, err := s.attachDetails(pages)
	if err != nil {
		return nil, err
	}

	return &IndexListing{Items: items, CurrentTag: filter}, nil
}

// Featured returns up to limit visible case studies site-wide, newest
// project first. The home page aggregation uses it unscoped on purpose.
func (s *CaseStudyService) Featured(limit int) ([]CaseStudyItem, error) {
	var pages []db.Page
	if err := s.db.Model(&db.Page{}).
		Where("pages.kind = ? AND pages.live = ? AND pages.public = ?", db.PageKindCaseStudy, true, true).
		Joins("JOIN case_study_pages ON case_study_pages.page_id = pages.id").
		Order("case_study_pages.project_date desc").
		Order("pages.id desc").
		Limit(limit).
		Find(&pages).Error; err != nil {
		return nil, err
	}
	return s.attachDetails(pages)
}

// GetBySlug fetches one visible case study with its payload and tags.
func (s *CaseStudyService) GetBySlug(slug string) (*CaseStudyItem, error) {
	var page db.Page
	err := s.db.Where("kind = ? AND slug = ? AND live = ? AND public = ?",
		db.PageKindCaseStudy, slug, true, true).First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}

	items, err := s.attachDetails([]db.Page{page})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// GalleryImages lists a case study's gallery in display order.
func (s *CaseStudyService) GalleryImages(pageID uint) ([]db.CaseStudyGalleryImage, error) {
	var images []db.CaseStudyGalleryImage
	if err := s.db.Where("page_id = ?", pageID).
		Order(collectionOrder).Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// AddGalleryImage appends an image at the end of the gallery.
func (s *CaseStudyService) AddGalleryImage(pageID, imageID uint, caption string) (*db.CaseStudyGalleryImage, error) {
	if err := s.requireCaseStudy(pageID); err != nil {
		return nil, err
	}

	var image db.CaseStudyGalleryImage
	err := s.db.Transaction(func(tx *gorm.DB) error {
		sortOrder, err := nextSortOrder(tx, &db.CaseStudyGalleryImage{}, pageID)
		if err != nil {
			return err
		}
		image = db.CaseStudyGalleryImage{
			PageID:    pageID,
			ImageID:   imageID,
			Caption:   caption,
			SortOrder: sortOrder,
		}
		return tx.Create(&image).Error
	})
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// ReorderGallery rewrites the gallery order to the given id sequence.
func (s *CaseStudyService) ReorderGallery(pageID uint, ids []uint) error {
	return reorderChildren(s.db, &db.CaseStudyGalleryImage{}, pageID, ids)
}

// RemoveGalleryImage deletes one gallery image, leaving order gaps as-is.
func (s *CaseStudyService) RemoveGalleryImage(id uint) error {
	result := s.db.Unscoped().Delete(&db.CaseStudyGalleryImage{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *CaseStudyService) requireCaseStudy(pageID uint) error {
	var page db.Page
	if err := s.db.First(&page, pageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPageNotFound
		}
		return err
	}
	if page.Kind != db.PageKindCaseStudy {
		return ErrTreeConstraint
	}
	return nil
}

func (s *CaseStudyService) attachDetails(pages []db.Page) ([]CaseStudyItem, error) {
	items := make([]CaseStudyItem, 0, len(pages))
	for _, page := range pages {
		var detail db.CaseStudyPage
		if err := s.db.Where("page_id = ?", page.ID).First(&detail).Error; err != nil {
			return nil, err
		}
		tags, err := s.tags.PageTags(page.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, CaseStudyItem{Page: page, Detail: detail, Tags: tags})
	}
	return items, nil
}
