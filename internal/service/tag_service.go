package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/optimizerlabs/site/internal/db"
	"gorm.io/gorm"
)

// TagService associates free-text labels with case study pages. Labels are
// case-normalized so "SEO" and "seo" are the same tag.
type TagService struct {
	db *gorm.DB
}

// TagUsage reports how many visible case studies carry a tag.
type TagUsage struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int64  `json:"count"`
}

// NewTagService returns a new TagService instance.
func NewTagService(gdb *gorm.DB) *TagService {
	return &TagService{db: gdb}
}

// NormalizeLabel lowercases a label and collapses its whitespace.
func NormalizeLabel(label string) string {
	fields := strings.Fields(strings.ToLower(label))
	return strings.Join(fields, " ")
}

// Attach links a label to a case study page. Attaching an already attached
// label is a no-op.
func (s *TagService) Attach(pageID uint, label string) error {
	name := NormalizeLabel(label)
	if name == "" {
		return errors.New("tag label is required")
	}

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

	return s.db.Transaction(func(tx *gorm.DB) error {
		var tag db.Tag
		err := tx.Where("name = ?", name).First(&tag).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			slug, err := uniqueTagSlug(tx, name)
			if err != nil {
				return err
			}
			tag = db.Tag{Name: name, Slug: slug}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
		}

		var existing db.CaseStudyTag
		err = tx.Where("tag_id = ? AND page_id = ?", tag.ID, pageID).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(&db.CaseStudyTag{TagID: tag.ID, PageID: pageID}).Error
	})
}

// uniqueTagSlug derives a slug for a new tag. Distinct labels can collapse
// onto the same derived slug, so collisions get a numeric suffix.
func uniqueTagSlug(tx *gorm.DB, name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "tag"
	}

	slug := base
	for n := 2; ; n++ {
		var count int64
		if err := tx.Model(&db.Tag{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

// Detach removes a label from a case study page. Unknown labels and absent
// associations return ErrTagNotFound.
func (s *TagService) Detach(pageID uint, label string) error {
	name := NormalizeLabel(label)
	if name == "" {
		return ErrTagNotFound
	}

	var tag db.Tag
	if err := s.db.Where("name = ?", name).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}

	result := s.db.Unscoped().
		Where("tag_id = ? AND page_id = ?", tag.ID, pageID).
		Delete(&db.CaseStudyTag{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTagNotFound
	}
	return nil
}

// PageTags returns the labels attached to a page, alphabetically.
func (s *TagService) PageTags(pageID uint) ([]string, error) {
	var names []string
	if err := s.db.Model(&db.CaseStudyTag{}).
		Joins("JOIN tags ON tags.id = case_study_tags.tag_id").
		Where("case_study_tags.page_id = ?", pageID).
		Order("tags.name asc").
		Pluck("tags.name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// PagesWithTag returns the ids of case study pages carrying the label,
// matched by slug or normalized name.
func (s *TagService) PagesWithTag(label string) ([]uint, error) {
	name := NormalizeLabel(label)
	if name == "" {
		return nil, nil
	}

	var ids []uint
	if err := s.db.Model(&db.CaseStudyTag{}).
		Joins("JOIN tags ON tags.id = case_study_tags.tag_id").
		Where("tags.name = ? OR tags.slug = ?", name, name).
		Order("case_study_tags.page_id asc").
		Pluck("case_study_tags.page_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Usage returns tags with their visible case study counts, for the index
// filter list.
func (s *TagService) Usage() ([]TagUsage, error) {
	var rows []TagUsage
	err := s.db.Table("tags").
		Select("tags.id, tags.name, tags.slug, COUNT(DISTINCT pages.id) AS count").
		Joins("JOIN case_study_tags ON case_study_tags.tag_id = tags.id").
		Joins("JOIN pages ON pages.id = case_study_tags.page_id").
		Where("pages.live = ? AND pages.public = ? AND pages.deleted_at IS NULL", true, true).
		Group("tags.id, tags.name, tags.slug").
		Order("tags.name asc").
		Scan(&rows).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []TagUsage{}, nil
		}
		return nil, err
	}
	return rows, nil
}
