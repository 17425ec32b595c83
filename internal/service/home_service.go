package service

import (
	"errors"

	"github.com/optimizerlabs/site/internal/db"
	"gorm.io/gorm"
)

// Home aggregation limits.
const (
	featuredProjectLimit = 4
	homePressCutLimit    = 3
)

// HomeService assembles the home page rendering context.
type HomeService struct {
	db           *gorm.DB
	pages        *PageTreeService
	caseStudies  *CaseStudyService
	testimonials *TestimonialService
	press        *PressService
}

// HomeContext is the aggregate read for the home page. Every slot tolerates
// being empty; CaseStudyIndex is nil when no live index page exists.
type HomeContext struct {
	Page             db.Page
	Detail           db.HomePage
	CaseStudyIndex   *db.Page
	FeaturedProjects []CaseStudyItem
	Testimonials     []db.ClientTestimonial
	PressCuts        []db.PressCut
}

// NewHomeService returns a new HomeService instance.
func NewHomeService(gdb *gorm.DB) *HomeService {
	return &HomeService{
		db:           gdb,
		pages:        NewPageTreeService(gdb),
		caseStudies:  NewCaseStudyService(gdb),
		testimonials: NewTestimonialService(gdb),
		press:        NewPressService(gdb),
	}
}

// Context assembles the rendering context for the given home page.
//
// Featured projects are selected site-wide, not just below this home page,
// matching the original behavior. Press cuts come most recent first, same
// as the dedicated listing.
func (s *HomeService) Context(homePageID uint) (*HomeContext, error) {
	page, err := s.pages.GetPage(homePageID)
	if err != nil {
		return nil, err
	}
	if page.Kind != db.PageKindHome {
		return nil, ErrPageNotFound
	}

	var detail db.HomePage
	if err := s.db.Where("page_id = ?", page.ID).First(&detail).Error; err != nil {
		return nil, err
	}

	ctx := &HomeContext{Page: *page, Detail: detail}

	index, err := s.firstLiveIndexChild(page.ID)
	if err != nil {
		return nil, err
	}
	ctx.CaseStudyIndex = index

	if ctx.FeaturedProjects, err = s.caseStudies.Featured(featuredProjectLimit); err != nil {
		return nil, err
	}
	if ctx.Testimonials, err = s.testimonials.List(); err != nil {
		return nil, err
	}
	if ctx.PressCuts, err = s.press.Recent(homePressCutLimit); err != nil {
		return nil, err
	}

	return ctx, nil
}

// firstLiveIndexChild finds the first live case study index under the home
// page. A missing index is a normal null, never an error.
func (s *HomeService) firstLiveIndexChild(homePageID uint) (*db.Page, error) {
	var index db.Page
	err := s.db.Where("parent_id = ? AND kind = ? AND live = ?",
		homePageID, db.PageKindCaseStudyIndex, true).
		Order("id asc").First(&index).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &index, nil
}
