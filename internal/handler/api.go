package handler

import (
	"strings"

	"github.com/optimizerlabs/site/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	baseURL      string
	pages        *service.PageTreeService
	home         *service.HomeService
	caseStudies  *service.CaseStudyService
	methode      *service.MethodeService
	about        *service.AboutService
	contact      *service.ContactService
	tags         *service.TagService
	testimonials *service.TestimonialService
	press        *service.PressService
	media        *service.MediaService
	site         *service.SiteService
}

// NewAPI constructs a handler set with shared services. baseURL is the
// public origin used for canonical page URLs.
func NewAPI(gdb *gorm.DB, baseURL string) *API {
	return &API{
		db:           gdb,
		baseURL:      strings.TrimRight(baseURL, "/"),
		pages:        service.NewPageTreeService(gdb),
		home:         service.NewHomeService(gdb),
		caseStudies:  service.NewCaseStudyService(gdb),
		methode:      service.NewMethodeService(gdb),
		about:        service.NewAboutService(gdb),
		contact:      service.NewContactService(gdb),
		tags:         service.NewTagService(gdb),
		testimonials: service.NewTestimonialService(gdb),
		press:        service.NewPressService(gdb),
		media:        service.NewMediaService(gdb),
		site:         service.NewSiteService(gdb),
	}
}
