package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/optimizerlabs/site/internal/db"
	"github.com/optimizerlabs/site/internal/service"
)

// Template identifiers consumed by the external rendering layer.
const (
	templateHome           = "home/home_page.html"
	templateCaseStudyIndex = "home/case_study_index_page.html"
	templateCaseStudy      = "home/case_study_page.html"
	templateAbout          = "home/about_page.html"
	templateMethode        = "home/methode_page.html"
	templateContact        = "home/contact_page.html"
)

// Ping answers health checks.
func (a *API) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// ShowHome renders the home page context: hero block, the case study index
// link, featured projects, testimonials and press cuts.
func (a *API) ShowHome(c *gin.Context) {
	root, err := a.site.RootPage()
	if err != nil {
		respondError(c, err)
		return
	}
	if !root.Visible() {
		respondError(c, service.ErrPageNotFound)
		return
	}

	ctx, err := a.home.Context(root.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	var indexView gin.H
	if ctx.CaseStudyIndex != nil {
		indexView = pageView(ctx.CaseStudyIndex)
	}

	featured := make([]gin.H, 0, len(ctx.FeaturedProjects))
	for i := range ctx.FeaturedProjects {
		featured = append(featured, a.caseStudySummaryView(&ctx.FeaturedProjects[i]))
	}

	testimonials := make([]gin.H, 0, len(ctx.Testimonials))
	for _, t := range ctx.Testimonials {
		testimonials = append(testimonials, gin.H{
			"client_name":    t.ClientName,
			"client_company": t.ClientCompany,
			"client_logo":    a.mediaView(t.LogoID),
			"testimonial":    t.Testimonial,
			"sector":         t.Sector,
		})
	}

	press := make([]gin.H, 0, len(ctx.PressCuts))
	for _, cut := range ctx.PressCuts {
		press = append(press, a.pressCutView(&cut))
	}

	c.JSON(http.StatusOK, gin.H{
		"template": templateHome,
		"context": gin.H{
			"page":                       pageView(&ctx.Page),
			"canonical_url":              a.canonicalURL(c),
			"hero_title":                 ctx.Detail.HeroTitle,
			"hero_subtitle":              renderRichText(ctx.Detail.HeroSubtitle),
			"hero_cta_text":              ctx.Detail.HeroCTAText,
			"hero_image":                 a.mediaView(ctx.Detail.HeroImageID),
			"projects_section_title":     ctx.Detail.ProjectsSectionTitle,
			"testimonials_section_title": ctx.Detail.TestimonialsSectionTitle,
			"press_section_title":        ctx.Detail.PressSectionTitle,
			"case_study_index":           indexView,
			"featured_projects":          featured,
			"testimonials":               testimonials,
			"press_cuts":                 press,
		},
	})
}

// ShowCaseStudyIndex renders the case study listing, optionally filtered by
// the tag query parameter.
func (a *API) ShowCaseStudyIndex(c *gin.Context) {
	index, err := a.pages.FirstLiveOfKind(db.PageKindCaseStudyIndex)
	if err != nil {
		respondError(c, err)
		return
	}

	var detail db.CaseStudyIndexPage
	if err := a.db.Where("page_id = ?", index.ID).First(&detail).Error; err != nil {
		respondError(c, err)
		return
	}

	listing, err := a.caseStudies.IndexListing(index.ID, c.Query("tag"))
	if err != nil {
		respondError(c, err)
		return
	}

	projects := make([]gin.H, 0, len(listing.Items))
	for i := range listing.Items {
		projects = append(projects, a.caseStudySummaryView(&listing.Items[i]))
	}

	tagOptions, err := a.tags.Usage()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"template": templateCaseStudyIndex,
		"context": gin.H{
			"page":          pageView(index),
			"canonical_url": a.canonicalURL(c),
			"intro":         renderRichText(detail.Intro),
			"projects":      projects,
			"current_tag":   listing.CurrentTag,
			"tags":          tagOptions,
		},
	})
}

// ShowCaseStudy renders one case study with its fixed four sections and
// ordered gallery.
func (a *API) ShowCaseStudy(c *gin.Context) {
	item, err := a.caseStudies.GetBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	gallery, err := a.caseStudies.GalleryImages(item.Page.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	galleryViews := make([]gin.H, 0, len(gallery))
	for _, image := range gallery {
		imageID := image.ImageID
		galleryViews = append(galleryViews, gin.H{
			"image":   a.mediaView(&imageID),
			"caption": image.Caption,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"template": templateCaseStudy,
		"context": gin.H{
			"page":           pageView(&item.Page),
			"canonical_url":  a.canonicalURL(c),
			"project_date":   item.Detail.ProjectDate.Format("2006-01-02"),
			"client_sector":  item.Detail.ClientSector,
			"tags":           item.Tags,
			"main_image":     a.mediaView(item.Detail.MainImageID),
			"context":        renderRichText(item.Detail.Context),
			"problem":        renderRichText(item.Detail.Problem),
			"solution":       renderRichText(item.Detail.Solution),
			"results":        renderRichText(item.Detail.Results),
			"gallery_images": galleryViews,
		},
	})
}

// ShowAbout renders the about page with its ordered social links.
func (a *API) ShowAbout(c *gin.Context) {
	page, err := a.pages.FirstLiveOfKind(db.PageKindAbout)
	if err != nil {
		respondError(c, err)
		return
	}

	detail, err := a.about.Detail(page.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	links, err := a.about.SocialLinks(page.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	linkViews := make([]gin.H, 0, len(links))
	for _, link := range links {
		linkViews = append(linkViews, gin.H{
			"platform": link.Platform,
			"url":      link.URL,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"template": templateAbout,
		"context": gin.H{
			"page":          pageView(page),
			"canonical_url": a.canonicalURL(c),
			"profile_image": a.mediaView(detail.ProfileImageID),
			"biography":     renderRichText(detail.Biography),
			"skills":        renderRichText(detail.Skills),
			"social_links":  linkViews,
		},
	})
}

// ShowMethode renders the method page with its ordered steps.
func (a *API) ShowMethode(c *gin.Context) {
	page, err := a.pages.FirstLiveOfKind(db.PageKindMethode)
	if err != nil {
		respondError(c, err)
		return
	}

	detail, err := a.methode.Detail(page.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	steps, err := a.methode.Steps(page.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	stepViews := make([]gin.H, 0, len(steps))
	for _, step := range steps {
		stepViews = append(stepViews, gin.H{
			"title":       step.Title,
			"description": renderRichText(step.Description),
			"schema":      a.mediaView(step.SchemaID),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"template": templateMethode,
		"context": gin.H{
			"page":          pageView(page),
			"canonical_url": a.canonicalURL(c),
			"intro":         renderRichText(detail.Intro),
			"global_schema": a.mediaView(detail.GlobalSchemaID),
			"steps":         stepViews,
		},
	})
}

// ShowContact renders the contact page copy plus the form schema handed to
// the external submission handler.
func (a *API) ShowContact(c *gin.Context) {
	page, err := a.pages.FirstLiveOfKind(db.PageKindContact)
	if err != nil {
		respondError(c, err)
		return
	}

	detail, err := a.contact.Detail(page.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	schema, err := a.contact.Schema(page.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"template": templateContact,
		"context": gin.H{
			"page":           pageView(page),
			"canonical_url":  a.canonicalURL(c),
			"intro":          renderRichText(detail.Intro),
			"thank_you_text": renderRichText(detail.ThankYouText),
			"form":           schema,
		},
	})
}

// ListPress renders the dedicated press listing, most recent first.
func (a *API) ListPress(c *gin.Context) {
	cuts, err := a.press.List()
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]gin.H, 0, len(cuts))
	for _, cut := range cuts {
		views = append(views, a.pressCutView(&cut))
	}
	c.JSON(http.StatusOK, gin.H{"press_cuts": views})
}

func (a *API) caseStudySummaryView(item *service.CaseStudyItem) gin.H {
	return gin.H{
		"page":          pageView(&item.Page),
		"project_date":  item.Detail.ProjectDate.Format("2006-01-02"),
		"client_sector": item.Detail.ClientSector,
		"tags":          item.Tags,
		"main_image":    a.mediaView(item.Detail.MainImageID),
	}
}

func (a *API) pressCutView(cut *db.PressCut) gin.H {
	return gin.H{
		"id":          cut.ID,
		"title":       cut.Title,
		"source":      cut.Source,
		"date":        cut.Date.Format("2006-01-02"),
		"file":        a.mediaView(cut.FileID),
		"cover_image": a.mediaView(cut.CoverImageID),
	}
}
