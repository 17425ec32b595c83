package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/optimizerlabs/site/internal/service"
)

// The management API mutates content on behalf of an external editing UI.
// Authentication happens upstream of this service.

type pagePayloadRequest struct {
	// home
	HeroTitle                string `json:"hero_title"`
	HeroSubtitle             string `json:"hero_subtitle"`
	HeroCTAText              string `json:"hero_cta_text"`
	HeroImageID              *uint  `json:"hero_image_id"`
	ProjectsSectionTitle     string `json:"projects_section_title"`
	TestimonialsSectionTitle string `json:"testimonials_section_title"`
	PressSectionTitle        string `json:"press_section_title"`
	// case study
	ProjectDate  string `json:"project_date"`
	ClientSector string `json:"client_sector"`
	MainImageID  *uint  `json:"main_image_id"`
	Context      string `json:"context"`
	Problem      string `json:"problem"`
	Solution     string `json:"solution"`
	Results      string `json:"results"`
	// index / methode / about / contact
	Intro          string `json:"intro"`
	GlobalSchemaID *uint  `json:"global_schema_id"`
	ProfileImageID *uint  `json:"profile_image_id"`
	Biography      string `json:"biography"`
	Skills         string `json:"skills"`
	ThankYouText   string `json:"thank_you_text"`
	FromAddress    string `json:"from_address"`
	ToAddress      string `json:"to_address"`
	Subject        string `json:"subject"`
}

type createPageRequest struct {
	Kind     string             `json:"kind" binding:"required"`
	ParentID *uint              `json:"parent_id"`
	Slug     string             `json:"slug"`
	Title    string             `json:"title" binding:"required"`
	Live     bool               `json:"live"`
	Public   *bool              `json:"public"`
	Payload  pagePayloadRequest `json:"payload"`
}

// CreatePage creates a page under a parent, enforcing the placement table.
func (a *API) CreatePage(c *gin.Context) {
	var req createPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondError(c, err)
		return
	}

	page, err := a.pages.CreatePage(*input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"page": pageView(page)})
}

func (r *createPageRequest) toInput() (*service.PageInput, error) {
	public := true
	if r.Public != nil {
		public = *r.Public
	}

	input := service.PageInput{
		Kind:     r.Kind,
		ParentID: r.ParentID,
		Slug:     r.Slug,
		Title:    r.Title,
		Live:     r.Live,
		Public:   public,
	}

	switch r.Kind {
	case "home":
		input.Home = &service.HomePageInput{
			HeroTitle:                r.Payload.HeroTitle,
			HeroSubtitle:             r.Payload.HeroSubtitle,
			HeroCTAText:              r.Payload.HeroCTAText,
			HeroImageID:              r.Payload.HeroImageID,
			ProjectsSectionTitle:     r.Payload.ProjectsSectionTitle,
			TestimonialsSectionTitle: r.Payload.TestimonialsSectionTitle,
			PressSectionTitle:        r.Payload.PressSectionTitle,
		}
	case "case_study":
		projectDate, err := parseDate(r.Payload.ProjectDate)
		if err != nil {
			return nil, err
		}
		input.CaseStudy = &service.CaseStudyInput{
			ProjectDate:  projectDate,
			ClientSector: r.Payload.ClientSector,
			MainImageID:  r.Payload.MainImageID,
			Context:      r.Payload.Context,
			Problem:      r.Payload.Problem,
			Solution:     r.Payload.Solution,
			Results:      r.Payload.Results,
		}
	case "case_study_index":
		input.CaseStudyIndex = &service.CaseStudyIndexInput{Intro: r.Payload.Intro}
	case "about":
		input.About = &service.AboutInput{
			ProfileImageID: r.Payload.ProfileImageID,
			Biography:      r.Payload.Biography,
			Skills:         r.Payload.Skills,
		}
	case "methode":
		input.Methode = &service.MethodeInput{
			Intro:          r.Payload.Intro,
			GlobalSchemaID: r.Payload.GlobalSchemaID,
		}
	case "contact":
		input.Contact = &service.ContactInput{
			Intro:        r.Payload.Intro,
			ThankYouText: r.Payload.ThankYouText,
			FromAddress:  r.Payload.FromAddress,
			ToAddress:    r.Payload.ToAddress,
			Subject:      r.Payload.Subject,
		}
	}
	return &input, nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		v := &service.ValidationError{}
		v.Fields = append(v.Fields, service.FieldError{
			Field: "project_date", Message: "must be formatted YYYY-MM-DD",
		})
		return time.Time{}, v
	}
	return parsed, nil
}

// UpdatePage rewrites a page's editable fields and payload. Kind and parent
// stay fixed; moves go through MovePage.
func (a *API) UpdatePage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	page, err := a.pages.GetPage(id)
	if err != nil {
		respondError(c, err)
		return
	}

	var req struct {
		Slug    string             `json:"slug"`
		Title   string             `json:"title" binding:"required"`
		Public  *bool              `json:"public"`
		Payload pagePayloadRequest `json:"payload"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	full := createPageRequest{
		Kind:    page.Kind,
		Slug:    req.Slug,
		Title:   req.Title,
		Public:  req.Public,
		Payload: req.Payload,
	}
	input, err := full.toInput()
	if err != nil {
		respondError(c, err)
		return
	}
	if req.Public == nil {
		input.Public = page.Public
	}

	updated, err := a.pages.UpdatePage(id, *input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": pageView(updated)})
}

// ResolvePage looks a page up by its slash-separated slug path from the
// site root.
func (a *API) ResolvePage(c *gin.Context) {
	page, err := a.pages.GetBySlugPath(c.Query("path"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": pageView(page)})
}

// MovePage reparents a page.
func (a *API) MovePage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		ParentID *uint `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	page, err := a.pages.MovePage(id, req.ParentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": pageView(page)})
}

// DeletePage removes a page and its subtree.
func (a *API) DeletePage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := a.pages.DeletePage(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PublishPage marks a page live.
func (a *API) PublishPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	page, err := a.pages.Publish(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": pageView(page)})
}

// UnpublishPage takes a page offline.
func (a *API) UnpublishPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	page, err := a.pages.Unpublish(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": pageView(page)})
}

type reorderRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// AddMethodeStep appends a step to a methode page.
func (a *API) AddMethodeStep(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		SchemaID    *uint  `json:"schema_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	step, err := a.methode.AddStep(pageID, service.MethodeStepInput{
		Title:       req.Title,
		Description: req.Description,
		SchemaID:    req.SchemaID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"step": step})
}

// UpdateMethodeStep rewrites one step, keeping its position.
func (a *API) UpdateMethodeStep(c *gin.Context) {
	id, ok := parseIDParam(c, "stepID")
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		SchemaID    *uint  `json:"schema_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	step, err := a.methode.UpdateStep(id, service.MethodeStepInput{
		Title:       req.Title,
		Description: req.Description,
		SchemaID:    req.SchemaID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": step})
}

// ReorderMethodeSteps rewrites the step order of a methode page.
func (a *API) ReorderMethodeSteps(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := a.methode.ReorderSteps(pageID, req.IDs); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveMethodeStep deletes one step.
func (a *API) RemoveMethodeStep(c *gin.Context) {
	id, ok := parseIDParam(c, "stepID")
	if !ok {
		return
	}
	if err := a.methode.RemoveStep(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddSocialLink appends a social link to an about page.
func (a *API) AddSocialLink(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Platform string `json:"platform"`
		URL      string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	link, err := a.about.AddSocialLink(pageID, service.SocialLinkInput{
		Platform: req.Platform,
		URL:      req.URL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"social_link": link})
}

// ReorderSocialLinks rewrites the social link order of an about page.
func (a *API) ReorderSocialLinks(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := a.about.ReorderSocialLinks(pageID, req.IDs); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveSocialLink deletes one social link.
func (a *API) RemoveSocialLink(c *gin.Context) {
	id, ok := parseIDParam(c, "linkID")
	if !ok {
		return
	}
	if err := a.about.RemoveSocialLink(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddGalleryImage appends a gallery image to a case study.
func (a *API) AddGalleryImage(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		ImageID uint   `json:"image_id" binding:"required"`
		Caption string `json:"caption"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	image, err := a.caseStudies.AddGalleryImage(pageID, req.ImageID, req.Caption)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"gallery_image": image})
}

// ReorderGallery rewrites the gallery order of a case study.
func (a *API) ReorderGallery(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := a.caseStudies.ReorderGallery(pageID, req.IDs); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveGalleryImage deletes one gallery image.
func (a *API) RemoveGalleryImage(c *gin.Context) {
	id, ok := parseIDParam(c, "imageID")
	if !ok {
		return
	}
	if err := a.caseStudies.RemoveGalleryImage(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddFormField appends a form field to a contact page.
func (a *API) AddFormField(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Label     string   `json:"label"`
		FieldType string   `json:"field_type"`
		Required  bool     `json:"required"`
		Choices   []string `json:"choices"`
		HelpText  string   `json:"help_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	field, err := a.contact.AddField(pageID, service.ContactFormFieldInput{
		Label:     req.Label,
		FieldType: req.FieldType,
		Required:  req.Required,
		Choices:   req.Choices,
		HelpText:  req.HelpText,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"form_field": field})
}

// UpdateFormField rewrites one form field definition, keeping its position.
func (a *API) UpdateFormField(c *gin.Context) {
	id, ok := parseIDParam(c, "fieldID")
	if !ok {
		return
	}

	var req struct {
		Label     string   `json:"label"`
		FieldType string   `json:"field_type"`
		Required  bool     `json:"required"`
		Choices   []string `json:"choices"`
		HelpText  string   `json:"help_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	field, err := a.contact.UpdateField(id, service.ContactFormFieldInput{
		Label:     req.Label,
		FieldType: req.FieldType,
		Required:  req.Required,
		Choices:   req.Choices,
		HelpText:  req.HelpText,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"form_field": field})
}

// UpdateEmailSettings rewrites the email routing of a contact page.
func (a *API) UpdateEmailSettings(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		FromAddress string `json:"from_address"`
		ToAddress   string `json:"to_address"`
		Subject     string `json:"subject"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	detail, err := a.contact.UpdateEmailSettings(pageID, req.FromAddress, req.ToAddress, req.Subject)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from_address": detail.FromAddress,
		"to_address":   detail.ToAddress,
		"subject":      detail.Subject,
	})
}

// ReorderFormFields rewrites the field order of a contact page.
func (a *API) ReorderFormFields(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := a.contact.ReorderFields(pageID, req.IDs); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveFormField deletes one form field.
func (a *API) RemoveFormField(c *gin.Context) {
	id, ok := parseIDParam(c, "fieldID")
	if !ok {
		return
	}
	if err := a.contact.RemoveField(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AttachTag links a label to a case study. Attaching twice is a no-op.
func (a *API) AttachTag(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Label string `json:"label" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := a.tags.Attach(pageID, req.Label); err != nil {
		respondError(c, err)
		return
	}

	tags, err := a.tags.PageTags(pageID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// DetachTag removes a label from a case study.
func (a *API) DetachTag(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := a.tags.Detach(pageID, c.Query("label")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type testimonialRequest struct {
	ClientName    string `json:"client_name"`
	ClientCompany string `json:"client_company"`
	LogoID        *uint  `json:"logo_id"`
	Testimonial   string `json:"testimonial"`
	Sector        string `json:"sector"`
}

func (r *testimonialRequest) toInput() service.TestimonialInput {
	return service.TestimonialInput{
		ClientName:    r.ClientName,
		ClientCompany: r.ClientCompany,
		LogoID:        r.LogoID,
		Testimonial:   r.Testimonial,
		Sector:        r.Sector,
	}
}

// CreateTestimonial inserts a testimonial snippet.
func (a *API) CreateTestimonial(c *gin.Context) {
	var req testimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	testimonial, err := a.testimonials.Create(req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"testimonial": testimonial})
}

// UpdateTestimonial rewrites a testimonial snippet.
func (a *API) UpdateTestimonial(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req testimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	testimonial, err := a.testimonials.Update(id, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"testimonial": testimonial})
}

// DeleteTestimonial removes a testimonial snippet.
func (a *API) DeleteTestimonial(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := a.testimonials.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type pressCutRequest struct {
	Title        string `json:"title"`
	Source       string `json:"source"`
	Date         string `json:"date"`
	FileID       *uint  `json:"file_id"`
	CoverImageID *uint  `json:"cover_image_id"`
}

// CreatePressCut inserts a press cut snippet.
func (a *API) CreatePressCut(c *gin.Context) {
	var req pressCutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	date, err := parsePressDate(req.Date)
	if err != nil {
		respondError(c, err)
		return
	}

	cut, err := a.press.Create(service.PressCutInput{
		Title:        req.Title,
		Source:       req.Source,
		Date:         date,
		FileID:       req.FileID,
		CoverImageID: req.CoverImageID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"press_cut": cut})
}

// UpdatePressCut rewrites a press cut snippet.
func (a *API) UpdatePressCut(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req pressCutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	date, err := parsePressDate(req.Date)
	if err != nil {
		respondError(c, err)
		return
	}

	cut, err := a.press.Update(id, service.PressCutInput{
		Title:        req.Title,
		Source:       req.Source,
		Date:         date,
		FileID:       req.FileID,
		CoverImageID: req.CoverImageID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"press_cut": cut})
}

// DeletePressCut removes a press cut snippet.
func (a *API) DeletePressCut(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := a.press.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parsePressDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		v := &service.ValidationError{}
		v.Fields = append(v.Fields, service.FieldError{
			Field: "date", Message: "must be formatted YYYY-MM-DD",
		})
		return time.Time{}, v
	}
	return parsed, nil
}

// RegisterMedia records an opaque media reference.
func (a *API) RegisterMedia(c *gin.Context) {
	var req struct {
		Kind string `json:"kind"`
		URL  string `json:"url"`
		Alt  string `json:"alt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ref, err := a.media.Register(req.Kind, req.URL, req.Alt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"media": gin.H{
		"id":   ref.ID,
		"key":  ref.Key,
		"kind": ref.Kind,
		"url":  ref.URL,
		"alt":  ref.Alt,
	}})
}

// DeleteMedia removes a media reference, nulling every field pointing at it.
func (a *API) DeleteMedia(c *gin.Context) {
	if err := a.media.Delete(c.Param("key")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetRootPage points the site root at a home page.
func (a *API) SetRootPage(c *gin.Context) {
	var req struct {
		PageID uint `json:"page_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := a.site.SetRootPage(req.PageID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
