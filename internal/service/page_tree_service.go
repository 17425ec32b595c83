package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/optimizerlabs/site/internal/db"
	"gorm.io/gorm"
)

// PageTreeService owns the site tree: creation, moves, deletion and the
// publish lifecycle. Placement rules come from the schema registry and are
// enforced on every create and move.
type PageTreeService struct {
	db *gorm.DB
}

// NewPageTreeService returns a new PageTreeService instance.
func NewPageTreeService(gdb *gorm.DB) *PageTreeService {
	return &PageTreeService{db: gdb}
}

// HomePageInput carries the home page payload fields.
type HomePageInput struct {
	HeroTitle                string
	HeroSubtitle             string
	HeroCTAText              string
	HeroImageID              *uint
	ProjectsSectionTitle     string
	TestimonialsSectionTitle string
	PressSectionTitle        string
}

// CaseStudyInput carries the case study payload fields.
type CaseStudyInput struct {
	ProjectDate  time.Time
	ClientSector string
	MainImageID  *uint
	Context      string
	Problem      string
	Solution     string
	Results      string
}

// CaseStudyIndexInput carries the case study index payload fields.
type CaseStudyIndexInput struct {
	Intro string
}

// AboutInput carries the about page payload fields.
type AboutInput struct {
	ProfileImageID *uint
	Biography      string
	Skills         string
}

// MethodeInput carries the methode page payload fields.
type MethodeInput struct {
	Intro          string
	GlobalSchemaID *uint
}

// ContactInput carries the contact page payload and email routing fields.
type ContactInput struct {
	Intro        string
	ThankYouText string
	FromAddress  string
	ToAddress    string
	Subject      string
}

// PageInput describes a page to create. Exactly the payload matching Kind
// is consulted; the others are ignored.
type PageInput struct {
	Kind     string
	ParentID *uint
	Slug     string
	Title    string
	Live     bool
	Public   bool

	Home           *HomePageInput
	CaseStudy      *CaseStudyInput
	CaseStudyIndex *CaseStudyIndexInput
	About          *AboutInput
	Methode        *MethodeInput
	Contact        *ContactInput
}

// CreatePage validates the input, checks tree placement and creates the
// page together with its payload row.
func (s *PageTreeService) CreatePage(input PageInput) (*db.Page, error) {
	if err := validatePageInput(&input); err != nil {
		return nil, err
	}

	var parent *db.Page
	if input.ParentID != nil {
		found, err := s.GetPage(*input.ParentID)
		if err != nil {
			return nil, err
		}
		parent = found
	}

	parentKind := ""
	if parent != nil {
		parentKind = parent.Kind
	}
	if !placementAllowed(input.Kind, parentKind, parent != nil) {
		return nil, ErrTreeConstraint
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(input.Title)
	}
	if taken, err := s.slugTaken(input.ParentID, slug, 0); err != nil {
		return nil, err
	} else if taken {
		v := &ValidationError{}
		v.add("slug", "is already used by a sibling page")
		return nil, v
	}

	page := db.Page{
		Kind:     input.Kind,
		ParentID: input.ParentID,
		Slug:     slug,
		Title:    strings.TrimSpace(input.Title),
		Live:     input.Live,
		Public:   input.Public,
	}
	if input.Live {
		now := time.Now()
		page.FirstPublishedAt = &now
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&page).Error; err != nil {
			return err
		}

		parentPath := "/"
		depth := 0
		if parent != nil {
			parentPath = parent.Path
			depth = parent.Depth + 1
		}
		page.Path = fmt.Sprintf("%s%04d/", parentPath, page.ID)
		page.Depth = depth
		if err := tx.Model(&db.Page{}).Where("id = ?", page.ID).
			Updates(map[string]interface{}{"path": page.Path, "depth": page.Depth}).Error; err != nil {
			return err
		}

		if err := createPayload(tx, &page, input); err != nil {
			return err
		}

		if page.Kind == db.PageKindHome {
			return seedRootPage(tx, page.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &page, nil
}

// UpdatePage rewrites a page's editable fields and its payload. Kind and
// parent never change here; MovePage owns reparenting.
func (s *PageTreeService) UpdatePage(id uint, input PageInput) (*db.Page, error) {
	page, err := s.GetPage(id)
	if err != nil {
		return nil, err
	}

	input.Kind = page.Kind
	input.ParentID = page.ParentID
	if err := validatePageInput(&input); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = page.Slug
	}
	if taken, err := s.slugTaken(page.ParentID, slug, page.ID); err != nil {
		return nil, err
	} else if taken {
		v := &ValidationError{}
		v.add("slug", "is already used by a sibling page")
		return nil, v
	}

	page.Slug = slug
	page.Title = strings.TrimSpace(input.Title)
	page.Public = input.Public

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(page).Error; err != nil {
			return err
		}
		return updatePayload(tx, page, input)
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// MovePage reparents a page, re-checking placement rules and rewriting the
// subtree paths. Moving a page under its own descendant is rejected.
func (s *PageTreeService) MovePage(id uint, newParentID *uint) (*db.Page, error) {
	page, err := s.GetPage(id)
	if err != nil {
		return nil, err
	}

	var parent *db.Page
	if newParentID != nil {
		found, err := s.GetPage(*newParentID)
		if err != nil {
			return nil, err
		}
		parent = found
	}

	parentKind := ""
	if parent != nil {
		parentKind = parent.Kind
	}
	if !placementAllowed(page.Kind, parentKind, parent != nil) {
		return nil, ErrTreeConstraint
	}
	if parent != nil && strings.HasPrefix(parent.Path, page.Path) {
		return nil, ErrTreeConstraint
	}
	if taken, err := s.slugTaken(newParentID, page.Slug, page.ID); err != nil {
		return nil, err
	} else if taken {
		v := &ValidationError{}
		v.add("slug", "is already used by a sibling page")
		return nil, v
	}

	oldPath := page.Path
	oldDepth := page.Depth

	parentPath := "/"
	depth := 0
	if parent != nil {
		parentPath = parent.Path
		depth = parent.Depth + 1
	}
	newPath := fmt.Sprintf("%s%04d/", parentPath, page.ID)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db.Page{}).Where("id = ?", page.ID).
			Updates(map[string]interface{}{
				"parent_id": newParentID,
				"path":      newPath,
				"depth":     depth,
			}).Error; err != nil {
			return err
		}

		var descendants []db.Page
		if err := tx.Where("path LIKE ? AND id <> ?", oldPath+"%", page.ID).
			Find(&descendants).Error; err != nil {
			return err
		}
		for _, desc := range descendants {
			updated := newPath + strings.TrimPrefix(desc.Path, oldPath)
			if err := tx.Model(&db.Page{}).Where("id = ?", desc.ID).
				Updates(map[string]interface{}{
					"path":  updated,
					"depth": desc.Depth - oldDepth + depth,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	page.ParentID = newParentID
	page.Path = newPath
	page.Depth = depth
	return page, nil
}

// DeletePage removes a page and its whole subtree, cascading payload rows,
// ordered children and tag associations. Media references survive.
func (s *PageTreeService) DeletePage(id uint) error {
	page, err := s.GetPage(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var subtree []db.Page
		if err := tx.Where("path LIKE ?", page.Path+"%").Find(&subtree).Error; err != nil {
			return err
		}

		ids := make([]uint, 0, len(subtree))
		for _, p := range subtree {
			ids = append(ids, p.ID)
		}

		owned := []interface{}{
			&db.HomePage{},
			&db.CaseStudyIndexPage{},
			&db.CaseStudyPage{},
			&db.CaseStudyGalleryImage{},
			&db.AboutPage{},
			&db.SocialLink{},
			&db.MethodePage{},
			&db.MethodeStep{},
			&db.ContactPage{},
			&db.ContactFormField{},
			&db.CaseStudyTag{},
		}
		for _, model := range owned {
			if err := tx.Unscoped().Where("page_id IN ?", ids).Delete(model).Error; err != nil {
				return err
			}
		}

		return tx.Unscoped().Where("id IN ?", ids).Delete(&db.Page{}).Error
	})
}

// Publish marks a page live and stamps the first publication time once.
func (s *PageTreeService) Publish(id uint) (*db.Page, error) {
	page, err := s.GetPage(id)
	if err != nil {
		return nil, err
	}

	page.Live = true
	if page.FirstPublishedAt == nil {
		now := time.Now()
		page.FirstPublishedAt = &now
	}
	if err := s.db.Save(page).Error; err != nil {
		return nil, err
	}
	return page, nil
}

// Unpublish takes a page offline without touching its content.
func (s *PageTreeService) Unpublish(id uint) (*db.Page, error) {
	page, err := s.GetPage(id)
	if err != nil {
		return nil, err
	}

	page.Live = false
	if err := s.db.Save(page).Error; err != nil {
		return nil, err
	}
	return page, nil
}

// GetPage fetches one tree node by id.
func (s *PageTreeService) GetPage(id uint) (*db.Page, error) {
	var page db.Page
	if err := s.db.First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// FirstLiveOfKind returns the oldest live, public page of the given kind,
// or ErrPageNotFound when the site has none.
func (s *PageTreeService) FirstLiveOfKind(kind string) (*db.Page, error) {
	var page db.Page
	err := s.db.Where("kind = ? AND live = ? AND public = ?", kind, true, true).
		Order("id asc").First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// GetBySlugPath resolves a slash-separated slug path, walking children from
// the site root. An empty path resolves to the root itself.
func (s *PageTreeService) GetBySlugPath(path string) (*db.Page, error) {
	root, err := NewSiteService(s.db).RootPage()
	if err != nil {
		return nil, err
	}

	current := root
	for _, slug := range strings.Split(strings.Trim(path, "/"), "/") {
		if slug == "" {
			continue
		}
		var child db.Page
		err := s.db.Where("parent_id = ? AND slug = ?", current.ID, slug).
			First(&child).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPageNotFound
			}
			return nil, err
		}
		current = &child
	}
	return current, nil
}

// Children lists the direct children of a page in tree order.
func (s *PageTreeService) Children(parentID uint) ([]db.Page, error) {
	var pages []db.Page
	if err := s.db.Where("parent_id = ?", parentID).
		Order("path asc").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

func (s *PageTreeService) slugTaken(parentID *uint, slug string, excludeID uint) (bool, error) {
	query := s.db.Model(&db.Page{}).Where("slug = ?", slug)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func createPayload(tx *gorm.DB, page *db.Page, input PageInput) error {
	switch page.Kind {
	case db.PageKindHome:
		home := input.Home
		payload := db.HomePage{
			PageID:                   page.ID,
			HeroTitle:                strings.TrimSpace(home.HeroTitle),
			HeroSubtitle:             home.HeroSubtitle,
			HeroCTAText:              strings.TrimSpace(home.HeroCTAText),
			HeroImageID:              home.HeroImageID,
			ProjectsSectionTitle:     strings.TrimSpace(home.ProjectsSectionTitle),
			TestimonialsSectionTitle: strings.TrimSpace(home.TestimonialsSectionTitle),
			PressSectionTitle:        strings.TrimSpace(home.PressSectionTitle),
		}
		if payload.HeroCTAText == "" {
			payload.HeroCTAText = "Voir mes projets"
		}
		if payload.ProjectsSectionTitle == "" {
			payload.ProjectsSectionTitle = "Mes projets"
		}
		if payload.TestimonialsSectionTitle == "" {
			payload.TestimonialsSectionTitle = "Ils me font confiance"
		}
		if payload.PressSectionTitle == "" {
			payload.PressSectionTitle = "Dans la presse"
		}
		return tx.Create(&payload).Error
	case db.PageKindCaseStudyIndex:
		payload := db.CaseStudyIndexPage{PageID: page.ID}
		if input.CaseStudyIndex != nil {
			payload.Intro = input.CaseStudyIndex.Intro
		}
		return tx.Create(&payload).Error
	case db.PageKindCaseStudy:
		cs := input.CaseStudy
		payload := db.CaseStudyPage{
			PageID:       page.ID,
			ProjectDate:  cs.ProjectDate,
			ClientSector: strings.TrimSpace(cs.ClientSector),
			MainImageID:  cs.MainImageID,
			Context:      cs.Context,
			Problem:      cs.Problem,
			Solution:     cs.Solution,
			Results:      cs.Results,
		}
		return tx.Create(&payload).Error
	case db.PageKindAbout:
		payload := db.AboutPage{PageID: page.ID}
		if input.About != nil {
			payload.ProfileImageID = input.About.ProfileImageID
			payload.Biography = input.About.Biography
			payload.Skills = input.About.Skills
		}
		return tx.Create(&payload).Error
	case db.PageKindMethode:
		payload := db.MethodePage{PageID: page.ID}
		if input.Methode != nil {
			payload.Intro = input.Methode.Intro
			payload.GlobalSchemaID = input.Methode.GlobalSchemaID
		}
		return tx.Create(&payload).Error
	case db.PageKindContact:
		payload := db.ContactPage{PageID: page.ID}
		if input.Contact != nil {
			payload.Intro = input.Contact.Intro
			payload.ThankYouText = input.Contact.ThankYouText
			payload.FromAddress = strings.TrimSpace(input.Contact.FromAddress)
			payload.ToAddress = strings.TrimSpace(input.Contact.ToAddress)
			payload.Subject = strings.TrimSpace(input.Contact.Subject)
		}
		return tx.Create(&payload).Error
	}
	return ErrTreeConstraint
}

func updatePayload(tx *gorm.DB, page *db.Page, input PageInput) error {
	switch page.Kind {
	case db.PageKindHome:
		home := input.Home
		return tx.Model(&db.HomePage{}).Where("page_id = ?", page.ID).
			Updates(map[string]interface{}{
				"hero_title":                 strings.TrimSpace(home.HeroTitle),
				"hero_subtitle":              home.HeroSubtitle,
				"hero_cta_text":              strings.TrimSpace(home.HeroCTAText),
				"hero_image_id":              home.HeroImageID,
				"projects_section_title":     strings.TrimSpace(home.ProjectsSectionTitle),
				"testimonials_section_title": strings.TrimSpace(home.TestimonialsSectionTitle),
				"press_section_title":        strings.TrimSpace(home.PressSectionTitle),
			}).Error
	case db.PageKindCaseStudyIndex:
		if input.CaseStudyIndex == nil {
			return nil
		}
		return tx.Model(&db.CaseStudyIndexPage{}).Where("page_id = ?", page.ID).
			Update("intro", input.CaseStudyIndex.Intro).Error
	case db.PageKindCaseStudy:
		cs := input.CaseStudy
		return tx.Model(&db.CaseStudyPage{}).Where("page_id = ?", page.ID).
			Updates(map[string]interface{}{
				"project_date":  cs.ProjectDate,
				"client_sector": strings.TrimSpace(cs.ClientSector),
				"main_image_id": cs.MainImageID,
				"context":       cs.Context,
				"problem":       cs.Problem,
				"solution":      cs.Solution,
				"results":       cs.Results,
			}).Error
	case db.PageKindAbout:
		if input.About == nil {
			return nil
		}
		return tx.Model(&db.AboutPage{}).Where("page_id = ?", page.ID).
			Updates(map[string]interface{}{
				"profile_image_id": input.About.ProfileImageID,
				"biography":        input.About.Biography,
				"skills":           input.About.Skills,
			}).Error
	case db.PageKindMethode:
		if input.Methode == nil {
			return nil
		}
		return tx.Model(&db.MethodePage{}).Where("page_id = ?", page.ID).
			Updates(map[string]interface{}{
				"intro":            input.Methode.Intro,
				"global_schema_id": input.Methode.GlobalSchemaID,
			}).Error
	case db.PageKindContact:
		if input.Contact == nil {
			return nil
		}
		return tx.Model(&db.ContactPage{}).Where("page_id = ?", page.ID).
			Updates(map[string]interface{}{
				"intro":          input.Contact.Intro,
				"thank_you_text": input.Contact.ThankYouText,
				"from_address":   strings.TrimSpace(input.Contact.FromAddress),
				"to_address":     strings.TrimSpace(input.Contact.ToAddress),
				"subject":        strings.TrimSpace(input.Contact.Subject),
			}).Error
	}
	return ErrTreeConstraint
}

func validatePageInput(input *PageInput) error {
	v := &ValidationError{}

	if !KnownKind(input.Kind) {
		v.add("kind", "is not a registered page type")
		return v
	}
	requireText(v, "title", input.Title, 255)
	limitText(v, "slug", input.Slug, 255)

	switch input.Kind {
	case db.PageKindHome:
		if input.Home == nil {
			v.add("home", "payload is required")
			break
		}
		requireText(v, "hero_title", input.Home.HeroTitle, 150)
		limitText(v, "hero_cta_text", input.Home.HeroCTAText, 50)
		limitText(v, "projects_section_title", input.Home.ProjectsSectionTitle, 100)
		limitText(v, "testimonials_section_title", input.Home.TestimonialsSectionTitle, 100)
		limitText(v, "press_section_title", input.Home.PressSectionTitle, 100)
	case db.PageKindCaseStudy:
		if input.CaseStudy == nil {
			v.add("case_study", "payload is required")
			break
		}
		if input.CaseStudy.ProjectDate.IsZero() {
			v.add("project_date", "is required")
		}
		requireText(v, "client_sector", input.CaseStudy.ClientSector, 100)
	}

	return v.orNil()
}

// Slugify derives a URL slug from a title. Letters and digits survive,
// accented ones included, so French titles keep their characters instead
// of collapsing onto each other.
func Slugify(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	var b strings.Builder
	lastDash := true
	for _, r := range value {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
