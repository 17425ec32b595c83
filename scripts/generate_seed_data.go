package main

import (
	"fmt"
	"log"
	"time"

	"github.com/optimizerlabs/site/internal/config"
	"github.com/optimizerlabs/site/internal/db"
	"github.com/optimizerlabs/site/internal/service"
	"gorm.io/gorm"
)

// Seed data generator. Run with: go run scripts/generate_seed_data.go
func main() {
	cfg := config.Load()
	gdb, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal("failed to open database:", err)
	}

	var count int64
	gdb.Model(&db.Page{}).Count(&count)
	if count > 0 {
		fmt.Println("pages already exist, skipping seed")
		return
	}

	fmt.Println("seeding demo content...")

	pages := service.NewPageTreeService(gdb)
	media := service.NewMediaService(gdb)
	tags := service.NewTagService(gdb)

	hero, err := media.Register(db.MediaKindImage, "https://cdn.optimizer-labs.fr/hero.jpg", "Atelier de production")
	if err != nil {
		log.Fatal("failed to register hero image:", err)
	}

	home, err := pages.CreatePage(service.PageInput{
		Kind:   db.PageKindHome,
		Title:  "Accueil",
		Live:   true,
		Public: true,
		Home: &service.HomePageInput{
			HeroTitle:    "Optimisez votre production",
			HeroSubtitle: "Conseil en performance industrielle pour TPE et PME.",
			HeroImageID:  &hero.ID,
		},
	})
	if err != nil {
		log.Fatal("failed to create home page:", err)
	}

	index := mustCreatePage(pages, service.PageInput{
		Kind:           db.PageKindCaseStudyIndex,
		ParentID:       &home.ID,
		Title:          "Études de cas",
		Live:           true,
		Public:         true,
		CaseStudyIndex: &service.CaseStudyIndexInput{Intro: "Quelques projets menés avec nos clients."},
	})

	seedCaseStudies(gdb, pages, tags, index.ID)
	seedAboutPage(gdb, pages, home.ID)
	seedMethodePage(gdb, pages, home.ID)
	seedContactPage(gdb, pages, home.ID)
	seedSnippets(gdb)

	fmt.Println("seed complete")
	fmt.Printf("root page: %s (id %d)\n", home.Title, home.ID)
}

func mustCreatePage(pages *service.PageTreeService, input service.PageInput) *db.Page {
	page, err := pages.CreatePage(input)
	if err != nil {
		log.Fatalf("failed to create %s page: %v", input.Kind, err)
	}
	return page
}

func seedCaseStudies(gdb *gorm.DB, pages *service.PageTreeService, tags *service.TagService, indexID uint) {
	studies := []struct {
		title  string
		date   string
		sector string
		labels []string
	}{
		{"Boulangerie Dupont", "2024-05-15", "Artisan boulanger", []string{"lean", "flux"}},
		{"Menuiserie Leroy", "2024-01-20", "Menuiserie", []string{"lean", "5s"}},
		{"Brasserie du Nord", "2023-10-02", "Brasserie artisanale", []string{"flux"}},
	}

	for _, s := range studies {
		projectDate, err := time.Parse("2006-01-02", s.date)
		if err != nil {
			log.Fatal("bad seed date:", err)
		}
		page := mustCreatePage(pages, service.PageInput{
			Kind:     db.PageKindCaseStudy,
			ParentID: &indexID,
			Title:    s.title,
			Live:     true,
			Public:   true,
			CaseStudy: &service.CaseStudyInput{
				ProjectDate:  projectDate,
				ClientSector: s.sector,
				Context:      "Une activité en forte croissance avec des **goulots** récurrents.",
				Problem:      "Les délais de livraison dépassaient les engagements clients.",
				Solution:     "Cartographie des flux puis réorganisation du poste critique.",
				Results:      "Délai moyen divisé par deux en trois mois.",
			},
		})
		for _, label := range s.labels {
			if err := tags.Attach(page.ID, label); err != nil {
				log.Fatal("failed to attach tag:", err)
			}
		}
	}
	fmt.Println("case studies created")
}

func seedAboutPage(gdb *gorm.DB, pages *service.PageTreeService, homeID uint) {
	about := mustCreatePage(pages, service.PageInput{
		Kind:     db.PageKindAbout,
		ParentID: &homeID,
		Title:    "À propos",
		Live:     true,
		Public:   true,
		About: &service.AboutInput{
			Biography: "Quinze ans d'amélioration continue en milieu industriel.",
			Skills:    "- Lean manufacturing\n- Gestion de flux\n- Conduite du changement",
		},
	})

	aboutSvc := service.NewAboutService(gdb)
	links := []service.SocialLinkInput{
		{Platform: db.SocialPlatformLinkedIn, URL: "https://www.linkedin.com/company/optimizer-labs"},
		{Platform: db.SocialPlatformWebsite, URL: "https://www.optimizer-labs.fr"},
	}
	for _, link := range links {
		if _, err := aboutSvc.AddSocialLink(about.ID, link); err != nil {
			log.Fatal("failed to add social link:", err)
		}
	}
	fmt.Println("about page created")
}

func seedMethodePage(gdb *gorm.DB, pages *service.PageTreeService, homeID uint) {
	methode := mustCreatePage(pages, service.PageInput{
		Kind:     db.PageKindMethode,
		ParentID: &homeID,
		Title:    "Méthode",
		Live:     true,
		Public:   true,
		Methode:  &service.MethodeInput{Intro: "Une démarche en trois temps, du diagnostic aux résultats."},
	})

	methodeSvc := service.NewMethodeService(gdb)
	steps := []service.MethodeStepInput{
		{Title: "Diagnostic", Description: "Observation terrain et mesure des flux existants."},
		{Title: "Plan d'action", Description: "Priorisation des chantiers avec les équipes."},
		{Title: "Accompagnement", Description: "Mise en œuvre et suivi des indicateurs."},
	}
	for _, step := range steps {
		if _, err := methodeSvc.AddStep(methode.ID, step); err != nil {
			log.Fatal("failed to add methode step:", err)
		}
	}
	fmt.Println("methode page created")
}

func seedContactPage(gdb *gorm.DB, pages *service.PageTreeService, homeID uint) {
	contact := mustCreatePage(pages, service.PageInput{
		Kind:     db.PageKindContact,
		ParentID: &homeID,
		Title:    "Contact",
		Live:     true,
		Public:   true,
		Contact: &service.ContactInput{
			Intro:        "Parlons de votre production.",
			ThankYouText: "Merci, nous revenons vers vous sous 48h.",
			FromAddress:  "site@optimizer-labs.fr",
			ToAddress:    "contact@optimizer-labs.fr",
			Subject:      "Nouveau message depuis le site",
		},
	})

	contactSvc := service.NewContactService(gdb)
	fields := []service.ContactFormFieldInput{
		{Label: "Nom", FieldType: db.FormFieldSingleLine, Required: true},
		{Label: "Email", FieldType: db.FormFieldEmail, Required: true},
		{Label: "Secteur", FieldType: db.FormFieldDropdown, Choices: []string{"Agroalimentaire", "Menuiserie", "Autre"}},
		{Label: "Message", FieldType: db.FormFieldMultiLine, Required: true},
	}
	for _, field := range fields {
		if _, err := contactSvc.AddField(contact.ID, field); err != nil {
			log.Fatal("failed to add form field:", err)
		}
	}
	fmt.Println("contact page created")
}

func seedSnippets(gdb *gorm.DB) {
	testimonials := service.NewTestimonialService(gdb)
	demo := []service.TestimonialInput{
		{ClientName: "Claire Dupont", ClientCompany: "Boulangerie Dupont", Testimonial: "Des résultats visibles dès le premier mois.", Sector: "Artisan boulanger"},
		{ClientName: "Marc Leroy", ClientCompany: "Menuiserie Leroy", Testimonial: "Une approche pragmatique, proche du terrain.", Sector: "Menuiserie"},
	}
	for _, t := range demo {
		if _, err := testimonials.Create(t); err != nil {
			log.Fatal("failed to create testimonial:", err)
		}
	}

	press := service.NewPressService(gdb)
	date, _ := time.Parse("2006-01-02", "2024-03-12")
	if _, err := press.Create(service.PressCutInput{
		Title:  "Le lean à hauteur d'atelier",
		Source: "La Gazette de l'Industrie",
		Date:   date,
	}); err != nil {
		log.Fatal("failed to create press cut:", err)
	}
	fmt.Println("snippets created")
}
