package router

import (
	"github.com/gin-gonic/gin"
	"github.com/optimizerlabs/site/internal/handler"
)

// Setup wires the route table onto a gin engine.
func Setup(api *handler.API) *gin.Engine {
	r := gin.Default()

	r.GET("/ping", api.Ping)

	// Public page contexts, consumed by the external rendering layer.
	pages := r.Group("/api/pages")
	{
		pages.GET("/home", api.ShowHome)
		pages.GET("/case-studies", api.ShowCaseStudyIndex)
		pages.GET("/case-studies/:slug", api.ShowCaseStudy)
		pages.GET("/about", api.ShowAbout)
		pages.GET("/methode", api.ShowMethode)
		pages.GET("/contact", api.ShowContact)
	}
	r.GET("/api/press", api.ListPress)

	// Management API. The external editing UI authenticates upstream.
	admin := r.Group("/api/admin")
	{
		admin.POST("/pages", api.CreatePage)
		admin.GET("/pages/resolve", api.ResolvePage)
		admin.PUT("/pages/:id", api.UpdatePage)
		admin.POST("/pages/:id/move", api.MovePage)
		admin.POST("/pages/:id/publish", api.PublishPage)
		admin.POST("/pages/:id/unpublish", api.UnpublishPage)
		admin.DELETE("/pages/:id", api.DeletePage)

		admin.POST("/methode/:id/steps", api.AddMethodeStep)
		admin.POST("/methode/:id/steps/reorder", api.ReorderMethodeSteps)
		admin.PUT("/methode/:id/steps/:stepID", api.UpdateMethodeStep)
		admin.DELETE("/methode/:id/steps/:stepID", api.RemoveMethodeStep)

		admin.POST("/about/:id/social-links", api.AddSocialLink)
		admin.POST("/about/:id/social-links/reorder", api.ReorderSocialLinks)
		admin.DELETE("/about/:id/social-links/:linkID", api.RemoveSocialLink)

		admin.POST("/case-studies/:id/gallery", api.AddGalleryImage)
		admin.POST("/case-studies/:id/gallery/reorder", api.ReorderGallery)
		admin.DELETE("/case-studies/:id/gallery/:imageID", api.RemoveGalleryImage)

		admin.POST("/case-studies/:id/tags", api.AttachTag)
		admin.DELETE("/case-studies/:id/tags", api.DetachTag)

		admin.POST("/contact/:id/form-fields", api.AddFormField)
		admin.POST("/contact/:id/form-fields/reorder", api.ReorderFormFields)
		admin.PUT("/contact/:id/form-fields/:fieldID", api.UpdateFormField)
		admin.DELETE("/contact/:id/form-fields/:fieldID", api.RemoveFormField)
		admin.PUT("/contact/:id/email-settings", api.UpdateEmailSettings)

		admin.POST("/testimonials", api.CreateTestimonial)
		admin.PUT("/testimonials/:id", api.UpdateTestimonial)
		admin.DELETE("/testimonials/:id", api.DeleteTestimonial)

		admin.POST("/press", api.CreatePressCut)
		admin.PUT("/press/:id", api.UpdatePressCut)
		admin.DELETE("/press/:id", api.DeletePressCut)

		admin.POST("/media", api.RegisterMedia)
		admin.DELETE("/media/:key", api.DeleteMedia)

		admin.PUT("/site/root-page", api.SetRootPage)
	}

	return r
}
