package handler

import (
	"bytes"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/optimizerlabs/site/internal/db"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// renderRichText converts stored markdown into sanitized HTML for page
// contexts. Empty input renders to an empty string, never an error page.
func renderRichText(content string) string {
	if content == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return ""
	}
	return sanitizer.Sanitize(buf.String())
}

// mediaView shapes a media reference for a context; nil stays null in JSON
// so missing or dangling refs render as empty slots.
func (a *API) mediaView(id *uint) gin.H {
	ref, err := a.media.GetByID(id)
	if err != nil || ref == nil {
		return nil
	}
	return gin.H{
		"key":  ref.Key,
		"kind": ref.Kind,
		"url":  ref.URL,
		"alt":  ref.Alt,
	}
}

// canonicalURL builds the absolute URL of the current request for the
// rendering layer's canonical link tag.
func (a *API) canonicalURL(c *gin.Context) string {
	if a.baseURL == "" {
		return ""
	}
	return a.baseURL + c.Request.URL.Path
}

// pageView is the shared page envelope inside contexts.
func pageView(page *db.Page) gin.H {
	return gin.H{
		"id":    page.ID,
		"slug":  page.Slug,
		"title": page.Title,
		"live":  page.Live,
	}
}
