package service

import (
	"strings"
	"unicode/utf8"

	"github.com/optimizerlabs/site/internal/db"
)

// allowedChildren is the tree placement table. A kind missing from the map
// accepts no children. The home kind is the only one allowed at the site
// root (nil parent).
var allowedChildren = map[string][]string{
	db.PageKindHome: {
		db.PageKindCaseStudyIndex,
		db.PageKindAbout,
		db.PageKindMethode,
		db.PageKindContact,
	},
	db.PageKindCaseStudyIndex: {
		db.PageKindCaseStudy,
	},
}

// AllowedChildren returns the page kinds that may be created under the
// given kind.
func AllowedChildren(kind string) []string {
	children := allowedChildren[kind]
	out := make([]string, len(children))
	copy(out, children)
	return out
}

// AllowedParents returns the page kinds that may own the given kind. An
// empty result means the kind lives at the site root.
func AllowedParents(kind string) []string {
	var parents []string
	for parent, children := range allowedChildren {
		for _, child := range children {
			if child == kind {
				parents = append(parents, parent)
			}
		}
	}
	return parents
}

// KnownKind reports whether the kind names a registered page type.
func KnownKind(kind string) bool {
	switch kind {
	case db.PageKindHome, db.PageKindCaseStudyIndex, db.PageKindCaseStudy,
		db.PageKindAbout, db.PageKindMethode, db.PageKindContact:
		return true
	}
	return false
}

// placementAllowed checks a child kind against its parent kind. The home
// kind requires a nil parent; everything else requires a listed parent.
func placementAllowed(kind string, parentKind string, hasParent bool) bool {
	if kind == db.PageKindHome {
		return !hasParent
	}
	if !hasParent {
		return false
	}
	for _, child := range allowedChildren[parentKind] {
		if child == kind {
			return true
		}
	}
	return false
}

func requireText(v *ValidationError, field, value string, maxLen int) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		v.add(field, "is required")
		return
	}
	limitText(v, field, trimmed, maxLen)
}

func limitText(v *ValidationError, field, value string, maxLen int) {
	if maxLen > 0 && utf8.RuneCountInString(value) > maxLen {
		v.add(field, "is too long")
	}
}

func validSocialPlatform(platform string) bool {
	switch platform {
	case db.SocialPlatformLinkedIn, db.SocialPlatformGitHub,
		db.SocialPlatformTwitter, db.SocialPlatformWebsite,
		db.SocialPlatformOther:
		return true
	}
	return false
}

func validFormFieldType(fieldType string) bool {
	switch fieldType {
	case db.FormFieldSingleLine, db.FormFieldMultiLine, db.FormFieldEmail,
		db.FormFieldNumber, db.FormFieldCheckbox, db.FormFieldDropdown,
		db.FormFieldRadio, db.FormFieldDate:
		return true
	}
	return false
}
