package service

import (
	"errors"
	"fmt"
	"strings"
)

// Shared sentinel errors surfaced across services.
var (
	ErrPageNotFound      = errors.New("page not found")
	ErrTreeConstraint    = errors.New("page placement violates tree constraints")
	ErrOrderInvalid      = errors.New("invalid order sequence")
	ErrRecordNotFound    = errors.New("record not found")
	ErrTagNotFound       = errors.New("tag not found")
	ErrMediaNotFound     = errors.New("media reference not found")
	ErrSnippetNotFound   = errors.New("snippet not found")
	ErrSettingNotFound   = errors.New("setting not found")
	ErrRootPageUndefined = errors.New("root page is not configured")
)

// FieldError describes one invalid field of a write.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError rejects a create or update with field-level detail.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
