// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// TemplateInfo is the descriptive registry metadata for a template. ID is the dispatch key.
type TemplateInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// ResumeRecord is a saved résumé together with the template and visibility it was saved with.
type ResumeRecord struct {
	ID         uuid.UUID     `json:"id"`
	Title      string        `json:"title"`
	TemplateID string        `json:"templateId"`
	Data       *ResumeData   `json:"data"`
	Visible    VisibilityMap `json:"visible,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// SaveResumeRequest is the body accepted when saving or updating a résumé.
type SaveResumeRequest struct {
	Title      string        `json:"title" validate:"required,min=1,max=200"`
	TemplateID string        `json:"templateId" validate:"required"`
	Data       *ResumeData   `json:"data" validate:"required"`
	Visible    VisibilityMap `json:"visible,omitempty"`
}

// resumeContact holds the subset of ResumeData that is checked on save.
type resumeContact struct {
	Email string `validate:"omitempty,email"`
}

// Validate validates the SaveResumeRequest using the validator.
// Rendering never depends on this; it only guards what gets persisted.
func (r *SaveResumeRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	return validate.Struct(resumeContact{Email: strings.TrimSpace(r.Data.Email)})
}
