// Package rendering maps ResumeData onto a template's layout tree and serializes it.
package rendering

import "fmt"

// TemplateError is returned when the HTML page cannot be produced from a document.
// Building the layout tree itself never fails.
type TemplateError struct {
	TemplateID string // résumé template being serialized; empty while parsing
	Message    string
	Cause      error
}

func (e *TemplateError) Error() string {
	msg := e.Message
	if e.TemplateID != "" {
		msg = fmt.Sprintf("%s (template %s)", msg, e.TemplateID)
	}
	if e.Cause != nil {
		return fmt.Sprintf("html error: %s: %v", msg, e.Cause)
	}
	return "html error: " + msg
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
