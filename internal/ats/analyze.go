// Package ats checks how a rendered résumé reads to applicant tracking systems and whether
// it fits on one page.
package ats

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/estimate"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// Severity ranks a finding.
type Severity string

// Severities
const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding codes
const (
	CodeUnknownTemplate = "unknown-template"
	CodeMissingName     = "missing-name"
	CodeMissingContact  = "missing-contact"
	CodeInvalidEmail    = "invalid-email"
	CodeOverBudget      = "over-budget"
	CodeMultiColumn     = "multi-column"
	CodeTabbedLayout    = "tabbed-layout"
	CodeNoExperience    = "no-experience"
	CodeHiddenContent   = "hidden-content"
)

// Finding is one observation about the résumé.
type Finding struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report is the result of an analysis.
type Report struct {
	TemplateID string    `json:"templateId"`
	Fallback   bool      `json:"fallback"`
	Fits       bool      `json:"fits"`
	Height     float64   `json:"height"`
	Capacity   float64   `json:"capacity"`
	Sections   []string  `json:"sections"`
	WordCount  int       `json:"wordCount"`
	Findings   []Finding `json:"findings"`
	Text       string    `json:"text"`
}

// Warnings returns the findings with warning severity.
func (r *Report) Warnings() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			out = append(out, f)
		}
	}
	return out
}

// Analyzer combines the renderer and the estimator.
type Analyzer struct {
	renderer  *rendering.Renderer
	estimator *estimate.Estimator
	validate  *validator.Validate
}

// NewAnalyzer creates an Analyzer. Nil arguments use the package defaults.
func NewAnalyzer(renderer *rendering.Renderer, estimator *estimate.Estimator) *Analyzer {
	if renderer == nil {
		renderer = rendering.NewRenderer(nil)
	}
	if estimator == nil {
		estimator = estimate.New(nil)
	}
	return &Analyzer{renderer: renderer, estimator: estimator, validate: validator.New()}
}

// Analyze runs an analysis with the default renderer and calibration.
func Analyze(data *types.ResumeData, visible types.VisibilityMap, templateID string) (*Report, error) {
	return NewAnalyzer(nil, nil).Analyze(data, visible, templateID)
}

// Analyze renders data, extracts its text and reports findings.
func (a *Analyzer) Analyze(data *types.ResumeData, visible types.VisibilityMap, templateID string) (*Report, error) {
	if data == nil {
		data = types.NewResumeData()
	}

	doc := a.renderer.Render(data, templateID, visible, rendering.Options{})
	html, err := doc.HTML()
	if err != nil {
		return nil, err
	}
	text, err := ExtractText(html)
	if err != nil {
		return nil, err
	}
	est := a.estimator.Estimate(data, visible, doc.TemplateID)

	r := &Report{
		TemplateID: doc.TemplateID,
		Fallback:   doc.Fallback,
		Fits:       est.Fits,
		Height:     est.Height,
		Capacity:   est.Capacity,
		Sections:   doc.SectionKeys(),
		WordCount:  countWords(text),
		Findings:   []Finding{},
		Text:       text,
	}
	if r.Sections == nil {
		r.Sections = []string{}
	}

	if doc.Fallback {
		r.add(CodeUnknownTemplate, SeverityWarning, fmt.Sprintf("template %q does not exist; rendered with %q", templateID, doc.TemplateID))
	}
	if doc.Find(types.FieldFullName) == nil || !visible.Shows(data, types.FieldFullName) {
		r.add(CodeMissingName, SeverityWarning, "the résumé has no visible name")
	}
	if doc.Find(types.FieldEmail) == nil && doc.Find(types.FieldPhone) == nil {
		r.add(CodeMissingContact, SeverityWarning, "neither an email address nor a phone number is visible")
	}
	if doc.Find(types.FieldEmail) != nil {
		if err := a.validate.Var(strings.TrimSpace(data.Email), "email"); err != nil {
			r.add(CodeInvalidEmail, SeverityWarning, fmt.Sprintf("%q is not a valid email address", data.Email))
		}
	}
	if !est.Fits {
		r.add(CodeOverBudget, SeverityWarning, fmt.Sprintf("estimated height %.0fpx exceeds the page (%.0fpx) by %.0fpx", est.Height, est.Capacity, est.Overflow))
	}

	switch doc.Theme.Layout {
	case catalog.LayoutSidebar, catalog.LayoutTwoColumn:
		r.add(CodeMultiColumn, SeverityInfo, "sidebar content may be read before or after the main column")
	case catalog.LayoutTabbed:
		r.add(CodeTabbedLayout, SeverityInfo, "only the open tab is shown on screen; exports include every section")
	}

	if !contains(r.Sections, types.FieldExperience) {
		r.add(CodeNoExperience, SeverityInfo, "no experience section is shown")
	}

	var hidden []string
	for _, key := range types.AllFields {
		// A hidden name has its own finding.
		if key == types.FieldFullName {
			continue
		}
		if data.Has(key) && !visible.Visible(key) {
			hidden = append(hidden, key)
		}
	}
	if len(hidden) > 0 {
		r.add(CodeHiddenContent, SeverityInfo, "filled in but hidden: "+strings.Join(hidden, ", "))
	}

	return r, nil
}

func (r *Report) add(code string, sev Severity, msg string) {
	r.Findings = append(r.Findings, Finding{Code: code, Severity: sev, Message: msg})
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
