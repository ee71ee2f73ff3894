// Package estimate approximates whether a rendered résumé fits on one A4 page.
//
// The estimate is a fast hint for the editor. The authoritative answer comes from measuring
// the rendered page (see the export package); the two are never mixed.
package estimate

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/types"
)

// requiredSections are the sections every calibration table must price.
var requiredSections = []string{
	types.FieldSummary, types.FieldExperience, types.FieldEducation, types.FieldSkills,
	types.FieldLanguages, types.FieldCertifications, types.FieldProjects, types.FieldAchievements,
}

// lineWidths names, per section, the width its line count is derived from.
var lineWidths = map[string]func(SectionRule) int{
	types.FieldSummary:      func(r SectionRule) int { return r.CharsPerLine },
	types.FieldExperience:   func(r SectionRule) int { return r.CharsPerLine },
	types.FieldProjects:     func(r SectionRule) int { return r.CharsPerLine },
	types.FieldAchievements: func(r SectionRule) int { return r.CharsPerLine },
	types.FieldSkills:       func(r SectionRule) int { return r.ItemsPerLine },
	types.FieldLanguages:    func(r SectionRule) int { return r.ItemsPerLine },
}

// SectionCost is the estimated contribution of one section before the template multiplier.
type SectionCost struct {
	Key    string  `json:"key"`
	Items  int     `json:"items"`
	Lines  int     `json:"lines"`
	Height float64 `json:"height"`
}

// Result is a full estimate. Height already includes the multiplier and section spacing.
type Result struct {
	TemplateID string        `json:"templateId"`
	Height     float64       `json:"height"`
	Capacity   float64       `json:"capacity"`
	Multiplier float64       `json:"multiplier"`
	Overflow   float64       `json:"overflow"`
	Fits       bool          `json:"fits"`
	Header     float64       `json:"header"`
	Sections   []SectionCost `json:"sections"`
}

// Estimator prices résumé content against a calibration table.
type Estimator struct {
	calib *Calibration
}

// New creates an Estimator. A nil calibration uses the embedded table.
func New(calib *Calibration) *Estimator {
	if calib == nil {
		calib = DefaultCalibration()
	}
	return &Estimator{calib: calib}
}

// Calibration returns the table the estimator was built with.
func (e *Estimator) Calibration() *Calibration {
	return e.calib
}

// Fits reports whether data is estimated to fit one page, using the embedded calibration.
func Fits(data *types.ResumeData, visible types.VisibilityMap, templateID string) bool {
	return New(nil).Estimate(data, visible, templateID).Fits
}

// Estimate prices every visible, populated section of data for templateID. It is pure and
// total: nil data or an unknown template id still produce a result.
func (e *Estimator) Estimate(data *types.ResumeData, visible types.VisibilityMap, templateID string) Result {
	if data == nil {
		data = types.NewResumeData()
	}
	c := e.calib
	mult := c.Multiplier(templateID)

	res := Result{
		TemplateID: templateID,
		Capacity:   c.Capacity,
		Multiplier: mult,
		Sections:   []SectionCost{},
	}

	raw := e.header(data, visible)
	res.Header = raw * mult

	spacing := 0.0
	for _, key := range requiredSections {
		if !visible.Shows(data, key) {
			continue
		}
		cost := e.section(key, data)
		if cost.Items == 0 && cost.Lines == 0 {
			continue
		}
		res.Sections = append(res.Sections, cost)
		raw += cost.Height
		spacing += c.Spacing
	}

	res.Height = raw*mult + spacing
	res.Fits = res.Height <= res.Capacity
	if !res.Fits {
		res.Overflow = res.Height - res.Capacity
	}
	return res
}

// Gate decides whether an edit from prev to next is accepted. An edit is accepted when next
// fits, or when it does not grow a résumé that is already over budget. A rejected edit returns
// prev so the caller keeps the last accepted data.
func (e *Estimator) Gate(prev, next *types.ResumeData, visible types.VisibilityMap, templateID string) (*types.ResumeData, bool) {
	after := e.Estimate(next, visible, templateID)
	if after.Fits {
		return next, true
	}
	before := e.Estimate(prev, visible, templateID)
	if after.Height <= before.Height {
		return next, true
	}
	return prev, false
}

// Gate runs Estimator.Gate with the embedded calibration.
func Gate(prev, next *types.ResumeData, visible types.VisibilityMap, templateID string) (*types.ResumeData, bool) {
	return New(nil).Gate(prev, next, visible, templateID)
}

func (e *Estimator) header(data *types.ResumeData, visible types.VisibilityMap) float64 {
	shown := visible.Shows(data, types.FieldFullName)
	contacts := 0
	for _, f := range types.ContactFields {
		if visible.Shows(data, f) {
			contacts++
		}
	}
	if !shown && contacts == 0 {
		return 0
	}
	return e.calib.Header.Base + float64(contacts)*e.calib.Header.PerContact
}

func (e *Estimator) section(key string, data *types.ResumeData) SectionCost {
	rule := e.calib.Sections[key]
	cost := SectionCost{Key: key}

	switch key {
	case types.FieldSummary:
		cost.Lines = textLines(data.Summary, rule.CharsPerLine)
		cost.Height = float64(cost.Lines) * rule.PerLine

	case types.FieldExperience:
		for _, exp := range data.Experience {
			if exp.IsEmpty() {
				continue
			}
			lines := textLines(exp.Description, rule.CharsPerLine)
			cost.Items++
			cost.Lines += lines
			cost.Height += rule.PerItem + float64(lines)*rule.PerLine
		}

	case types.FieldEducation:
		for _, edu := range data.Education {
			if !edu.IsEmpty() {
				cost.Items++
			}
		}
		cost.Height = float64(cost.Items) * rule.PerItem

	case types.FieldCertifications:
		for _, cert := range data.Certifications {
			if !cert.IsEmpty() {
				cost.Items++
			}
		}
		cost.Height = float64(cost.Items) * rule.PerItem

	case types.FieldProjects:
		for _, p := range data.Projects {
			if p.IsEmpty() {
				continue
			}
			lines := textLines(p.Description, rule.CharsPerLine)
			cost.Items++
			cost.Lines += lines
			cost.Height += rule.PerItem + float64(lines)*rule.PerLine
			if types.HasText(p.Technologies) {
				cost.Height += rule.PerDetail
			}
		}

	case types.FieldSkills, types.FieldLanguages:
		items := data.Skills
		if key == types.FieldLanguages {
			items = data.Languages
		}
		cost.Items = countText(items)
		cost.Lines = ceilDiv(cost.Items, rule.ItemsPerLine)
		cost.Height = float64(cost.Lines) * rule.PerLine

	case types.FieldAchievements:
		for _, a := range data.Achievements {
			if !types.HasText(a) {
				continue
			}
			cost.Items++
			cost.Lines += max(1, textLines(a, rule.CharsPerLine))
		}
		cost.Height = float64(cost.Lines) * rule.PerLine
	}

	if cost.Items > 0 || cost.Lines > 0 {
		cost.Height += rule.Base
	}
	return cost
}

// textLines is the number of wrapped lines s occupies at width characters per line.
func textLines(s string, width int) int {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return ceilDiv(n, width)
}

func countText(items []string) int {
	n := 0
	for _, s := range items {
		if types.HasText(s) {
			n++
		}
	}
	return n
}

func ceilDiv(n, d int) int {
	if n <= 0 || d <= 0 {
		return 0
	}
	return int(math.Ceil(float64(n) / float64(d)))
}
