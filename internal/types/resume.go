// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
)

// Field keys shared by the renderer, the estimator and the visibility map.
const (
	FieldFullName       = "fullName"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldLocation       = "location"
	FieldWebsite        = "website"
	FieldLinkedIn       = "linkedin"
	FieldGitHub         = "github"
	FieldSummary        = "summary"
	FieldAchievements   = "achievements"
	FieldExperience     = "experience"
	FieldEducation      = "education"
	FieldSkills         = "skills"
	FieldLanguages      = "languages"
	FieldCertifications = "certifications"
	FieldProjects       = "projects"
)

// ContactFields lists the header contact fields in display order.
var ContactFields = []string{
	FieldEmail,
	FieldPhone,
	FieldLocation,
	FieldWebsite,
	FieldLinkedIn,
	FieldGitHub,
}

// AllFields lists every ResumeData key, name first.
var AllFields = []string{
	FieldFullName,
	FieldEmail,
	FieldPhone,
	FieldLocation,
	FieldWebsite,
	FieldLinkedIn,
	FieldGitHub,
	FieldSummary,
	FieldAchievements,
	FieldExperience,
	FieldEducation,
	FieldSkills,
	FieldLanguages,
	FieldCertifications,
	FieldProjects,
}

// ResumeData is the single source-of-truth record edited by the form editor.
// Every renderer and the page-fit estimator derive their output from it.
type ResumeData struct {
	FullName       string          `json:"fullName"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Location       string          `json:"location"`
	Website        string          `json:"website"`
	LinkedIn       string          `json:"linkedin"`
	GitHub         string          `json:"github"`
	Summary        string          `json:"summary"`
	Achievements   []string        `json:"achievements"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Skills         []string        `json:"skills"`
	Languages      []string        `json:"languages"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
}

// Experience is a single work history entry. All fields are optional.
type Experience struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Education is a single degree entry. Grade is optional.
type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year"`
	Grade  string `json:"grade,omitempty"`
}

// Certification is a single certification entry.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
}

// Project is a single project entry.
type Project struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	Link         string `json:"link"`
}

// NewResumeData returns the record the editor starts from: no values, every sequence empty.
func NewResumeData() *ResumeData {
	return &ResumeData{
		Achievements:   []string{},
		Experience:     []Experience{},
		Education:      []Education{},
		Skills:         []string{},
		Languages:      []string{},
		Certifications: []Certification{},
		Projects:       []Project{},
	}
}

// HasText reports whether s holds a value once surrounding whitespace is removed.
func HasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Scalar returns the value of a scalar field by key. Unknown keys and sequence keys return "".
func (d *ResumeData) Scalar(field string) string {
	if d == nil {
		return ""
	}
	switch field {
	case FieldFullName:
		return d.FullName
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldLocation:
		return d.Location
	case FieldWebsite:
		return d.Website
	case FieldLinkedIn:
		return d.LinkedIn
	case FieldGitHub:
		return d.GitHub
	case FieldSummary:
		return d.Summary
	}
	return ""
}

// Has reports whether the field holds renderable content: non-blank text for scalars,
// at least one non-blank entry for sequences.
func (d *ResumeData) Has(field string) bool {
	if d == nil {
		return false
	}
	switch field {
	case FieldAchievements:
		return anyText(d.Achievements)
	case FieldSkills:
		return anyText(d.Skills)
	case FieldLanguages:
		return anyText(d.Languages)
	case FieldExperience:
		for _, e := range d.Experience {
			if !e.IsEmpty() {
				return true
			}
		}
		return false
	case FieldEducation:
		for _, e := range d.Education {
			if !e.IsEmpty() {
				return true
			}
		}
		return false
	case FieldCertifications:
		for _, c := range d.Certifications {
			if !c.IsEmpty() {
				return true
			}
		}
		return false
	case FieldProjects:
		for _, p := range d.Projects {
			if !p.IsEmpty() {
				return true
			}
		}
		return false
	}
	return HasText(d.Scalar(field))
}

// IsEmpty reports whether every field of the entry is blank.
func (e Experience) IsEmpty() bool {
	return !HasText(e.Position) && !HasText(e.Company) && !HasText(e.Duration) && !HasText(e.Description)
}

// IsEmpty reports whether every field of the entry is blank.
func (e Education) IsEmpty() bool {
	return !HasText(e.Degree) && !HasText(e.School) && !HasText(e.Year) && !HasText(e.Grade)
}

// IsEmpty reports whether every field of the entry is blank.
func (c Certification) IsEmpty() bool {
	return !HasText(c.Name) && !HasText(c.Issuer) && !HasText(c.Year)
}

// IsEmpty reports whether every field of the entry is blank.
func (p Project) IsEmpty() bool {
	return !HasText(p.Name) && !HasText(p.Description) && !HasText(p.Technologies) && !HasText(p.Link)
}

// Clone returns a deep copy so callers can build a candidate edit without touching the original.
func (d *ResumeData) Clone() *ResumeData {
	if d == nil {
		return NewResumeData()
	}
	c := *d
	c.Achievements = append([]string{}, d.Achievements...)
	c.Experience = append([]Experience{}, d.Experience...)
	c.Education = append([]Education{}, d.Education...)
	c.Skills = append([]string{}, d.Skills...)
	c.Languages = append([]string{}, d.Languages...)
	c.Certifications = append([]Certification{}, d.Certifications...)
	c.Projects = append([]Project{}, d.Projects...)
	return &c
}

// UnmarshalJSON decodes leniently: a sequence that is missing, null or not an array becomes
// empty, array elements of the wrong shape are skipped, and non-string scalars become "".
// Only syntactically invalid JSON (or a non-object document) is an error.
func (d *ResumeData) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*d = *NewResumeData()

	d.FullName = decodeString(raw[FieldFullName])
	d.Email = decodeString(raw[FieldEmail])
	d.Phone = decodeString(raw[FieldPhone])
	d.Location = decodeString(raw[FieldLocation])
	d.Website = decodeString(raw[FieldWebsite])
	d.LinkedIn = decodeString(raw[FieldLinkedIn])
	d.GitHub = decodeString(raw[FieldGitHub])
	d.Summary = decodeString(raw[FieldSummary])

	d.Achievements = decodeStrings(raw[FieldAchievements])
	d.Skills = decodeStrings(raw[FieldSkills])
	d.Languages = decodeStrings(raw[FieldLanguages])

	for _, obj := range decodeObjects(raw[FieldExperience]) {
		d.Experience = append(d.Experience, Experience{
			Position:    decodeString(obj["position"]),
			Company:     decodeString(obj["company"]),
			Duration:    decodeString(obj["duration"]),
			Description: decodeString(obj["description"]),
		})
	}
	for _, obj := range decodeObjects(raw[FieldEducation]) {
		d.Education = append(d.Education, Education{
			Degree: decodeString(obj["degree"]),
			School: decodeString(obj["school"]),
			Year:   decodeString(obj["year"]),
			Grade:  decodeString(obj["grade"]),
		})
	}
	for _, obj := range decodeObjects(raw[FieldCertifications]) {
		d.Certifications = append(d.Certifications, Certification{
			Name:   decodeString(obj["name"]),
			Issuer: decodeString(obj["issuer"]),
			Year:   decodeString(obj["year"]),
		})
	}
	for _, obj := range decodeObjects(raw[FieldProjects]) {
		d.Projects = append(d.Projects, Project{
			Name:         decodeString(obj["name"]),
			Description:  decodeString(obj["description"]),
			Technologies: decodeString(obj["technologies"]),
			Link:         decodeString(obj["link"]),
		})
	}

	return nil
}

// decodeString returns the string value of raw, or "" for anything that is not a JSON string.
func decodeString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// decodeStrings returns the string elements of a JSON array, skipping anything else.
func decodeStrings(raw json.RawMessage) []string {
	out := []string{}
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return out
	}
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// decodeObjects returns the object elements of a JSON array, skipping anything else.
func decodeObjects(raw json.RawMessage) []map[string]json.RawMessage {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}
	out := make([]map[string]json.RawMessage, 0, len(items))
	for _, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err == nil && obj != nil {
			out = append(out, obj)
		}
	}
	return out
}

func anyText(items []string) bool {
	for _, s := range items {
		if HasText(s) {
			return true
		}
	}
	return false
}
