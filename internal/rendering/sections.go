package rendering

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/types"
)

// buildContext carries what a section builder needs beyond the data itself.
type buildContext struct {
	theme   catalog.Theme
	preview bool
}

// value returns the cleaned text, the placeholder for label when the theme renders
// placeholders, or "" when the field should be omitted.
func (c buildContext) value(text, label string) string {
	if v := clean(text); v != "" {
		return v
	}
	if c.theme.Placeholders {
		return Placeholders[label]
	}
	return ""
}

// budget returns the preview budget for a kind of text, or zero outside preview mode.
func (c buildContext) budget(kind string) int {
	if !c.preview {
		return 0
	}
	switch kind {
	case "summary":
		return c.theme.Preview.Summary
	case "achievement":
		return c.theme.Preview.Achievement
	}
	return c.theme.Preview.Description
}

// Section describes one résumé section once, for every template.
type Section struct {
	Key   string
	Title string
	build func(data *types.ResumeData, ctx buildContext) []*Node
}

// Sections is the shared descriptor list. Themes only choose ordering and placement.
var Sections = []Section{
	{Key: types.FieldSummary, Title: "Summary", build: buildSummary},
	{Key: types.FieldExperience, Title: "Experience", build: buildExperience},
	{Key: types.FieldEducation, Title: "Education", build: buildEducation},
	{Key: types.FieldSkills, Title: "Skills", build: buildSkills},
	{Key: types.FieldLanguages, Title: "Languages", build: buildLanguages},
	{Key: types.FieldCertifications, Title: "Certifications", build: buildCertifications},
	{Key: types.FieldProjects, Title: "Projects", build: buildProjects},
	{Key: types.FieldAchievements, Title: "Achievements", build: buildAchievements},
}

var sectionsByKey = func() map[string]Section {
	m := make(map[string]Section, len(Sections))
	for _, s := range Sections {
		m[s.Key] = s
	}
	return m
}()

// render produces the section node, or nil when the section is hidden, empty, or cleans
// down to nothing.
func (s Section) render(data *types.ResumeData, visible types.VisibilityMap, ctx buildContext) *Node {
	if !visible.Shows(data, s.Key) {
		return nil
	}
	body := s.build(data, ctx)
	if len(body) == 0 {
		return nil
	}
	children := append([]*Node{textNode(KindHeading, "", "section-title", s.Title)}, body...)
	return newNode(KindSection, s.Key, "section section-"+s.Key, children...)
}

func buildSummary(data *types.ResumeData, ctx buildContext) []*Node {
	text := clean(data.Summary)
	if text == "" {
		return nil
	}
	return []*Node{textNode(KindParagraph, types.FieldSummary+".text", "summary", truncate(text, ctx.budget("summary")))}
}

func buildExperience(data *types.ResumeData, ctx buildContext) []*Node {
	var out []*Node
	for i, e := range data.Experience {
		if e.IsEmpty() {
			continue
		}
		key := fmt.Sprintf("%s.%d", types.FieldExperience, i)
		entry := newNode(KindEntry, key, entryClass(ctx, "experience"),
			field(key, "position", ctx.value(e.Position, "position")),
			field(key, "company", ctx.value(e.Company, "company")),
			field(key, "duration", ctx.value(e.Duration, "duration")),
			field(key, "description", truncate(clean(e.Description), ctx.budget("description"))),
		)
		if len(entry.Children) > 0 {
			out = append(out, entry)
		}
	}
	return out
}

func buildEducation(data *types.ResumeData, ctx buildContext) []*Node {
	var out []*Node
	for i, e := range data.Education {
		if e.IsEmpty() {
			continue
		}
		key := fmt.Sprintf("%s.%d", types.FieldEducation, i)
		entry := newNode(KindEntry, key, entryClass(ctx, "education"),
			field(key, "degree", ctx.value(e.Degree, "degree")),
			field(key, "school", ctx.value(e.School, "school")),
			field(key, "year", ctx.value(e.Year, "year")),
			field(key, "grade", clean(e.Grade)),
		)
		if len(entry.Children) > 0 {
			out = append(out, entry)
		}
	}
	return out
}

func buildCertifications(data *types.ResumeData, ctx buildContext) []*Node {
	var out []*Node
	for i, c := range data.Certifications {
		if c.IsEmpty() {
			continue
		}
		key := fmt.Sprintf("%s.%d", types.FieldCertifications, i)
		entry := newNode(KindEntry, key, "entry certification",
			field(key, "name", ctx.value(c.Name, "certification.name")),
			field(key, "issuer", ctx.value(c.Issuer, "issuer")),
			field(key, "year", ctx.value(c.Year, "year")),
		)
		if len(entry.Children) > 0 {
			out = append(out, entry)
		}
	}
	return out
}

func buildProjects(data *types.ResumeData, ctx buildContext) []*Node {
	var out []*Node
	for i, p := range data.Projects {
		if p.IsEmpty() {
			continue
		}
		key := fmt.Sprintf("%s.%d", types.FieldProjects, i)
		var link *Node
		if href := clean(p.Link); href != "" {
			link = &Node{Kind: KindField, Key: key + ".link", Class: "field-link", Text: href, Href: normalizeURL(href)}
		}
		entry := newNode(KindEntry, key, "entry project",
			field(key, "name", ctx.value(p.Name, "project.name")),
			field(key, "description", truncate(clean(p.Description), ctx.budget("description"))),
			field(key, "technologies", clean(p.Technologies)),
			link,
		)
		if len(entry.Children) > 0 {
			out = append(out, entry)
		}
	}
	return out
}

func buildSkills(data *types.ResumeData, _ buildContext) []*Node {
	return listOf(types.FieldSkills, "chips", data.Skills, 0)
}

func buildLanguages(data *types.ResumeData, _ buildContext) []*Node {
	return listOf(types.FieldLanguages, "chips", data.Languages, 0)
}

func buildAchievements(data *types.ResumeData, ctx buildContext) []*Node {
	return listOf(types.FieldAchievements, "bullets", data.Achievements, ctx.budget("achievement"))
}

func listOf(key, class string, items []string, budget int) []*Node {
	list := newNode(KindList, key+".list", "list "+class)
	for i, item := range items {
		text := clean(item)
		if text == "" {
			continue
		}
		list.Children = append(list.Children, textNode(KindItem, fmt.Sprintf("%s.%d", key, i), "item", truncate(text, budget)))
	}
	if len(list.Children) == 0 {
		return nil
	}
	return []*Node{list}
}

// field returns a field node, or nil for blank text so the field is omitted.
func field(entryKey, name, text string) *Node {
	if text == "" {
		return nil
	}
	return textNode(KindField, entryKey+"."+name, "field-"+name, text)
}

func entryClass(ctx buildContext, kind string) string {
	if ctx.theme.Layout == catalog.LayoutTimeline {
		return "entry timeline-entry " + kind
	}
	return "entry " + kind
}

// normalizeURL adds a scheme to bare links such as "github.com/jane". Links that already carry
// a scheme are returned as is; safeHref decides whether they are allowed.
func normalizeURL(link string) string {
	if hasScheme(link) {
		return link
	}
	return "https://" + link
}

func hasScheme(link string) bool {
	i := strings.Index(link, ":")
	if i <= 0 {
		return false
	}
	for _, r := range link[:i] {
		if !unicode.IsLetter(r) && r != '+' && r != '.' && r != '-' {
			return false
		}
	}
	// "localhost:8080" is a host and port, not a scheme.
	rest := link[i+1:]
	return rest == "" || !unicode.IsDigit(rune(rest[0]))
}
