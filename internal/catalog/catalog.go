// Package catalog holds the closed set of résumé templates and the visual theme each one applies.
package catalog

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultTemplateID is the template every unknown or blank id resolves to.
const DefaultTemplateID = "default"

// Layout names the container arrangement a theme uses.
type Layout string

// Supported layouts
const (
	LayoutSingle    Layout = "single"
	LayoutSidebar   Layout = "sidebar"
	LayoutTwoColumn Layout = "two-column"
	LayoutTabbed    Layout = "tabbed"
	LayoutTimeline  Layout = "timeline"
	LayoutCompact   Layout = "compact"
)

// PreviewBudget is the character budget per text field used by gallery card previews.
type PreviewBudget struct {
	Summary     int `json:"summary"`
	Description int `json:"description"`
	Achievement int `json:"achievement"`
}

// Theme is everything a template contributes on top of the shared section descriptors:
// container layout, section order, sidebar placement and styling.
type Theme struct {
	Layout       Layout        `json:"layout"`
	Order        []string      `json:"order"`
	Sidebar      []string      `json:"sidebar,omitempty"`
	Accent       string        `json:"accent"`
	FontFamily   string        `json:"fontFamily"`
	Placeholders bool          `json:"placeholders"`
	Preview      PreviewBudget `json:"preview"`
}

// Entry is a registry entry: descriptive metadata plus the theme.
type Entry struct {
	types.TemplateInfo
	Theme Theme `json:"theme"`
}

var index = buildIndex()

func buildIndex() map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.ID] = e
	}
	return m
}

// Lookup returns the entry registered under id.
func Lookup(id string) (Entry, bool) {
	e, ok := index[id]
	return e, ok
}

// Resolve returns the entry for id, falling back to the default template when id is not
// registered. The second return value reports whether the fallback was taken.
func Resolve(id string) (Entry, bool) {
	if e, ok := index[strings.TrimSpace(id)]; ok {
		return e, false
	}
	return index[DefaultTemplateID], true
}

// Default returns the designated fallback entry.
func Default() Entry {
	return index[DefaultTemplateID]
}

// List returns every entry in registry order.
func List() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Infos returns the descriptive metadata of every entry in registry order.
func Infos() []types.TemplateInfo {
	out := make([]types.TemplateInfo, len(entries))
	for i, e := range entries {
		out[i] = e.TemplateInfo
	}
	return out
}

// IDs returns every registered template id in registry order.
func IDs() []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

// Categories returns the distinct categories, sorted.
func Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	sort.Strings(out)
	return out
}

// ByCategory returns the entries of one category (case-insensitive) in registry order.
func ByCategory(category string) []Entry {
	var out []Entry
	for _, e := range entries {
		if strings.EqualFold(e.Category, category) {
			out = append(out, e)
		}
	}
	return out
}

// InSidebar reports whether the theme places section key in its sidebar column.
func (t Theme) InSidebar(key string) bool {
	if t.Layout != LayoutSidebar && t.Layout != LayoutTwoColumn {
		return false
	}
	for _, k := range t.Sidebar {
		if k == key {
			return true
		}
	}
	return false
}
