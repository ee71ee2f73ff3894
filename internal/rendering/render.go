package rendering

import (
	"log"
	"strings"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/types"
)

// Options controls a single render.
type Options struct {
	// Preview applies the theme's per-field character budgets, as gallery cards do.
	Preview bool
	// ActiveTab selects the open panel of tabbed layouts. Empty selects the first section.
	ActiveTab string
}

// Document is the result of a render: the resolved template and its layout tree.
type Document struct {
	RequestedID string        `json:"requestedId"`
	TemplateID  string        `json:"templateId"`
	Fallback    bool          `json:"fallback"`
	Name        string        `json:"name"`
	Theme       catalog.Theme `json:"theme"`
	Root        *Node         `json:"root"`
}

// Renderer dispatches to the template registry and builds layout trees.
type Renderer struct {
	logger *log.Logger
}

// NewRenderer creates a Renderer that reports template fallbacks to logger.
// A nil logger uses the standard logger.
func NewRenderer(logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{logger: logger}
}

var defaultRenderer = NewRenderer(nil)

// Render builds the layout of data for templateID using the standard logger.
func Render(data *types.ResumeData, templateID string, visible types.VisibilityMap, opts Options) *Document {
	return defaultRenderer.Render(data, templateID, visible, opts)
}

// Render builds the layout of data for templateID. It never fails: unknown template ids fall
// back to the default template, missing data is omitted or replaced by placeholders, and data
// is only read.
func (r *Renderer) Render(data *types.ResumeData, templateID string, visible types.VisibilityMap, opts Options) *Document {
	if data == nil {
		data = types.NewResumeData()
	}

	entry, fellBack := catalog.Resolve(templateID)
	if fellBack {
		r.logger.Printf("[RENDER] warning: unknown template %q, falling back to %q", templateID, entry.ID)
	}

	ctx := buildContext{theme: entry.Theme, preview: opts.Preview}

	root := newNode(KindDocument, "", "resume layout-"+string(entry.Theme.Layout), buildHeader(data, visible, ctx))

	var sections []*Node
	for _, key := range entry.Theme.Order {
		section, ok := sectionsByKey[key]
		if !ok {
			continue
		}
		if node := section.render(data, visible, ctx); node != nil {
			sections = append(sections, node)
		}
	}

	switch entry.Theme.Layout {
	case catalog.LayoutSidebar, catalog.LayoutTwoColumn:
		root.Children = append(root.Children, columns(entry.Theme, sections)...)
	case catalog.LayoutTabbed:
		if tabs := tabbed(sections, opts.ActiveTab); tabs != nil {
			root.Children = append(root.Children, tabs)
		}
	default:
		if len(sections) > 0 {
			root.Children = append(root.Children, newNode(KindColumn, "", "column main", sections...))
		}
	}

	return &Document{
		RequestedID: templateID,
		TemplateID:  entry.ID,
		Fallback:    fellBack,
		Name:        entry.Name,
		Theme:       entry.Theme,
		Root:        root,
	}
}

func buildHeader(data *types.ResumeData, visible types.VisibilityMap, ctx buildContext) *Node {
	header := newNode(KindHeader, "", "header")

	if visible.Visible(types.FieldFullName) {
		if name := ctx.value(data.FullName, types.FieldFullName); name != "" {
			header.Children = append(header.Children, textNode(KindName, types.FieldFullName, "name", name))
		}
	}

	contact := newNode(KindContact, "", "contact")
	for _, f := range types.ContactFields {
		if !visible.Shows(data, f) {
			continue
		}
		text := clean(data.Scalar(f))
		if text == "" {
			continue
		}
		contact.Children = append(contact.Children, &Node{
			Kind:  KindContactItem,
			Key:   f,
			Class: "contact-" + f,
			Text:  text,
			Href:  contactHref(f, text),
		})
	}
	if len(contact.Children) > 0 {
		header.Children = append(header.Children, contact)
	}

	if len(header.Children) == 0 {
		return nil
	}
	return header
}

func contactHref(field, text string) string {
	switch field {
	case types.FieldEmail:
		return "mailto:" + text
	case types.FieldPhone:
		return "tel:" + strings.Join(strings.Fields(text), "")
	case types.FieldWebsite, types.FieldLinkedIn, types.FieldGitHub:
		return normalizeURL(text)
	}
	return ""
}

// columns splits sections between the sidebar and the main column, keeping theme order
// within each.
func columns(theme catalog.Theme, sections []*Node) []*Node {
	var side, main []*Node
	for _, s := range sections {
		if theme.InSidebar(s.Key) {
			side = append(side, s)
		} else {
			main = append(main, s)
		}
	}
	var out []*Node
	if len(side) > 0 {
		out = append(out, newNode(KindColumn, "", "column sidebar", side...))
	}
	if len(main) > 0 {
		out = append(out, newNode(KindColumn, "", "column main", main...))
	}
	return out
}

// tabbed lays sections out as a tab strip plus one panel per section. Every panel stays in
// the tree so exports carry all content; Active only marks which one the editor shows.
func tabbed(sections []*Node, activeTab string) *Node {
	if len(sections) == 0 {
		return nil
	}
	active := sections[0].Key
	for _, s := range sections {
		if s.Key == activeTab {
			active = activeTab
			break
		}
	}

	strip := newNode(KindList, "", "tab-strip")
	panels := newNode(KindColumn, "", "column main tab-panels")
	for _, s := range sections {
		title := ""
		if len(s.Children) > 0 {
			title = s.Children[0].Text
		}
		strip.Children = append(strip.Children, &Node{Kind: KindTab, Class: "tab", Text: title, Href: "#panel-" + s.Key, Active: s.Key == active})
		panels.Children = append(panels.Children, &Node{Kind: KindPanel, Class: "panel", Href: "panel-" + s.Key, Active: s.Key == active, Children: []*Node{s}})
	}
	return newNode(KindTabs, "", "tabs", strip, panels)
}

// SectionKeys lists the rendered sections in document order.
func (d *Document) SectionKeys() []string {
	var keys []string
	d.Root.Walk(func(n *Node) bool {
		if n.Kind == KindSection {
			keys = append(keys, n.Key)
			return false
		}
		return true
	})
	return keys
}

// Find returns the first node whose Key equals key, or nil.
func (d *Document) Find(key string) *Node {
	return d.Root.Find(key)
}

// Text returns the document content as plain text, one text node per line.
func (d *Document) Text() string {
	return d.Root.PlainText()
}
