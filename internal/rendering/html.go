package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/catalog"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	documentOnce sync.Once
	documentTmpl *template.Template
	documentErr  error
)

// parseDocumentTemplate parses the embedded HTML document template once.
func parseDocumentTemplate() (*template.Template, error) {
	documentOnce.Do(func() {
		tmpl, err := template.New("resume").Funcs(template.FuncMap{
			"safeHref": safeHref,
		}).ParseFS(templateFS, "templates/*.tmpl")
		if err != nil {
			documentErr = &TemplateError{
				Message: "failed to parse document template",
				Cause:   err,
			}
			return
		}
		documentTmpl = tmpl
	})
	return documentTmpl, documentErr
}

// pageData is the structure passed to the document template
type pageData struct {
	Title      string
	TemplateID string
	CSS        template.CSS
	Root       *Node
}

// HTML serializes the document into a standalone HTML page.
func (d *Document) HTML() (string, error) {
	tmpl, err := parseDocumentTemplate()
	if err != nil {
		return "", err
	}

	title := "Résumé"
	if name := d.Find("fullName"); name != nil {
		title = name.Text
	}

	var result strings.Builder
	err = tmpl.ExecuteTemplate(&result, "document", pageData{
		Title:      title,
		TemplateID: d.TemplateID,
		CSS:        themeCSS(d.Theme),
		Root:       d.Root,
	})
	if err != nil {
		return "", &TemplateError{
			TemplateID: d.TemplateID,
			Message:    "failed to execute document template",
			Cause:      err,
		}
	}

	return result.String(), nil
}

// safeHref passes through in-page anchors and links the link policy allows. Everything else
// becomes "#".
func safeHref(href string) template.URL {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "#") {
		return template.URL(href)
	}
	if link, ok := allowedLink(href); ok {
		return template.URL(link)
	}
	return template.URL("#")
}

// themeCSS builds the stylesheet for a theme. Themes come from the closed catalog, so their
// values are trusted.
func themeCSS(t catalog.Theme) template.CSS {
	var sb strings.Builder
	fmt.Fprintf(&sb, "body{margin:0;font-family:%s;color:#1f2937;}", t.FontFamily)
	sb.WriteString(".resume{width:794px;min-height:1123px;box-sizing:border-box;padding:48px;}")
	fmt.Fprintf(&sb, ".name{margin:0;font-size:28px;color:%s;}", t.Accent)
	sb.WriteString(".contact{list-style:none;padding:0;margin:8px 0 0;display:flex;flex-wrap:wrap;gap:12px;font-size:13px;}")
	fmt.Fprintf(&sb, ".section-title{font-size:15px;text-transform:uppercase;letter-spacing:.05em;color:%s;border-bottom:1px solid %s;}", t.Accent, t.Accent)
	sb.WriteString(".entry{margin-bottom:10px;font-size:13px;}.entry span,.entry a{display:block;}")
	sb.WriteString(".field-position,.field-degree,.field-name{font-weight:600;}")
	sb.WriteString(".chips{list-style:none;padding:0;display:flex;flex-wrap:wrap;gap:6px;}")

	switch t.Layout {
	case catalog.LayoutSidebar:
		sb.WriteString(".layout-sidebar{display:grid;grid-template-columns:240px 1fr;column-gap:24px;}")
		sb.WriteString(".layout-sidebar .header{grid-column:1/3;}")
		fmt.Fprintf(&sb, ".sidebar{background:%s;color:#fff;padding:16px;}", t.Accent)
	case catalog.LayoutTwoColumn:
		sb.WriteString(".layout-two-column{display:grid;grid-template-columns:1fr 2fr;column-gap:24px;}")
		sb.WriteString(".layout-two-column .header{grid-column:1/3;}")
	case catalog.LayoutCompact:
		sb.WriteString(".layout-compact{padding:28px;}.layout-compact .entry{margin-bottom:4px;font-size:12px;}")
	case catalog.LayoutTimeline:
		fmt.Fprintf(&sb, ".timeline-entry{border-left:2px solid %s;padding-left:12px;}", t.Accent)
	case catalog.LayoutTabbed:
		sb.WriteString(".tab-strip{list-style:none;display:flex;gap:8px;padding:0;}")
		fmt.Fprintf(&sb, ".tab.active{border-bottom:2px solid %s;}", t.Accent)
		sb.WriteString("@media screen{.panel{display:none;}.panel.active{display:block;}}")
	}

	return template.CSS(sb.String())
}
