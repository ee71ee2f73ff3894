package rendering

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Placeholders maps a field key to the label rendered in its place when the value is blank.
// Only themes with placeholders enabled use it; every other theme omits blank fields.
var Placeholders = map[string]string{
	"fullName":           "No Name",
	"position":           "No Position",
	"company":            "No Company",
	"duration":           "No Duration",
	"degree":             "No Degree",
	"school":             "No School",
	"year":               "No Year",
	"certification.name": "No Certification",
	"issuer":             "No Issuer",
	"project.name":       "No Project",
}

// Ellipsis is appended to text cut short by a preview budget.
const Ellipsis = "..."

var (
	linkPolicyOnce sync.Once
	linkPolicy     *bluemonday.Policy
	hrefAttr       = regexp.MustCompile(`^<a href="([^"]*)"`)
)

// allowedLink runs href through a link-only policy and returns the URL it keeps. Only web,
// mail and phone links survive.
func allowedLink(href string) (string, bool) {
	linkPolicyOnce.Do(func() {
		linkPolicy = bluemonday.NewPolicy()
		linkPolicy.AllowAttrs("href").OnElements("a")
		linkPolicy.AllowURLSchemes("http", "https", "mailto", "tel")
	})
	out := linkPolicy.Sanitize(`<a href="` + html.EscapeString(href) + `">link</a>`)
	m := hrefAttr.FindStringSubmatch(out)
	if m == nil {
		return "", false
	}
	return html.UnescapeString(m[1]), true
}

// clean trims a form value. Text is kept exactly as typed, angle brackets included;
// html/template escapes it when the document is serialized.
func clean(s string) string {
	return strings.TrimSpace(s)
}

// truncate cuts s to budget runes and appends Ellipsis when it was longer.
// A budget of zero or less leaves s unchanged.
func truncate(s string, budget int) string {
	if budget <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return strings.TrimSpace(string(runes[:budget])) + Ellipsis
}
