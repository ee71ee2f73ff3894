package ats

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractText returns the text an applicant tracking system would read from rendered HTML:
// one line per leaf field or section heading, in document order. Navigation chrome such as
// the tab strip is dropped.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, .tab-strip").Remove()

	var lines []string
	doc.Find("h2, [data-key]").Each(func(_ int, s *goquery.Selection) {
		// Entries carry a data-key too; their fields are read individually.
		if s.Find("[data-key]").Length() > 0 {
			return
		}
		if text := collapseSpaces(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})

	return strings.Join(lines, "\n"), nil
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// countWords counts whitespace separated words.
func countWords(s string) int {
	return len(strings.Fields(s))
}
