package canvaspdf

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/tdewolff/canvas"
)

// line is one laid out row of the PDF. Units are millimetres.
type line struct {
	text      string
	face      *canvas.FontFace
	height    float64
	gapBefore float64
	// rule draws a horizontal rule under the line, used for section headings.
	rule bool
}

// layouter flattens a layout tree into wrapped lines at a fixed content width.
type layouter struct {
	width float64
	faces *faces
	lines []line
}

func (l *layouter) add(text string, face *canvas.FontFace, gap float64, rule bool) {
	for i, row := range wrap(text, l.width, face) {
		g := 0.0
		if i == 0 {
			g = gap
		}
		l.lines = append(l.lines, line{
			text:      row,
			face:      face,
			height:    face.Metrics().LineHeight,
			gapBefore: g,
			rule:      rule && i == 0,
		})
	}
}

// document lays out the whole tree in reading order. Columns and tab panels are linearized:
// a printed page has no tabs, and a single flow keeps text order stable for ATS parsers.
func (l *layouter) document(root *rendering.Node) {
	root.Walk(func(n *rendering.Node) bool {
		switch n.Kind {
		case rendering.KindName:
			l.add(n.Text, l.faces.name, 0, false)
			return false
		case rendering.KindContact:
			var items []string
			for _, c := range n.Children {
				items = append(items, c.Text)
			}
			l.add(strings.Join(items, "  |  "), l.faces.contact, 1.5, false)
			return false
		case rendering.KindTabs:
			// Skip the tab strip; panels follow.
			for _, c := range n.Children {
				if c.Kind == rendering.KindColumn {
					l.document(c)
				}
			}
			return false
		case rendering.KindSection:
			l.section(n)
			return false
		}
		return true
	})
}

func (l *layouter) section(n *rendering.Node) {
	for _, c := range n.Children {
		switch c.Kind {
		case rendering.KindHeading:
			l.add(strings.ToUpper(c.Text), l.faces.heading, 6, true)
		case rendering.KindParagraph:
			l.add(c.Text, l.faces.body, 1.5, false)
		case rendering.KindList:
			l.list(c)
		case rendering.KindEntry:
			l.entry(c)
		}
	}
}

func (l *layouter) list(n *rendering.Node) {
	var items []string
	for _, c := range n.Children {
		items = append(items, c.Text)
	}
	if strings.Contains(n.Class, "chips") {
		l.add(strings.Join(items, ", "), l.faces.body, 1.5, false)
		return
	}
	for i, item := range items {
		gap := 0.8
		if i == 0 {
			gap = 1.5
		}
		l.add("• "+item, l.faces.body, gap, false)
	}
}

// entry prints the title field in bold, the dates and issuer style fields muted, and the
// remaining fields as body text.
func (l *layouter) entry(n *rendering.Node) {
	gap := 3.0
	for _, f := range n.Children {
		face := l.faces.body
		switch {
		case hasClass(f, "field-position", "field-degree", "field-name"):
			face = l.faces.strong
		case hasClass(f, "field-duration", "field-year", "field-issuer", "field-grade", "field-technologies", "field-link"):
			face = l.faces.muted
		}
		l.add(f.Text, face, gap, false)
		gap = 0.5
	}
}

func hasClass(n *rendering.Node, classes ...string) bool {
	for _, c := range classes {
		if strings.Contains(n.Class, c) {
			return true
		}
	}
	return false
}

// wrap breaks text into rows no wider than width, greedily by word. Words wider than a row
// are split by rune. Explicit newlines start a new row.
func wrap(text string, width float64, face *canvas.FontFace) []string {
	var rows []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			rows = append(rows, "")
			continue
		}
		current := ""
		for _, word := range words {
			for _, piece := range splitWord(word, width, face) {
				candidate := piece
				if current != "" {
					candidate = current + " " + piece
				}
				if current != "" && face.TextWidth(candidate) > width {
					rows = append(rows, current)
					current = piece
					continue
				}
				current = candidate
			}
		}
		rows = append(rows, current)
	}
	return rows
}

func splitWord(word string, width float64, face *canvas.FontFace) []string {
	if face.TextWidth(word) <= width {
		return []string{word}
	}
	var pieces []string
	var sb strings.Builder
	for _, r := range word {
		if sb.Len() > 0 && face.TextWidth(sb.String()+string(r)) > width {
			pieces = append(pieces, sb.String())
			sb.Reset()
		}
		sb.WriteRune(r)
	}
	if sb.Len() > 0 {
		pieces = append(pieces, sb.String())
	}
	return pieces
}

// paginate splits lines into pages of at most height millimetres. A heading is moved to the
// next page together with the line that follows it.
func paginate(lines []line, height float64) [][]line {
	var pages [][]line
	var page []line
	used := 0.0

	for i := 0; i < len(lines); i++ {
		ln := lines[i]
		need := ln.gapBefore + ln.height
		if ln.rule && i+1 < len(lines) {
			need += lines[i+1].gapBefore + lines[i+1].height
		}
		if len(page) > 0 && used+need > height {
			pages = append(pages, page)
			page = nil
			used = 0
		}
		if len(page) == 0 {
			ln.gapBefore = 0
		}
		page = append(page, ln)
		used += ln.gapBefore + ln.height
	}
	if len(page) > 0 || len(pages) == 0 {
		pages = append(pages, page)
	}
	return pages
}
