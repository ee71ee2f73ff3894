package canvaspdf

import (
	"bytes"
	"image/color"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderDoc(data *types.ResumeData, templateID string) *rendering.Document {
	r := rendering.NewRenderer(log.New(io.Discard, "", 0))
	return r.Render(data, templateID, nil, rendering.Options{})
}

func shortResume() *types.ResumeData {
	d := types.NewResumeData()
	d.FullName = "Jane Doe"
	d.Email = "jane@x.com"
	d.Summary = "Platform engineer."
	d.Skills = []string{"Go", "PostgreSQL"}
	d.Experience = []types.Experience{{Position: "Engineer", Company: "Acme", Duration: "2020 - now", Description: "Built things."}}
	return d
}

func TestRender_ProducesPDF(t *testing.T) {
	for _, id := range []string{"modern-simple", "modern-sidebar", "modern-tabbed"} {
		out, err := Render(renderDoc(shortResume(), id), Options{Title: "Jane Doe", Creator: "resume-builder"})
		require.NoError(t, err, id)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), id)
	}
}

func TestRender_NilDocument(t *testing.T) {
	_, err := Render(nil, Options{})
	assert.Error(t, err)

	_, err = PageCount(&rendering.Document{})
	assert.Error(t, err)
}

func TestPageCount(t *testing.T) {
	n, err := PageCount(renderDoc(shortResume(), "modern-simple"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	long := shortResume()
	for i := 0; i < 40; i++ {
		long.Experience = append(long.Experience, types.Experience{
			Position:    "Engineer",
			Company:     "Acme",
			Description: strings.Repeat("Shipped a service used by many teams. ", 8),
		})
	}
	n, err = PageCount(renderDoc(long, "modern-simple"))
	require.NoError(t, err)
	assert.Greater(t, n, 1)

	out, err := Render(renderDoc(long, "modern-simple"), Options{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestLayout_LinearizesTabsAndColumns(t *testing.T) {
	f, err := newFaces(color.Black)
	require.NoError(t, err)

	for _, id := range []string{"modern-tabbed", "modern-sidebar"} {
		l := &layouter{width: PageWidth - 2*Margin, faces: f}
		l.document(renderDoc(shortResume(), id).Root)

		var texts []string
		for _, ln := range l.lines {
			texts = append(texts, ln.text)
		}
		joined := strings.Join(texts, "\n")
		assert.Contains(t, joined, "Jane Doe", id)
		assert.Contains(t, joined, "SKILLS", id)
		assert.Contains(t, joined, "Go, PostgreSQL", id)
		assert.Contains(t, joined, "EXPERIENCE", id)
		assert.Contains(t, joined, "Built things.", id)
	}
}

func TestWrap(t *testing.T) {
	f, err := newFaces(color.Black)
	require.NoError(t, err)

	rows := wrap("hello world again", 10, f.body)
	assert.Greater(t, len(rows), 1)
	for _, row := range rows {
		assert.LessOrEqual(t, f.body.TextWidth(row), 10.0+1e-9, row)
	}

	rows = wrap("foo\n\nbar", 100, f.body)
	assert.Equal(t, []string{"foo", "", "bar"}, rows)

	rows = wrap(strings.Repeat("x", 400), 50, f.body)
	assert.Greater(t, len(rows), 1)
	assert.Equal(t, strings.Repeat("x", 400), strings.Join(rows, ""))
}

func TestPaginate(t *testing.T) {
	mk := func(n int, rule bool) []line {
		out := make([]line, n)
		for i := range out {
			out[i] = line{text: "x", height: 10, gapBefore: 2, rule: rule && i == 0}
		}
		return out
	}

	pages := paginate(mk(5, false), 100)
	require.Len(t, pages, 1)
	assert.Zero(t, pages[0][0].gapBefore, "first line on a page has no gap")

	pages = paginate(mk(20, false), 100)
	assert.Len(t, pages, 3)
	total := 0
	for _, p := range pages {
		total += len(p)
	}
	assert.Equal(t, 20, total)

	// A heading that would be the last line on a page moves to the next one.
	lines := append(mk(7, false), mk(2, true)...)
	pages = paginate(lines, 95)
	require.Len(t, pages, 2)
	assert.True(t, pages[1][0].rule)

	assert.Len(t, paginate(nil, 100), 1)
}

func TestParseHexColor(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 255}, parseHexColor("#2563eb"))
	assert.Equal(t, color.Black, parseHexColor("blue"))
	assert.Equal(t, color.Black, parseHexColor("#zzzzzz"))
}
