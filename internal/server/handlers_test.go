package server

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportPDF_Chrome(t *testing.T) {
	exp := &mockExporter{}
	s := newTestServer(nil, exp)

	w := do(t, s, http.MethodPost, "/export/pdf", janeDoe())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "resume-modern-simple.pdf")
	assert.Equal(t, "%PDF-chrome", w.Body.String())
	assert.Contains(t, exp.html, "Jane Doe")
	assert.Equal(t, export.DefaultPageOptions(), exp.page)
}

func TestExportPDF_CustomPage(t *testing.T) {
	exp := &mockExporter{}
	s := newTestServer(nil, exp)

	body := janeDoe()
	body["page"] = map[string]any{"marginTop": 36, "scale": 0.9}
	w := do(t, s, http.MethodPost, "/export/pdf", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 36, exp.page.MarginTop)
	assert.Equal(t, export.A4WidthIn, exp.page.PaperWidth)
	assert.Equal(t, 0.9, exp.page.Scale)

	body["page"] = map[string]any{"scale": 5}
	w = do(t, s, http.MethodPost, "/export/pdf", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportPDF_Canvas(t *testing.T) {
	s := newTestServer(nil, nil)

	body := janeDoe()
	body["engine"] = EngineCanvas
	w := do(t, s, http.MethodPost, "/export/pdf", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestExportPDF_UnknownEngine(t *testing.T) {
	s := newTestServer(nil, &mockExporter{})

	body := janeDoe()
	body["engine"] = "latex"
	w := do(t, s, http.MethodPost, "/export/pdf", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExport_NoBrowser(t *testing.T) {
	s := newTestServer(nil, nil)

	for _, path := range []string{"/export/pdf", "/export/png", "/measure"} {
		w := do(t, s, http.MethodPost, path, janeDoe())
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
}

func TestExport_BrowserFailure(t *testing.T) {
	exp := &mockExporter{err: &export.Error{Format: "png", Message: "failed to capture page", Cause: fmt.Errorf("chrome crashed")}}
	s := newTestServer(nil, exp)

	w := do(t, s, http.MethodPost, "/export/png", janeDoe())
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestExportPNG(t *testing.T) {
	exp := &mockExporter{}
	s := newTestServer(nil, exp)

	w := do(t, s, http.MethodPost, "/export/png", janeDoe())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Contains(t, exp.html, "Jane Doe")
}

func TestExport_IgnoresPreviewBudgets(t *testing.T) {
	exp := &mockExporter{}
	s := newTestServer(nil, exp)

	long := strings.Repeat("word ", 200)
	w := do(t, s, http.MethodPost, "/export/png", map[string]any{
		"data":       map[string]any{"fullName": "Jane", "summary": long},
		"templateId": "modern-simple",
		"preview":    true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, exp.html, strings.TrimSpace(long))
}

func TestMeasure(t *testing.T) {
	exp := &mockExporter{height: 900}
	s := newTestServer(nil, exp)

	w := do(t, s, http.MethodPost, "/measure", janeDoe())
	require.Equal(t, http.StatusOK, w.Code)

	var resp MeasureResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, 900.0, resp.Measurement.Height)
	assert.Equal(t, 1, resp.Measurement.Pages)
	assert.True(t, resp.Measurement.Fits)
	assert.Equal(t, "modern-simple", resp.Estimate.TemplateID)
}

func saveBody(title, templateID string) map[string]any {
	return map[string]any{
		"title":      title,
		"templateId": templateID,
		"data":       map[string]any{"fullName": "Jane Doe", "email": "jane@x.com", "skills": []string{"Go"}},
		"visible":    map[string]bool{"email": true, "skills": true},
	}
}

func TestResumes_NoDatabase(t *testing.T) {
	s := newTestServer(nil, nil)
	id := uuid.New().String()

	tests := []struct{ method, path string }{
		{http.MethodPost, "/resumes"},
		{http.MethodGet, "/resumes"},
		{http.MethodGet, "/resumes/" + id},
		{http.MethodPut, "/resumes/" + id},
		{http.MethodDelete, "/resumes/" + id},
		{http.MethodGet, "/resumes/" + id + "/render"},
	}
	for _, tt := range tests {
		w := do(t, s, tt.method, tt.path, saveBody("Main", "modern-simple"))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, "%s %s", tt.method, tt.path)
	}
}

func TestResumes_Lifecycle(t *testing.T) {
	store := newMockStore()
	s := newTestServer(store, nil)

	w := do(t, s, http.MethodPost, "/resumes", saveBody("Main", "modern-simple"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created types.ResumeRecord
	decodeJSON(t, w, &created)
	assert.Equal(t, "Main", created.Title)
	assert.Equal(t, "Jane Doe", created.Data.FullName)
	path := "/resumes/" + created.ID.String()

	w = do(t, s, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got types.ResumeRecord
	decodeJSON(t, w, &got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, types.VisibilityMap{"email": true, "skills": true}, got.Visible)

	w = do(t, s, http.MethodGet, "/resumes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list ResumeListResponse
	decodeJSON(t, w, &list)
	assert.Equal(t, 1, list.Count)

	w = do(t, s, http.MethodPut, path, saveBody("Renamed", "tech-developer"))
	require.Equal(t, http.StatusOK, w.Code)
	var updated types.ResumeRecord
	decodeJSON(t, w, &updated)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "tech-developer", updated.TemplateID)

	w = do(t, s, http.MethodGet, path+"/render", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tech-developer", w.Header().Get("X-Template-Id"))
	assert.Contains(t, w.Body.String(), "Jane Doe")

	w = do(t, s, http.MethodGet, path+"/render?template=modern-tabbed&tab=skills", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "modern-tabbed", w.Header().Get("X-Template-Id"))

	w = do(t, s, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, s, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, s, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, s, http.MethodPut, path, saveBody("Again", "modern-simple"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResumes_RejectsBadRequests(t *testing.T) {
	s := newTestServer(newMockStore(), nil)

	tests := []struct {
		name string
		body any
	}{
		{"unknown template", saveBody("Main", "nonexistent-id")},
		{"empty title", saveBody("", "modern-simple")},
		{"missing data", map[string]any{"title": "Main", "templateId": "modern-simple"}},
		{"bad email", map[string]any{"title": "Main", "templateId": "modern-simple", "data": map[string]any{"email": "not-an-email"}}},
		{"unknown field", map[string]any{"title": "Main", "templateId": "modern-simple", "data": map[string]any{}, "owner": "x"}},
		{"malformed", `{"title": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/resumes", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestResumes_BadIDAndLimit(t *testing.T) {
	s := newTestServer(newMockStore(), nil)

	w := do(t, s, http.MethodGet, "/resumes/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/resumes?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResumes_StoreFailure(t *testing.T) {
	store := newMockStore()
	store.err = fmt.Errorf("failed to list resumes: connection refused")
	s := newTestServer(store, nil)

	w := do(t, s, http.MethodGet, "/resumes", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
