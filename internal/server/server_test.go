package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/estimate"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore keeps résumés in memory
type mockStore struct {
	mu      sync.Mutex
	resumes map[uuid.UUID]*types.ResumeRecord
	err     error
}

func newMockStore() *mockStore {
	return &mockStore{resumes: make(map[uuid.UUID]*types.ResumeRecord)}
}

func (m *mockStore) SaveResume(_ context.Context, req *types.SaveResumeRequest) (*types.ResumeRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	record := &types.ResumeRecord{
		ID:         uuid.New(),
		Title:      req.Title,
		TemplateID: req.TemplateID,
		Data:       req.Data,
		Visible:    req.Visible,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.resumes[record.ID] = record
	return record, nil
}

func (m *mockStore) GetResume(_ context.Context, id uuid.UUID) (*types.ResumeRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resumes[id], nil
}

func (m *mockStore) ListResumes(_ context.Context, limit int) ([]db.ResumeSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db.ResumeSummary
	for _, r := range m.resumes {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, db.ResumeSummary{ID: r.ID, Title: r.Title, TemplateID: r.TemplateID, UpdatedAt: r.UpdatedAt})
	}
	return out, nil
}

func (m *mockStore) UpdateResume(_ context.Context, id uuid.UUID, req *types.SaveResumeRequest) (*types.ResumeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.resumes[id]
	if !ok {
		return nil, nil
	}
	record.Title = req.Title
	record.TemplateID = req.TemplateID
	record.Data = req.Data
	record.Visible = req.Visible
	record.UpdatedAt = time.Now().UTC()
	return record, nil
}

func (m *mockStore) DeleteResume(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.resumes[id]; !ok {
		return fmt.Errorf("%w: %s", db.ErrResumeNotFound, id)
	}
	delete(m.resumes, id)
	return nil
}

// mockExporter records the HTML it was given and returns canned output
type mockExporter struct {
	html   string
	page   export.PageOptions
	height float64
	err    error
}

func (m *mockExporter) PDF(_ context.Context, html string, opts export.PageOptions) ([]byte, error) {
	m.html, m.page = html, opts
	if m.err != nil {
		return nil, m.err
	}
	return []byte("%PDF-chrome"), nil
}

func (m *mockExporter) PNG(_ context.Context, html string) ([]byte, error) {
	m.html = html
	if m.err != nil {
		return nil, m.err
	}
	return []byte("\x89PNG"), nil
}

func (m *mockExporter) MeasureHeight(_ context.Context, html string) (export.Measurement, error) {
	m.html = html
	if m.err != nil {
		return export.Measurement{}, m.err
	}
	return export.NewMeasurement(m.height), nil
}

func newTestServer(store ResumeStore, exporter PageExporter) *Server {
	return newServer(store, exporter, estimate.New(nil), "")
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func janeDoe() map[string]any {
	return map[string]any{
		"data":       map[string]any{"fullName": "Jane Doe", "email": "jane@x.com"},
		"templateId": "modern-simple",
		"visible":    map[string]bool{"fullName": true, "email": true, "summary": true},
	}
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(nil, nil)

	w := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	decodeJSON(t, w, &resp)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "disabled", resp["database"])
}

func TestCORSPreflight(t *testing.T) {
	s := newServer(nil, nil, nil, "https://app.example.com")

	w := do(t, s, http.MethodOptions, "/render", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestListTemplates(t *testing.T) {
	s := newTestServer(nil, nil)

	w := do(t, s, http.MethodGet, "/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp TemplateListResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, len(catalog.IDs()), resp.Count)
	assert.Equal(t, catalog.IDs()[0], resp.Templates[0].ID)
	assert.Equal(t, catalog.Categories(), resp.Categories)
}

func TestListTemplates_ByCategory(t *testing.T) {
	s := newTestServer(nil, nil)
	category := catalog.Categories()[0]

	w := do(t, s, http.MethodGet, "/templates?category="+category, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp TemplateListResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, len(catalog.ByCategory(category)), resp.Count)
	for _, e := range resp.Templates {
		assert.Equal(t, category, e.Category)
	}

	w = do(t, s, http.MethodGet, "/templates?category=no-such-category", nil)
	decodeJSON(t, w, &resp)
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Templates)
}

func TestGetTemplate(t *testing.T) {
	s := newTestServer(nil, nil)

	w := do(t, s, http.MethodGet, "/templates/modern-simple", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entry catalog.Entry
	decodeJSON(t, w, &entry)
	assert.Equal(t, "modern-simple", entry.ID)

	w = do(t, s, http.MethodGet, "/templates/nonexistent-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRender_HTML(t *testing.T) {
	s := newTestServer(nil, nil)

	w := do(t, s, http.MethodPost, "/render", janeDoe())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "modern-simple", w.Header().Get("X-Template-Id"))
	assert.Equal(t, "false", w.Header().Get("X-Template-Fallback"))
	assert.Contains(t, w.Body.String(), "Jane Doe")
	assert.Contains(t, w.Body.String(), "mailto:jane@x.com")
}

func TestRender_UnknownTemplateFallsBack(t *testing.T) {
	s := newTestServer(nil, nil)
	body := janeDoe()
	body["templateId"] = "nonexistent-id"

	w := do(t, s, http.MethodPost, "/render?format=json", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, catalog.DefaultTemplateID, w.Header().Get("X-Template-Id"))
	assert.Equal(t, "true", w.Header().Get("X-Template-Fallback"))

	var doc rendering.Document
	decodeJSON(t, w, &doc)
	assert.Equal(t, "nonexistent-id", doc.RequestedID)
	assert.Equal(t, catalog.DefaultTemplateID, doc.TemplateID)
	assert.True(t, doc.Fallback)
}

func TestRender_NonObjectDataRendersEmpty(t *testing.T) {
	s := newTestServer(nil, nil)

	w := do(t, s, http.MethodPost, "/render?format=json", `{"data": [1, 2], "templateId": "modern-simple"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var doc rendering.Document
	decodeJSON(t, w, &doc)
	assert.Nil(t, doc.Root.Find("fullName"))
}

func TestRender_MalformedBody(t *testing.T) {
	s := newTestServer(nil, nil)

	w := do(t, s, http.MethodPost, "/render", `{"data": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/render", `{"visible": {"skills": "yes"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRender_WrongMethod(t *testing.T) {
	s := newTestServer(nil, nil)
	w := do(t, s, http.MethodGet, "/render", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestEstimate(t *testing.T) {
	s := newTestServer(nil, nil)

	w := do(t, s, http.MethodPost, "/estimate", janeDoe())
	require.Equal(t, http.StatusOK, w.Code)

	var res estimate.Result
	decodeJSON(t, w, &res)
	assert.Equal(t, "modern-simple", res.TemplateID)
	assert.True(t, res.Fits)
	assert.Greater(t, res.Height, 0.0)
	assert.Equal(t, estimate.DefaultCalibration().Capacity, res.Capacity)
}

func longResume() map[string]any {
	var experience []map[string]string
	for i := 0; i < 30; i++ {
		experience = append(experience, map[string]string{
			"position":    "Engineer",
			"company":     "Acme",
			"duration":    "2020",
			"description": strings.Repeat("Built and operated distributed systems. ", 8),
		})
	}
	return map[string]any{"fullName": "Jane Doe", "experience": experience}
}

func TestGate(t *testing.T) {
	s := newTestServer(nil, nil)

	small := map[string]any{"fullName": "Jane Doe"}
	w := do(t, s, http.MethodPost, "/gate", map[string]any{
		"previous":   small,
		"data":       longResume(),
		"templateId": "modern-simple",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp GateResponse
	decodeJSON(t, w, &resp)
	assert.False(t, resp.Accepted)
	assert.True(t, resp.Estimate.Fits, "the kept data is the previous, fitting résumé")

	w = do(t, s, http.MethodPost, "/gate", map[string]any{
		"previous":   longResume(),
		"data":       small,
		"templateId": "modern-simple",
	})
	decodeJSON(t, w, &resp)
	assert.True(t, resp.Accepted)
}

func TestValidate(t *testing.T) {
	s := newTestServer(nil, nil)

	w := do(t, s, http.MethodPost, "/validate", map[string]any{
		"data":    map[string]any{"fullName": "Jane Doe", "skills": []string{"Go"}},
		"visible": map[string]bool{"skills": true},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp ValidateResponse
	decodeJSON(t, w, &resp)
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Errors)

	w = do(t, s, http.MethodPost, "/validate", `{"data": {"fullName": 5}, "visible": {"skills": "yes"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp = ValidateResponse{}
	decodeJSON(t, w, &resp)
	assert.False(t, resp.Valid)

	var fields []string
	for _, fe := range resp.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "fullName")
	found := false
	for _, f := range fields {
		if strings.HasPrefix(f, "visible.") {
			found = true
		}
	}
	assert.True(t, found, "visibility errors are prefixed: %v", fields)
}

func TestValidate_MissingData(t *testing.T) {
	s := newTestServer(nil, nil)
	w := do(t, s, http.MethodPost, "/validate", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestATS(t *testing.T) {
	s := newTestServer(nil, nil)

	w := do(t, s, http.MethodPost, "/ats", janeDoe())
	require.Equal(t, http.StatusOK, w.Code)

	var report map[string]any
	decodeJSON(t, w, &report)
	assert.Equal(t, "modern-simple", report["templateId"])
	assert.Contains(t, report["text"], "Jane Doe")
}
