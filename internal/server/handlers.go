package server

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/estimate"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// RenderRequest is the body shared by the render, estimate, ATS and export routes.
type RenderRequest struct {
	Data       json.RawMessage     `json:"data"`
	TemplateID string              `json:"templateId"`
	Visible    types.VisibilityMap `json:"visible,omitempty"`
	Preview    bool                `json:"preview,omitempty"`
	ActiveTab  string              `json:"activeTab,omitempty"`
}

// GateRequest asks whether an edit from Previous to Data is accepted.
type GateRequest struct {
	RenderRequest
	Previous json.RawMessage `json:"previous"`
}

// GateResponse carries the verdict and the estimate of the data the editor should keep.
type GateResponse struct {
	Accepted bool            `json:"accepted"`
	Estimate estimate.Result `json:"estimate"`
}

// ValidateRequest carries the documents to check against the bundled schemas.
type ValidateRequest struct {
	Data    json.RawMessage `json:"data"`
	Visible json.RawMessage `json:"visible,omitempty"`
}

// ValidateResponse lists schema diagnostics. They never block rendering.
type ValidateResponse struct {
	Valid  bool                 `json:"valid"`
	Errors []schemas.FieldError `json:"errors"`
}

// TemplateListResponse is the gallery listing.
type TemplateListResponse struct {
	Templates  []catalog.Entry `json:"templates"`
	Categories []string        `json:"categories"`
	Count      int             `json:"count"`
}

// decodeBody reads a bounded JSON body into v
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()}
	}
	return nil
}

// decodeResume reads résumé data leniently. Anything that is not a JSON object renders as an
// empty résumé.
func decodeResume(raw json.RawMessage) *types.ResumeData {
	data := types.NewResumeData()
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return data
	}
	if err := json.Unmarshal(raw, data); err != nil {
		log.Printf("[SERVER] warning: unreadable resume data, using empty resume: %v", err)
		return types.NewResumeData()
	}
	return data
}

func (req *RenderRequest) resume() *types.ResumeData {
	return decodeResume(req.Data)
}

func (req *RenderRequest) options() rendering.Options {
	return rendering.Options{Preview: req.Preview, ActiveTab: req.ActiveTab}
}

// handleListTemplates returns the registry, optionally filtered by ?category=
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	entries := catalog.List()
	if category := r.URL.Query().Get("category"); category != "" {
		entries = catalog.ByCategory(category)
	}
	if entries == nil {
		entries = []catalog.Entry{}
	}
	s.jsonResponse(w, http.StatusOK, TemplateListResponse{
		Templates:  entries,
		Categories: catalog.Categories(),
		Count:      len(entries),
	})
}

// handleGetTemplate returns one registry entry
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	entry, ok := catalog.Lookup(id)
	if !ok {
		s.errResponse(w, &ErrNotFound{Resource: "template", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, entry)
}

// handleRender returns the rendered HTML page, or the layout tree with ?format=json
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.errResponse(w, err)
		return
	}

	doc := s.renderer.Render(req.resume(), req.TemplateID, req.Visible, req.options())
	s.documentResponse(w, r, doc)
}

// documentResponse writes doc in the format the request asked for
func (s *Server) documentResponse(w http.ResponseWriter, r *http.Request, doc *rendering.Document) {
	w.Header().Set("X-Template-Id", doc.TemplateID)
	w.Header().Set("X-Template-Fallback", strconv.FormatBool(doc.Fallback))

	if r.URL.Query().Get("format") == "json" {
		s.jsonResponse(w, http.StatusOK, doc)
		return
	}

	html, err := doc.HTML()
	if err != nil {
		s.errResponse(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		log.Printf("[SERVER] error writing HTML: %v", err)
	}
}

// handleEstimate returns the page-fit estimate
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.estimator.Estimate(req.resume(), req.Visible, req.TemplateID))
}

// handleGate decides whether an edit keeps the résumé on one page
func (s *Server) handleGate(w http.ResponseWriter, r *http.Request) {
	var req GateRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.errResponse(w, err)
		return
	}

	kept, accepted := s.estimator.Gate(decodeResume(req.Previous), req.resume(), req.Visible, req.TemplateID)
	s.jsonResponse(w, http.StatusOK, GateResponse{
		Accepted: accepted,
		Estimate: s.estimator.Estimate(kept, req.Visible, req.TemplateID),
	})
}

// handleValidate reports schema diagnostics for the data and visibility documents
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.errResponse(w, err)
		return
	}
	if len(req.Data) == 0 {
		s.errResponse(w, &ErrValidation{Field: "data", Message: "required"})
		return
	}

	resp := ValidateResponse{Valid: true, Errors: []schemas.FieldError{}}
	check := func(prefix string, err error) bool {
		if err == nil {
			return true
		}
		fieldErrs := schemas.FieldErrors(err)
		if fieldErrs == nil {
			s.errResponse(w, err)
			return false
		}
		resp.Valid = false
		for _, fe := range fieldErrs {
			resp.Errors = append(resp.Errors, schemas.FieldError{Field: prefix + fe.Field, Message: fe.Message})
		}
		return true
	}

	if !check("", schemas.ValidateResumeData(req.Data)) {
		return
	}
	if len(req.Visible) > 0 && !bytes.Equal(bytes.TrimSpace(req.Visible), []byte("null")) {
		if !check("visible.", schemas.ValidateVisibility(req.Visible)) {
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleATS returns the ATS report for the rendered résumé
func (s *Server) handleATS(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.errResponse(w, err)
		return
	}

	report, err := s.analyzer.Analyze(req.resume(), req.Visible, req.TemplateID)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}
