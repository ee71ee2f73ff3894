package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// ResumeListResponse is the body of GET /resumes
type ResumeListResponse struct {
	Resumes []db.ResumeSummary `json:"resumes"`
	Count   int                `json:"count"`
}

func (s *Server) requireStore() error {
	if s.store == nil {
		return &ErrUnavailable{Feature: "saved resumes", Hint: "set DATABASE_URL to enable persistence"}
	}
	return nil
}

func parseResumeID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "must be a UUID"}
	}
	return id, nil
}

// decodeSaveRequest checks the body against the record schema, then the validator rules.
// Unknown template ids are rejected here; rendering would silently fall back.
func decodeSaveRequest(w http.ResponseWriter, r *http.Request) (*types.SaveResumeRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()}
	}
	if err := schemas.ValidateResumeRecord(body); err != nil {
		if fieldErrs := schemas.FieldErrors(err); len(fieldErrs) > 0 {
			return nil, &ErrValidation{Field: fieldErrs[0].Field, Message: fieldErrs[0].Message}
		}
		return nil, err
	}

	var req types.SaveResumeRequest
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&req); err != nil {
		return nil, &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()}
	}
	if err := req.Validate(); err != nil {
		return nil, &ErrValidation{Field: "data", Message: err.Error()}
	}
	if _, ok := catalog.Lookup(req.TemplateID); !ok {
		return nil, &ErrValidation{Field: "templateId", Message: "unknown template " + strconv.Quote(req.TemplateID)}
	}
	return &req, nil
}

// handleCreateResume saves a new résumé
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	if err := s.requireStore(); err != nil {
		s.errResponse(w, err)
		return
	}
	req, err := decodeSaveRequest(w, r)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	record, err := s.store.SaveResume(r.Context(), req)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, record)
}

// handleListResumes lists saved résumés, most recently updated first
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	if err := s.requireStore(); err != nil {
		s.errResponse(w, err)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.errResponse(w, &ErrValidation{Field: "limit", Message: "must be a non-negative integer"})
			return
		}
		limit = n
	}

	summaries, err := s.store.ListResumes(r.Context(), limit)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	if summaries == nil {
		summaries = []db.ResumeSummary{}
	}
	s.jsonResponse(w, http.StatusOK, ResumeListResponse{Resumes: summaries, Count: len(summaries)})
}

// loadResume fetches the résumé addressed by the {id} path value
func (s *Server) loadResume(r *http.Request) (*types.ResumeRecord, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	id, err := parseResumeID(r)
	if err != nil {
		return nil, err
	}
	record, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, &ErrNotFound{Resource: "resume", ID: id.String()}
	}
	return record, nil
}

// handleGetResume returns one saved résumé
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	record, err := s.loadResume(r)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}

// handleUpdateResume replaces a saved résumé
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	if err := s.requireStore(); err != nil {
		s.errResponse(w, err)
		return
	}
	id, err := parseResumeID(r)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	req, err := decodeSaveRequest(w, r)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	record, err := s.store.UpdateResume(r.Context(), id, req)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	if record == nil {
		s.errResponse(w, &ErrNotFound{Resource: "resume", ID: id.String()})
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}

// handleDeleteResume deletes a saved résumé
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	if err := s.requireStore(); err != nil {
		s.errResponse(w, err)
		return
	}
	id, err := parseResumeID(r)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	if err := s.store.DeleteResume(r.Context(), id); err != nil {
		s.errResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRenderResume renders a saved résumé with its stored template and visibility.
// ?template= overrides the stored template for previews.
func (s *Server) handleRenderResume(w http.ResponseWriter, r *http.Request) {
	record, err := s.loadResume(r)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	templateID := record.TemplateID
	if override := r.URL.Query().Get("template"); override != "" {
		templateID = override
	}
	doc := s.renderer.Render(record.Data, templateID, record.Visible, renderOptionsFromQuery(r))
	s.documentResponse(w, r, doc)
}

func renderOptionsFromQuery(r *http.Request) rendering.Options {
	q := r.URL.Query()
	preview, _ := strconv.ParseBool(q.Get("preview"))
	return rendering.Options{Preview: preview, ActiveTab: q.Get("tab")}
}
