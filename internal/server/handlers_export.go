package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/estimate"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/export/canvaspdf"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// PDF engines
const (
	EngineChrome = "chrome"
	EngineCanvas = "canvas"
)

// ExportRequest is a render request plus output settings.
type ExportRequest struct {
	RenderRequest
	Engine string              `json:"engine,omitempty"`
	Page   *export.PageOptions `json:"page,omitempty"`
}

// MeasureResponse pairs the measured height with the estimate for the same input.
type MeasureResponse struct {
	Measurement export.Measurement `json:"measurement"`
	Estimate    estimate.Result    `json:"estimate"`
}

func (s *Server) requireExporter() error {
	if s.exporter == nil {
		return &ErrUnavailable{Feature: "browser export", Hint: "set CHROME_PATH or install Chrome"}
	}
	return nil
}

// decodeExport reads an export request and renders it. Exports never apply preview budgets.
func (s *Server) decodeExport(w http.ResponseWriter, r *http.Request) (*ExportRequest, *rendering.Document, error) {
	var req ExportRequest
	if err := decodeBody(w, r, &req); err != nil {
		return nil, nil, err
	}
	opts := req.options()
	opts.Preview = false
	return &req, s.renderer.Render(req.resume(), req.TemplateID, req.Visible, opts), nil
}

// handleExportPDF prints the résumé with headless Chrome, or draws it natively with engine=canvas
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	req, doc, err := s.decodeExport(w, r)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	var pdf []byte
	switch req.Engine {
	case "", EngineChrome:
		pdf, err = s.chromePDF(r, req, doc)
	case EngineCanvas:
		name := ""
		if n := doc.Find("fullName"); n != nil {
			name = n.Text
		}
		pdf, err = canvaspdf.Render(doc, canvaspdf.Options{Title: name, Author: name, Subject: doc.Name, Creator: "resume-builder"})
	default:
		err = &ErrValidation{Field: "engine", Message: "must be chrome or canvas"}
	}
	if err != nil {
		s.errResponse(w, err)
		return
	}

	w.Header().Set("X-Template-Id", doc.TemplateID)
	s.fileResponse(w, "application/pdf", "resume-"+doc.TemplateID+".pdf", pdf)
}

func (s *Server) chromePDF(r *http.Request, req *ExportRequest, doc *rendering.Document) ([]byte, error) {
	if err := s.requireExporter(); err != nil {
		return nil, err
	}
	page := export.DefaultPageOptions()
	if req.Page != nil {
		page = *req.Page
	}
	page, err := page.Normalize()
	if err != nil {
		return nil, &ErrValidation{Field: "page", Message: err.Error()}
	}
	html, err := doc.HTML()
	if err != nil {
		return nil, err
	}
	return s.exporter.PDF(r.Context(), html, page)
}

// handleExportPNG captures the rendered page as an image
func (s *Server) handleExportPNG(w http.ResponseWriter, r *http.Request) {
	if err := s.requireExporter(); err != nil {
		s.errResponse(w, err)
		return
	}
	_, doc, err := s.decodeExport(w, r)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	html, err := doc.HTML()
	if err != nil {
		s.errResponse(w, err)
		return
	}
	png, err := s.exporter.PNG(r.Context(), html)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	w.Header().Set("X-Template-Id", doc.TemplateID)
	s.fileResponse(w, "image/png", "resume-"+doc.TemplateID+".png", png)
}

// handleMeasure measures the rendered height in the browser
func (s *Server) handleMeasure(w http.ResponseWriter, r *http.Request) {
	if err := s.requireExporter(); err != nil {
		s.errResponse(w, err)
		return
	}
	req, doc, err := s.decodeExport(w, r)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	html, err := doc.HTML()
	if err != nil {
		s.errResponse(w, err)
		return
	}
	m, err := s.exporter.MeasureHeight(r.Context(), html)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, MeasureResponse{
		Measurement: m,
		Estimate:    s.estimator.Estimate(req.resume(), req.Visible, req.TemplateID),
	})
}
