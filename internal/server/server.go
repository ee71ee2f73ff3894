// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/estimate"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/types"
)

// maxBodyBytes bounds request bodies. Résumés are small; anything larger is a mistake.
const maxBodyBytes = 2 << 20

// ResumeStore persists saved résumés. *db.DB implements it.
type ResumeStore interface {
	SaveResume(ctx context.Context, req *types.SaveResumeRequest) (*types.ResumeRecord, error)
	GetResume(ctx context.Context, id uuid.UUID) (*types.ResumeRecord, error)
	ListResumes(ctx context.Context, limit int) ([]db.ResumeSummary, error)
	UpdateResume(ctx context.Context, id uuid.UUID, req *types.SaveResumeRequest) (*types.ResumeRecord, error)
	DeleteResume(ctx context.Context, id uuid.UUID) error
}

// PageExporter turns rendered HTML into files. *export.Exporter implements it.
type PageExporter interface {
	PDF(ctx context.Context, html string, opts export.PageOptions) ([]byte, error)
	PNG(ctx context.Context, html string) ([]byte, error)
	MeasureHeight(ctx context.Context, html string) (export.Measurement, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       ResumeStore
	exporter    PageExporter
	renderer    *rendering.Renderer
	estimator   *estimate.Estimator
	analyzer    *ats.Analyzer
	rateLimiter *ratelimit.Limiter
	corsOrigin  string
	handler     http.Handler
}

// Config holds server configuration
type Config struct {
	Port          int
	DatabaseURL   string
	ChromePath    string
	ExportTimeout time.Duration
	CORSOrigin    string
	Calibration   *estimate.Calibration
	Verbose       bool
}

// New creates a new server instance. Without a DatabaseURL the résumé routes answer 503.
func New(cfg Config) (*Server, error) {
	var database *db.DB
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var err error
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, err
		}
	}

	var store ResumeStore
	if database != nil {
		store = database
	}

	s := newServer(store, export.NewExporter(cfg.ChromePath, cfg.ExportTimeout, cfg.Verbose), estimate.New(cfg.Calibration), cfg.CORSOrigin)
	s.db = database
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())
	s.handler = s.withRateLimit(s.handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // exports start a browser
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// newServer wires handlers around the given collaborators. A nil store disables the résumé
// routes; a nil exporter disables the browser routes.
func newServer(store ResumeStore, exporter PageExporter, estimator *estimate.Estimator, corsOrigin string) *Server {
	if estimator == nil {
		estimator = estimate.New(nil)
	}
	if corsOrigin == "" {
		corsOrigin = "*"
	}
	renderer := rendering.NewRenderer(nil)

	s := &Server{
		store:      store,
		exporter:   exporter,
		renderer:   renderer,
		estimator:  estimator,
		analyzer:   ats.NewAnalyzer(renderer, estimator),
		corsOrigin: corsOrigin,
	}
	s.handler = s.withLogging(s.withCORS(s.routes()))
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Template registry
	mux.HandleFunc("GET /templates", s.handleListTemplates)
	mux.HandleFunc("GET /templates/{id}", s.handleGetTemplate)

	// Rendering and page fit
	mux.HandleFunc("POST /render", s.handleRender)
	mux.HandleFunc("POST /estimate", s.handleEstimate)
	mux.HandleFunc("POST /gate", s.handleGate)
	mux.HandleFunc("POST /validate", s.handleValidate)
	mux.HandleFunc("POST /ats", s.handleATS)

	// Browser-backed export
	mux.HandleFunc("POST /export/pdf", s.handleExportPDF)
	mux.HandleFunc("POST /export/png", s.handleExportPNG)
	mux.HandleFunc("POST /measure", s.handleMeasure)

	// Saved résumés
	mux.HandleFunc("POST /resumes", s.handleCreateResume)
	mux.HandleFunc("GET /resumes", s.handleListResumes)
	mux.HandleFunc("GET /resumes/{id}", s.handleGetResume)
	mux.HandleFunc("PUT /resumes/{id}", s.handleUpdateResume)
	mux.HandleFunc("DELETE /resumes/{id}", s.handleDeleteResume)
	mux.HandleFunc("GET /resumes/{id}/render", s.handleRenderResume)
	return mux
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[SERVER] starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[SERVER] error: %v", err)
		}
	}()

	<-stop
	log.Println("[SERVER] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.db != nil {
		s.db.Close()
	}
	log.Println("[SERVER] stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that exceed their per-route budget
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
		}
		if !allowed {
			if info.RetryAfter > 0 {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())+1))
			}
			log.Printf("[SERVER] rate limit exceeded: %s %s", r.Method, r.URL.Path)
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[SERVER] %s %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// clientID identifies the caller by remote IP.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "database": "disabled"}
	if s.db != nil {
		status["database"] = "ok"
		if err := s.db.Ping(r.Context()); err != nil {
			status["database"] = "unreachable"
		}
	}
	s.jsonResponse(w, http.StatusOK, status)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[SERVER] error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errResponse maps err to its status code and writes it
func (s *Server) errResponse(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[SERVER] error: %v", err)
	}
	s.errorResponse(w, status, err.Error())
}

// fileResponse writes binary output with a download name
func (s *Server) fileResponse(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("[SERVER] error writing %s: %v", filename, err)
	}
}
