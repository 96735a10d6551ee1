// Package server serves the genforge page and its JSON API.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/randalmurphal/genforge/artifact"
	"github.com/randalmurphal/genforge/session"
	"github.com/randalmurphal/genforge/workflow"
)

//go:embed web/index.html
var webFS embed.FS

// Server exposes a session over HTTP: the single page, a generate
// endpoint and the artifact download.
type Server struct {
	session *session.Session
	logger  *slog.Logger
	page    []byte
}

// Config configures a Server.
type Config struct {
	// Session drives submissions. Required.
	Session *session.Session

	// Logger for request logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// New creates a Server.
func New(cfg Config) (*Server, error) {
	if cfg.Session == nil {
		return nil, errors.New("server: session is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		return nil, err
	}

	return &Server{
		session: cfg.Session,
		logger:  logger,
		page:    page,
	}, nil
}

// Routes returns the HTTP handler for all server endpoints.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/example", s.handleExample)
	mux.HandleFunc("/api/artifact", s.handleArtifact)
	mux.HandleFunc("/", s.handleIndex)
	return s.logMiddleware(mux)
}

// --- Handlers ---

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(s.page)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

type generateReq struct {
	Requirements string `json:"requirements"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Generation must finish even if the browser goes away mid-request;
	// the artifact is picked up from session state on the next page load.
	_, err := s.session.Submit(context.WithoutCancel(r.Context()), req.Requirements)

	status := http.StatusOK
	switch {
	case errors.Is(err, session.ErrSubmissionInFlight):
		status = http.StatusConflict
	case errors.Is(err, workflow.ErrEmptyRequirement):
		status = http.StatusUnprocessableEntity
	case err != nil:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, s.session.Snapshot())
}

func (s *Server) handleExample(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.session.LoadExample()
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	art, rc, err := s.session.OpenArtifact()
	if errors.Is(err, artifact.ErrNoArtifact) {
		http.Error(w, "no artifact held", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Filename))
	w.Header().Set("Content-Length", strconv.FormatInt(art.Size, 10))
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Warn("artifact download interrupted", "artifactId", art.ID, "error", err)
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
