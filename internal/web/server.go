// Package web serves the shared leaderboard over HTTP.
package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tomz197/gemrush/internal/leaderboard"
)

//go:embed templates/index.html
var templates embed.FS

// DefaultLimit is the number of entries returned when no limit is given.
const DefaultLimit = leaderboard.DefaultMaxEntries

// Server handles HTTP requests for the leaderboard.
type Server struct {
	board   *leaderboard.Leaderboard
	logger  *log.Logger
	sshAddr string
	page    *template.Template
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithSSHAddr sets the address shown in the "how to play" line.
func WithSSHAddr(addr string) Option {
	return func(s *Server) { s.sshAddr = addr }
}

// NewServer creates a server for board.
func NewServer(board *leaderboard.Leaderboard, opts ...Option) *Server {
	s := &Server{
		board:   board,
		logger:  log.New(io.Discard),
		sshAddr: "localhost -p 2222",
		page:    template.Must(template.ParseFS(templates, "templates/index.html")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes sets up the HTTP routes with middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/leaderboard", s.handleLeaderboard)
	})

	return r
}

// requestLogger logs each request once it has completed.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

type indexData struct {
	SSHAddr string
	Headers []string
	Entries []leaderboard.Entry
	Rows    [][]string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	entries := s.entries(DefaultLimit)
	data := indexData{
		SSHAddr: s.sshAddr,
		Headers: leaderboard.Headers(),
		Entries: entries,
		Rows:    leaderboard.Rows(entries),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("render index", "err", err)
	}
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	s.writeJSON(w, http.StatusOK, s.entries(limit))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// entries re-reads the store, which game servers write to, and returns the top n.
// A failed reload is logged and serves an empty board.
func (s *Server) entries(n int) []leaderboard.Entry {
	if err := s.board.Load(); err != nil {
		s.logger.Warn("leaderboard reload failed", "err", err)
	}
	entries := s.board.TopEntries(n)
	if entries == nil {
		entries = []leaderboard.Entry{}
	}
	return entries
}

// writeJSON writes a JSON response with proper headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}
