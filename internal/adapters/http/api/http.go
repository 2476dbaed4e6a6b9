// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/okian/outreach/internal/domain/model"
	"github.com/okian/outreach/pkg/logger"
)

const (
	defaultMaxRecipients = 1000
	defaultMaxBodyBytes  = 1 << 20
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	TagDependencies
	MatchDependencies
	DraftDependencies
	ProcessDependencies
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxRecipients caps the recipients accepted by POST /process.
func WithMaxRecipients(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxRecipients = n
		}
	}
}

// WithMaxBodyBytes caps request body size for every JSON endpoint.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	maxRecipients int
	maxBodyBytes  int64
	logger        logger.Logger

	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	processHandler *ProcessHandler
	tagsHandler    *TagsHandler
	matchHandler   *MatchHandler
	draftHandler   *DraftHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		maxRecipients: defaultMaxRecipients,
		maxBodyBytes:  defaultMaxBodyBytes,
		logger:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.processHandler = NewProcessHandler(deps, s.maxRecipients, s.maxBodyBytes, s.logger)
	s.tagsHandler = NewTagsHandler(deps, s.maxBodyBytes)
	s.matchHandler = NewMatchHandler(deps, s.maxBodyBytes)
	s.draftHandler = NewDraftHandler(deps, s.maxBodyBytes)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/process", MetricsMiddleware(s.processHandler.HandleProcess, "process"))
	mux.HandleFunc("/tags", MetricsMiddleware(s.tagsHandler.HandleTags, "tags"))
	mux.HandleFunc("/match", MetricsMiddleware(s.matchHandler.HandleMatch, "match"))
	mux.HandleFunc("/draft", MetricsMiddleware(s.draftHandler.HandleDraft, "draft"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeJSON reads exactly one JSON value from a size-capped body.
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("body exceeds %d bytes", tooLarge.Limit)
		}
		return fmt.Errorf("invalid json: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must hold a single json object")
	}
	return nil
}

func validateContent(c model.ContentItem) error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("missing content.id")
	}
	return nil
}

func validateRecipient(field string, r model.RecipientProfile) error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("missing %s.id", field)
	}
	return nil
}
