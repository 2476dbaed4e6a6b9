package api

import (
	"context"
	"net/http"

	"github.com/okian/outreach/internal/domain/model"
)

// MatchDependencies defines the interface for match scoring.
type MatchDependencies interface {
	ScoreMatch(ctx context.Context, recipient model.RecipientProfile, content model.ContentItem) model.MatchResult
}

type matchRequest struct {
	Recipient model.RecipientProfile `json:"recipient"`
	Content   model.ContentItem      `json:"content"`
}

// MatchHandler handles match scoring requests.
type MatchHandler struct {
	deps         MatchDependencies
	maxBodyBytes int64
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(deps MatchDependencies, maxBodyBytes int64) *MatchHandler {
	return &MatchHandler{deps: deps, maxBodyBytes: maxBodyBytes}
}

// HandleMatch handles POST /match requests.
func (h *MatchHandler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.match"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req matchRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validateContent(req.Content); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validateRecipient("recipient", req.Recipient); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.ScoreMatch(r.Context(), req.Recipient, req.Content))
}
