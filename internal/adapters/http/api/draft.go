package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/outreach/internal/domain/model"
)

// DraftDependencies defines the interface for draft generation.
type DraftDependencies interface {
	DraftMessage(ctx context.Context, recipient model.RecipientProfile, content model.ContentItem, score float64) model.DraftMessage
}

type draftRequest struct {
	Recipient model.RecipientProfile `json:"recipient"`
	Content   model.ContentItem      `json:"content"`
	Score     *float64               `json:"score"`
}

func (d draftRequest) validate() error {
	if err := validateContent(d.Content); err != nil {
		return err
	}
	if err := validateRecipient("recipient", d.Recipient); err != nil {
		return err
	}
	switch {
	case d.Score == nil:
		return errors.New("missing score")
	case *d.Score < 0 || *d.Score > 100:
		return errors.New("score must be within [0,100]")
	}
	return nil
}

// DraftHandler handles draft generation requests.
type DraftHandler struct {
	deps         DraftDependencies
	maxBodyBytes int64
}

// NewDraftHandler creates a new draft handler.
func NewDraftHandler(deps DraftDependencies, maxBodyBytes int64) *DraftHandler {
	return &DraftHandler{deps: deps, maxBodyBytes: maxBodyBytes}
}

// HandleDraft handles POST /draft requests.
func (h *DraftHandler) HandleDraft(w http.ResponseWriter, r *http.Request) {
	const op = "api.draft"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req draftRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.DraftMessage(r.Context(), req.Recipient, req.Content, *req.Score))
}
