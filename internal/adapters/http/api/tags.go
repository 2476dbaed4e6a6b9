package api

import (
	"context"
	"net/http"

	"github.com/okian/outreach/internal/domain/model"
)

// TagDependencies defines the interface for tag suggestion.
type TagDependencies interface {
	SuggestTags(ctx context.Context, content model.ContentItem) []model.TagSuggestion
}

type tagsRequest struct {
	Content model.ContentItem `json:"content"`
}

type tagsResponse struct {
	Tags []model.TagSuggestion `json:"tags"`
}

// TagsHandler handles tag suggestion requests.
type TagsHandler struct {
	deps         TagDependencies
	maxBodyBytes int64
}

// NewTagsHandler creates a new tags handler.
func NewTagsHandler(deps TagDependencies, maxBodyBytes int64) *TagsHandler {
	return &TagsHandler{deps: deps, maxBodyBytes: maxBodyBytes}
}

// HandleTags handles POST /tags requests.
func (h *TagsHandler) HandleTags(w http.ResponseWriter, r *http.Request) {
	const op = "api.tags"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req tagsRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validateContent(req.Content); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, tagsResponse{Tags: h.deps.SuggestTags(r.Context(), req.Content)})
}
