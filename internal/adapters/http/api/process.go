package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/okian/outreach/internal/domain/model"
	"github.com/okian/outreach/pkg/logger"
)

// ProcessDependencies defines the pipeline entry point used by POST /process.
type ProcessDependencies interface {
	ProcessContent(ctx context.Context, content model.ContentItem, recipients []model.RecipientProfile) (model.ProcessResult, error)
}

// processRequest mirrors the OpenAPI schema for POST /process.
type processRequest struct {
	Content    model.ContentItem        `json:"content"`
	Recipients []model.RecipientProfile `json:"recipients"`
}

func (p processRequest) validate(maxRecipients int) error {
	if err := validateContent(p.Content); err != nil {
		return err
	}
	if len(p.Recipients) > maxRecipients {
		return fmt.Errorf("%w: %d > %d", ErrTooManyRecipients, len(p.Recipients), maxRecipients)
	}
	for i, r := range p.Recipients {
		if err := validateRecipient(fmt.Sprintf("recipients[%d]", i), r); err != nil {
			return err
		}
	}
	return nil
}

// ProcessHandler handles pipeline requests.
type ProcessHandler struct {
	deps          ProcessDependencies
	maxRecipients int
	maxBodyBytes  int64
	logger        logger.Logger
}

// NewProcessHandler creates a new process handler.
func NewProcessHandler(deps ProcessDependencies, maxRecipients int, maxBodyBytes int64, l logger.Logger) *ProcessHandler {
	return &ProcessHandler{deps: deps, maxRecipients: maxRecipients, maxBodyBytes: maxBodyBytes, logger: l}
}

// HandleProcess handles POST /process requests.
func (h *ProcessHandler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	const op = "api.process"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req processRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(h.maxRecipients); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.Recipients == nil {
		req.Recipients = []model.RecipientProfile{}
	}

	res, err := h.deps.ProcessContent(r.Context(), req.Content, req.Recipients)
	if err != nil {
		h.logger.Error(r.Context(), "process request failed",
			logger.String("request_id", RequestIDFromContext(r.Context())),
			logger.String("content_id", req.Content.ID),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal", WrapKind(op, ErrInternal, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}
