package archive_submissions_handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"doralyzer/internal/domain/model"
	httpError "doralyzer/pkg/http"
)

// Archive is the slice of the archive repository this handler needs.
type Archive interface {
	GetSubmissionsByProvider(ctx context.Context, provider string) ([]model.Submission, error)
	DeleteSubmission(ctx context.Context, createdAt int64) (bool, error)
}

// ArchiveListResponse is the JSON shape of GET /archive.
type ArchiveListResponse struct {
	Total       int                `json:"total"`
	Submissions []model.Submission `json:"submissions"`
}

// ArchiveSubmissionsHandler serves the database archive: list the
// archived submissions of one provider, or remove one by its identity
// key. Registered only when an archive database is configured.
type ArchiveSubmissionsHandler struct {
	archive Archive
}

// NewArchiveSubmissionsHandler creates a new handler instance.
func NewArchiveSubmissionsHandler(archive Archive) *ArchiveSubmissionsHandler {
	return &ArchiveSubmissionsHandler{archive: archive}
}

func (h *ArchiveSubmissionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodDelete:
		h.remove(w, r)
	default:
		httpError.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *ArchiveSubmissionsHandler) list(w http.ResponseWriter, r *http.Request) {
	provider := r.URL.Query().Get("provider")
	if provider == "" {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Missing provider query parameter")
		return
	}

	subs, err := h.archive.GetSubmissionsByProvider(r.Context(), provider)
	if err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list archived submissions: %v", err))
		return
	}

	response := ArchiveListResponse{Total: len(subs), Submissions: subs}
	if response.Submissions == nil {
		response.Submissions = []model.Submission{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to encode response")
		return
	}
}

func (h *ArchiveSubmissionsHandler) remove(w http.ResponseWriter, r *http.Request) {
	keyParam := r.URL.Query().Get("key")
	if keyParam == "" {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Missing key query parameter")
		return
	}
	key, err := strconv.ParseInt(keyParam, 10, 64)
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid key query parameter")
		return
	}

	found, err := h.archive.DeleteSubmission(r.Context(), key)
	if err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to delete archived submission: %v", err))
		return
	}
	if !found {
		httpError.ErrorResponse(w, http.StatusNotFound, "Archived submission not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
