package list_submissions_handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"doralyzer/internal/domain/dto"
	"doralyzer/internal/domain/scoring"
	"doralyzer/internal/domain/submissions/service"
	"doralyzer/internal/i18n"
	httpError "doralyzer/pkg/http"
)

// ListSubmissionsHandler serves the session's submissions with their
// aggregated scores as JSON.
type ListSubmissionsHandler struct {
	submissionService *service.SubmissionService
	locale            i18n.Locale
}

// NewListSubmissionsHandler creates a new handler instance.
func NewListSubmissionsHandler(submissionService *service.SubmissionService, locale i18n.Locale) *ListSubmissionsHandler {
	return &ListSubmissionsHandler{submissionService: submissionService, locale: locale}
}

func (h *ListSubmissionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subs, err := h.submissionService.Store().ListSubmissions()
	if err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list submissions: %v", err))
		return
	}

	response := dto.SubmissionsResponse{
		Total:       len(subs),
		Submissions: make([]dto.SubmissionSummary, 0, len(subs)),
	}
	for _, sub := range subs {
		scores, err := h.submissionService.Scores(sub)
		if err != nil {
			httpError.ErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to aggregate scores: %v", err))
			return
		}
		summary := dto.SubmissionSummary{
			Key:             sub.Key(),
			Provider:        sub.Provider,
			FinancialEntity: sub.FinancialEntity,
			UserName:        sub.UserName,
			CreatedAt:       sub.CreatedTime().Format("2006-01-02 15:04:05"),
			OverallScore:    scoring.Overall(scores),
		}
		for _, cs := range scores {
			summary.CategoryScores = append(summary.CategoryScores, dto.CategoryScoreInfo{
				CategoryID: cs.Category.ID,
				Name:       cs.Category.Name.In(h.locale),
				Score:      cs.Score,
			})
		}
		response.Submissions = append(response.Submissions, summary)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to encode response")
		return
	}
}
