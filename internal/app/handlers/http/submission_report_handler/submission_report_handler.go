package submission_report_handler

import (
	"fmt"
	"net/http"
	"strconv"

	"doralyzer/internal/domain/submissions/service"
	"doralyzer/internal/i18n"
	httpError "doralyzer/pkg/http"
)

// SubmissionReportHandler renders and serves the PDF report of one
// stored submission, selected by its identity key.
type SubmissionReportHandler struct {
	submissionService *service.SubmissionService
	locale            i18n.Locale
}

// NewSubmissionReportHandler creates a new handler instance.
func NewSubmissionReportHandler(submissionService *service.SubmissionService, locale i18n.Locale) *SubmissionReportHandler {
	return &SubmissionReportHandler{submissionService: submissionService, locale: locale}
}

func (h *SubmissionReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	loc := h.locale
	if lang := r.URL.Query().Get("lang"); lang != "" {
		loc = i18n.ParseLocale(lang)
	}

	document, filename, err := h.submissionService.RenderReport(key, loc)
	if err != nil {
		httpError.ErrorResponse(w, http.StatusNotFound, fmt.Sprintf("Failed to render report: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(document)
}
