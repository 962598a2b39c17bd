package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"doralyzer/internal/domain/catalog"
	"doralyzer/internal/domain/model"
	"doralyzer/internal/domain/scoring"
	"doralyzer/internal/domain/submissions"
	"doralyzer/internal/i18n"
)

// Renderer produces the report document for a submission. Returns the
// document bytes and its file name.
type Renderer interface {
	Render(sub model.Submission, scores []scoring.CategoryScore, loc i18n.Locale) ([]byte, string, error)
}

// Deliverer pushes the summary message and the report document to the
// configured messaging endpoint as two sequential calls.
type Deliverer interface {
	Deliver(ctx context.Context, summary string, document []byte, filename string) error
}

// Archive persists finalized submissions durably. Optional.
type Archive interface {
	SaveSubmission(ctx context.Context, s model.Submission, scores []scoring.CategoryScore) (int, error)
}

// DeliveryError marks a failure that happened after the submission was
// stored: the data is safe, only the outbound report did not go out.
// Callers use it to pick between "could not save" and "saved but not
// delivered" messages.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string { return e.Err.Error() }
func (e *DeliveryError) Unwrap() error { return e.Err }

// SubmissionService owns the submit flow: promote a draft, store the
// submission, aggregate scores, render the report and deliver it.
type SubmissionService struct {
	store    submissions.Store
	catalog  *catalog.Catalog
	renderer Renderer
	delivery Deliverer
	archive  Archive
	logger   *zap.Logger
}

// NewSubmissionService creates a new SubmissionService. archive may be nil
// when no database is configured.
func NewSubmissionService(
	store submissions.Store,
	cat *catalog.Catalog,
	renderer Renderer,
	delivery Deliverer,
	archive Archive,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		store:    store,
		catalog:  cat,
		renderer: renderer,
		delivery: delivery,
		archive:  archive,
		logger:   logger,
	}
}

// Store exposes the session store to the handlers.
func (s *SubmissionService) Store() submissions.Store { return s.store }

// Catalog exposes the question catalog to the handlers.
func (s *SubmissionService) Catalog() *catalog.Catalog { return s.catalog }

// Scores aggregates the per-category scores of a submission.
func (s *SubmissionService) Scores(sub model.Submission) ([]scoring.CategoryScore, error) {
	scores, err := scoring.Aggregate(sub, s.catalog.Questions(), s.catalog.Categories())
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate scores: %w", err)
	}
	return scores, nil
}

// PromoteDraft converts the draft with the given key into a submission,
// removing the draft. The submission is not stored yet; Finalize does that.
func (s *SubmissionService) PromoteDraft(key int64) (model.Submission, error) {
	draft, ok, err := s.store.GetDraft(key)
	if err != nil {
		return model.Submission{}, fmt.Errorf("failed to get draft: %w", err)
	}
	if !ok {
		return model.Submission{}, fmt.Errorf("draft %d not found", key)
	}
	if _, err := s.store.DeleteDraft(key); err != nil {
		return model.Submission{}, fmt.Errorf("failed to delete draft: %w", err)
	}
	return draft.Submission(), nil
}

// Finalize stores the submission, archives it when an archive is
// configured, and delivers the report. The submission is stored before any
// rendering or delivery work, so a delivery failure never loses it. A
// failure after the store succeeded comes back as a *DeliveryError; any
// other error means nothing was stored.
func (s *SubmissionService) Finalize(ctx context.Context, sub model.Submission, loc i18n.Locale) error {
	if err := s.store.AddSubmission(sub); err != nil {
		return fmt.Errorf("failed to store submission: %w", err)
	}

	scores, err := s.Scores(sub)
	if err != nil {
		return &DeliveryError{Err: err}
	}

	if s.archive != nil {
		// Archive failure must not block the report.
		if _, err := s.archive.SaveSubmission(ctx, sub, scores); err != nil {
			s.logger.Warn("failed to archive submission",
				zap.Int64("key", sub.Key()), zap.Error(err))
		}
	}

	if err := s.deliver(ctx, sub, scores, loc); err != nil {
		return &DeliveryError{Err: err}
	}
	return nil
}

// ResendReport regenerates and redelivers the report for a stored
// submission.
func (s *SubmissionService) ResendReport(ctx context.Context, key int64, loc i18n.Locale) error {
	sub, ok, err := s.store.GetSubmission(key)
	if err != nil {
		return fmt.Errorf("failed to get submission: %w", err)
	}
	if !ok {
		return fmt.Errorf("submission %d not found", key)
	}
	scores, err := s.Scores(sub)
	if err != nil {
		return err
	}
	return s.deliver(ctx, sub, scores, loc)
}

// RenderReport renders the PDF for a stored submission without delivering
// it. Used by the HTTP report endpoint.
func (s *SubmissionService) RenderReport(key int64, loc i18n.Locale) ([]byte, string, error) {
	sub, ok, err := s.store.GetSubmission(key)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get submission: %w", err)
	}
	if !ok {
		return nil, "", fmt.Errorf("submission %d not found", key)
	}
	scores, err := s.Scores(sub)
	if err != nil {
		return nil, "", err
	}
	document, filename, err := s.renderer.Render(sub, scores, loc)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render report: %w", err)
	}
	return document, filename, nil
}

func (s *SubmissionService) deliver(ctx context.Context, sub model.Submission, scores []scoring.CategoryScore, loc i18n.Locale) error {
	document, filename, err := s.renderer.Render(sub, scores, loc)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	summary := BuildSummary(sub, scores, loc)
	if err := s.delivery.Deliver(ctx, summary, document, filename); err != nil {
		return fmt.Errorf("failed to deliver report: %w", err)
	}
	return nil
}

// BuildSummary assembles the plain-text summary message that precedes the
// document upload: title line, then one score line per category.
func BuildSummary(sub model.Submission, scores []scoring.CategoryScore, loc i18n.Locale) string {
	var b strings.Builder
	fmt.Fprintf(&b, i18n.T(i18n.MsgSummaryTitle, loc), sub.Provider, sub.FinancialEntity)
	for _, cs := range scores {
		fmt.Fprintf(&b, "\n%s: %.1f%%", cs.Category.Name.In(loc), cs.Score)
	}
	return b.String()
}
