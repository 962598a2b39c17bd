package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"doralyzer/internal/domain/catalog"
	"doralyzer/internal/domain/model"
	"doralyzer/internal/domain/scoring"
	"doralyzer/internal/domain/submissions"
	"doralyzer/internal/i18n"
)

type fakeRenderer struct {
	calls int
	err   error
}

func (f *fakeRenderer) Render(sub model.Submission, scores []scoring.CategoryScore, loc i18n.Locale) ([]byte, string, error) {
	f.calls++
	if f.err != nil {
		return nil, "", f.err
	}
	return []byte("%PDF-fake"), "report.pdf", nil
}

type fakeDeliverer struct {
	calls     int
	summaries []string
	documents [][]byte
	filenames []string
	err       error
}

func (f *fakeDeliverer) Deliver(ctx context.Context, summary string, document []byte, filename string) error {
	f.calls++
	f.summaries = append(f.summaries, summary)
	f.documents = append(f.documents, document)
	f.filenames = append(f.filenames, filename)
	return f.err
}

type fakeArchive struct {
	calls int
	err   error
}

func (f *fakeArchive) SaveSubmission(ctx context.Context, s model.Submission, scores []scoring.CategoryScore) (int, error) {
	f.calls++
	return f.calls, f.err
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	options := []model.AnswerOption{
		{Value: 0, Label: i18n.Text{EN: "No"}},
		{Value: 40, Label: i18n.Text{EN: "Partially"}},
		{Value: 80, Label: i18n.Text{EN: "Mostly"}},
		{Value: 100, Label: i18n.Text{EN: "Yes"}},
	}
	cat, err := catalog.New(
		[]model.Category{
			{ID: 1, Name: i18n.Text{EN: "Risk Management", ES: "Gestión de riesgos"}},
			{ID: 2, Name: i18n.Text{EN: "Incident Reporting", ES: "Notificación de incidentes"}},
		},
		[]model.Question{
			{ID: 1, CategoryID: 1, Prompt: i18n.Text{EN: "Q1"}, Options: options},
			{ID: 2, CategoryID: 1, Prompt: i18n.Text{EN: "Q2"}, Options: options},
			{ID: 3, CategoryID: 2, Prompt: i18n.Text{EN: "Q3"}, Options: options},
		},
	)
	require.NoError(t, err)
	return cat
}

func testSubmission() model.Submission {
	return model.Submission{
		Provider:        "CloudCo",
		FinancialEntity: "BancoSur",
		UserName:        "auditor",
		CreatedAt:       1000,
		Answers:         model.AnswerSet{1: 80, 2: 40, 3: 100},
		Observations:    model.ObservationSet{},
	}
}

func newTestService(t *testing.T, renderer *fakeRenderer, deliverer *fakeDeliverer, archive Archive) (*SubmissionService, submissions.Store) {
	t.Helper()
	store := submissions.NewMemoryStore()
	svc := NewSubmissionService(store, testCatalog(t), renderer, deliverer, archive, zap.NewNop())
	return svc, store
}

func TestFinalizeDeliversSummaryThenDocument(t *testing.T) {
	renderer := &fakeRenderer{}
	deliverer := &fakeDeliverer{}
	svc, store := newTestService(t, renderer, deliverer, nil)

	err := svc.Finalize(context.Background(), testSubmission(), i18n.EN)
	require.NoError(t, err)

	list, err := store.ListSubmissions()
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.Equal(t, 1, renderer.calls)
	require.Equal(t, 1, deliverer.calls)
	assert.Contains(t, deliverer.summaries[0], "CloudCo")
	assert.Contains(t, deliverer.summaries[0], "Risk Management: 60.0%")
	assert.Contains(t, deliverer.summaries[0], "Incident Reporting: 100.0%")
	assert.Equal(t, []byte("%PDF-fake"), deliverer.documents[0])
	assert.Equal(t, "report.pdf", deliverer.filenames[0])
}

func TestFinalizeKeepsSubmissionOnDeliveryFailure(t *testing.T) {
	renderer := &fakeRenderer{}
	deliverer := &fakeDeliverer{err: errors.New("network down")}
	svc, store := newTestService(t, renderer, deliverer, nil)

	err := svc.Finalize(context.Background(), testSubmission(), i18n.EN)
	require.Error(t, err)

	var deliveryErr *DeliveryError
	assert.True(t, errors.As(err, &deliveryErr), "a post-store failure must be a DeliveryError")

	// The submission must survive the failed push so it can be resent.
	got, found, err := store.GetSubmission(1000)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "CloudCo", got.Provider)
}

type failingStore struct {
	submissions.Store
	addErr error
}

func (f *failingStore) AddSubmission(s model.Submission) error { return f.addErr }

func TestFinalizeStoreFailureIsNotADeliveryError(t *testing.T) {
	renderer := &fakeRenderer{}
	deliverer := &fakeDeliverer{}
	store := &failingStore{Store: submissions.NewMemoryStore(), addErr: errors.New("disk full")}
	svc := NewSubmissionService(store, testCatalog(t), renderer, deliverer, nil, zap.NewNop())

	err := svc.Finalize(context.Background(), testSubmission(), i18n.EN)
	require.Error(t, err)

	var deliveryErr *DeliveryError
	assert.False(t, errors.As(err, &deliveryErr), "nothing was stored, so this is not a delivery failure")
	assert.Equal(t, 0, renderer.calls)
	assert.Equal(t, 0, deliverer.calls)
}

func TestFinalizeArchiveFailureDoesNotBlockDelivery(t *testing.T) {
	renderer := &fakeRenderer{}
	deliverer := &fakeDeliverer{}
	archive := &fakeArchive{err: errors.New("db unreachable")}
	svc, _ := newTestService(t, renderer, deliverer, archive)

	err := svc.Finalize(context.Background(), testSubmission(), i18n.EN)
	require.NoError(t, err)
	assert.Equal(t, 1, archive.calls)
	assert.Equal(t, 1, deliverer.calls)
}

func TestPromoteDraftRemovesDraft(t *testing.T) {
	svc, store := newTestService(t, &fakeRenderer{}, &fakeDeliverer{}, nil)

	draft := model.NewDraft(time.UnixMilli(1000), "auditor")
	draft.Provider = "CloudCo"
	draft.FinancialEntity = "BancoSur"
	draft.Answers[1] = 80
	require.NoError(t, store.AddDraft(draft))

	sub, err := svc.PromoteDraft(draft.Key())
	require.NoError(t, err)
	assert.Equal(t, draft.Key(), sub.Key())
	assert.Equal(t, 80, sub.Answers[1])

	_, found, err := store.GetDraft(draft.Key())
	require.NoError(t, err)
	assert.False(t, found)

	_, err = svc.PromoteDraft(draft.Key())
	assert.Error(t, err)
}

func TestResendReport(t *testing.T) {
	renderer := &fakeRenderer{}
	deliverer := &fakeDeliverer{}
	svc, store := newTestService(t, renderer, deliverer, nil)
	require.NoError(t, store.AddSubmission(testSubmission()))

	err := svc.ResendReport(context.Background(), 1000, i18n.EN)
	require.NoError(t, err)
	assert.Equal(t, 1, deliverer.calls)

	err = svc.ResendReport(context.Background(), 9999, i18n.EN)
	assert.Error(t, err)
	assert.Equal(t, 1, deliverer.calls)
}

func TestRenderReport(t *testing.T) {
	svc, store := newTestService(t, &fakeRenderer{}, &fakeDeliverer{}, nil)
	require.NoError(t, store.AddSubmission(testSubmission()))

	document, filename, err := svc.RenderReport(1000, i18n.EN)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), document)
	assert.Equal(t, "report.pdf", filename)

	_, _, err = svc.RenderReport(9999, i18n.EN)
	assert.Error(t, err)
}

func TestBuildSummaryLocalized(t *testing.T) {
	sub := testSubmission()
	scores := []scoring.CategoryScore{
		{Category: model.Category{ID: 1, Name: i18n.Text{EN: "Risk Management", ES: "Gestión de riesgos"}}, Score: 60},
	}

	en := BuildSummary(sub, scores, i18n.EN)
	assert.Contains(t, en, "CloudCo")
	assert.Contains(t, en, "BancoSur")
	assert.Contains(t, en, "Risk Management: 60.0%")

	es := BuildSummary(sub, scores, i18n.ES)
	assert.Contains(t, es, "Gestión de riesgos: 60.0%")
}
