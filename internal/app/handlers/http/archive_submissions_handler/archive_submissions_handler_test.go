package archive_submissions_handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doralyzer/internal/domain/model"
)

type fakeArchive struct {
	subs    []model.Submission
	listErr error

	deleted   []int64
	deleteOK  bool
	deleteErr error
}

func (f *fakeArchive) GetSubmissionsByProvider(ctx context.Context, provider string) ([]model.Submission, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.Submission
	for _, s := range f.subs {
		if s.Provider == provider {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeArchive) DeleteSubmission(ctx context.Context, createdAt int64) (bool, error) {
	f.deleted = append(f.deleted, createdAt)
	return f.deleteOK, f.deleteErr
}

func TestArchiveList(t *testing.T) {
	archive := &fakeArchive{subs: []model.Submission{
		{Provider: "CloudCo", FinancialEntity: "BancoSur", CreatedAt: 1000},
		{Provider: "OtherCo", FinancialEntity: "BancoSur", CreatedAt: 2000},
	}}
	handler := NewArchiveSubmissionsHandler(archive)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/archive?provider=CloudCo", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ArchiveListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(1000), resp.Submissions[0].Key())
}

func TestArchiveListNoMatches(t *testing.T) {
	handler := NewArchiveSubmissionsHandler(&fakeArchive{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/archive?provider=CloudCo", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ArchiveListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Total)
	assert.NotNil(t, resp.Submissions)
}

func TestArchiveListRequiresProvider(t *testing.T) {
	handler := NewArchiveSubmissionsHandler(&fakeArchive{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/archive", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArchiveListFailure(t *testing.T) {
	handler := NewArchiveSubmissionsHandler(&fakeArchive{listErr: errors.New("db unreachable")})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/archive?provider=CloudCo", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestArchiveDelete(t *testing.T) {
	archive := &fakeArchive{deleteOK: true}
	handler := NewArchiveSubmissionsHandler(archive)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/archive?key=1000", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{1000}, archive.deleted)
}

func TestArchiveDeleteNotFound(t *testing.T) {
	handler := NewArchiveSubmissionsHandler(&fakeArchive{deleteOK: false})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/archive?key=1000", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArchiveDeleteBadKey(t *testing.T) {
	handler := NewArchiveSubmissionsHandler(&fakeArchive{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/archive?key=abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArchiveRejectsPost(t *testing.T) {
	handler := NewArchiveSubmissionsHandler(&fakeArchive{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/archive", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
