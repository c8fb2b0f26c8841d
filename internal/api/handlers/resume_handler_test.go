package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcharly/atsparse/internal/models"
)

type fakeResumeStore struct {
	ListResumesFn          func(ctx context.Context) ([]models.Resume, error)
	GetResumeByIDFn        func(ctx context.Context, id string) (*models.Resume, error)
	SearchSimilarResumesFn func(ctx context.Context, id string, limit int) ([]models.Resume, error)
}

func (f *fakeResumeStore) ListResumes(ctx context.Context) ([]models.Resume, error) {
	return f.ListResumesFn(ctx)
}

func (f *fakeResumeStore) GetResumeByID(ctx context.Context, id string) (*models.Resume, error) {
	return f.GetResumeByIDFn(ctx, id)
}

func (f *fakeResumeStore) SearchSimilarResumes(ctx context.Context, id string, limit int) ([]models.Resume, error) {
	return f.SearchSimilarResumesFn(ctx, id, limit)
}

var _ ResumeStore = (*fakeResumeStore)(nil)

func resumeRouter(h *ResumeHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/resumes", h.ListResumes)
	r.Get("/resumes/{id}", h.GetResume)
	r.Get("/resumes/{id}/similar", h.SimilarResumes)
	return r
}

func TestListResumes_EmptyIsJSONArray(t *testing.T) {
	h := NewResumeHandler(&fakeResumeStore{
		ListResumesFn: func(context.Context) ([]models.Resume, error) { return nil, nil },
	})

	req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
	rr := httptest.NewRecorder()
	resumeRouter(h).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestGetResume_Found(t *testing.T) {
	id := uuid.NewString()
	h := NewResumeHandler(&fakeResumeStore{
		GetResumeByIDFn: func(_ context.Context, got string) (*models.Resume, error) {
			assert.Equal(t, id, got)
			return &models.Resume{ID: got, FileName: "cv.pdf", Status: models.StatusParsed}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/resumes/"+id, nil)
	rr := httptest.NewRecorder()
	resumeRouter(h).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var rec models.Resume
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "cv.pdf", rec.FileName)
}

func TestGetResume_NotFound(t *testing.T) {
	h := NewResumeHandler(&fakeResumeStore{
		GetResumeByIDFn: func(context.Context, string) (*models.Resume, error) { return nil, nil },
	})

	req := httptest.NewRequest(http.MethodGet, "/resumes/"+uuid.NewString(), nil)
	rr := httptest.NewRecorder()
	resumeRouter(h).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetResume_InvalidID(t *testing.T) {
	h := NewResumeHandler(&fakeResumeStore{
		GetResumeByIDFn: func(context.Context, string) (*models.Resume, error) {
			t.Fatal("store must not be hit for a malformed id")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/resumes/not-a-uuid", nil)
	rr := httptest.NewRecorder()
	resumeRouter(h).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSimilarResumes(t *testing.T) {
	id := uuid.NewString()
	other := uuid.NewString()
	h := NewResumeHandler(&fakeResumeStore{
		GetResumeByIDFn: func(_ context.Context, got string) (*models.Resume, error) {
			return &models.Resume{ID: got}, nil
		},
		SearchSimilarResumesFn: func(_ context.Context, got string, limit int) ([]models.Resume, error) {
			assert.Equal(t, id, got)
			assert.Equal(t, 5, limit)
			return []models.Resume{{ID: other}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/resumes/"+id+"/similar", nil)
	rr := httptest.NewRecorder()
	resumeRouter(h).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var out []models.Resume
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, other, out[0].ID)
}

func TestSimilarResumes_BaseMissing(t *testing.T) {
	h := NewResumeHandler(&fakeResumeStore{
		GetResumeByIDFn: func(context.Context, string) (*models.Resume, error) { return nil, nil },
		SearchSimilarResumesFn: func(context.Context, string, int) ([]models.Resume, error) {
			t.Fatal("similarity search must not run when the base record is missing")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/resumes/"+uuid.NewString()+"/similar", nil)
	rr := httptest.NewRecorder()
	resumeRouter(h).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
