package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dcharly/atsparse/internal/models"
)

// ResumeStore is the slice of persistence the history surface needs.
type ResumeStore interface {
	ListResumes(ctx context.Context) ([]models.Resume, error)
	GetResumeByID(ctx context.Context, id string) (*models.Resume, error)
	SearchSimilarResumes(ctx context.Context, id string, limit int) ([]models.Resume, error)
}

// ResumeHandler serves the parse history recorded by the file flow.
type ResumeHandler struct {
	db ResumeStore
}

func NewResumeHandler(db ResumeStore) *ResumeHandler {
	return &ResumeHandler{db: db}
}

func (h *ResumeHandler) ListResumes(w http.ResponseWriter, r *http.Request) {
	resumes, err := h.db.ListResumes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list resumes")
		return
	}
	if resumes == nil {
		resumes = []models.Resume{}
	}
	writeJSON(w, http.StatusOK, resumes)
}

func (h *ResumeHandler) GetResume(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid resume id")
		return
	}

	rec, err := h.db.GetResumeByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load resume")
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "resume not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *ResumeHandler) SimilarResumes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid resume id")
		return
	}

	rec, err := h.db.GetResumeByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load resume")
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "resume not found")
		return
	}

	similar, err := h.db.SearchSimilarResumes(r.Context(), id, 5)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "similarity search failed")
		return
	}
	if similar == nil {
		similar = []models.Resume{}
	}
	writeJSON(w, http.StatusOK, similar)
}
