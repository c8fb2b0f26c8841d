package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/dcharly/atsparse/internal/models"
)

// TextParser runs the text flow and returns the extractor's raw response.
type TextParser interface {
	ParseText(ctx context.Context, resumeText string) (string, error)
}

// FileParser runs the file flow for an accepted upload.
type FileParser interface {
	ParseUpload(ctx context.Context, filename string, data io.Reader) (*models.Resume, error)
}

// ParseHandler exposes the two extraction entry points. They are distinct
// routes on purpose: one accepts a JSON body, the other a multipart form.
type ParseHandler struct {
	text      TextParser
	file      FileParser
	maxUpload int64
}

func NewParseHandler(text TextParser, file FileParser, maxUploadBytes int64) *ParseHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 5 << 20
	}
	return &ParseHandler{text: text, file: file, maxUpload: maxUploadBytes}
}

type parseTextRequest struct {
	ResumeData string `json:"resumeData"`
}

// ParseResumeText handles POST /api/resume/parse.
func (h *ParseHandler) ParseResumeText(w http.ResponseWriter, r *http.Request) {
	var req parseTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.text.ParseText(r.Context(), req.ResumeData)
	if err != nil {
		writeParseError(w, err)
		return
	}

	// Raw pass-through of the extractor response body.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(out)); err != nil {
		log.Printf("failed to write parse response: %v", err)
	}
}

// UploadResume handles POST /api/resume/upload. The size cap is enforced
// here, before any file is stored or any child process is spawned.
func (h *ParseHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+(1<<20)) // cap + multipart overhead

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusBadRequest, "uploaded file exceeds the size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no resume file attached")
		return
	}
	defer file.Close()

	if header.Size > h.maxUpload {
		writeError(w, http.StatusBadRequest, "uploaded file exceeds the size limit")
		return
	}

	rec, err := h.file.ParseUpload(r.Context(), header.Filename, file)
	if err != nil {
		writeParseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Resume parsed successfully",
		"filename":      rec.FileName,
		"filePath":      rec.StoredPath,
		"extractedData": rec.Parsed,
	})
}
