package services

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dcharly/atsparse/internal/core"
	"github.com/dcharly/atsparse/internal/core/uploads"
	"github.com/dcharly/atsparse/internal/models"
)

// ResumeRecorder is the slice of persistence the file flow needs.
type ResumeRecorder interface {
	CreateResume(ctx context.Context, rec *models.Resume) error
	UpdateResumeResult(ctx context.Context, id string, status string, parsed json.RawMessage, errMsg string) error
	SetResumeEmbedding(ctx context.Context, id string, embedding []float32) error
	SetResumeArchiveURL(ctx context.Context, id string, url string) error
}

// FileService is the file-flow orchestrator: persist the upload, hand the
// stored path to the document parser, record the outcome. Embedding and
// S3 archival run after a successful parse and never fail the request.
type FileService struct {
	store    *uploads.Store
	parser   core.DocumentParser
	db       ResumeRecorder
	embedder core.EmbeddingProvider // optional
	archive  core.ObjectClient      // optional
	bucket   string
}

func NewFileService(store *uploads.Store, parser core.DocumentParser, db ResumeRecorder, embedder core.EmbeddingProvider, archive core.ObjectClient, bucket string) *FileService {
	return &FileService{store: store, parser: parser, db: db, embedder: embedder, archive: archive, bucket: bucket}
}

// ParseUpload runs the whole file flow for one accepted upload. The caller
// has already enforced the size cap. The stored file is left on disk.
func (s *FileService) ParseUpload(ctx context.Context, filename string, data io.Reader) (*models.Resume, error) {
	if filename == "" || data == nil {
		return nil, core.NewError(core.ErrMissingInput, "no resume file attached")
	}

	storedPath, size, err := s.store.Save(filename, data)
	if err != nil {
		return nil, core.WrapError(core.ErrInternal, "failed to store uploaded file", err)
	}

	now := time.Now()
	rec := &models.Resume{
		ID:         uuid.NewString(),
		FileName:   filename,
		StoredPath: storedPath,
		SizeBytes:  size,
		Status:     models.StatusProcessing,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.db.CreateResume(ctx, rec); err != nil {
		return nil, core.WrapError(core.ErrInternal, "failed to record upload", err)
	}

	payload, perr := s.parser.ParseFile(ctx, storedPath)
	if perr != nil {
		if err := s.db.UpdateResumeResult(ctx, rec.ID, models.StatusFailed, nil, perr.Error()); err != nil {
			log.Printf("FileService: failed to record failure for %s: %v", rec.ID, err)
		}
		return nil, perr
	}

	rec.Status = models.StatusParsed
	rec.Parsed = payload
	if err := s.db.UpdateResumeResult(ctx, rec.ID, models.StatusParsed, payload, ""); err != nil {
		log.Printf("FileService: failed to record result for %s: %v", rec.ID, err)
	}

	s.finalize(rec)
	return rec, nil
}

// finalize embeds the parsed payload and mirrors the stored file to object
// storage. Both are best-effort bookkeeping; errors are logged only.
func (s *FileService) finalize(rec *models.Resume) {
	fctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	g, gctx := errgroup.WithContext(fctx)

	if s.embedder != nil {
		g.Go(func() error {
			vecs, err := s.embedder.EmbedTexts(gctx, []string{string(rec.Parsed)})
			if err != nil || len(vecs) == 0 {
				log.Printf("FileService: embedding failed for %s: %v", rec.ID, err)
				return nil
			}
			if err := s.db.SetResumeEmbedding(gctx, rec.ID, vecs[0]); err != nil {
				log.Printf("FileService: failed to store embedding for %s: %v", rec.ID, err)
			}
			return nil
		})
	}

	if s.archive != nil && s.bucket != "" {
		g.Go(func() error {
			data, err := os.ReadFile(rec.StoredPath)
			if err != nil {
				log.Printf("FileService: failed to read %s for archive: %v", rec.StoredPath, err)
				return nil
			}
			key := filepath.Base(rec.StoredPath)
			url, err := s.archive.UploadFile(gctx, s.bucket, key, data, "application/octet-stream")
			if err != nil {
				log.Printf("FileService: archive upload failed for %s: %v", rec.ID, err)
				return nil
			}
			rec.ArchiveURL = url
			if err := s.db.SetResumeArchiveURL(gctx, rec.ID, url); err != nil {
				log.Printf("FileService: failed to store archive url for %s: %v", rec.ID, err)
			}
			return nil
		})
	}

	_ = g.Wait()
}
