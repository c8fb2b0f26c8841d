package core

import (
	"context"
	"encoding/json"

	"github.com/dcharly/atsparse/internal/models"
)

// DbClient defines all persistence operations the services need.
// It abstracts Postgres/pgvector so higher layers never depend on a specific DB.
type DbClient interface {
	CreateUser(ctx context.Context, user *models.User) (err error)
	GetUserByEmail(ctx context.Context, email string) (user *models.User, err error)

	CreateResume(ctx context.Context, rec *models.Resume) error
	GetResumeByID(ctx context.Context, id string) (*models.Resume, error)
	ListResumes(ctx context.Context) ([]models.Resume, error)
	UpdateResumeResult(ctx context.Context, id string, status string, parsed json.RawMessage, errMsg string) error
	SetResumeEmbedding(ctx context.Context, id string, embedding []float32) error
	SetResumeArchiveURL(ctx context.Context, id string, url string) error
	SearchSimilarResumes(ctx context.Context, id string, limit int) ([]models.Resume, error)

	Close() error
}

// ObjectClient defines interactions with S3 or any object storage.
// It's abstract so you can replace AWS with MinIO, GCP, etc. easily.
type ObjectClient interface {
	UploadFile(ctx context.Context, bucket, key string, data []byte, contentType string) (url string, err error)
	DeleteFile(ctx context.Context, bucket, key string) error
}

// DocumentParser turns a stored resume file into one structured JSON
// document. Implementations spawn the external extraction program or run the
// extraction in-process.
type DocumentParser interface {
	ParseFile(ctx context.Context, path string) (json.RawMessage, error)
}
