package models

import (
	"encoding/json"
	"time"
)

// Resume statuses.
const (
	StatusProcessing = "processing"
	StatusParsed     = "parsed"
	StatusFailed     = "failed"
)

// User represents an authenticated user of the system.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Resume represents one file-flow extraction request and its outcome.
// The uploaded file stays at StoredPath; the core never deletes it.
type Resume struct {
	ID           string          `db:"id" json:"id"`
	FileName     string          `db:"file_name" json:"file_name"`
	StoredPath   string          `db:"stored_path" json:"stored_path"`
	SizeBytes    int64           `db:"size_bytes" json:"size_bytes"`
	Status       string          `db:"status" json:"status"` // processing | parsed | failed
	Parsed       json.RawMessage `db:"parsed" json:"parsed,omitempty"`
	ErrorMessage string          `db:"error_message" json:"error_message,omitempty"`
	ArchiveURL   string          `db:"archive_url" json:"archive_url,omitempty"` // S3 mirror, if configured
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}
