package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/pgvector/pgvector-go"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dcharly/atsparse/internal/config"
	"github.com/dcharly/atsparse/internal/core"
	"github.com/dcharly/atsparse/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(ctx context.Context, cfg *config.Config) (core.DbClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database client configuration is nil")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	dsn := cfg.DatabaseURL
	if cfg.SslCertPath != "" {
		u, err := url.Parse(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		q := u.Query()
		q.Set("sslmode", "verify-ca")
		q.Set("sslrootcert", cfg.SslCertPath)
		u.RawQuery = q.Encode()
		dsn = u.String()
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Sensible pool settings for an API service; adjust as needed.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := EnsureBootstrapped(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Implementing the db interface for user

func (c *DatabaseClient) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	const q = `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, COALESCE($4, now()), COALESCE($5, now()))
	`
	_, err := c.db.ExecContext(ctx, q,
		user.ID, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	return err
}

func (c *DatabaseClient) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users WHERE email = $1
	`
	var u models.User
	err := c.db.QueryRowContext(ctx, q, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Implementing the db interface for resumes

func (c *DatabaseClient) CreateResume(ctx context.Context, rec *models.Resume) error {
	if rec == nil {
		return errors.New("nil resume")
	}
	const q = `
		INSERT INTO resumes
			(id, file_name, stored_path, size_bytes, status, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, COALESCE($6, now()), COALESCE($7, now()))
	`
	_, err := c.db.ExecContext(ctx, q,
		rec.ID, rec.FileName, rec.StoredPath, rec.SizeBytes, rec.Status, rec.CreatedAt, rec.UpdatedAt)
	return err
}

func (c *DatabaseClient) GetResumeByID(ctx context.Context, id string) (*models.Resume, error) {
	const q = `
		SELECT id, file_name, stored_path, size_bytes, status, parsed, error_message, archive_url, created_at, updated_at
		FROM resumes
		WHERE id = $1
	`
	var r models.Resume
	var parsed []byte
	var errMsg, archiveURL sql.NullString
	err := c.db.QueryRowContext(ctx, q, id).Scan(
		&r.ID, &r.FileName, &r.StoredPath, &r.SizeBytes, &r.Status, &parsed, &errMsg, &archiveURL, &r.CreatedAt, &r.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.Parsed = json.RawMessage(parsed)
	r.ErrorMessage = errMsg.String
	r.ArchiveURL = archiveURL.String
	return &r, nil
}

func (c *DatabaseClient) ListResumes(ctx context.Context) ([]models.Resume, error) {
	const q = `
		SELECT id, file_name, stored_path, size_bytes, status, parsed, error_message, archive_url, created_at, updated_at
		FROM resumes
		ORDER BY created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Resume
	for rows.Next() {
		var r models.Resume
		var parsed []byte
		var errMsg, archiveURL sql.NullString
		if err := rows.Scan(
			&r.ID, &r.FileName, &r.StoredPath, &r.SizeBytes, &r.Status, &parsed, &errMsg, &archiveURL, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, err
		}
		r.Parsed = json.RawMessage(parsed)
		r.ErrorMessage = errMsg.String
		r.ArchiveURL = archiveURL.String
		out = append(out, r)
	}
	return out, rows.Err()
}

func (c *DatabaseClient) UpdateResumeResult(ctx context.Context, id string, status string, parsed json.RawMessage, errMsg string) error {
	const q = `
		UPDATE resumes
		SET status = $2, parsed = $3, error_message = NULLIF($4, ''), updated_at = now()
		WHERE id = $1
	`
	var payload any
	if len(parsed) > 0 {
		payload = []byte(parsed)
	}
	res, err := c.db.ExecContext(ctx, q, id, status, payload, errMsg)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}

func (c *DatabaseClient) SetResumeEmbedding(ctx context.Context, id string, embedding []float32) error {
	const q = `
		UPDATE resumes
		SET embedding = $2, updated_at = now()
		WHERE id = $1
	`
	_, err := c.db.ExecContext(ctx, q, id, pgvector.NewVector(embedding))
	return err
}

func (c *DatabaseClient) SetResumeArchiveURL(ctx context.Context, id string, url string) error {
	const q = `
		UPDATE resumes
		SET archive_url = $2, updated_at = now()
		WHERE id = $1
	`
	_, err := c.db.ExecContext(ctx, q, id, url)
	return err
}

// SearchSimilarResumes orders stored resumes by embedding distance to the
// given record, skipping rows that were never embedded.
func (c *DatabaseClient) SearchSimilarResumes(ctx context.Context, id string, limit int) ([]models.Resume, error) {
	const q = `
		SELECT id, file_name, stored_path, size_bytes, status, parsed, error_message, archive_url, created_at, updated_at
		FROM resumes
		WHERE id <> $1
		  AND embedding IS NOT NULL
		ORDER BY embedding <-> (SELECT embedding FROM resumes WHERE id = $1)
		LIMIT $2
	`
	rows, err := c.db.QueryContext(ctx, q, id, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Resume
	for rows.Next() {
		var r models.Resume
		var parsed []byte
		var errMsg, archiveURL sql.NullString
		if err := rows.Scan(
			&r.ID, &r.FileName, &r.StoredPath, &r.SizeBytes, &r.Status, &parsed, &errMsg, &archiveURL, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, err
		}
		r.Parsed = json.RawMessage(parsed)
		r.ErrorMessage = errMsg.String
		r.ArchiveURL = archiveURL.String
		out = append(out, r)
	}
	return out, rows.Err()
}
