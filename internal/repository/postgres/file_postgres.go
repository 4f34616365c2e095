package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"cdnupload/internal/model"
	"cdnupload/internal/repository"
)

// FileRecordPostgres is a PostgreSQL implementation of repository.FileRecordRepository.
type FileRecordPostgres struct {
	db *sql.DB
}

// NewFileRecordPostgres creates a new FileRecordPostgres repository.
func NewFileRecordPostgres(db *sql.DB) *FileRecordPostgres {
	return &FileRecordPostgres{db: db}
}

var _ repository.FileRecordRepository = (*FileRecordPostgres)(nil)

// Create upserts the owner's profile, adds rec.Size to its storage_used and
// inserts the file row, all in one transaction.
func (r *FileRecordPostgres) Create(ctx context.Context, rec *model.FileRecord) (*model.FileRecord, error) {
	const qProfile = `
		INSERT INTO profiles (id, storage_used)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET storage_used = profiles.storage_used + EXCLUDED.storage_used
	`
	const qFile = `
		INSERT INTO files (id, user_id, file_name, url, file_type, size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, file_name, url, file_type, size, created_at
	`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, qProfile, rec.UserID, rec.Size); err != nil {
		return nil, fmt.Errorf("account storage: %w", err)
	}

	row := tx.QueryRowContext(ctx, qFile,
		rec.ID,
		rec.UserID,
		rec.FileName,
		rec.URL,
		string(rec.FileType),
		rec.Size,
		rec.CreatedAt,
	)
	var (
		out      model.FileRecord
		fileType string
	)
	if err := row.Scan(
		&out.ID,
		&out.UserID,
		&out.FileName,
		&out.URL,
		&fileType,
		&out.Size,
		&out.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert file: %w", err)
	}
	out.FileType = model.FileType(fileType)

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &out, nil
}
