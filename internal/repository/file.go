package repository

import (
	"context"

	"cdnupload/internal/model"
)

// FileRecordRepository persists upload metadata. No business logic here.
type FileRecordRepository interface {
	// Create inserts rec and returns the stored row. Implementations also
	// account rec.Size against the owner's profile in the same transaction.
	Create(ctx context.Context, rec *model.FileRecord) (*model.FileRecord, error)
}
