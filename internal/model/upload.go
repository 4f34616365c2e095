package model

import (
	"strings"
	"time"
)

// Principal is the caller identity resolved by the identity provider.
// It lives for a single request and is never persisted.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// FileType is the coarse classification stored with each upload record.
type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypeAudio FileType = "audio"
	FileTypeOther FileType = "other"
)

// DefaultContentType is used when the submission does not declare one.
const DefaultContentType = "application/octet-stream"

// ClassifyFileType maps a content type onto a FileType by its top-level prefix.
func ClassifyFileType(contentType string) FileType {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "image/"):
		return FileTypeImage
	case strings.HasPrefix(ct, "audio/"):
		return FileTypeAudio
	default:
		return FileTypeOther
	}
}

// FileRecord is the metadata row written after an object is stored.
type FileRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FileName  string    `json:"file_name"`
	URL       string    `json:"url"`
	FileType  FileType  `json:"file_type"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}
