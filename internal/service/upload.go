package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"cdnupload/internal/model"
	"cdnupload/internal/repository"
	"cdnupload/internal/storage"
)

var (
	ErrReaderNil     = errors.New("reader is nil")
	ErrOwnerRequired = errors.New("owner id is required")
)

// DefaultExtension is used for keys when the file name carries no extension.
const DefaultExtension = "bin"

// UploadInput is a validated, ownership-checked submission.
type UploadInput struct {
	OwnerID     string
	FileName    string
	ContentType string
	// Size is the byte length of Body, or -1 when unknown.
	Size int64
	Body io.Reader
}

// UploadResult is what a successful upload hands back to the caller.
type UploadResult struct {
	Key       string            `json:"key"`
	PublicURL string            `json:"publicUrl"`
	UserID    string            `json:"userId"`
	Record    *model.FileRecord `json:"record,omitempty"`
}

// UploadService stores submissions and records their metadata.
type UploadService interface {
	// Upload writes the object under a fresh key and then, when metadata
	// persistence is enabled, inserts its record. A failed insert leaves the
	// object in place.
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
}

type uploadService struct {
	store      storage.Storage
	repo       repository.FileRecordRepository
	publicBase string
	log        *slog.Logger
	tracer     trace.Tracer
}

// NewUploadService constructs an UploadService. A nil repo disables metadata
// persistence and results carry no record.
func NewUploadService(store storage.Storage, repo repository.FileRecordRepository, publicBaseURL string, log *slog.Logger) UploadService {
	return &uploadService{
		store:      store,
		repo:       repo,
		publicBase: publicBaseURL,
		log:        log,
		tracer:     otel.Tracer("cdnupload/internal/service"),
	}
}

// ExtensionOf returns the text after the last "." in name, or DefaultExtension
// when there is no dot or nothing follows it.
func ExtensionOf(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return DefaultExtension
	}
	return name[i+1:]
}

// DeriveKey returns a new object key "<uuid>.<ext>". The caller-supplied name
// contributes only its extension.
func DeriveKey(name string) string {
	return uuid.NewString() + "." + ExtensionOf(name)
}

// PublicURL joins the public base and the escaped key.
func PublicURL(base, key string) string {
	return base + url.PathEscape(key)
}

func (s *uploadService) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if in.Body == nil {
		return nil, ErrReaderNil
	}
	if in.OwnerID == "" {
		return nil, ErrOwnerRequired
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = model.DefaultContentType
	}

	key := DeriveKey(in.FileName)
	publicURL := PublicURL(s.publicBase, key)

	if err := s.put(ctx, key, contentType, in); err != nil {
		return nil, fmt.Errorf("store object: %w", err)
	}

	res := &UploadResult{Key: key, PublicURL: publicURL, UserID: in.OwnerID}
	if s.repo == nil {
		return res, nil
	}

	size := in.Size
	if size < 0 {
		size = 0
	}
	rec, err := s.record(ctx, &model.FileRecord{
		ID:        uuid.NewString(),
		UserID:    in.OwnerID,
		FileName:  in.FileName,
		URL:       publicURL,
		FileType:  model.ClassifyFileType(contentType),
		Size:      size,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.WarnContext(ctx, "metadata insert failed after object write",
			"key", key,
			"user_id", in.OwnerID,
			"error", err,
		)
		return nil, fmt.Errorf("insert metadata: %w", err)
	}
	res.Record = rec
	return res, nil
}

func (s *uploadService) put(ctx context.Context, key, contentType string, in UploadInput) error {
	ctx, span := s.tracer.Start(ctx, "storage.Put", trace.WithAttributes(
		attribute.String("object.key", key),
		attribute.String("object.content_type", contentType),
		attribute.Int64("object.size", in.Size),
	))
	defer span.End()

	_, err := s.store.Put(ctx, key, in.Body, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: contentType,
		Metadata:    map[string]string{"owner-id": in.OwnerID},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "put object")
	}
	return err
}

func (s *uploadService) record(ctx context.Context, rec *model.FileRecord) (*model.FileRecord, error) {
	ctx, span := s.tracer.Start(ctx, "metadata.Create", trace.WithAttributes(
		attribute.String("file.type", string(rec.FileType)),
	))
	defer span.End()

	stored, err := s.repo.Create(ctx, rec)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert record")
	}
	return stored, err
}
