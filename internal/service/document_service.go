package service

import (
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/repository"
	"github.com/agencydesk/backoffice/internal/storage"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

// DocumentService couples document metadata rows with the file store.
type DocumentService struct {
	documents repository.DocumentRepository
	store     *storage.FileStore
	logger    *zap.Logger
}

// NewDocumentService builds the service.
func NewDocumentService(documents repository.DocumentRepository, store *storage.FileStore, logger *zap.Logger) *DocumentService {
	return &DocumentService{documents: documents, store: store, logger: logger}
}

// List returns all document metadata, newest first.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.documents.List(ctx)
}

// ListByRelated returns documents attached to one record.
func (s *DocumentService) ListByRelated(ctx context.Context, relatedType string, relatedID int64) ([]domain.Document, error) {
	return s.documents.ListByRelated(ctx, relatedType, relatedID)
}

// Get returns a single document's metadata.
func (s *DocumentService) Get(ctx context.Context, id int64) (*domain.Document, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("document")
		}
		return nil, err
	}
	return doc, nil
}

// Upload stores the file bytes and records the metadata row. The stored key
// is random so the original file name never touches the filesystem.
func (s *DocumentService) Upload(ctx context.Context, relatedType string, relatedID int64, uploadedBy int64, header *multipart.FileHeader) (*domain.Document, error) {
	if relatedType == "" || relatedID == 0 {
		return nil, apperrors.NewValidationError("relatedType and relatedId required")
	}
	if header == nil {
		return nil, apperrors.NewValidationError("file required")
	}

	key, err := s.store.Save(header)
	if err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) || errors.Is(err, storage.ErrUnsupportedType) {
			return nil, apperrors.NewValidationError(err.Error())
		}
		return nil, err
	}

	uploader := uploadedBy
	doc := &domain.Document{
		RelatedType: relatedType,
		RelatedID:   relatedID,
		FileName:    header.Filename,
		StorageKey:  key,
		FileType:    strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), "."),
		FileSize:    header.Size,
		UploadedBy:  &uploader,
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		// Keep disk and metadata consistent when the insert fails.
		if rmErr := s.store.Remove(key); rmErr != nil {
			s.logger.Warn("orphaned upload left on disk",
				zap.String("storageKey", key), zap.Error(rmErr))
		}
		return nil, err
	}
	return doc, nil
}

// FilePath resolves the on-disk path for a stored document.
func (s *DocumentService) FilePath(ctx context.Context, id int64) (*domain.Document, string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !s.store.Exists(doc.StorageKey) {
		return nil, "", apperrors.NewNotFound("document file")
	}
	path, err := s.store.Path(doc.StorageKey)
	if err != nil {
		return nil, "", err
	}
	return doc, path, nil
}

// Delete removes the metadata row first, then the bytes. A leftover file is
// logged rather than surfaced; the row is the source of truth.
func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.documents.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("document")
		}
		return err
	}
	if err := s.store.Remove(doc.StorageKey); err != nil {
		s.logger.Warn("could not remove stored file",
			zap.String("storageKey", doc.StorageKey), zap.Error(err))
	}
	return nil
}
