package repository

import (
	"context"

	"github.com/agencydesk/backoffice/internal/domain"
)

// DocumentRepository defines persistence access for document metadata.
type DocumentRepository interface {
	List(ctx context.Context) ([]domain.Document, error)
	ListByRelated(ctx context.Context, relatedType string, relatedID int64) ([]domain.Document, error)
	GetByID(ctx context.Context, id int64) (*domain.Document, error)
	Create(ctx context.Context, doc *domain.Document) error
	Delete(ctx context.Context, id int64) error
}

type documentRepository struct {
	db DB
}

// NewDocumentRepository returns a Postgres-backed implementation.
func NewDocumentRepository(db DB) DocumentRepository {
	return &documentRepository{db: db}
}

const documentColumns = `
        id, related_type, related_id, file_name, storage_key, file_type,
        file_size, uploaded_by, created_at, updated_at`

func (r *documentRepository) List(ctx context.Context) ([]domain.Document, error) {
	return collectList[domain.Document](ctx, r.db,
		`SELECT `+documentColumns+` FROM documents ORDER BY created_at DESC`)
}

func (r *documentRepository) ListByRelated(ctx context.Context, relatedType string, relatedID int64) ([]domain.Document, error) {
	return collectList[domain.Document](ctx, r.db,
		`SELECT `+documentColumns+` FROM documents
         WHERE related_type = $1 AND related_id = $2
         ORDER BY created_at DESC`, relatedType, relatedID)
}

func (r *documentRepository) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	return collectOne[domain.Document](ctx, r.db,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) error {
	const query = `
        INSERT INTO documents (related_type, related_id, file_name,
            storage_key, file_type, file_size, uploaded_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		doc.RelatedType,
		doc.RelatedID,
		doc.FileName,
		doc.StorageKey,
		doc.FileType,
		doc.FileSize,
		doc.UploadedBy,
	).Scan(&doc.ID, &doc.CreatedAt)
}

func (r *documentRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, `DELETE FROM documents WHERE id = $1`, id)
}
