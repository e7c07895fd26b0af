package domain

import "time"

// Document is stored file metadata; the bytes live in the upload store.
type Document struct {
	ID          int64      `db:"id" json:"id"`
	RelatedType string     `db:"related_type" json:"relatedType"`
	RelatedID   int64      `db:"related_id" json:"relatedId"`
	FileName    string     `db:"file_name" json:"fileName"`
	StorageKey  string     `db:"storage_key" json:"-"`
	FileType    string     `db:"file_type" json:"fileType"`
	FileSize    int64      `db:"file_size" json:"fileSize"`
	UploadedBy  *int64     `db:"uploaded_by" json:"uploadedBy,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updatedAt,omitempty"`
}
