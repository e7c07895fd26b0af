package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/agencydesk/backoffice/internal/config"
)

// allowedExtensions limits uploads to office document and image formats.
var allowedExtensions = map[string]struct{}{
	".jpeg": {}, ".jpg": {}, ".png": {}, ".pdf": {},
	".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {}, ".txt": {},
}

// FileStore writes uploaded documents to local disk under random keys so an
// uploaded file name can never traverse outside the upload directory.
type FileStore struct {
	dir     string
	maxSize int64
}

// NewFileStore creates the upload directory if needed.
func NewFileStore(cfg config.StorageConfig) (*FileStore, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{dir: cfg.UploadDir, maxSize: cfg.MaxFileSizeByte}, nil
}

// ErrFileTooLarge is returned when an upload exceeds the configured limit.
var ErrFileTooLarge = fmt.Errorf("file exceeds size limit")

// ErrUnsupportedType is returned for extensions outside the allow-list.
var ErrUnsupportedType = fmt.Errorf("unsupported file type")

// Save persists the uploaded file and returns the storage key.
func (s *FileStore) Save(header *multipart.FileHeader) (string, error) {
	if s.maxSize > 0 && header.Size > s.maxSize {
		return "", ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", ErrUnsupportedType
	}

	key := uuid.NewString() + ext
	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(filepath.Join(s.dir, key))
		return "", err
	}
	return key, nil
}

// Path resolves a storage key to an absolute file path, rejecting keys that
// would escape the upload directory.
func (s *FileStore) Path(key string) (string, error) {
	if key == "" || strings.Contains(key, "..") || strings.ContainsRune(key, os.PathSeparator) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}

// Remove deletes a stored file. Missing files are not an error; the metadata
// row is authoritative.
func (s *FileStore) Remove(key string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists reports whether the stored file is present on disk.
func (s *FileStore) Exists(key string) bool {
	path, err := s.Path(key)
	if err != nil {
		return false
	}
	_, statErr := os.Stat(path)
	return statErr == nil
}
