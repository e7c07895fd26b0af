package storage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/agencydesk/backoffice/internal/config"
)

func newTestStore(t *testing.T, maxSize int64) *FileStore {
	t.Helper()
	store, err := NewFileStore(config.StorageConfig{
		UploadDir:       t.TempDir(),
		MaxFileSizeByte: maxSize,
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func makeFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestSaveAndPath(t *testing.T) {
	store := newTestStore(t, 1<<20)
	header := makeFileHeader(t, "report.pdf", []byte("pdf bytes"))

	key, err := store.Save(header)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Ext(key) != ".pdf" {
		t.Fatalf("expected .pdf key, got %q", key)
	}
	if key == "report.pdf" {
		t.Fatal("storage key must not be the original file name")
	}

	path, err := store.Path(key)
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "pdf bytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}
}

func TestSaveRejectsUnsupportedType(t *testing.T) {
	store := newTestStore(t, 1<<20)
	header := makeFileHeader(t, "malware.exe", []byte("nope"))

	if _, err := store.Save(header); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	store := newTestStore(t, 8)
	header := makeFileHeader(t, "big.txt", []byte("way more than eight bytes"))

	if _, err := store.Save(header); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	store := newTestStore(t, 1<<20)

	for _, key := range []string{"", "../etc/passwd", "a/b.txt", ".."} {
		if _, err := store.Path(key); err == nil {
			t.Fatalf("key %q: expected error", key)
		}
	}
}

func TestRemoveMissingFileIsNotAnError(t *testing.T) {
	store := newTestStore(t, 1<<20)
	if err := store.Remove("never-stored.txt"); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
}

func TestExists(t *testing.T) {
	store := newTestStore(t, 1<<20)
	header := makeFileHeader(t, "note.txt", []byte("hi"))

	key, err := store.Save(header)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !store.Exists(key) {
		t.Fatal("expected stored file to exist")
	}
	if err := store.Remove(key); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if store.Exists(key) {
		t.Fatal("expected file gone after remove")
	}
}
