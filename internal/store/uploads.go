package store

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Uploads writes incoming media to uniquely named temporary files so
// that concurrent requests never clobber each other, regardless of the
// client-supplied filename.
type Uploads struct {
	dir string
}

// NewUploads creates an upload area at dir, creating it if needed.
func NewUploads(dir string) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Uploads{dir: dir}, nil
}

// Dir returns the upload directory path.
func (u *Uploads) Dir() string {
	return u.dir
}

// SaveMultipart stores an uploaded file under a fresh uuid, keeping
// only the original extension.
func (u *Uploads) SaveMultipart(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	dst := filepath.Join(u.dir, uuid.New().String()+ext)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer out.Close()

	if _, err := out.ReadFrom(src); err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}
	return dst, nil
}
