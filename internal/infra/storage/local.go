// Package storage persists uploaded quote documents on local disk and maps
// them to the public /uploads/quotes/ URL space.
package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"vantage-backend/internal/pkg/config"
	"vantage-backend/internal/pkg/errs"
)

const publicPrefix = "/uploads/quotes/"

type LocalFileStore struct {
	dir string
}

func NewLocalFileStore(cfg config.StorageConfig) (*LocalFileStore, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, errs.Wrap(err, "failed to create upload directory")
	}
	return &LocalFileStore{dir: cfg.UploadDir}, nil
}

// Save writes the content under the given name and returns the public URL
// it will be served from. The name is flattened to its base to keep writes
// inside the upload directory.
func (s *LocalFileStore) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	name := sanitizeFilename(filename)
	if name == "" {
		return "", errs.New("invalid filename")
	}

	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", errs.Wrap(err, "failed to create file")
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return "", errs.Wrap(err, "failed to write file")
	}
	return publicPrefix + name, nil
}

// Resolve maps a requested public filename back to a path inside the upload
// directory, refusing anything that walks out of it.
func (s *LocalFileStore) Resolve(filename string) (string, error) {
	name := sanitizeFilename(filename)
	if name == "" {
		return "", errs.New("invalid filename")
	}
	return filepath.Join(s.dir, name), nil
}

func sanitizeFilename(filename string) string {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "." || name == ".." || name == "/" || strings.ContainsAny(name, "\\") {
		return ""
	}
	return name
}
