package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage persists uploaded photos on the local filesystem and hands
// back the public URL path they will be served from. Filenames are random
// so concurrent uploads can never clobber each other.
type LocalStorage struct {
	dir        string
	publicPath string
}

// NewLocal creates the upload directory if it does not exist yet.
func NewLocal(dir string, publicPath string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create dir %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir, publicPath: publicPath}, nil
}

// Save writes the photo bytes under a fresh name, keeping the original
// extension, and returns the public reference.
func (s *LocalStorage) Save(ctx context.Context, originalName string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.New().String() + ext

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", name, err)
	}

	return path.Join(s.publicPath, name), nil
}

// Dir returns the directory uploads are written to, for static file serving.
func (s *LocalStorage) Dir() string {
	return s.dir
}
