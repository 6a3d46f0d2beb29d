package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	dommedia "example.com/softuni-fest/internal/domain/media"
)

// LocalStore writes images into a directory that is served under PublicPrefix.
type LocalStore struct {
	dir          string
	publicPrefix string
}

func NewLocalStore(dir, publicPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if publicPrefix == "" {
		publicPrefix = "/images"
	}
	return &LocalStore{
		dir:          dir,
		publicPrefix: "/" + strings.Trim(publicPrefix, "/"),
	}, nil
}

func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) PublicPrefix() string { return s.publicPrefix }

func (s *LocalStore) SaveFile(ctx context.Context, img *dommedia.Image) (string, error) {
	ext, err := img.Extension()
	if err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}

	if _, err := io.Copy(f, img.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close image file: %w", err)
	}

	return path.Join(s.publicPrefix, name), nil
}

func (s *LocalStore) DeleteFile(ctx context.Context, p string) error {
	name, err := s.fileName(p)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return dommedia.ErrFileNotFound
		}
		return fmt.Errorf("delete image file: %w", err)
	}
	return nil
}

// fileName maps a public path back to a file inside dir. Paths outside the
// prefix or with directory components are rejected.
func (s *LocalStore) fileName(p string) (string, error) {
	rel, ok := strings.CutPrefix(p, s.publicPrefix+"/")
	if !ok || rel == "" || strings.ContainsAny(rel, `/\`) || rel == "." || rel == ".." {
		return "", fmt.Errorf("%w: %q", dommedia.ErrFileNotFound, p)
	}
	return rel, nil
}
