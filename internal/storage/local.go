package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/nira-system/backend/internal/config"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type LocalStore struct {
	baseDir    string
	publicBase string
}

func NewLocalStore(cfg config.Uploads) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create uploads dir")
	}

	return &LocalStore{
		baseDir:    cfg.Dir,
		publicBase: cfg.PublicBase,
	}, nil
}

// Save writes src under baseDir/subdir with a generated unique name and
// returns the public reference path stored on the citizen record.
func (s *LocalStore) Save(ctx context.Context, subdir string, ext string, src io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create subdir")
	}

	filename := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", errors.Wrap(err, "create file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", errors.Wrap(err, "write file")
	}

	return filepath.ToSlash(filepath.Join(s.publicBase, subdir, filename)), nil
}
