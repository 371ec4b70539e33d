package storage

import (
	"context"
	"io"
)

// FileStore persists uploaded citizen documents and issued ID cards.
// Implementations own the storage location; the rest of the system only
// keeps the returned reference string.
type FileStore interface {
	Save(ctx context.Context, subdir string, ext string, src io.Reader) (string, error)
}
