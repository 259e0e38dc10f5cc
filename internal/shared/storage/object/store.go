package object

import (
	"context"
	"io"
)

// Store defines the contract for saving and retrieving binary objects.
// Keys are relative, filesystem-safe paths scoped per user.
type Store interface {
	Save(ctx context.Context, userID string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	// Path resolves a storage key to an absolute path on disk. The page
	// rasterizer hands this path to an external process.
	Path(storageKey string) (string, error)
	Remove(ctx context.Context, storageKey string) error
	// RemoveAll deletes every object under the given key prefix.
	RemoveAll(ctx context.Context, keyPrefix string) error
}
