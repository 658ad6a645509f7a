package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage abstracts where uploaded files (selfies, avatars) live.
// The local implementation serves them from disk; a remote one would
// return signed URLs honoring the expiry.
type FileStorage interface {
	// Upload stores the file under path and returns the stored key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download opens the stored file for reading.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// GetURL returns a URL clients can fetch the file from.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// Exists reports whether a file is stored under path.
	Exists(ctx context.Context, path string) (bool, error)
}
