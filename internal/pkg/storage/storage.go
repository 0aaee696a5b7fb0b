package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidPath  = errors.New("invalid file path")
	ErrFileNotFound = errors.New("file not found")
)

type FileStorage interface {
	// Upload writes the file and returns its storage key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file; a missing file is not an error
	Delete(ctx context.Context, path string) error

	// GetURL returns the public URL of a stored key
	GetURL(path string) string

	Exists(ctx context.Context, path string) (bool, error)
}
