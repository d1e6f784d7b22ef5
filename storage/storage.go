// Package storage stores the uploaded blobs. Metadata lives in the
// database, this package only ever sees opaque keys and byte streams
package storage

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/viper"
)

// ErrNotFound is returned when a key has no blob behind it
var ErrNotFound = errors.New("blob not found")

type Storage interface {
	// Save writes the blob under key. size and contentType are declared by
	// the caller and forwarded to backends that want them
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Open returns the blob contents and its size. The caller closes the reader
	Open(ctx context.Context, key string) (io.ReadCloser, int64, error)

	Delete(ctx context.Context, key string) error
}

// New picks the backend configured under storage.type
func New() (Storage, error) {
	switch viper.GetString("storage.type") {
	case "s3":
		return NewS3()
	default:
		return NewDisk(viper.GetString("storage.local_path"))
	}
}
