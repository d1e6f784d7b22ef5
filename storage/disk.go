package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Disk keeps blobs as plain files in a single uploads directory
type Disk struct {
	dir string
}

func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory, %w", err)
	}

	return &Disk{dir: dir}, nil
}

func (d *Disk) path(key string) string {
	// Keys are generated internally, but never trust them as path segments
	return filepath.Join(d.dir, filepath.Base(key))
}

func (d *Disk) Save(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	f, err := os.Create(d.path(key))
	if err != nil {
		return fmt.Errorf("failed to create blob file, %w", err)
	}

	_, err = io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("failed to write blob file, %w", err)
	}

	return f.Close()
}

func (d *Disk) Open(_ context.Context, key string) (io.ReadCloser, int64, error) {
	f, err := os.Open(d.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, ErrNotFound
		}

		return nil, 0, fmt.Errorf("failed to open blob file, %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to stat blob file, %w", err)
	}

	return f, stat.Size(), nil
}

func (d *Disk) Delete(_ context.Context, key string) error {
	err := os.Remove(d.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}

		return fmt.Errorf("failed to delete blob file, %w", err)
	}

	return nil
}
