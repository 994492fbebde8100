package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// BlobStore holds uploaded binary assets (school logos) outside the
// database and serves them by URL.
type BlobStore interface {
	Save(ctx context.Context, key string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) string
}

// DiskStore is a local-filesystem blob store. Files land under root using
// the key as a relative path; URLs are baseURL + "/" + key and are expected
// to be served by a static file route.
type DiskStore struct {
	root    string
	baseURL string
}

// NewDiskStore creates the root directory if needed.
func NewDiskStore(root, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating blob root %s: %w", root, err)
	}
	return &DiskStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save writes a blob and returns its public URL.
func (d *DiskStore) Save(_ context.Context, key string, data []byte) (string, error) {
	clean, err := d.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(clean), 0o755); err != nil {
		return "", fmt.Errorf("creating blob directory: %w", err)
	}
	if err := os.WriteFile(clean, data, 0o644); err != nil {
		return "", fmt.Errorf("writing blob %s: %w", key, err)
	}
	return d.baseURL + "/" + key, nil
}

// Delete removes a blob. A missing blob returns os.ErrNotExist wrapped.
func (d *DiskStore) Delete(_ context.Context, key string) error {
	clean, err := d.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(clean); err != nil {
		return fmt.Errorf("deleting blob %s: %w", key, err)
	}
	return nil
}

// resolve maps a key onto the root and rejects keys that escape it.
func (d *DiskStore) resolve(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(d.root, filepath.FromSlash(clean)), nil
}

// KeyFromURL recovers the storage key from a URL this store produced.
// Returns "" for URLs it did not produce.
func (d *DiskStore) KeyFromURL(url string) string {
	prefix := d.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}
