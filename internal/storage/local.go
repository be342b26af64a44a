package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ============================================================================
// Local Directory Blob Store
// ============================================================================
//
// Containers are directories under a root; blobs are files. Deployments that
// front real blob storage swap this implementation behind the Store
// interface.
// ============================================================================

// LocalStore is a filesystem-backed Store.
type LocalStore struct {
	Root string
}

// NewLocalStore creates a store rooted at root, creating it if needed.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root: %w", err)
	}
	return &LocalStore{Root: abs}, nil
}

// Get reads a blob.
func (s *LocalStore) Get(ctx context.Context, container string, name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(container, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s/%s: %w", container, name, err)
	}
	return data, nil
}

// Put writes a blob, overwriting any existing one. The write goes through a
// uniquely named temp file and a rename so readers never observe a partial
// blob.
func (s *LocalStore) Put(ctx context.Context, container string, name string, data []byte) error {
	dir := filepath.Join(s.Root, container)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create container %s: %w", container, err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp", uuid.NewString()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write blob %s/%s: %w", container, name, err)
	}
	if err := os.Rename(tmp, s.path(container, name)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize blob %s/%s: %w", container, name, err)
	}

	log.Tracef("Put: %s/%s (%d bytes)", container, name, len(data))
	return nil
}

// URL returns a file URL for the blob. The blob must exist.
func (s *LocalStore) URL(container string, name string) (string, error) {
	p := s.path(container, name)
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("blob %s/%s not found: %w", container, name, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(p)}
	return u.String(), nil
}

// List returns the blob names in a container, sorted. A missing container is
// an empty container.
func (s *LocalStore) List(ctx context.Context, container string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.Root, container))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list container %s: %w", container, err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (s *LocalStore) path(container string, name string) string {
	return filepath.Join(s.Root, container, filepath.Base(name))
}
