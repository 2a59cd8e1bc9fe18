// Package storage is the uploaded-file store backing attachments and
// profile pictures. Files live in a media directory structured by
// owning entity identifier.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store saves and removes uploaded files. Paths returned and accepted
// are relative to the media root so the database never holds absolute
// filesystem paths.
type Store interface {
	Save(ownerDir string, ownerID uuid.UUID, filename string, src io.Reader) (string, error)
	Remove(relPath string) error
	Open(relPath string) (io.ReadCloser, error)
}

type diskStore struct {
	root string
}

func NewDiskStore(root string) (Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &diskStore{root: root}, nil
}

func (s *diskStore) Save(ownerDir string, ownerID uuid.UUID, filename string, src io.Reader) (string, error) {
	// strip any client-supplied directory components
	filename = filepath.Base(filename)

	relDir := filepath.Join(ownerDir, ownerID.String())
	if err := os.MkdirAll(filepath.Join(s.root, relDir), 0o755); err != nil {
		return "", fmt.Errorf("failed to create owner directory: %w", err)
	}

	// prefix with a fresh id so repeated uploads of the same name never collide
	relPath := filepath.Join(relDir, uuid.New().String()+"_"+filename)
	dst, err := os.Create(filepath.Join(s.root, relPath))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filepath.Join(s.root, relPath))
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return filepath.ToSlash(relPath), nil
}

func (s *diskStore) Remove(relPath string) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

func (s *diskStore) Open(relPath string) (io.ReadCloser, error) {
	full, err := s.resolve(relPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// resolve rejects paths that would escape the media root.
func (s *diskStore) resolve(relPath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(relPath))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid media path: %s", relPath)
	}
	return filepath.Join(s.root, clean), nil
}
