package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalStorage stores snapshots as files in one directory. The directory is
// the only index, so a listing survives restarts.
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

func (s *LocalStorage) Dir() string { return s.baseDir }

func (s *LocalStorage) Save(_ context.Context, name, contentType string, r io.Reader) (*Snapshot, error) {
	fullPath, err := s.path(name)
	if err != nil {
		return nil, err
	}

	// Write to a temp file first so a failed render never leaves half a file.
	tmp, err := os.CreateTemp(s.baseDir, ".snapshot-*")
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("store %s: %w", name, err)
	}

	snap, err := s.stat(name)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		snap.ContentType = contentType
	}
	return snap, nil
}

func (s *LocalStorage) Delete(_ context.Context, name string) error {
	fullPath, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("snapshot %s: %w", name, ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *LocalStorage) List(_ context.Context) ([]Snapshot, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.baseDir, err)
	}
	result := make([]Snapshot, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		snap, err := s.stat(e.Name())
		if err != nil {
			return nil, err
		}
		result = append(result, *snap)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *LocalStorage) stat(name string) (*Snapshot, error) {
	fullPath, err := s.path(name)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("snapshot %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Snapshot{
		Name:        name,
		ContentType: contentType,
		Size:        info.Size(),
		Path:        name,
		CreatedAt:   info.ModTime(),
	}, nil
}

// path rejects names that would escape the storage directory.
func (s *LocalStorage) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid snapshot name %q", name)
	}
	return filepath.Join(s.baseDir, name), nil
}
