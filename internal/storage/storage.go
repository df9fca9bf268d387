// Package storage keeps exported renderings of a walkthrough, one file per
// frame.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrNotFound = errors.New("snapshot not found")

// Snapshot describes one stored rendering.
type Snapshot struct {
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Path        string    `json:"path"`
	CreatedAt   time.Time `json:"created_at"`
}

// Storage is the interface for snapshot backends.
type Storage interface {
	// Save writes a snapshot under name, replacing any previous one.
	Save(ctx context.Context, name, contentType string, r io.Reader) (*Snapshot, error)
	Delete(ctx context.Context, name string) error
	// List returns the snapshots sorted by name.
	List(ctx context.Context) ([]Snapshot, error)
}
