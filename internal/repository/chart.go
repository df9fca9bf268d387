// Package repository defines storage for chart definitions and viewer
// sessions.
package repository

import (
	"context"
	"errors"

	"github.com/soochol/ralphflow/internal/chart"
)

// ErrNotFound is returned when a requested chart or session does not exist.
var ErrNotFound = errors.New("not found")

// ChartRepository abstracts the chart catalog so callers don't need to know
// whether charts live in memory, PostgreSQL, or both.
type ChartRepository interface {
	Save(ctx context.Context, c *chart.Chart) error
	Get(ctx context.Context, name string) (*chart.Chart, error)
	List(ctx context.Context) ([]*chart.Chart, error)
	Delete(ctx context.Context, name string) error
}
