package repository

import (
	"context"
	"log/slog"

	"github.com/soochol/ralphflow/internal/chart"
	"github.com/soochol/ralphflow/internal/db"
)

// ChartDB is the subset of *db.DB the persistent catalog needs.
type ChartDB interface {
	SaveChart(ctx context.Context, c *chart.Chart) error
	GetChart(ctx context.Context, name string) (*db.ChartRow, error)
	ListCharts(ctx context.Context) ([]db.ChartRow, error)
	DeleteChart(ctx context.Context, name string) error
}

var _ ChartDB = (*db.DB)(nil)

// PersistentChartRepository wraps a MemoryChartRepository with a PostgreSQL
// backend. Writes go to both stores (DB failure is logged but non-fatal).
// Reads try memory first, falling back to the database.
type PersistentChartRepository struct {
	mem *MemoryChartRepository
	db  ChartDB
}

func NewPersistentChartRepository(mem *MemoryChartRepository, database ChartDB) *PersistentChartRepository {
	return &PersistentChartRepository{mem: mem, db: database}
}

func (r *PersistentChartRepository) Save(ctx context.Context, c *chart.Chart) error {
	_ = r.mem.Save(ctx, c)
	if err := r.db.SaveChart(ctx, c); err != nil {
		slog.Warn("db save chart failed, in-memory only", "chart", c.Name, "err", err)
	}
	return nil
}

func (r *PersistentChartRepository) Get(ctx context.Context, name string) (*chart.Chart, error) {
	c, err := r.mem.Get(ctx, name)
	if err == nil {
		return c, nil
	}

	row, dbErr := r.db.GetChart(ctx, name)
	if dbErr != nil {
		return nil, err
	}
	_ = r.mem.Save(ctx, &row.Definition)
	return &row.Definition, nil
}

func (r *PersistentChartRepository) List(ctx context.Context) ([]*chart.Chart, error) {
	rows, err := r.db.ListCharts(ctx)
	if err != nil {
		slog.Warn("db list charts failed, falling back to in-memory", "err", err)
		return r.mem.List(ctx)
	}
	// Built-in and file charts only live in memory; merge them in.
	seen := make(map[string]bool, len(rows))
	result := make([]*chart.Chart, 0, len(rows))
	for i := range rows {
		seen[rows[i].Name] = true
		result = append(result, &rows[i].Definition)
	}
	memCharts, _ := r.mem.List(ctx)
	for _, c := range memCharts {
		if !seen[c.Name] {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *PersistentChartRepository) Delete(ctx context.Context, name string) error {
	memErr := r.mem.Delete(ctx, name)
	if err := r.db.DeleteChart(ctx, name); err != nil {
		slog.Warn("db delete chart failed", "chart", name, "err", err)
		return memErr
	}
	return nil
}
