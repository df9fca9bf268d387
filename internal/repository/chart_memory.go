package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/soochol/ralphflow/internal/chart"
	memstore "github.com/soochol/ralphflow/internal/repository/memory"
)

// MemoryChartRepository is a thread-safe in-memory ChartRepository.
// Charts are immutable once saved; callers replace rather than edit them.
type MemoryChartRepository struct {
	store *memstore.Store[*chart.Chart]
}

// NewMemoryChartRepository creates a catalog holding the given charts.
func NewMemoryChartRepository(seed ...*chart.Chart) *MemoryChartRepository {
	r := &MemoryChartRepository{
		store: memstore.New(func(c *chart.Chart) string { return c.Name }),
	}
	for _, c := range seed {
		_ = r.store.Set(context.Background(), c)
	}
	return r
}

func (r *MemoryChartRepository) Save(ctx context.Context, c *chart.Chart) error {
	return r.store.Set(ctx, c)
}

func (r *MemoryChartRepository) Get(ctx context.Context, name string) (*chart.Chart, error) {
	c, err := r.store.Get(ctx, name)
	if errors.Is(err, memstore.ErrNotFound) {
		return nil, fmt.Errorf("%w: chart %s", ErrNotFound, name)
	}
	return c, err
}

func (r *MemoryChartRepository) List(ctx context.Context) ([]*chart.Chart, error) {
	return r.store.All(ctx)
}

func (r *MemoryChartRepository) Delete(ctx context.Context, name string) error {
	if err := r.store.Delete(ctx, name); errors.Is(err, memstore.ErrNotFound) {
		return fmt.Errorf("%w: chart %s", ErrNotFound, name)
	}
	return nil
}
