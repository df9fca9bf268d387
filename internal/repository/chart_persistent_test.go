package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/soochol/ralphflow/internal/chart"
	"github.com/soochol/ralphflow/internal/db"
	"github.com/soochol/ralphflow/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFake = errors.New("fake db error")

// stubChartDB is a fake DB that records calls and returns canned data.
type stubChartDB struct {
	rows      map[string]db.ChartRow
	saveErr   error
	listErr   error
	deleteErr error
	saved     []string
}

func newStubChartDB() *stubChartDB {
	return &stubChartDB{rows: map[string]db.ChartRow{}}
}

func (s *stubChartDB) SaveChart(_ context.Context, c *chart.Chart) error {
	s.saved = append(s.saved, c.Name)
	if s.saveErr != nil {
		return s.saveErr
	}
	s.rows[c.Name] = db.ChartRow{Name: c.Name, Title: c.Title, NodeCount: c.Len(), Definition: *c}
	return nil
}

func (s *stubChartDB) GetChart(_ context.Context, name string) (*db.ChartRow, error) {
	row, ok := s.rows[name]
	if !ok {
		return nil, db.ErrChartNotFound
	}
	return &row, nil
}

func (s *stubChartDB) ListCharts(_ context.Context) ([]db.ChartRow, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []db.ChartRow
	for _, r := range s.rows {
		out = append(out, r)
	}
	return out, nil
}

func (s *stubChartDB) DeleteChart(_ context.Context, name string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.rows, name)
	return nil
}

func tinyChart(name string) *chart.Chart {
	return &chart.Chart{
		Name:  name,
		Nodes: []chart.Node{{ID: "a", Category: chart.CategorySetup}},
	}
}

func TestPersistentChart_SaveWritesBoth(t *testing.T) {
	ctx := context.Background()
	stub := newStubChartDB()
	mem := repository.NewMemoryChartRepository()
	repo := repository.NewPersistentChartRepository(mem, stub)

	require.NoError(t, repo.Save(ctx, tinyChart("tiny")))
	assert.Equal(t, []string{"tiny"}, stub.saved)

	got, err := mem.Get(ctx, "tiny")
	require.NoError(t, err)
	assert.Equal(t, "tiny", got.Name)
}

func TestPersistentChart_SaveToleratesDBFailure(t *testing.T) {
	ctx := context.Background()
	stub := newStubChartDB()
	stub.saveErr = errFake
	repo := repository.NewPersistentChartRepository(repository.NewMemoryChartRepository(), stub)

	require.NoError(t, repo.Save(ctx, tinyChart("tiny")))
	got, err := repo.Get(ctx, "tiny")
	require.NoError(t, err)
	assert.Equal(t, "tiny", got.Name)
}

func TestPersistentChart_GetFallsBackToDB(t *testing.T) {
	ctx := context.Background()
	stub := newStubChartDB()
	require.NoError(t, stub.SaveChart(ctx, tinyChart("stored")))
	mem := repository.NewMemoryChartRepository()
	repo := repository.NewPersistentChartRepository(mem, stub)

	got, err := repo.Get(ctx, "stored")
	require.NoError(t, err)
	assert.Equal(t, "stored", got.Name)

	_, err = mem.Get(ctx, "stored")
	assert.NoError(t, err, "db hit should be cached in memory")

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPersistentChart_ListMergesMemoryOnlyCharts(t *testing.T) {
	ctx := context.Background()
	stub := newStubChartDB()
	require.NoError(t, stub.SaveChart(ctx, tinyChart("stored")))
	repo := repository.NewPersistentChartRepository(repository.NewMemoryChartRepository(chart.Ralph()), stub)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	names := map[string]bool{}
	for _, c := range list {
		names[c.Name] = true
	}
	assert.True(t, names["stored"])
	assert.True(t, names[chart.RalphName])
}

func TestPersistentChart_ListFallsBackOnDBError(t *testing.T) {
	stub := newStubChartDB()
	stub.listErr = errFake
	repo := repository.NewPersistentChartRepository(repository.NewMemoryChartRepository(chart.Ralph()), stub)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, chart.RalphName, list[0].Name)
}

func TestPersistentChart_Delete(t *testing.T) {
	ctx := context.Background()
	stub := newStubChartDB()
	repo := repository.NewPersistentChartRepository(repository.NewMemoryChartRepository(), stub)
	require.NoError(t, repo.Save(ctx, tinyChart("tiny")))

	require.NoError(t, repo.Delete(ctx, "tiny"))
	_, err := repo.Get(ctx, "tiny")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	stub.deleteErr = errFake
	assert.ErrorIs(t, repo.Delete(ctx, "never-saved"), repository.ErrNotFound)
}
