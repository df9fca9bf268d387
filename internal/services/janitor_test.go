package services

import (
	"context"
	"testing"
	"time"

	"github.com/soochol/ralphflow/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJanitor_SweepEvictsIdleSessions(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemorySessionRepository()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &repository.Session{ID: "stale", UpdatedAt: now.Add(-3 * time.Hour)}))
	require.NoError(t, repo.Create(ctx, &repository.Session{ID: "fresh", UpdatedAt: now.Add(-time.Minute)}))

	j := NewJanitor(repo, 2*time.Hour, time.Minute)
	j.now = func() time.Time { return now }

	n, err := j.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = repo.Get(ctx, "stale")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestJanitor_RunStopsWithContext(t *testing.T) {
	j := NewJanitor(repository.NewMemorySessionRepository(), time.Hour, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not stop")
	}
}
