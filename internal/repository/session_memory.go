package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	memstore "github.com/soochol/ralphflow/internal/repository/memory"
)

// MemorySessionRepository is a thread-safe in-memory SessionRepository.
type MemorySessionRepository struct {
	store *memstore.Store[*Session]
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		store: memstore.New(func(s *Session) string { return s.ID }),
	}
}

func (r *MemorySessionRepository) Create(ctx context.Context, s *Session) error {
	cp := *s
	return r.store.Set(ctx, &cp)
}

func (r *MemorySessionRepository) Get(ctx context.Context, id string) (*Session, error) {
	s, err := r.store.Get(ctx, id)
	if errors.Is(err, memstore.ErrNotFound) {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	cp := *s
	return &cp, nil
}

func (r *MemorySessionRepository) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	s, err := r.store.Update(ctx, id, func(cur *Session) (*Session, error) {
		next := *cur
		if err := fn(&next); err != nil {
			return nil, err
		}
		next.ID = cur.ID
		return &next, nil
	})
	if errors.Is(err, memstore.ErrNotFound) {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	cp := *s
	return &cp, nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); errors.Is(err, memstore.ErrNotFound) {
		return fmt.Errorf("%w: session %s", ErrNotFound, id)
	}
	return nil
}

func (r *MemorySessionRepository) DeleteIdle(ctx context.Context, cutoff time.Time) (int, error) {
	return r.store.DeleteWhere(ctx, func(s *Session) bool {
		return s.UpdatedAt.Before(cutoff)
	}), nil
}

func (r *MemorySessionRepository) List(ctx context.Context) ([]*Session, error) {
	return r.store.All(ctx)
}
