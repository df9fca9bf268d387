package repository

import (
	"context"
	"time"

	"github.com/soochol/ralphflow/internal/reveal"
)

// Session is one viewer's walk through a chart.
type Session struct {
	ID        string           `json:"id"`
	Chart     string           `json:"chart"`
	State     reveal.ViewState `json:"state"`
	Seq       int64            `json:"seq"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// SessionRepository stores viewer sessions. View state lives only as long as
// the process; there is no persistent implementation.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	// Update applies fn atomically to the stored session.
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteIdle removes sessions not updated since cutoff.
	DeleteIdle(ctx context.Context, cutoff time.Time) (int, error)
	List(ctx context.Context) ([]*Session, error)
}
