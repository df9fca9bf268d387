package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/soochol/ralphflow/internal/chart"
	"github.com/soochol/ralphflow/internal/events"
	"github.com/soochol/ralphflow/internal/repository"
	"github.com/soochol/ralphflow/internal/reveal"
)

// ErrUnknownOp is returned for a control name other than next, previous,
// reset or show-all.
var ErrUnknownOp = errors.New("unknown operation")

// ParseOp maps a control name (as used in URLs and key bindings) to its
// transition.
func ParseOp(name string) (reveal.Op, error) {
	switch name {
	case "next", "advance":
		return reveal.OpAdvance, nil
	case "previous", "prev", "retreat":
		return reveal.OpRetreat, nil
	case "reset":
		return reveal.OpReset, nil
	case "show-all", "show_all", "all":
		return reveal.OpShowAll, nil
	}
	return reveal.OpNone, fmt.Errorf("%w: %q", ErrUnknownOp, name)
}

// View is a session together with its current frame.
type View struct {
	Session *repository.Session `json:"session"`
	Frame   reveal.Frame        `json:"frame"`
}

// ViewerService owns viewer sessions: each session walks one chart from the
// catalog, and every state change is published on the frame bus.
type ViewerService struct {
	charts   repository.ChartRepository
	sessions repository.SessionRepository
	bus      *events.Bus
	now      func() time.Time
}

func NewViewerService(charts repository.ChartRepository, sessions repository.SessionRepository, bus *events.Bus) *ViewerService {
	return &ViewerService{
		charts:   charts,
		sessions: sessions,
		bus:      bus,
		now:      time.Now,
	}
}

// Open starts a session on chartName at step 0.
func (s *ViewerService) Open(ctx context.Context, chartName string) (*View, error) {
	c, err := s.charts.Get(ctx, chartName)
	if err != nil {
		return nil, err
	}
	now := s.now()
	sess := &repository.Session{
		ID:        uuid.NewString(),
		Chart:     c.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	slog.Debug("viewer session opened", "session", sess.ID, "chart", c.Name)
	return &View{Session: sess, Frame: reveal.Project(c, sess.State)}, nil
}

// Get returns a session's current frame without changing it.
func (s *ViewerService) Get(ctx context.Context, id string) (*View, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := s.charts.Get(ctx, sess.Chart)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	return &View{Session: sess, Frame: reveal.Project(c, sess.State)}, nil
}

// Apply runs op against the session's state and publishes the new frame.
// Boundary ops (next at N, previous at 0) succeed without changing state.
func (s *ViewerService) Apply(ctx context.Context, id string, op reveal.Op) (*View, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := s.charts.Get(ctx, sess.Chart)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}

	sess, err = s.sessions.Update(ctx, id, func(cur *repository.Session) error {
		// The chart may have been replaced by a shorter one since the last op.
		next, ok := reveal.Apply(cur.State.Clamp(c.Len()), op, c.Len())
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownOp, op)
		}
		cur.State = next
		cur.Seq++
		cur.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	f := reveal.Project(c, sess.State)
	s.bus.Publish(events.FrameEvent{
		SessionID: sess.ID,
		Seq:       sess.Seq,
		Op:        op,
		Frame:     f,
		Timestamp: sess.UpdatedAt,
	})
	return &View{Session: sess, Frame: f}, nil
}

// Sessions lists the open sessions ordered by id.
func (s *ViewerService) Sessions(ctx context.Context) ([]*repository.Session, error) {
	return s.sessions.List(ctx)
}

// Close deletes a session.
func (s *ViewerService) Close(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

// Watch streams frame events of one session until ctx is done.
func (s *ViewerService) Watch(ctx context.Context, id string) <-chan events.FrameEvent {
	return s.bus.Channel(ctx, id, 16)
}

// Charts lists the catalog.
func (s *ViewerService) Charts(ctx context.Context) ([]*chart.Chart, error) {
	return s.charts.List(ctx)
}

// Chart returns one catalog entry.
func (s *ViewerService) Chart(ctx context.Context, name string) (*chart.Chart, error) {
	return s.charts.Get(ctx, name)
}

// AddChart validates and stores a chart in the catalog.
func (s *ViewerService) AddChart(ctx context.Context, c *chart.Chart) error {
	if err := chart.Validate(c); err != nil {
		return err
	}
	return s.charts.Save(ctx, c)
}

// RemoveChart deletes a chart from the catalog. Sessions still walking it
// fail with repository.ErrNotFound from then on.
func (s *ViewerService) RemoveChart(ctx context.Context, name string) error {
	return s.charts.Delete(ctx, name)
}
