package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/soochol/ralphflow/internal/repository"
)

// Janitor periodically evicts viewer sessions that have been idle longer
// than ttl.
type Janitor struct {
	sessions repository.SessionRepository
	ttl      time.Duration
	interval time.Duration
	cron     *cron.Cron
	now      func() time.Time
}

func NewJanitor(sessions repository.SessionRepository, ttl, interval time.Duration) *Janitor {
	return &Janitor{
		sessions: sessions,
		ttl:      ttl,
		interval: interval,
		cron:     cron.New(),
		now:      time.Now,
	}
}

// Sweep deletes idle sessions once and reports how many were removed.
func (j *Janitor) Sweep(ctx context.Context) (int, error) {
	n, err := j.sessions.DeleteIdle(ctx, j.now().Add(-j.ttl))
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}
	if n > 0 {
		slog.Info("janitor: evicted idle sessions", "count", n, "ttl", j.ttl)
	}
	return n, nil
}

// Run schedules Sweep every interval and blocks until ctx is done.
func (j *Janitor) Run(ctx context.Context) error {
	if _, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		if _, err := j.Sweep(ctx); err != nil {
			slog.Warn("janitor: sweep failed", "err", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule janitor: %w", err)
	}
	j.cron.Start()
	slog.Info("janitor: started", "interval", j.interval, "ttl", j.ttl)
	<-ctx.Done()
	<-j.cron.Stop().Done()
	return nil
}
