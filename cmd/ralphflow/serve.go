package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/soochol/ralphflow/internal/api"
	"github.com/soochol/ralphflow/internal/chart"
	"github.com/soochol/ralphflow/internal/config"
	"github.com/soochol/ralphflow/internal/db"
	"github.com/soochol/ralphflow/internal/events"
	"github.com/soochol/ralphflow/internal/repository"
	"github.com/soochol/ralphflow/internal/services"
)

func serve() error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}
	slog.SetDefault(cfg.Logger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := []*chart.Chart{chart.Ralph()}
	for _, path := range cfg.Charts.Files {
		c, err := chart.Load(path)
		if err != nil {
			return err
		}
		slog.Info("loaded chart", "name", c.Name, "path", path, "steps", c.Len())
		seed = append(seed, c)
	}
	memCharts := repository.NewMemoryChartRepository(seed...)

	var charts repository.ChartRepository = memCharts
	var database *db.DB
	if cfg.Database.URL != "" {
		database, err = db.New(ctx, cfg.Database.URL)
		if err != nil {
			slog.Warn("database unavailable, chart catalog is in-memory only", "err", err)
		} else {
			defer database.Close()
			if err := database.Migrate(ctx); err != nil {
				return err
			}
			persistent := repository.NewPersistentChartRepository(memCharts, database)
			for _, c := range seed {
				if err := persistent.Save(ctx, c); err != nil {
					return err
				}
			}
			charts = persistent
			slog.Info("chart catalog backed by database")
		}
	}

	if _, err := charts.Get(ctx, cfg.Charts.Default); err != nil {
		return fmt.Errorf("default chart %q: %w", cfg.Charts.Default, err)
	}

	sessions := repository.NewMemorySessionRepository()
	viewer := services.NewViewerService(charts, sessions, events.NewBus())
	janitor := services.NewJanitor(sessions, cfg.Sessions.TTL, cfg.Sessions.SweepInterval)
	srv := api.NewServer(viewer, cfg.Charts.Default)
	if database != nil {
		srv.AddHealthCheck("database", database.Ping)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting ralphflow server", "addr", cfg.Addr(), "chart", cfg.Charts.Default)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return janitor.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("shutting down server")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
