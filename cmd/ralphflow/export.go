package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/soochol/ralphflow/internal/reveal"
	"github.com/soochol/ralphflow/internal/storage"
)

// export walks a chart from step 0 to N and stores one rendering per step,
// e.g. for slides.
func export(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	loadChart := chartFlag(fs)
	dir := fs.String("dir", "snapshots", "output directory")
	format := fs.String("format", "svg", "output format: mermaid, svg, png or dot")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := loadChart()
	if err != nil {
		return err
	}
	store, err := storage.NewLocalStorage(*dir)
	if err != nil {
		return err
	}

	ext := *format
	if ext == "mermaid" {
		ext = "mmd"
	}
	ctx := context.Background()

	// A previous export of a longer chart would leave extra steps behind.
	if err := clearSnapshots(ctx, store, c.Name+"-step-"); err != nil {
		return err
	}

	var saveErr error
	ctrl := reveal.NewController(c, reveal.SurfaceFunc(func(f reveal.Frame) {
		if saveErr != nil {
			return
		}
		var buf bytes.Buffer
		if err := writeFrame(f, *format, &buf); err != nil {
			saveErr = err
			return
		}
		name := fmt.Sprintf("%s-step-%02d.%s", c.Name, f.Step, ext)
		if _, err := store.Save(ctx, name, "", &buf); err != nil {
			saveErr = err
		}
	}))

	ctrl.Reset()
	for ctrl.State().Step < c.Len() && saveErr == nil {
		ctrl.Advance()
	}
	if saveErr != nil {
		return saveErr
	}

	snaps, err := store.List(ctx)
	if err != nil {
		return err
	}
	for _, s := range snaps {
		fmt.Fprintf(out, "%s\t%d\n", s.Name, s.Size)
	}
	slog.Info("exported walkthrough", "chart", c.Name, "dir", store.Dir(), "frames", c.Len()+1)
	return nil
}

func clearSnapshots(ctx context.Context, store storage.Storage, prefix string) error {
	snaps, err := store.List(ctx)
	if err != nil {
		return err
	}
	for _, s := range snaps {
		if !strings.HasPrefix(s.Name, prefix) {
			continue
		}
		if err := store.Delete(ctx, s.Name); err != nil {
			return err
		}
	}
	return nil
}
