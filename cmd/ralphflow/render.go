package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/soochol/ralphflow/internal/diagram"
	"github.com/soochol/ralphflow/internal/reveal"
	"github.com/soochol/ralphflow/internal/services"
)

// render writes a single frame. --step N renders the frame reached by
// advancing to N, so the last visible edge is highlighted; --op overrides how
// the step was reached.
func render(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	loadChart := chartFlag(fs)
	step := fs.Int("step", -1, "step to render (default: all steps)")
	opName := fs.String("op", "next", "transition that reached the step: next, previous, reset or show-all")
	format := fs.String("format", "mermaid", "output format: mermaid, svg, png or dot")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := loadChart()
	if err != nil {
		return err
	}
	op, err := services.ParseOp(*opName)
	if err != nil {
		return err
	}
	state := reveal.ViewState{Step: *step, Op: op}
	if *step < 0 {
		state = reveal.ShowAll(c.Len())
	}

	var renderErr error
	ctrl := reveal.NewController(c, reveal.SurfaceFunc(func(f reveal.Frame) {
		renderErr = writeFrame(f, *format, out)
	}))
	ctrl.Restore(state)
	return renderErr
}

func writeFrame(f reveal.Frame, format string, out io.Writer) error {
	if format == "mermaid" || format == "mmd" {
		_, err := io.WriteString(out, diagram.RenderMermaid(f))
		return err
	}
	switch imgFormat := diagram.ImageFormat(format); imgFormat {
	case diagram.FormatSVG, diagram.FormatPNG, diagram.FormatDOT:
		data, err := diagram.Render(context.Background(), f, imgFormat)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}
