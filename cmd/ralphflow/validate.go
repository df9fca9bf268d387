package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/soochol/ralphflow/internal/chart"
)

// validate checks every document and reports each one; the returned error
// summarizes the failures.
func validate(paths []string, out io.Writer) error {
	if len(paths) == 0 {
		return errors.New("validate: no files given")
	}
	var failed []string
	for _, path := range paths {
		c, err := chart.Load(path)
		if err != nil {
			fmt.Fprintf(out, "FAIL %s\n  %v\n", path, err)
			failed = append(failed, path)
			continue
		}
		st, err := chart.Analyze(c)
		if err != nil {
			fmt.Fprintf(out, "FAIL %s\n  %v\n", path, err)
			failed = append(failed, path)
			continue
		}
		fmt.Fprintf(out, "ok   %s (%s, %d steps, order %s)\n", path, c.Name, c.Len(), strings.Join(st.Order, " "))
		fmt.Fprintf(out, "  roots: %s\n", strings.Join(st.Roots, " "))
		for _, lb := range st.LoopBacks {
			fmt.Fprintf(out, "  loop-back %s: %q -> %q from step %d\n", lb.Edge.ID, lb.From.Label, lb.To.Label, lb.Step)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d documents invalid: %s", len(failed), len(paths), strings.Join(failed, ", "))
	}
	return nil
}
