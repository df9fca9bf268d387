package reveal

import (
	"fmt"

	"github.com/soochol/ralphflow/internal/chart"
)

// Frame is the full render input for one state: every visible node and edge,
// re-supplied on each change rather than as a diff.
type Frame struct {
	Chart      string            `json:"chart"`
	Title      string            `json:"title"`
	Step       int               `json:"step"`
	Total      int               `json:"total"`
	Nodes      []chart.Node      `json:"nodes"`
	Edges      []chart.Edge      `json:"edges"`
	Annotation *chart.Annotation `json:"annotation,omitempty"`
	CanRetreat bool              `json:"can_retreat"`
	CanAdvance bool              `json:"can_advance"`
}

// Status is the read-only "Step x of N" line.
func (f Frame) Status() string {
	return fmt.Sprintf("Step %d of %d", f.Step, f.Total)
}

// AnimatedEdge returns the id of the highlighted edge, if any.
func (f Frame) AnimatedEdge() (string, bool) {
	for _, e := range f.Edges {
		if e.Animated {
			return e.ID, true
		}
	}
	return "", false
}

// Project derives the frame for s. Visible nodes are the first s.Step nodes;
// visible edges keep chart order and require both endpoints visible. After an
// advance the last visible edge is the only animated one; every other op
// keeps the authored flags.
func Project(c *chart.Chart, s ViewState) Frame {
	n := c.Len()
	s = s.Clamp(n)

	f := Frame{
		Chart:      c.Name,
		Title:      c.Title,
		Step:       s.Step,
		Total:      n,
		CanRetreat: s.Step > 0,
		CanAdvance: s.Step < n,
	}

	f.Nodes = make([]chart.Node, s.Step)
	copy(f.Nodes, c.Nodes[:s.Step])

	visible := make(map[string]bool, s.Step)
	for _, node := range f.Nodes {
		visible[node.ID] = true
	}
	f.Edges = make([]chart.Edge, 0, len(c.Edges))
	for _, e := range c.Edges {
		if visible[e.Source] && visible[e.Target] {
			f.Edges = append(f.Edges, e)
		}
	}

	if s.Op == OpAdvance && len(f.Edges) > 0 {
		last := len(f.Edges) - 1
		for i := range f.Edges {
			f.Edges[i].Animated = i == last
		}
	}

	if a, ok := c.AnnotationFor(s.Step); ok {
		a.Content = append([]string(nil), a.Content...)
		f.Annotation = &a
	}
	return f
}
