package chart

import (
	"errors"
	"fmt"

	"github.com/soochol/ralphflow/internal/dag"
)

// ErrInvalid is wrapped by every structural or schema validation failure.
var ErrInvalid = errors.New("invalid chart")

// Validate checks the structural rules a chart must satisfy before it can be
// walked: unique ids, known edge endpoints, an acyclic forward graph once
// loop-back edges are set aside, and annotation keys within 1..N.
func Validate(c *Chart) error {
	if c == nil {
		return fmt.Errorf("%w: chart is nil", ErrInvalid)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if len(c.Nodes) == 0 {
		return fmt.Errorf("%w: %s has no nodes", ErrInvalid, c.Name)
	}

	ids := make([]string, len(c.Nodes))
	for i, n := range c.Nodes {
		if n.ID == "" {
			return fmt.Errorf("%w: node %d has no id", ErrInvalid, i)
		}
		if !n.Category.Valid() {
			return fmt.Errorf("%w: node %s has unknown category %q", ErrInvalid, n.ID, n.Category)
		}
		ids[i] = n.ID
	}

	seen := make(map[string]bool, len(c.Edges))
	links := make([]dag.Link, len(c.Edges))
	for i, e := range c.Edges {
		if e.ID == "" {
			return fmt.Errorf("%w: edge %d has no id", ErrInvalid, i)
		}
		if seen[e.ID] {
			return fmt.Errorf("%w: duplicate edge ID: %s", ErrInvalid, e.ID)
		}
		seen[e.ID] = true
		links[i] = dag.Link{From: e.Source, To: e.Target, Back: e.LoopBack}
	}

	if _, err := dag.Build(ids, links); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	for step := range c.Annotations {
		if step < 1 || step > len(c.Nodes) {
			return fmt.Errorf("%w: annotation for step %d outside 1..%d", ErrInvalid, step, len(c.Nodes))
		}
	}
	return nil
}

// LoopBack is a marked back-edge together with its endpoints and the step
// at which it first becomes visible.
type LoopBack struct {
	Edge Edge
	From Node
	To   Node
	Step int
}

// Structure is the forward shape of a chart with its loop-backs set aside.
type Structure struct {
	Order     []string // forward topological order
	Roots     []string
	LoopBacks []LoopBack
}

// Analyze orders the forward graph of c and resolves its loop-back edges.
func Analyze(c *Chart) (*Structure, error) {
	ids := make([]string, len(c.Nodes))
	for i, n := range c.Nodes {
		ids[i] = n.ID
	}
	links := make([]dag.Link, len(c.Edges))
	for i, e := range c.Edges {
		links[i] = dag.Link{From: e.Source, To: e.Target, Back: e.LoopBack}
	}
	d, err := dag.Build(ids, links)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	s := &Structure{Order: d.TopologicalOrder(), Roots: d.Roots()}
	for _, l := range d.BackEdges() {
		lb := LoopBack{Step: max(c.StepOf(l.From), c.StepOf(l.To))}
		lb.From, _ = c.Node(l.From)
		lb.To, _ = c.Node(l.To)
		for _, e := range c.Edges {
			if e.LoopBack && e.Source == l.From && e.Target == l.To {
				lb.Edge = e
				break
			}
		}
		s.LoopBacks = append(s.LoopBacks, lb)
	}
	return s, nil
}
