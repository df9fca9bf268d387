// Package chart holds the pre-authored flowchart tables (nodes, edges and
// per-step annotations) that the reveal controller walks through.
package chart

import "strings"

type Category string

const (
	CategorySetup    Category = "setup"
	CategoryLearning Category = "learning"
	CategoryLoop     Category = "loop"
	CategoryDecision Category = "decision"
	CategoryDone     Category = "done"
)

// Categories lists every category in legend order.
var Categories = []Category{
	CategorySetup,
	CategoryLearning,
	CategoryLoop,
	CategoryDecision,
	CategoryDone,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Title returns the legend caption, e.g. "Setup".
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Label    string   `json:"label" yaml:"label"`
	Position Position `json:"position" yaml:"position"`
	Category Category `json:"category" yaml:"category"`
}

type Edge struct {
	ID       string `json:"id" yaml:"id"`
	Source   string `json:"source" yaml:"source"`
	Target   string `json:"target" yaml:"target"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Animated bool   `json:"animated,omitempty" yaml:"animated,omitempty"`
	LoopBack bool   `json:"loop_back,omitempty" yaml:"loop_back,omitempty"`
}

type Annotation struct {
	Title   string   `json:"title" yaml:"title"`
	Content []string `json:"content" yaml:"content"`
}

// Chart is an ordered, immutable flowchart. Node order is the reveal order.
type Chart struct {
	Name        string             `json:"name" yaml:"name"`
	Title       string             `json:"title" yaml:"title"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Nodes       []Node             `json:"nodes" yaml:"nodes"`
	Edges       []Edge             `json:"edges" yaml:"edges"`
	Annotations map[int]Annotation `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// Len returns N, the number of nodes and therefore the largest step.
func (c *Chart) Len() int { return len(c.Nodes) }

// AnnotationFor looks up the annotation shown at step. Step 0 and missing
// entries report false.
func (c *Chart) AnnotationFor(step int) (Annotation, bool) {
	if step <= 0 {
		return Annotation{}, false
	}
	a, ok := c.Annotations[step]
	return a, ok
}

// Node returns the node with the given id.
func (c *Chart) Node(id string) (Node, bool) {
	for _, n := range c.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// StepOf returns the 1-based step at which node id is revealed, or 0.
func (c *Chart) StepOf(id string) int {
	for i, n := range c.Nodes {
		if n.ID == id {
			return i + 1
		}
	}
	return 0
}
