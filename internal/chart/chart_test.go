package chart

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRalph_Tables(t *testing.T) {
	c := Ralph()
	require.NoError(t, Validate(c))

	assert.Equal(t, 17, c.Len())
	assert.Len(t, c.Edges, 17)
	for i, n := range c.Nodes {
		assert.Equal(t, i+1, c.StepOf(n.ID), "node %s out of order", n.ID)
	}

	var loopBacks []Edge
	for _, e := range c.Edges {
		assert.Equal(t, "e"+e.Source+"-"+e.Target, e.ID)
		if e.LoopBack {
			loopBacks = append(loopBacks, e)
		}
	}
	require.Len(t, loopBacks, 1)
	assert.Equal(t, "e16-4", loopBacks[0].ID)
	assert.Equal(t, "Yes", loopBacks[0].Label)
}

func TestRalph_ReturnsIndependentCopies(t *testing.T) {
	a := Ralph()
	a.Nodes[0].Label = "mutated"
	a.Annotations[8].Content[0] = "mutated"

	b := Ralph()
	assert.Equal(t, "1. Write PRD (prd.json)", b.Nodes[0].Label)
	assert.Equal(t, "Read prd.json", b.Annotations[8].Content[0])
}

func TestAnnotationFor(t *testing.T) {
	c := Ralph()

	_, ok := c.AnnotationFor(0)
	assert.False(t, ok, "step 0 has no annotation")

	a, ok := c.AnnotationFor(8)
	require.True(t, ok)
	assert.Equal(t, "Pick Next Story", a.Title)
	assert.Len(t, a.Content, 3)

	a, ok = c.AnnotationFor(11)
	require.True(t, ok)
	assert.Equal(t, "Commit Code", a.Title)
	assert.Equal(t, "Co-authored by Claude Sonnet 4.5", a.Content[3])

	_, ok = c.AnnotationFor(18)
	assert.False(t, ok)
}

func TestCategoryTitle(t *testing.T) {
	assert.Equal(t, "Setup", CategorySetup.Title())
	assert.Equal(t, "Decision", CategoryDecision.Title())
	assert.False(t, Category("other").Valid())
}

func TestValidate_Errors(t *testing.T) {
	base := func() *Chart {
		return &Chart{
			Name: "tiny",
			Nodes: []Node{
				{ID: "a", Category: CategorySetup},
				{ID: "b", Category: CategoryLoop},
			},
			Edges: []Edge{{ID: "ea-b", Source: "a", Target: "b"}},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Chart)
	}{
		{"no nodes", func(c *Chart) { c.Nodes = nil; c.Edges = nil }},
		{"no name", func(c *Chart) { c.Name = "" }},
		{"duplicate node", func(c *Chart) { c.Nodes[1].ID = "a"; c.Edges = nil }},
		{"unknown category", func(c *Chart) { c.Nodes[0].Category = "misc" }},
		{"duplicate edge", func(c *Chart) { c.Edges = append(c.Edges, c.Edges[0]) }},
		{"unknown endpoint", func(c *Chart) { c.Edges[0].Target = "z" }},
		{"unmarked cycle", func(c *Chart) {
			c.Edges = append(c.Edges, Edge{ID: "eb-a", Source: "b", Target: "a"})
		}},
		{"annotation out of range", func(c *Chart) {
			c.Annotations = map[int]Annotation{3: {Title: "x"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			assert.ErrorIs(t, Validate(c), ErrInvalid)
		})
	}

	marked := base()
	marked.Edges = append(marked.Edges, Edge{ID: "eb-a", Source: "b", Target: "a", LoopBack: true})
	assert.NoError(t, Validate(marked))
}

func TestAnalyze_Ralph(t *testing.T) {
	s, err := Analyze(Ralph())
	require.NoError(t, err)
	require.Len(t, s.Order, 17)
	assert.Equal(t, "1", s.Order[0])
	assert.Equal(t, "17", s.Order[16])
	assert.Equal(t, []string{"1"}, s.Roots)

	require.Len(t, s.LoopBacks, 1)
	lb := s.LoopBacks[0]
	assert.Equal(t, "e16-4", lb.Edge.ID)
	assert.Equal(t, "More Stories?", lb.From.Label)
	assert.Equal(t, "4. Read Layer 1: Codebase Patterns", lb.To.Label)
	assert.Equal(t, 16, lb.Step)
}

func TestAnalyze_Invalid(t *testing.T) {
	c := Ralph()
	c.Edges[16].LoopBack = false
	_, err := Analyze(c)
	assert.ErrorIs(t, err, ErrInvalid)
}

const tinyYAML = `
name: tiny
title: Tiny loop
nodes:
  - id: a
    label: Start
    category: setup
    position: {x: 0, y: 0}
  - id: b
    label: Work
    category: loop
    position: {x: 0, y: 100}
edges:
  - id: ea-b
    source: a
    target: b
  - id: eb-a
    source: b
    target: a
    label: again
    loop_back: true
annotations:
  1:
    title: Start here
    content: [first line]
`

func TestParse_YAML(t *testing.T) {
	c, err := Parse([]byte(tinyYAML), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "tiny", c.Name)
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Edges[1].LoopBack)
	a, ok := c.AnnotationFor(1)
	require.True(t, ok)
	assert.Equal(t, "Start here", a.Title)
}

func TestParse_YAMLUnknownField(t *testing.T) {
	_, err := Parse([]byte("name: tiny\ncolour: red\nnodes: []\nedges: []\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParse_JSONRoundTripOfRalph(t *testing.T) {
	data, err := json.Marshal(Ralph())
	require.NoError(t, err)

	c, err := Parse(data, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, Ralph(), c)
}

func TestValidateDocument_ReportsLocation(t *testing.T) {
	doc := `{"name":"tiny","nodes":[{"id":"a","label":"A","category":"purple"}],"edges":[]}`
	err := ValidateDocument([]byte(doc))
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "/nodes/0/category")
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.yaml")
	require.NoError(t, os.WriteFile(path, []byte(tinyYAML), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tiny", c.Name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFor("charts/a.JSON"))
	assert.Equal(t, FormatYAML, FormatFor("charts/a.yml"))
	assert.Equal(t, FormatYAML, FormatFor("charts/a"))
}
