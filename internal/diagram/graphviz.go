package diagram

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/soochol/ralphflow/internal/chart"
	"github.com/soochol/ralphflow/internal/reveal"
)

// ImageFormat is a Graphviz output format supported by Render.
type ImageFormat string

const (
	FormatSVG ImageFormat = "svg"
	FormatPNG ImageFormat = "png"
	FormatDOT ImageFormat = "dot"
)

func (f ImageFormat) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	default:
		return "text/vnd.graphviz; charset=utf-8"
	}
}

// Render lays out the visible part of a frame with Graphviz dot.
func Render(ctx context.Context, f reveal.Frame, format ImageFormat) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	case FormatDOT:
		gvFormat = graphviz.XDOT
	default:
		return nil, fmt.Errorf("diagram: unsupported format %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("diagram: create graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.DOT)

	graph, err := gv.Graph()
	if err != nil {
		return nil, fmt.Errorf("diagram: create graph: %w", err)
	}
	defer graph.Close()

	graph.SetRankDir(cgraph.TBRank)
	graph.SetLabel(f.Status())

	gvNodes := make(map[string]*cgraph.Node, len(f.Nodes))
	for _, n := range f.Nodes {
		gvNode, nErr := graph.CreateNodeByName(n.ID)
		if nErr != nil {
			return nil, fmt.Errorf("diagram: create node %s: %w", n.ID, nErr)
		}
		gvNode.SetLabel(n.Label)
		applyNodeStyle(gvNode, n)
		gvNodes[n.ID] = gvNode
	}

	for _, e := range f.Edges {
		from, to := gvNodes[e.Source], gvNodes[e.Target]
		if from == nil || to == nil {
			continue
		}
		gvEdge, eErr := graph.CreateEdgeByName(e.ID, from, to)
		if eErr != nil {
			return nil, fmt.Errorf("diagram: create edge %s: %w", e.ID, eErr)
		}
		if e.Label != "" {
			gvEdge.SetLabel(e.Label)
		}
		switch {
		case e.Animated:
			gvEdge.SetStyle(cgraph.BoldEdgeStyle)
			gvEdge.SetColor("#2563eb")
		case e.LoopBack:
			gvEdge.SetStyle(cgraph.DashedEdgeStyle)
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("diagram: render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// applyNodeStyle fills a node with its category colour.
func applyNodeStyle(gvNode *cgraph.Node, n chart.Node) {
	switch n.Category {
	case chart.CategoryDecision:
		gvNode.SetShape(cgraph.DiamondShape)
	case chart.CategoryDone:
		gvNode.SetShape(cgraph.EllipseShape)
	default:
		gvNode.SetShape(cgraph.BoxShape)
	}
	gvNode.SetStyle(cgraph.FilledNodeStyle)
	gvNode.SetFillColor(SwatchFor(n.Category).From)
	gvNode.SetFontColor("white")
}
