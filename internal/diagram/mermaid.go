package diagram

import (
	"fmt"
	"strings"

	"github.com/soochol/ralphflow/internal/chart"
	"github.com/soochol/ralphflow/internal/reveal"
)

// RenderMermaid renders the visible part of a frame as a Mermaid flowchart.
func RenderMermaid(f reveal.Frame) string {
	var b strings.Builder

	b.WriteString("graph TD\n")
	if f.Title != "" {
		fmt.Fprintf(&b, "    %%%% %s\n", f.Title)
	}
	fmt.Fprintf(&b, "    %%%% %s\n", f.Status())

	for _, n := range f.Nodes {
		fmt.Fprintf(&b, "    %s\n", mermaidNodeDef(n))
	}

	for _, e := range f.Edges {
		arrow := "-->"
		switch {
		case e.Animated:
			arrow = "==>"
		case e.LoopBack:
			arrow = "-.->"
		}
		label := ""
		if e.Label != "" {
			label = fmt.Sprintf("|%s|", mermaidEscape(e.Label))
		}
		fmt.Fprintf(&b, "    %s %s%s %s\n", mermaidSafeID(e.Source), arrow, label, mermaidSafeID(e.Target))
	}

	b.WriteString("\n")
	for _, s := range Legend() {
		fmt.Fprintf(&b, "    classDef %s fill:%s,stroke:%s,color:#fff\n", s.Category, s.From, s.To)
	}
	for _, n := range f.Nodes {
		fmt.Fprintf(&b, "    class %s %s\n", mermaidSafeID(n.ID), n.Category)
	}
	return b.String()
}

// mermaidNodeDef returns a node definition with a shape per category.
func mermaidNodeDef(n chart.Node) string {
	id := mermaidSafeID(n.ID)
	label := mermaidEscape(n.Label)
	switch n.Category {
	case chart.CategoryDecision:
		return fmt.Sprintf("%s{\"%s\"}", id, label)
	case chart.CategoryDone:
		return fmt.Sprintf("%s([\"%s\"])", id, label)
	default:
		return fmt.Sprintf("%s[\"%s\"]", id, label)
	}
}

// mermaidEscape replaces characters that end a quoted label or an edge
// label with Mermaid entity codes.
func mermaidEscape(s string) string {
	return strings.NewReplacer(`"`, "#quot;", "|", "#124;").Replace(s)
}

// mermaidSafeID prefixes ids so numeric ids stay valid identifiers.
func mermaidSafeID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", " ", "_")
	return "n" + r.Replace(id)
}
