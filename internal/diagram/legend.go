// Package diagram renders reveal frames for surfaces other than the HTML
// page: Mermaid text and Graphviz images.
package diagram

import "github.com/soochol/ralphflow/internal/chart"

// Swatch is the colour pair used for one category, start and end of the
// gradient the page draws.
type Swatch struct {
	Category chart.Category `json:"category"`
	Label    string         `json:"label"`
	From     string         `json:"from"`
	To       string         `json:"to"`
}

var palette = map[chart.Category]Swatch{
	chart.CategorySetup:    {From: "#3b82f6", To: "#2563eb"},
	chart.CategoryLearning: {From: "#8b5cf6", To: "#7c3aed"},
	chart.CategoryLoop:     {From: "#6b7280", To: "#4b5563"},
	chart.CategoryDecision: {From: "#f59e0b", To: "#d97706"},
	chart.CategoryDone:     {From: "#10b981", To: "#059669"},
}

// Legend returns the category swatches in legend order.
func Legend() []Swatch {
	out := make([]Swatch, 0, len(chart.Categories))
	for _, c := range chart.Categories {
		out = append(out, SwatchFor(c))
	}
	return out
}

func SwatchFor(c chart.Category) Swatch {
	s := palette[c]
	s.Category = c
	s.Label = c.Title()
	return s
}
