// Package tui is the terminal walkthrough: the same controls as the web page,
// driven from the keyboard.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/soochol/ralphflow/internal/chart"
	"github.com/soochol/ralphflow/internal/diagram"
	"github.com/soochol/ralphflow/internal/reveal"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#60a5fa"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#475569"))
	edgeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	animatedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#60a5fa"))
	keyStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#60a5fa"))
	descStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	boxStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#334155")).
			Padding(0, 1)
)

// Model is a bubbletea model around a reveal.Controller.
type Model struct {
	ctrl     *reveal.Controller
	frame    reveal.Frame
	width    int
	quitting bool
}

// New starts a walkthrough of c at step 0. surface, if non-nil, also receives
// every frame.
func New(c *chart.Chart, surface reveal.Surface) Model {
	ctrl := reveal.NewController(c, surface)
	return Model{ctrl: ctrl, frame: ctrl.Frame()}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Frame is the frame currently on screen.
func (m Model) Frame() reveal.Frame { return m.frame }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "n", "right", " ", "l":
			m.frame = m.ctrl.Advance()
		case "p", "left", "h":
			m.frame = m.ctrl.Retreat()
		case "r":
			m.frame = m.ctrl.Reset()
		case "a":
			m.frame = m.ctrl.ShowAll()
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	f := m.frame

	var b strings.Builder
	b.WriteString(titleStyle.Render(f.Title))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(f.Status()) + " " + progressBar(f.Step, f.Total, 20))
	if id, ok := f.AnimatedEdge(); ok {
		b.WriteString(" " + animatedStyle.Render("new: "+id))
	}
	b.WriteString("\n\n")

	left := m.renderNodes() + "\n" + m.renderEdges()
	if f.Annotation != nil {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", renderAnnotation(*f.Annotation)))
	} else {
		b.WriteString(left)
	}
	b.WriteString("\n\n")
	b.WriteString(renderLegend())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderNodes() string {
	var lines []string
	for _, n := range m.frame.Nodes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(diagram.SwatchFor(n.Category).From))
		lines = append(lines, style.Render("● "+n.Label))
	}
	if hidden := m.frame.Total - len(m.frame.Nodes); hidden > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("○ %d more", hidden)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEdges() string {
	if len(m.frame.Edges) == 0 {
		return mutedStyle.Render("no connections yet")
	}
	var lines []string
	for _, e := range m.frame.Edges {
		arrow := "→"
		if e.LoopBack {
			arrow = "↺"
		}
		line := fmt.Sprintf("%s %s %s", e.Source, arrow, e.Target)
		if e.Label != "" {
			line += " (" + e.Label + ")"
		}
		if e.Animated {
			lines = append(lines, animatedStyle.Render("▶ "+line))
		} else {
			lines = append(lines, edgeStyle.Render("  "+line))
		}
	}
	return strings.Join(lines, "\n")
}

func renderAnnotation(a chart.Annotation) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(a.Title))
	for _, line := range a.Content {
		b.WriteString("\n• " + line)
	}
	return boxStyle.Width(48).Render(b.String())
}

func renderLegend() string {
	var parts []string
	for _, s := range diagram.Legend() {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(s.From)).Render("■")
		parts = append(parts, swatch+" "+s.Label)
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	hints := []string{
		keyStyle.Render("n/→/space") + descStyle.Render(" next"),
		keyStyle.Render("p/←") + descStyle.Render(" previous"),
		keyStyle.Render("r") + descStyle.Render(" reset"),
		keyStyle.Render("a") + descStyle.Render(" show all"),
		keyStyle.Render("q") + descStyle.Render(" quit"),
	}
	return strings.Join(hints, mutedStyle.Render(" │ "))
}

func progressBar(step, total, width int) string {
	filled := 0
	if total > 0 {
		filled = step * width / total
	}
	return animatedStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
}
