package api

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/soochol/ralphflow/internal/chart"
	"github.com/soochol/ralphflow/internal/diagram"
	"github.com/soochol/ralphflow/internal/reveal"
	"github.com/soochol/ralphflow/internal/services"
)

// Node box size on the canvas. Authored positions are the top-left corner.
const (
	nodeWidth  = 240
	nodeHeight = 52
	canvasPad  = 60
)

type pageNode struct {
	chart.Node
	Fill string
}

type pageEdge struct {
	chart.Edge
	Path   string
	LabelX int
	LabelY int
}

type pageData struct {
	SessionID  string
	Seq        int64
	Frame      reveal.Frame
	Status     string
	ViewBox    string
	Width      int
	Height     int
	NodeWidth  int
	NodeHeight int
	Nodes      []pageNode
	Edges      []pageEdge
	Legend     []diagram.Swatch
}

func parsePage() *template.Template {
	return template.Must(template.New("view.html").ParseFS(templates, "templates/view.html"))
}

// index opens a session on the default chart.
// GET /
func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	s.openAndRedirect(w, r, s.defaultChart)
}

// GET /charts/{name}
func (s *Server) openChart(w http.ResponseWriter, r *http.Request) {
	s.openAndRedirect(w, r, chi.URLParam(r, "name"))
}

func (s *Server) openAndRedirect(w http.ResponseWriter, r *http.Request, name string) {
	v, err := s.viewer.Open(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	http.Redirect(w, r, "/view/"+v.Session.ID, http.StatusSeeOther)
}

// GET /view/{id}
func (s *Server) viewPage(w http.ResponseWriter, r *http.Request) {
	v, err := s.viewer.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	c, err := s.viewer.Chart(r.Context(), v.Session.Chart)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, buildPage(c, v)); err != nil {
		writeError(w, fmt.Errorf("render page: %w", err))
	}
}

// viewOp applies a control from the page form and sends the browser back.
// POST /view/{id}/{op}
func (s *Server) viewOp(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	op, err := services.ParseOp(chi.URLParam(r, "op"))
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := s.viewer.Apply(r.Context(), id, op); err != nil {
		writeError(w, err)
		return
	}
	http.Redirect(w, r, "/view/"+id, http.StatusSeeOther)
}

// buildPage lays the frame out on a canvas sized for the whole chart, so the
// viewport does not jump as nodes appear.
func buildPage(c *chart.Chart, v *services.View) pageData {
	minX, minY, maxX, maxY := 0, 0, 0, 0
	for i, n := range c.Nodes {
		x, y := n.Position.X, n.Position.Y
		if i == 0 || x < minX {
			minX = x
		}
		if i == 0 || y < minY {
			minY = y
		}
		if i == 0 || x+nodeWidth > maxX {
			maxX = x + nodeWidth
		}
		if i == 0 || y+nodeHeight > maxY {
			maxY = y + nodeHeight
		}
	}
	minX -= canvasPad
	minY -= canvasPad
	maxX += canvasPad
	maxY += canvasPad

	p := pageData{
		SessionID:  v.Session.ID,
		Seq:        v.Session.Seq,
		Frame:      v.Frame,
		Status:     v.Frame.Status(),
		ViewBox:    fmt.Sprintf("%d %d %d %d", minX, minY, maxX-minX, maxY-minY),
		Width:      maxX - minX,
		Height:     maxY - minY,
		NodeWidth:  nodeWidth,
		NodeHeight: nodeHeight,
		Legend:     diagram.Legend(),
	}

	pos := make(map[string]chart.Position, len(v.Frame.Nodes))
	for _, n := range v.Frame.Nodes {
		pos[n.ID] = n.Position
		p.Nodes = append(p.Nodes, pageNode{Node: n, Fill: "url(#grad-" + string(n.Category) + ")"})
	}
	for _, e := range v.Frame.Edges {
		p.Edges = append(p.Edges, layoutEdge(e, pos[e.Source], pos[e.Target], minX))
	}
	return p
}

// layoutEdge routes an edge between two node boxes. Loop-back edges take a
// stepped route around the left of the chart.
func layoutEdge(e chart.Edge, src, dst chart.Position, left int) pageEdge {
	pe := pageEdge{Edge: e}
	switch {
	case e.LoopBack:
		x1, y1 := src.X, src.Y+nodeHeight/2
		x2, y2 := dst.X, dst.Y+nodeHeight/2
		lane := min(x1, x2) - canvasPad/2
		if lane < left {
			lane = left
		}
		pe.Path = fmt.Sprintf("M %d %d H %d V %d H %d", x1, y1, lane, y2, x2)
		pe.LabelX, pe.LabelY = lane, (y1+y2)/2
	case dst.Y >= src.Y+nodeHeight:
		x1, y1 := src.X+nodeWidth/2, src.Y+nodeHeight
		x2, y2 := dst.X+nodeWidth/2, dst.Y
		mid := (y1 + y2) / 2
		pe.Path = fmt.Sprintf("M %d %d V %d H %d V %d", x1, y1, mid, x2, y2)
		pe.LabelX, pe.LabelY = (x1+x2)/2, mid
	case dst.X >= src.X+nodeWidth:
		x1, y1 := src.X+nodeWidth, src.Y+nodeHeight/2
		x2, y2 := dst.X, dst.Y+nodeHeight/2
		mid := (x1 + x2) / 2
		pe.Path = fmt.Sprintf("M %d %d H %d V %d H %d", x1, y1, mid, y2, x2)
		pe.LabelX, pe.LabelY = mid, (y1+y2)/2
	default:
		x1, y1 := src.X+nodeWidth/2, src.Y+nodeHeight/2
		x2, y2 := dst.X+nodeWidth/2, dst.Y+nodeHeight/2
		pe.Path = fmt.Sprintf("M %d %d L %d %d", x1, y1, x2, y2)
		pe.LabelX, pe.LabelY = (x1+x2)/2, (y1+y2)/2
	}
	return pe
}
