package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/soochol/ralphflow/internal/chart"
)

type chartSummary struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Steps       int    `json:"steps"`
}

// listCharts returns a summary of every chart in the catalog.
// GET /api/charts
func (s *Server) listCharts(w http.ResponseWriter, r *http.Request) {
	charts, err := s.viewer.Charts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]chartSummary, 0, len(charts))
	for _, c := range charts {
		out = append(out, chartSummary{Name: c.Name, Title: c.Title, Description: c.Description, Steps: c.Len()})
	}
	writeJSON(w, http.StatusOK, out)
}

// getChart returns the full chart definition.
// GET /api/charts/{name}
func (s *Server) getChart(w http.ResponseWriter, r *http.Request) {
	c, err := s.viewer.Chart(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// createChart adds a chart document (JSON, or YAML when the content type
// says so) to the catalog.
// POST /api/charts
func (s *Server) createChart(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	format := chart.FormatJSON
	switch r.Header.Get("Content-Type") {
	case "application/yaml", "application/x-yaml", "text/yaml":
		format = chart.FormatYAML
	}
	c, err := chart.Parse(body, format)
	if err != nil {
		if !errors.Is(err, chart.ErrInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeError(w, err)
		return
	}
	if err := s.viewer.AddChart(r.Context(), c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, chartSummary{Name: c.Name, Title: c.Title, Description: c.Description, Steps: c.Len()})
}

// deleteChart removes a chart from the catalog. The default chart backs "/"
// and cannot be removed.
// DELETE /api/charts/{name}
func (s *Server) deleteChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == s.defaultChart {
		http.Error(w, "the default chart cannot be deleted", http.StatusConflict)
		return
	}
	if err := s.viewer.RemoveChart(r.Context(), name); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
