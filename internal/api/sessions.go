package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/soochol/ralphflow/internal/diagram"
	"github.com/soochol/ralphflow/internal/events"
	"github.com/soochol/ralphflow/internal/repository"
	"github.com/soochol/ralphflow/internal/services"
)

// createSession opens a walkthrough of a chart at step 0.
// POST /api/sessions {"chart": "ralph"}
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Chart string `json:"chart"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if req.Chart == "" {
		req.Chart = s.defaultChart
	}
	v, err := s.viewer.Open(r.Context(), req.Chart)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// GET /api/sessions
func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.viewer.Sessions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if sessions == nil {
		sessions = []*repository.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

// GET /api/sessions/{id}
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	v, err := s.viewer.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// DELETE /api/sessions/{id}
func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.viewer.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// applyOp runs one of the four controls against a session.
// POST /api/sessions/{id}/{next|previous|reset|show-all}
func (s *Server) applyOp(w http.ResponseWriter, r *http.Request) {
	op, err := services.ParseOp(chi.URLParam(r, "op"))
	if err != nil {
		writeError(w, err)
		return
	}
	v, err := s.viewer.Apply(r.Context(), chi.URLParam(r, "id"), op)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// sessionDiagram renders the session's current frame.
// GET /api/sessions/{id}/diagram.{mmd|svg|png|dot}
func (s *Server) sessionDiagram(w http.ResponseWriter, r *http.Request) {
	v, err := s.viewer.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	format := chi.URLParam(r, "format")
	if format == "mmd" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, diagram.RenderMermaid(v.Frame))
		return
	}
	imgFormat := diagram.ImageFormat(format)
	data, err := diagram.Render(r.Context(), v.Frame, imgFormat)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", imgFormat.ContentType())
	w.Write(data)
}

// streamSession streams frames via SSE. The current frame is sent first so
// a (re)connecting client is immediately in sync; later frames are complete
// snapshots with increasing seq, so nothing needs replaying.
// GET /api/sessions/{id}/events
func (s *Server) streamSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	// Subscribe before reading the current frame so no op can slip in
	// between; a frame seen twice is dropped by the seq check below.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	ch := s.viewer.Watch(ctx, id)

	v, err := s.viewer.Get(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	writeSSEFrame(w, events.FrameEvent{
		SessionID: v.Session.ID,
		Seq:       v.Session.Seq,
		Op:        v.Session.State.Op,
		Frame:     v.Frame,
		Timestamp: v.Session.UpdatedAt,
	})
	flusher.Flush()
	lastSeq := v.Session.Seq

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if ev.Seq <= lastSeq {
				continue
			}
			lastSeq = ev.Seq
			writeSSEFrame(w, ev)
			flusher.Flush()
		}
	}
}

// writeSSEFrame writes a single frame as an SSE event with the seq as id.
func writeSSEFrame(w http.ResponseWriter, ev events.FrameEvent) {
	data, _ := json.Marshal(ev)
	fmt.Fprintf(w, "id: %d\nevent: frame\ndata: %s\n\n", ev.Seq, data)
}
