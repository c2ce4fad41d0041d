// Package web embeds the chart in a small HTTP host: it serves the current
// document and forwards pointer events from the page back into the
// selection controller, playing the role the hosting analytics application
// would otherwise play.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"timelanes/internal/dataview"
	"timelanes/internal/visual"
)

// Server hosts one chart instance.
type Server struct {
	vis *visual.Visual
	mux *http.ServeMux
}

// NewServer wires routes for the given chart instance.
func NewServer(vis *visual.Visual) *Server {
	s := &Server{vis: vis, mux: http.NewServeMux()}
	s.registerRoutes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/chart.svg", s.handleChart)
	s.mux.HandleFunc("/api/click", s.handleClick)
	s.mux.HandleFunc("/api/contextmenu", s.handleContextMenu)
	s.mux.HandleFunc("/api/open", s.handleOpen)
	s.mux.HandleFunc("/", s.handleIndex)
}

// Start runs the server until ctx is canceled, then shuts it down
// gracefully.
func Start(ctx context.Context, listen string, vis *visual.Visual) error {
	srv := &http.Server{
		Addr:              listen,
		Handler:           NewServer(vis).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("http server listening", "addr", listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChart(w http.ResponseWriter, _ *http.Request) {
	svg := s.vis.SVG()
	if svg == "" {
		writeError(w, http.StatusServiceUnavailable, "no chart rendered yet")
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	fmt.Fprint(w, svg)
}

// handleIndex serves a minimal page that embeds the chart inline and
// forwards glyph clicks, right-clicks and label hyperlink clicks to the
// API, so the server-side controller sees the same event stream an
// embedded visual would.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}

type clickRequest struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type openRequest struct {
	Href string `json:"href"`
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	req, ctrl, ok := s.decodeEvent(w, r)
	if !ok {
		return
	}
	ctrl.Click(dataview.SelectionID(req.ID))
	writeJSON(w, http.StatusOK, map[string]string{"selected": string(ctrl.Selected())})
}

func (s *Server) handleContextMenu(w http.ResponseWriter, r *http.Request) {
	req, ctrl, ok := s.decodeEvent(w, r)
	if !ok {
		return
	}
	ctrl.ContextMenu(dataview.SelectionID(req.ID), req.X, req.Y)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	ctrl := s.vis.Controller()
	if ctrl == nil {
		writeError(w, http.StatusServiceUnavailable, "no chart rendered yet")
		return
	}
	var req openRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	ctrl.OpenLink(req.Href)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) decodeEvent(w http.ResponseWriter, r *http.Request) (clickRequest, ctrlIface, bool) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return clickRequest{}, nil, false
	}
	ctrl := s.vis.Controller()
	if ctrl == nil {
		writeError(w, http.StatusServiceUnavailable, "no chart rendered yet")
		return clickRequest{}, nil, false
	}
	var req clickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return clickRequest{}, nil, false
	}
	return req, ctrl, true
}

// ctrlIface narrows the controller surface the handlers use.
type ctrlIface interface {
	Click(id dataview.SelectionID)
	ContextMenu(id dataview.SelectionID, x, y float64)
	Selected() dataview.SelectionID
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

const indexPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>timelanes</title></head>
<body style="margin:0">
<div id="chart"></div>
<script>
async function load() {
  const res = await fetch('/chart.svg');
  document.getElementById('chart').innerHTML = await res.text();
  wire();
}
function post(path, body) {
  return fetch(path, {method: 'POST', headers: {'Content-Type': 'application/json'}, body: JSON.stringify(body)});
}
function wire() {
  document.querySelectorAll('g.event').forEach(function (g) {
    const id = g.getAttribute('data-selection');
    g.addEventListener('click', async function (ev) {
      ev.preventDefault();
      await post('/api/click', {id: id});
      load();
    });
    g.addEventListener('contextmenu', async function (ev) {
      ev.preventDefault();
      await post('/api/contextmenu', {id: id, x: ev.clientX, y: ev.clientY});
    });
  });
  document.querySelectorAll('a[data-link]').forEach(function (a) {
    a.addEventListener('click', function (ev) {
      ev.preventDefault();
      ev.stopPropagation();
      post('/api/open', {href: a.getAttribute('data-link')});
    });
  });
  document.body.addEventListener('contextmenu', function (ev) {
    if (ev.defaultPrevented) { return; }
    ev.preventDefault();
    post('/api/contextmenu', {id: '', x: ev.clientX, y: ev.clientY});
  });
}
load();
</script>
</body>
</html>
`
