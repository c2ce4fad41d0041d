package web

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timelanes/internal/config"
	"timelanes/internal/dataview"
	"timelanes/internal/selection"
	"timelanes/internal/visual"
)

func testVisual(t *testing.T) (*visual.Visual, *dataview.DataView) {
	t.Helper()

	view := dataview.New([]dataview.Column{
		{Name: "Title", Role: dataview.RoleTitle},
		{Name: "Start", Role: dataview.RoleStartDate},
		{Name: "End", Role: dataview.RoleEndDate},
	}, [][]string{
		{"Launch", "2024-01-01", "2024-01-01"},
		{"Rollout", "2024-02-01", "2024-06-01"},
	})

	clock := func() time.Time { return time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC) }
	vis := visual.New(config.Default(), selection.LogHost{},
		visual.WithClock(clock), visual.WithRand(rand.New(rand.NewSource(1))))

	result := vis.Update(view)
	require.NoError(t, result.Err)
	return vis, view
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	vis, _ := testVisual(t)
	handler := NewServer(vis).Handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestChartSVG(t *testing.T) {
	vis, _ := testVisual(t)
	handler := NewServer(vis).Handler()

	req := httptest.NewRequest(http.MethodGet, "/chart.svg", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `data-ready="true"`)
}

func TestChartBeforeFirstUpdate(t *testing.T) {
	vis := visual.New(config.Default(), selection.LogHost{})
	handler := NewServer(vis).Handler()

	req := httptest.NewRequest(http.MethodGet, "/chart.svg", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestClickSelectsAndReflowsChart(t *testing.T) {
	vis, view := testVisual(t)
	handler := NewServer(vis).Handler()
	id := string(view.Identity(0))

	rec := postJSON(t, handler, "/api/click", `{"id":"`+id+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, id, resp["selected"])

	// The re-served document carries the highlight stroke.
	req := httptest.NewRequest(http.MethodGet, "/chart.svg", nil)
	chart := httptest.NewRecorder()
	handler.ServeHTTP(chart, req)
	assert.Contains(t, chart.Body.String(), `stroke="#f6412d"`)

	// Clicking the same glyph again clears the selection.
	rec = postJSON(t, handler, "/api/click", `{"id":"`+id+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "", resp["selected"])
}

func TestClickRejectsGetAndBadBody(t *testing.T) {
	vis, _ := testVisual(t)
	handler := NewServer(vis).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/click", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = postJSON(t, handler, "/api/click", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConcurrentClients(t *testing.T) {
	vis, view := testVisual(t)
	handler := NewServer(vis).Handler()
	ids := []dataview.SelectionID{view.Identity(0), view.Identity(1)}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		id := string(ids[i%2])
		wg.Add(3)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/click", strings.NewReader(`{"id":"`+id+`"}`))
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}()
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/contextmenu", strings.NewReader(`{"id":"`+id+`","x":1,"y":2}`))
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}()
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/chart.svg", nil)
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}()
	}
	wg.Wait()

	// The server must survive the burst with a coherent selection.
	sel := vis.Controller().Selected()
	assert.Contains(t, []dataview.SelectionID{"", ids[0], ids[1]}, sel)

	req := httptest.NewRequest(http.MethodGet, "/chart.svg", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestContextMenu(t *testing.T) {
	vis, view := testVisual(t)
	handler := NewServer(vis).Handler()

	rec := postJSON(t, handler, "/api/contextmenu", `{"id":"`+string(view.Identity(1))+`","x":12,"y":34}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Background right-clicks arrive with an empty id.
	rec = postJSON(t, handler, "/api/contextmenu", `{"id":"","x":1,"y":2}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOpen(t *testing.T) {
	vis, _ := testVisual(t)
	handler := NewServer(vis).Handler()

	rec := postJSON(t, handler, "/api/open", `{"href":"/products/7"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIndexPage(t *testing.T) {
	vis, _ := testVisual(t)
	handler := NewServer(vis).Handler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/chart.svg")

	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
