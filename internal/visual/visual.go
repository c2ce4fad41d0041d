// Package visual orchestrates one chart instance: every host-triggered data
// or size change runs a full synchronous update cycle that tears down the
// previous document and rebuilds it from scratch. No incremental diffing;
// simplicity over cleverness, deliberately.
package visual

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"timelanes/internal/config"
	"timelanes/internal/dataview"
	"timelanes/internal/palette"
	"timelanes/internal/render"
	"timelanes/internal/selection"
	"timelanes/internal/timeline"
)

// UpdateResult is the structured outcome of one update cycle. On error the
// previously rendered document is retained, so callers always have a
// consistent chart to show.
type UpdateResult struct {
	SVG       string
	Dropped   []timeline.DroppedRow
	Truncated bool
	Records   int
	Err       error
}

// Visual is one chart instance bound to a host.
type Visual struct {
	conf config.Config
	host selection.Host

	assigner timeline.LaneAssigner
	rng      *rand.Rand
	now      func() time.Time

	mu         sync.Mutex
	lastSVG    string
	lastInput  render.Input
	controller *selection.Controller
}

// Option customizes a Visual, mostly for tests.
type Option func(*Visual)

// WithLaneAssigner swaps the lane assignment strategy.
func WithLaneAssigner(a timeline.LaneAssigner) Option {
	return func(v *Visual) { v.assigner = a }
}

// WithRand injects the random source used for palette overflow.
func WithRand(rng *rand.Rand) Option {
	return func(v *Visual) { v.rng = rng }
}

// WithClock injects the clock that anchors the relevant date window.
func WithClock(now func() time.Time) Option {
	return func(v *Visual) { v.now = now }
}

// New builds a chart instance.
func New(conf config.Config, host selection.Host, opts ...Option) *Visual {
	v := &Visual{
		conf:     conf,
		host:     host,
		assigner: timeline.ParityAssigner{},
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Update runs a full update cycle from a fresh data snapshot. Render-start
// and render-finish telemetry is emitted regardless of outcome, and a
// failing pass leaves the previous document in place.
func (v *Visual) Update(view *dataview.DataView) (result UpdateResult) {
	v.mu.Lock()
	defer v.mu.Unlock()

	started := time.Now()
	slog.Info("render start", "rows", len(view.Rows))
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("render pass panicked: %v", r)
		}
		if result.Err != nil {
			result.SVG = v.lastSVG
		}
		slog.Info("render finish",
			"duration", time.Since(started),
			"records", result.Records,
			"dropped", len(result.Dropped),
			"ok", result.Err == nil,
		)
	}()

	norm := timeline.Normalize(view, v.now())
	result.Dropped = norm.Dropped
	result.Truncated = norm.Truncated
	result.Records = len(norm.Records)

	colors := palette.Assign(timeline.Titles(norm.Records), v.rng)

	chart := v.conf.Chart
	// An explicit banner URL wins; otherwise the first record carrying an
	// image for the active banner side supplies it.
	if chart.ImgURL == "" {
		switch chart.Layout {
		case config.LayoutHeader:
			chart.ImgURL = firstImage(norm.Records, func(e timeline.Event) string { return e.HeaderImage })
		case config.LayoutFooter:
			chart.ImgURL = firstImage(norm.Records, func(e timeline.Event) string { return e.FooterImage })
		}
	}

	ys := timeline.YScale{
		PlotHeight: float64(chart.Height),
		MarginTop:  float64(chart.MarginTop),
	}
	// A banner consumes a fixed slice of the plot: header layouts push the
	// top margin down, footer layouts pull the bottom up.
	switch chart.Layout {
	case config.LayoutHeader:
		ys.MarginTop += render.BannerShift
	case config.LayoutFooter:
		ys.PlotHeight -= render.BannerShift
	}

	ts := timeline.TimeScale{Min: norm.MinDate, Max: norm.MaxDate, Width: float64(chart.Width)}

	offsets := timeline.DefaultOffsets
	if v.conf.BannerActive() {
		offsets = timeline.BannerOffsets
	}
	placements := timeline.Layout(norm.Records, ts, ys, v.assigner, offsets)

	// The interaction layer is rebuilt alongside the visual tree: glyph
	// styles reseed to their defaults and any selection snapshot from the
	// torn-down tree is dropped.
	defaults := make(map[dataview.SelectionID]selection.Style, len(placements))
	for _, p := range placements {
		defaults[p.Record.Selection] = selection.Style{
			Stroke: colors.Lookup(p.Record.Title).Medium,
			Width:  2,
		}
	}

	in := render.Input{
		Chart:      chart,
		Placements: placements,
		Scale:      ts,
		YS:         ys,
		Colors:     colors,
		BaseURL:    v.conf.Links.BaseURL,
	}
	svg := render.SVG(in)

	// Swap the interaction layer only once the pass has fully succeeded,
	// so a failed pass leaves document and controller consistent: clicks
	// keep resolving against the identities the displayed document shows.
	v.controller = selection.NewController(v.host, selection.NewMapCanvas(defaults), v.conf.Links.BaseURL)
	v.lastInput = in
	v.lastSVG = svg
	result.SVG = svg
	return result
}

// firstImage returns the first non-empty image cell the getter extracts.
func firstImage(records []timeline.Event, get func(timeline.Event) string) string {
	for _, rec := range records {
		if url := get(rec); url != "" {
			return url
		}
	}
	return ""
}

// Controller exposes the interaction state machine of the current cycle,
// or nil before the first update.
func (v *Visual) Controller() *selection.Controller {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.controller
}

// SVG returns the current document, re-rendered with the active selection
// highlight when one exists. Before the first update it returns the empty
// string.
func (v *Visual) SVG() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.controller == nil {
		return v.lastSVG
	}
	in := v.lastInput
	in.Active = v.controller.Selected()
	v.lastSVG = render.SVG(in)
	return v.lastSVG
}
