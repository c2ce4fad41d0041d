package selection

import (
	"log/slog"
	"sync"

	"timelanes/internal/dataview"
	"timelanes/internal/sanitize"
)

// Style is the visual stroke state of a glyph's outline ring.
type Style struct {
	Stroke string
	Width  float64
}

// Highlight is the stroke applied to the active glyph.
var Highlight = Style{Stroke: "#f6412d", Width: 3}

// Canvas is the live visual tree as far as the controller is concerned: it
// can read and swap glyph outline styles by record identity.
type Canvas interface {
	GlyphStyle(id dataview.SelectionID) (Style, bool)
	SetGlyphStyle(id dataview.SelectionID, s Style)
}

// active is the single in-flight selection snapshot: the highlighted
// record plus the stroke it had before highlighting, kept so the prior
// appearance can be restored when selection moves or clears.
type active struct {
	id    dataview.SelectionID
	prior Style
}

// Controller is the per-visual-instance selection state machine. States are
// Idle (no snapshot) and OneSelected (exactly one snapshot). All style and
// snapshot mutation happens inside host acknowledgment continuations, so a
// failed or slow host call never corrupts the restore reference.
//
// Controller is safe for concurrent use: hosts such as the HTTP server
// dispatch events from separate goroutines, so the snapshot and the canvas
// are only touched under mu. The lock is never held across a host call,
// which keeps synchronous hosts from deadlocking in their continuations.
type Controller struct {
	host    Host
	canvas  Canvas
	baseURL string

	mu      sync.Mutex
	current *active
}

// NewController wires the state machine to a host and a canvas. baseURL is
// the fixed base that relative label hyperlinks resolve against.
func NewController(host Host, canvas Canvas, baseURL string) *Controller {
	return &Controller{host: host, canvas: canvas, baseURL: baseURL}
}

// Selected returns the identity of the active record, or "" when idle.
func (c *Controller) Selected() dataview.SelectionID {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return ""
	}
	return c.current.id
}

// Click handles a glyph click. Clicking the selected glyph again clears the
// selection; clicking any other glyph moves it. A second click racing an
// unacknowledged first request is accepted: the last-issued request wins.
func (c *Controller) Click(id dataview.SelectionID) {
	c.mu.Lock()
	if c.current != nil && c.current.id == id {
		c.mu.Unlock()
		c.host.Clear(func(err error) {
			if err != nil {
				slog.Error("host clear failed", "err", err)
				return
			}
			c.mu.Lock()
			defer c.mu.Unlock()
			if c.current != nil {
				c.canvas.SetGlyphStyle(c.current.id, c.current.prior)
				c.current = nil
			}
		})
		return
	}

	prior, ok := c.canvas.GlyphStyle(id)
	c.mu.Unlock()
	if !ok {
		return
	}
	c.host.Select([]dataview.SelectionID{id}, func(err error) {
		if err != nil {
			slog.Error("host select failed", "err", err)
			return
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.current != nil {
			c.canvas.SetGlyphStyle(c.current.id, c.current.prior)
		}
		c.current = &active{id: id, prior: prior}
		c.canvas.SetGlyphStyle(id, Highlight)
	})
}

// ContextMenu forwards a right-click to the host's context menu surface.
// id may be empty when the click landed outside any glyph.
func (c *Controller) ContextMenu(id dataview.SelectionID, x, y float64) {
	c.host.ShowContextMenu(id, x, y)
}

// OpenLink intercepts a hyperlink click inside a label: the raw value is
// resolved against the base URL and handed to the host's URL-launch
// capability instead of normal navigation. Unresolvable values are ignored.
func (c *Controller) OpenLink(raw string) {
	resolved := sanitize.Resolve(c.baseURL, raw)
	if resolved == "" {
		slog.Warn("ignoring unresolvable link", "raw", raw)
		return
	}
	c.host.LaunchURL(resolved)
}

// Reset drops the snapshot without touching the host, for use when the
// visual tree it pointed into has been torn down by a rebuild.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}

// MapCanvas is a Canvas backed by a plain map, rebuilt each render pass
// from the default stroke of every glyph.
type MapCanvas struct {
	styles map[dataview.SelectionID]Style
}

var _ Canvas = (*MapCanvas)(nil)

// NewMapCanvas seeds a canvas with the default styles of the current pass.
func NewMapCanvas(defaults map[dataview.SelectionID]Style) *MapCanvas {
	styles := make(map[dataview.SelectionID]Style, len(defaults))
	for id, s := range defaults {
		styles[id] = s
	}
	return &MapCanvas{styles: styles}
}

func (m *MapCanvas) GlyphStyle(id dataview.SelectionID) (Style, bool) {
	s, ok := m.styles[id]
	return s, ok
}

func (m *MapCanvas) SetGlyphStyle(id dataview.SelectionID, s Style) {
	m.styles[id] = s
}
