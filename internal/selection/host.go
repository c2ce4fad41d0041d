// Package selection implements the single-selection interaction state
// machine and the thin boundary to the embedding application's selection,
// context-menu and URL-launch services.
package selection

import (
	"log/slog"

	"timelanes/internal/dataview"
)

// Host is the embedding application's service surface. Select and Clear
// acknowledge asynchronously through done; between issuing a request and
// its continuation the controller must not assume the selection has taken
// effect.
type Host interface {
	Select(ids []dataview.SelectionID, done func(error))
	Clear(done func(error))
	ShowContextMenu(id dataview.SelectionID, x, y float64)
	LaunchURL(url string)
}

// LogHost is the default host used by the CLI: it acknowledges every
// request immediately and logs what a real host would have done.
type LogHost struct{}

var _ Host = LogHost{}

func (LogHost) Select(ids []dataview.SelectionID, done func(error)) {
	slog.Info("host select", "ids", len(ids))
	done(nil)
}

func (LogHost) Clear(done func(error)) {
	slog.Info("host clear selection")
	done(nil)
}

func (LogHost) ShowContextMenu(id dataview.SelectionID, x, y float64) {
	slog.Info("host context menu", "id", string(id), "x", x, "y", y)
}

func (LogHost) LaunchURL(url string) {
	slog.Info("host launch url", "url", url)
}
