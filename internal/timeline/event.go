// Package timeline contains the layout core: normalizing tabular input into
// event records, building the time and lane scales, and computing where every
// glyph, connector bar and label box goes. It decides geometry only; drawing
// belongs to internal/render.
package timeline

import (
	"time"

	"timelanes/internal/dataview"
)

// Event is one normalized timeline record. Records are constructed fresh
// per update cycle from the bound table and never mutated after
// construction.
type Event struct {
	Title       string
	Description string // rich text, sanitized at the render boundary
	StartDate   time.Time
	EndDate     time.Time
	CompanyLink string
	HeaderImage string
	FooterImage string

	Selection dataview.SelectionID
}

// IsPoint reports whether the record is a point event (equal start and end
// date) rather than a range event.
func (e Event) IsPoint() bool {
	return e.StartDate.Equal(e.EndDate)
}
