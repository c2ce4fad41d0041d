package timeline

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"timelanes/internal/dataview"
)

// MaxRecords is the hard cap on how many records reach layout. Stated
// policy, not configurable.
const MaxRecords = 100

// Relevant date window relative to the current year: events are kept when
// they start no earlier than Jan 1 of (Y + windowStartYears) and end no
// later than Jan 1 of (Y + windowEndYears).
const (
	windowStartYears = -1
	windowEndYears   = 9
)

// dateFormats are tried in order when parsing date cells.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// DroppedRow records an input row that was rejected during normalization.
// Rows with unparsable or absent start/end dates cannot participate in axis
// min/max computation, so they are surfaced as data-quality diagnostics
// rather than silently skipped.
type DroppedRow struct {
	Row    int
	Reason string
}

// Normalized is the output of one normalization pass.
type Normalized struct {
	Records []Event
	MinDate time.Time
	MaxDate time.Time
	Dropped []DroppedRow

	// Truncated is true when the input exceeded MaxRecords.
	Truncated bool
}

// Normalize extracts typed event records from the bound table, truncates to
// the record cap, and applies the relevant date window around now. If the
// window filter leaves nothing, the unfiltered (capped) set is kept and the
// axis range derives from the data instead of the window.
func Normalize(view *dataview.DataView, now time.Time) Normalized {
	titleCol := view.RoleIndex(dataview.RoleTitle)
	descCol := view.RoleIndex(dataview.RoleDescription)
	startCol := view.RoleIndex(dataview.RoleStartDate)
	endCol := view.RoleIndex(dataview.RoleEndDate)
	linkCol := view.RoleIndex(dataview.RoleCompanyLink)
	headerCol := view.RoleIndex(dataview.RoleHeaderImage)
	footerCol := view.RoleIndex(dataview.RoleFooterImage)

	var out Normalized
	for i := range view.Rows {
		if len(out.Records) >= MaxRecords {
			out.Truncated = true
			break
		}

		start, startOK := parseDate(view.Cell(i, startCol))
		end, endOK := parseDate(view.Cell(i, endCol))
		switch {
		case !startOK && !endOK:
			out.Dropped = append(out.Dropped, DroppedRow{Row: i, Reason: "missing start and end date"})
			continue
		case !startOK:
			out.Dropped = append(out.Dropped, DroppedRow{Row: i, Reason: "missing start date"})
			continue
		case !endOK:
			out.Dropped = append(out.Dropped, DroppedRow{Row: i, Reason: "missing end date"})
			continue
		case end.Before(start):
			out.Dropped = append(out.Dropped, DroppedRow{Row: i, Reason: fmt.Sprintf("end date %s before start date %s", end.Format("2006-01-02"), start.Format("2006-01-02"))})
			continue
		}

		out.Records = append(out.Records, Event{
			Title:       view.Cell(i, titleCol),
			Description: view.Cell(i, descCol),
			StartDate:   start,
			EndDate:     end,
			CompanyLink: view.Cell(i, linkCol),
			HeaderImage: view.Cell(i, headerCol),
			FooterImage: view.Cell(i, footerCol),
			Selection:   view.Identity(i),
		})
	}

	for _, d := range out.Dropped {
		slog.Warn("dropped input row", "row", d.Row, "reason", d.Reason)
	}

	applyWindow(&out, now)
	return out
}

// applyWindow filters records to the relevant date window and sets the axis
// range. An empty filter result falls back to the full set with a
// data-derived range, which keeps charts of entirely out-of-window data
// deterministic.
func applyWindow(n *Normalized, now time.Time) {
	windowStart := time.Date(now.Year()+windowStartYears, time.January, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(now.Year()+windowEndYears, time.January, 1, 0, 0, 0, 0, time.UTC)

	var kept []Event
	for _, rec := range n.Records {
		if rec.StartDate.Year() >= windowStart.Year() && rec.EndDate.Year() <= windowEnd.Year() {
			kept = append(kept, rec)
		}
	}

	if len(kept) > 0 {
		n.Records = kept
		n.MinDate = windowStart
		n.MaxDate = windowEnd
		return
	}
	if len(n.Records) == 0 {
		n.MinDate = windowStart
		n.MaxDate = windowEnd
		return
	}

	// Nothing inside the window: keep everything and derive the range from
	// the data at year boundaries.
	minYear := n.Records[0].StartDate.Year()
	maxYear := n.Records[0].EndDate.Year()
	for _, rec := range n.Records[1:] {
		if y := rec.StartDate.Year(); y < minYear {
			minYear = y
		}
		if y := rec.EndDate.Year(); y > maxYear {
			maxYear = y
		}
	}
	n.MinDate = time.Date(minYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	n.MaxDate = time.Date(maxYear+1, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// Titles returns the record titles in sequence order, for building the
// per-cycle color assignment.
func Titles(records []Event) []string {
	titles := make([]string, len(records))
	for i, rec := range records {
		titles[i] = rec.Title
	}
	return titles
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
