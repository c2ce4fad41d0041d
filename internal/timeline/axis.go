package timeline

import (
	"time"
)

// TimeScale maps dates onto horizontal pixel positions across the plot
// width.
type TimeScale struct {
	Min   time.Time
	Max   time.Time
	Width float64
}

// X returns the pixel position for t. Dates outside [Min, Max] extrapolate
// linearly; the normalizer guarantees records stay in range.
func (s TimeScale) X(t time.Time) float64 {
	span := s.Max.Sub(s.Min)
	if span <= 0 {
		return 0
	}
	return s.Width * float64(t.Sub(s.Min)) / float64(span)
}

// YScale is the vertical layout coordinate space. Its domain [-100, 100] is
// an internal convention that all lane offsets are expressed in; it is never
// shown to the user. Domain -100 maps to PlotHeight (the bottom), +100 to
// MarginTop.
type YScale struct {
	PlotHeight float64
	MarginTop  float64
}

// Y converts a lane offset in domain units to a pixel position.
func (s YScale) Y(v float64) float64 {
	return s.PlotHeight + (v+100)/200*(s.MarginTop-s.PlotHeight)
}

// AxisY is the pixel position of the time axis line (domain zero).
func (s YScale) AxisY() float64 {
	return s.Y(0)
}

// Tick is one labeled axis tick.
type Tick struct {
	Time  time.Time
	Label string
}

// yearSpan counts whole calendar years between the scale bounds.
func (s TimeScale) yearSpan() int {
	return s.Max.Year() - s.Min.Year()
}

// Ticks chooses tick granularity by span: a year or less gets monthly ticks
// labeled Mon'YY, anything longer gets yearly ticks labeled with the
// four-digit year.
func (s TimeScale) Ticks() []Tick {
	if s.yearSpan() <= 1 {
		return s.monthlyTicks()
	}
	return s.yearlyTicks()
}

func (s TimeScale) monthlyTicks() []Tick {
	var ticks []Tick
	t := time.Date(s.Min.Year(), s.Min.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !t.After(s.Max) {
		ticks = append(ticks, Tick{Time: t, Label: t.Format("Jan'06")})
		t = t.AddDate(0, 1, 0)
	}
	return ticks
}

func (s TimeScale) yearlyTicks() []Tick {
	var ticks []Tick
	t := time.Date(s.Min.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	for !t.After(s.Max) {
		ticks = append(ticks, Tick{Time: t, Label: t.Format("2006")})
		t = t.AddDate(1, 0, 0)
	}
	return ticks
}

// QuarterTicks is the secondary unlabeled tick set. It drives the
// alternating background bands; the renderer toggles band color on every
// 4th tick index.
func (s TimeScale) QuarterTicks() []Tick {
	var ticks []Tick
	month := ((int(s.Min.Month())-1)/3)*3 + 1
	t := time.Date(s.Min.Year(), time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	for !t.After(s.Max) {
		ticks = append(ticks, Tick{Time: t})
		t = t.AddDate(0, 3, 0)
	}
	return ticks
}
