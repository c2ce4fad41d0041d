package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTimeScaleX(t *testing.T) {
	ts := TimeScale{Min: day(2024, time.January, 1), Max: day(2025, time.January, 1), Width: 1000}

	assert.Equal(t, 0.0, ts.X(ts.Min))
	assert.Equal(t, 1000.0, ts.X(ts.Max))

	mid := ts.X(day(2024, time.July, 1))
	assert.Greater(t, mid, 480.0)
	assert.Less(t, mid, 520.0)
}

func TestTimeScaleXDegenerateSpan(t *testing.T) {
	d := day(2024, time.March, 1)
	ts := TimeScale{Min: d, Max: d, Width: 1000}
	assert.Equal(t, 0.0, ts.X(d))
}

func TestYScaleMapping(t *testing.T) {
	ys := YScale{PlotHeight: 500, MarginTop: 20}

	assert.InDelta(t, 500, ys.Y(-100), 1e-9)
	assert.InDelta(t, 20, ys.Y(100), 1e-9)
	assert.InDelta(t, 260, ys.Y(0), 1e-9)
	assert.InDelta(t, 260, ys.AxisY(), 1e-9)

	// Positive domain values move up the canvas.
	assert.Less(t, ys.Y(42), ys.Y(0))
	assert.Greater(t, ys.Y(-42), ys.Y(0))
}

func TestTicksMonthlyWithinOneYear(t *testing.T) {
	ts := TimeScale{Min: day(2024, time.January, 1), Max: day(2025, time.January, 1), Width: 1000}
	ticks := ts.Ticks()

	assert.Len(t, ticks, 13)
	assert.Equal(t, "Jan'24", ticks[0].Label)
	assert.Equal(t, "Feb'24", ticks[1].Label)
	assert.Equal(t, "Jan'25", ticks[12].Label)
}

func TestTicksYearlyForLongSpans(t *testing.T) {
	ts := TimeScale{Min: day(2023, time.January, 1), Max: day(2033, time.January, 1), Width: 1000}
	ticks := ts.Ticks()

	assert.Len(t, ticks, 11)
	assert.Equal(t, "2023", ticks[0].Label)
	assert.Equal(t, "2033", ticks[10].Label)
}

func TestQuarterTicks(t *testing.T) {
	ts := TimeScale{Min: day(2024, time.February, 15), Max: day(2025, time.January, 1), Width: 1000}
	ticks := ts.QuarterTicks()

	// Snaps back to the enclosing quarter start.
	assert.Equal(t, day(2024, time.January, 1), ticks[0].Time)
	assert.Equal(t, day(2024, time.April, 1), ticks[1].Time)
	assert.Equal(t, day(2025, time.January, 1), ticks[len(ticks)-1].Time)
	for _, tick := range ticks {
		assert.Empty(t, tick.Label)
	}
}
