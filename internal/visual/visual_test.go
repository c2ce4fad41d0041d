package visual

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timelanes/internal/config"
	"timelanes/internal/dataview"
	"timelanes/internal/selection"
	"timelanes/internal/timeline"
)

var testColumns = []dataview.Column{
	{Name: "Title", Role: dataview.RoleTitle},
	{Name: "Start", Role: dataview.RoleStartDate},
	{Name: "End", Role: dataview.RoleEndDate},
	{Name: "Description", Role: dataview.RoleDescription},
}

func testView() *dataview.DataView {
	return dataview.New(testColumns, [][]string{
		{"Launch", "2024-01-01", "2024-01-01", "kickoff"},
		{"Rollout", "2024-02-01", "2024-06-01", "phased"},
	})
}

func testClock() time.Time {
	return time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
}

func newTestVisual(opts ...Option) *Visual {
	base := []Option{
		WithClock(testClock),
		WithRand(rand.New(rand.NewSource(1))),
	}
	return New(config.Default(), selection.LogHost{}, append(base, opts...)...)
}

func TestUpdateRendersBothGlyphKinds(t *testing.T) {
	v := newTestVisual()
	view := testView()

	result := v.Update(view)
	require.NoError(t, result.Err)
	assert.Equal(t, 2, result.Records)
	assert.Empty(t, result.Dropped)
	assert.False(t, result.Truncated)

	// The point event draws as a circle pair, the four-month range as an
	// ellipse on the ten-year window axis.
	assert.Contains(t, result.SVG, `r="40"`)
	assert.Equal(t, 1, strings.Count(result.SVG, "<ellipse"))
	assert.Contains(t, result.SVG, `data-selection="`+string(view.Identity(0))+`"`)
	assert.Contains(t, result.SVG, `data-ready="true"`)
}

func TestUpdateReportsDroppedRows(t *testing.T) {
	view := dataview.New(testColumns, [][]string{
		{"Good", "2024-01-01", "2024-01-01", ""},
		{"Bad", "not a date", "2024-01-01", ""},
	})

	result := newTestVisual().Update(view)
	require.NoError(t, result.Err)
	assert.Equal(t, 1, result.Records)
	require.Len(t, result.Dropped, 1)
	assert.Equal(t, 1, result.Dropped[0].Row)
}

// armedAssigner panics once armed, to force a failing render pass.
type armedAssigner struct {
	armed bool
}

func (a *armedAssigner) Assign(i int) timeline.Lane {
	if a.armed {
		panic("lane table corrupted")
	}
	return timeline.ParityAssigner{}.Assign(i)
}

func TestUpdateFailureKeepsPreviousDocument(t *testing.T) {
	assigner := &armedAssigner{}
	v := newTestVisual(WithLaneAssigner(assigner))

	view := testView()
	first := v.Update(view)
	require.NoError(t, first.Err)
	require.NotEmpty(t, first.SVG)
	c1 := v.Controller()

	assigner.armed = true
	second := v.Update(testView())
	require.Error(t, second.Err)
	assert.Contains(t, second.Err.Error(), "render pass panicked")
	assert.Equal(t, first.SVG, second.SVG, "a failing pass must keep the previous document")
	assert.Equal(t, first.SVG, v.SVG())

	// The interaction layer stays bound to the document still on display:
	// clicks keep resolving against the identities that document shows.
	assert.Same(t, c1, v.Controller())
	c1.Click(view.Identity(0))
	assert.Equal(t, view.Identity(0), c1.Selected())
}

func TestControllerRebuiltPerCycle(t *testing.T) {
	v := newTestVisual()
	assert.Nil(t, v.Controller(), "no controller before the first update")

	view := testView()
	v.Update(view)
	c1 := v.Controller()
	require.NotNil(t, c1)

	c1.Click(view.Identity(0))
	assert.Equal(t, view.Identity(0), c1.Selected())

	// A new cycle tears the tree down: fresh controller, selection gone.
	v.Update(testView())
	c2 := v.Controller()
	assert.NotSame(t, c1, c2)
	assert.Equal(t, dataview.SelectionID(""), c2.Selected())
}

func TestSVGCarriesActiveHighlight(t *testing.T) {
	v := newTestVisual()
	view := testView()
	v.Update(view)

	plain := v.SVG()
	assert.NotContains(t, plain, `stroke="#f6412d"`)

	v.Controller().Click(view.Identity(1))
	highlighted := v.SVG()
	assert.Equal(t, 1, strings.Count(highlighted, `stroke="#f6412d"`))
}

func TestBannerLayoutShiftsPlotArea(t *testing.T) {
	conf := config.Default()
	conf.Chart.Layout = config.LayoutHeader
	conf.Chart.ImgURL = "https://example.com/banner.png"

	v := New(conf, selection.LogHost{}, WithClock(testClock), WithRand(rand.New(rand.NewSource(1))))
	result := v.Update(testView())
	require.NoError(t, result.Err)
	assert.Contains(t, result.SVG, `<image x="0" y="0"`)

	def := newTestVisual().Update(testView())
	require.NoError(t, def.Err)
	assert.NotEqual(t, def.SVG, result.SVG)
}

func TestBannerImageFallsBackToRecords(t *testing.T) {
	cols := append(append([]dataview.Column{}, testColumns...),
		dataview.Column{Name: "Header", Role: dataview.RoleHeaderImage},
		dataview.Column{Name: "Footer", Role: dataview.RoleFooterImage},
	)
	rows := [][]string{
		{"Launch", "2024-01-01", "2024-01-01", "", "", ""},
		{"Rollout", "2024-02-01", "2024-06-01", "", "https://example.com/top.png", "https://example.com/bottom.png"},
	}

	conf := config.Default()
	conf.Chart.Layout = config.LayoutHeader
	v := New(conf, selection.LogHost{}, WithClock(testClock), WithRand(rand.New(rand.NewSource(1))))
	result := v.Update(dataview.New(cols, rows))
	require.NoError(t, result.Err)
	assert.Contains(t, result.SVG, `href="https://example.com/top.png"`,
		"the first record carrying a header image supplies the banner")

	conf.Chart.Layout = config.LayoutFooter
	v = New(conf, selection.LogHost{}, WithClock(testClock), WithRand(rand.New(rand.NewSource(1))))
	result = v.Update(dataview.New(cols, rows))
	require.NoError(t, result.Err)
	assert.Contains(t, result.SVG, `href="https://example.com/bottom.png"`)

	// An explicit banner URL always wins over record-supplied images.
	conf.Chart.ImgURL = "https://example.com/banner.png"
	v = New(conf, selection.LogHost{}, WithClock(testClock), WithRand(rand.New(rand.NewSource(1))))
	result = v.Update(dataview.New(cols, rows))
	require.NoError(t, result.Err)
	assert.Contains(t, result.SVG, `href="https://example.com/banner.png"`)
	assert.NotContains(t, result.SVG, "bottom.png")
}

func TestUpdateEmptyView(t *testing.T) {
	v := newTestVisual()
	result := v.Update(dataview.New(testColumns, nil))

	require.NoError(t, result.Err)
	assert.Equal(t, 0, result.Records)
	assert.Contains(t, result.SVG, "data-ready", "an empty table still renders an axis-only document")
}
