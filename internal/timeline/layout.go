package timeline

// Glyph geometry constants. The ellipse deliberately uses the full pixel
// span as its x-radius, which doubles its visual width into the published
// "pill" silhouette. Do not halve it.
const (
	// CircleSpanThreshold is the pixel span at or below which a range
	// event still renders as a circle instead of a degenerate ellipse.
	CircleSpanThreshold = 35

	CircleInnerRadius = 40
	CircleOuterRadius = 45
	EllipseRadiusY    = 50
)

// Label box constants.
const (
	LabelFixedWidth  = 70
	LabelWidthFactor = 1.5
	LabelHeight      = 60
	LabelOffsetY     = -50
)

// GlyphShape selects how an event is drawn.
type GlyphShape int

const (
	GlyphCircle GlyphShape = iota
	GlyphEllipse
)

// Glyph is the computed glyph geometry, local to the event group whose
// origin sits at (X, AnchorY).
type Glyph struct {
	Shape GlyphShape

	// CenterX is the glyph center relative to the group origin: half the
	// pixel span, so a near-zero-span range still gets a centered dot.
	CenterX float64

	// Circle radii (inner fill ring, outer stroke ring).
	InnerR float64
	OuterR float64

	// Ellipse radii.
	RX float64
	RY float64
}

// Bar is one gradient connector bar. Two bars per event share Y and Height
// and differ only in X (start edge and end edge).
type Bar struct {
	Y      float64
	Height float64
}

// Label is the computed label box, anchored above the lane with a fixed
// local y-offset.
type Label struct {
	Width   float64
	Height  float64
	OffsetY float64
}

// Placement is the full layout result for one event.
type Placement struct {
	Index  int
	Record Event

	Lane    Lane
	X       float64 // pixel position of the start date
	XEnd    float64 // pixel position of the end date
	Diff    float64 // measured pixel span
	AnchorY float64 // pixel position of the lane anchor

	Bar   Bar
	Glyph Glyph
	Label Label
}

// Layout computes placements for the ordered, capped record sequence using
// the two scales, a lane assigner and a per-mode offset table. Layout is
// pure: it is recomputed wholesale on every data or size change.
func Layout(records []Event, ts TimeScale, ys YScale, assigner LaneAssigner, offsets LaneOffsets) []Placement {
	placements := make([]Placement, len(records))
	for i, rec := range records {
		lane := assigner.Assign(i)
		x := ts.X(rec.StartDate)
		xEnd := ts.X(rec.EndDate)
		diff := xEnd - x

		p := Placement{
			Index:   i,
			Record:  rec,
			Lane:    lane,
			X:       x,
			XEnd:    xEnd,
			Diff:    diff,
			AnchorY: ys.Y(offsets.Anchor[lane]),
			Bar: Bar{
				Y:      ys.Y(offsets.Bar[lane]),
				Height: ys.PlotHeight - ys.Y(offsets.Bar[lane]),
			},
			Glyph: glyphFor(rec, diff),
			Label: labelFor(rec, diff),
		}
		placements[i] = p
	}
	return placements
}

// glyphFor selects the glyph shape: a circle for point events and for
// ranges whose measured span stays at or under the threshold, an ellipse
// otherwise.
func glyphFor(rec Event, diff float64) Glyph {
	if rec.IsPoint() || diff <= CircleSpanThreshold {
		return Glyph{
			Shape:   GlyphCircle,
			CenterX: diff / 2,
			InnerR:  CircleInnerRadius,
			OuterR:  CircleOuterRadius,
		}
	}
	return Glyph{
		Shape:   GlyphEllipse,
		CenterX: diff / 2,
		RX:      diff,
		RY:      EllipseRadiusY,
	}
}

// labelFor sizes the label box: fixed width for point events and ranges
// under a year, span-proportional width for longer ranges.
func labelFor(rec Event, diff float64) Label {
	width := float64(LabelFixedWidth)
	if !rec.IsPoint() && !rec.EndDate.Before(rec.StartDate.AddDate(1, 0, 0)) {
		width = diff * LabelWidthFactor
	}
	return Label{
		Width:   width,
		Height:  LabelHeight,
		OffsetY: LabelOffsetY,
	}
}
