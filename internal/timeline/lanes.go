package timeline

// Lane is one of the four vertical positions an event can occupy.
type Lane int

const (
	LaneFarAbove Lane = iota
	LaneNearAbove
	LaneNearBelow
	LaneFarBelow
)

// Above reports whether the lane sits above the time axis.
func (l Lane) Above() bool {
	return l == LaneFarAbove || l == LaneNearAbove
}

func (l Lane) String() string {
	switch l {
	case LaneFarAbove:
		return "far-above"
	case LaneNearAbove:
		return "near-above"
	case LaneNearBelow:
		return "near-below"
	case LaneFarBelow:
		return "far-below"
	default:
		return "unknown"
	}
}

// LaneAssigner decides which lane the record at sequence position i
// occupies. The default parity strategy ignores temporal overlap entirely;
// a future interval-overlap strategy can be swapped in without touching the
// renderer.
type LaneAssigner interface {
	Assign(i int) Lane
}

// ParityAssigner assigns lanes purely from sequence-index parity: the low
// bit alternates above/below, and a sub-counter parity alternates near/far
// within each side. Adjacent-index events therefore always land on opposite
// sides of the axis, even when temporally coincident; non-adjacent events
// that overlap in time may still collide visually. That limitation is part
// of the published layout, not a bug.
type ParityAssigner struct{}

// Assign implements LaneAssigner.
func (ParityAssigner) Assign(i int) Lane {
	if i%2 == 0 {
		if (i/2)%2 == 0 {
			return LaneNearAbove
		}
		return LaneFarAbove
	}
	if ((i+1)/2)%2 == 0 {
		return LaneFarBelow
	}
	return LaneNearBelow
}

// LaneOffsets are the anchor and connector-bar offsets for the four lanes,
// expressed in y-scale domain units. The values are design constants, not
// derived: banner mode pulls lanes tighter to make room for the image strip,
// the default mode spreads them to reclaim the space. Tune with care; the
// bar offsets deliberately differ from the anchor offsets so adjacent bars
// step instead of merging.
type LaneOffsets struct {
	Anchor map[Lane]float64
	Bar    map[Lane]float64
}

// BannerOffsets is the offset table for the header/footer banner layouts.
var BannerOffsets = LaneOffsets{
	Anchor: map[Lane]float64{
		LaneFarAbove:  70,
		LaneNearAbove: 35,
		LaneNearBelow: -35,
		LaneFarBelow:  -70,
	},
	Bar: map[Lane]float64{
		LaneFarAbove:  62,
		LaneNearAbove: 28,
		LaneNearBelow: -42,
		LaneFarBelow:  -78,
	},
}

// DefaultOffsets is the offset table for the bordered default layout.
var DefaultOffsets = LaneOffsets{
	Anchor: map[Lane]float64{
		LaneFarAbove:  82,
		LaneNearAbove: 42,
		LaneNearBelow: -42,
		LaneFarBelow:  -82,
	},
	Bar: map[Lane]float64{
		LaneFarAbove:  74,
		LaneNearAbove: 34,
		LaneNearBelow: -50,
		LaneFarBelow:  -90,
	},
}
