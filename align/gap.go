// Package align - gap penalty models.
//
// A GapPenalty prices contiguous gap runs by length and carries the gap
// segment used to pad alignment rows.  The engine charges a gap column
// comparator(segment, gap) + Cost(runLength); Cost only adds the
// length-dependent component.
//
// Well-formedness: Cost must be monotonically non-decreasing in length.
// This is an implementer invariant, not separately enforced.
package align

import "github.com/katalvlaran/phonalign/phonetics"

// GapPenalty prices a contiguous gap run and supplies the gap segment.
type GapPenalty interface {
	// Cost returns the penalty for a gap run of the given length.
	// Cost(0) is 0.
	Cost(length int) float64

	// Gap returns the designated gap segment used to pad alignments.
	Gap() phonetics.Segment
}

// NullGapPenalty charges no length-dependent cost; gap columns are priced
// purely by the comparator against the gap segment.
type NullGapPenalty struct {
	gap phonetics.Segment
}

// NewNullGapPenalty creates a null gap penalty around the gap segment.
func NewNullGapPenalty(gap phonetics.Segment) *NullGapPenalty {
	return &NullGapPenalty{gap: gap}
}

// Cost implements GapPenalty; always 0.
func (p *NullGapPenalty) Cost(int) float64 { return 0 }

// Gap implements GapPenalty.
func (p *NullGapPenalty) Gap() phonetics.Segment { return p.gap }

// ConstantGapPenalty charges a fixed cost per gap move, independent of the
// run length.
type ConstantGapPenalty struct {
	gap     phonetics.Segment
	penalty float64
}

// NewConstantGapPenalty creates a constant gap penalty.
func NewConstantGapPenalty(gap phonetics.Segment, penalty float64) *ConstantGapPenalty {
	return &ConstantGapPenalty{gap: gap, penalty: penalty}
}

// Cost implements GapPenalty: penalty for length ≥ 1, 0 for length ≤ 0.
func (p *ConstantGapPenalty) Cost(length int) float64 {
	if length <= 0 {
		return 0
	}
	return p.penalty
}

// Gap implements GapPenalty.
func (p *ConstantGapPenalty) Gap() phonetics.Segment { return p.gap }

// ConvexGapPenalty charges open + grow·(length−1) for a run of the given
// length, so opening a run costs more than extending it when open > grow.
type ConvexGapPenalty struct {
	gap  phonetics.Segment
	open float64
	grow float64
}

// NewConvexGapPenalty creates a convex gap penalty.
func NewConvexGapPenalty(gap phonetics.Segment, open, grow float64) *ConvexGapPenalty {
	return &ConvexGapPenalty{gap: gap, open: open, grow: grow}
}

// Cost implements GapPenalty: open + grow·(length−1) for length ≥ 1,
// 0 for length ≤ 0.
func (p *ConvexGapPenalty) Cost(length int) float64 {
	if length <= 0 {
		return 0
	}
	return p.open + p.grow*float64(length-1)
}

// Gap implements GapPenalty.
func (p *ConvexGapPenalty) Gap() phonetics.Segment { return p.gap }

// Open returns the run-opening cost.
func (p *ConvexGapPenalty) Open() float64 { return p.open }

// Grow returns the per-extension cost.
func (p *ConvexGapPenalty) Grow() float64 { return p.grow }
