// Package calibrate - genome layout and the genome ↔ algorithm codec.
package calibrate

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/katalvlaran/phonalign/align"
)

// groupBounds is one genome group's shape: parameter count plus the
// closed interval every parameter lives in.
type groupBounds struct {
	size     int
	min, max float64
}

// genomeSpec is the full layout of a calibrator's search space:
// group 0 - gap parameters (open, grow, possibly more);
// group 1 - per-feature weights, excluding the fixed one;
// group 2 - sparse correlation weights, present only when the calibrator
// was given correlated feature pairs.
type genomeSpec struct {
	groups []groupBounds
}

// Genome is one candidate parameter set, laid out per the calibrator's
// genome spec.
type Genome struct {
	Groups [][]float64
}

// Clone deep-copies the genome.
func (g Genome) Clone() Genome {
	out := Genome{Groups: make([][]float64, len(g.Groups))}
	for i, grp := range g.Groups {
		out.Groups[i] = append([]float64(nil), grp...)
	}
	return out
}

// String renders the genome as pipe-separated parameter groups, five
// decimals per parameter.
func (g Genome) String() string {
	groups := make([]string, len(g.Groups))
	for i, grp := range g.Groups {
		parts := make([]string, len(grp))
		for j, v := range grp {
			parts[j] = strconv.FormatFloat(v, 'f', 5, 64)
		}
		groups[i] = strings.Join(parts, " ")
	}
	return strings.Join(groups, " | ")
}

// spec builds the genome layout from the calibrator's configuration.
func (c *Calibrator) spec() genomeSpec {
	weightCount := c.factory.Table().FeatureCount()
	if !math.IsNaN(c.fixedWeight) {
		weightCount--
	}
	s := genomeSpec{groups: []groupBounds{
		{size: c.extraParams, min: gapBoundMin, max: gapBoundMax},
		{size: weightCount, min: weightBoundMin, max: weightBoundMax},
	}}
	if len(c.pairs) > 0 {
		s.groups = append(s.groups, groupBounds{
			size: len(c.pairs), min: sparseBoundMin, max: sparseBoundMax,
		})
	}
	return s
}

// checkShape verifies that a genome matches the spec's layout.
func (s genomeSpec) checkShape(g Genome) error {
	if len(g.Groups) != len(s.groups) {
		return fmt.Errorf("%w: %d groups, want %d",
			ErrBadGenome, len(g.Groups), len(s.groups))
	}
	for i, grp := range g.Groups {
		if len(grp) != s.groups[i].size {
			return fmt.Errorf("%w: group %d has %d params, want %d",
				ErrBadGenome, i, len(grp), s.groups[i].size)
		}
	}
	return nil
}

// random draws a genome uniformly within the spec's bounds.
func (s genomeSpec) random(rng *rand.Rand) Genome {
	g := Genome{Groups: make([][]float64, len(s.groups))}
	for i, b := range s.groups {
		grp := make([]float64, b.size)
		for j := range grp {
			grp[j] = b.min + rng.Float64()*(b.max-b.min)
		}
		g.Groups[i] = grp
	}
	return g
}

// mutate returns a copy of g with each parameter independently perturbed
// with probability prob by Gaussian noise whose sigma is scale times the
// group's span, clamped back into bounds.
func (s genomeSpec) mutate(g Genome, rng *rand.Rand, prob, scale float64) Genome {
	out := g.Clone()
	for i, b := range s.groups {
		sigma := scale * (b.max - b.min)
		for j := range out.Groups[i] {
			if rng.Float64() >= prob {
				continue
			}
			v := out.Groups[i][j] + rng.NormFloat64()*sigma
			out.Groups[i][j] = math.Min(b.max, math.Max(b.min, v))
		}
	}
	return out
}

// Algorithm decodes a genome into the comparator and gap penalty it
// encodes. The fixed feature weight, when enabled, is re-inserted at its
// configured index so genomes never carry it.
//
// Errors: ErrBadGenome when the genome's shape does not match this
// calibrator's layout.
func (c *Calibrator) Algorithm(g Genome) (align.Comparator, align.GapPenalty, error) {
	if err := c.spec().checkShape(g); err != nil {
		return nil, nil, err
	}

	open, grow := g.Groups[0][0], g.Groups[0][1]
	penalty := align.NewConvexGapPenalty(c.gap, open, grow)

	weights := append([]float64(nil), g.Groups[1]...)
	if !math.IsNaN(c.fixedWeight) {
		weights = append(weights, 0)
		copy(weights[c.fixedIndex+1:], weights[c.fixedIndex:])
		weights[c.fixedIndex] = c.fixedWeight
	}

	if len(c.pairs) > 0 {
		cmp := align.NewSparseComparator(c.factory.Table(), weights, c.pairs, g.Groups[2])
		return cmp, penalty, nil
	}
	return align.NewLinearComparator(c.factory.Table(), weights), penalty, nil
}

// Encode is the inverse of Algorithm: it rebuilds the genome that decodes
// to the given comparator and penalty. Comparators of other types than
// the two Algorithm produces yield ErrBadGenome.
func (c *Calibrator) Encode(cmp align.Comparator, penalty *align.ConvexGapPenalty) (Genome, error) {
	var (
		weights []float64
		sparse  []float64
	)
	switch v := cmp.(type) {
	case *align.LinearComparator:
		weights = v.Weights()
	case *align.SparseComparator:
		weights = v.Weights()
		sparse = v.SparseWeights()
	default:
		return Genome{}, fmt.Errorf("%w: comparator type %T", ErrBadGenome, cmp)
	}

	if !math.IsNaN(c.fixedWeight) {
		if c.fixedIndex >= len(weights) {
			return Genome{}, fmt.Errorf("%w: fixed index %d out of range",
				ErrBadGenome, c.fixedIndex)
		}
		weights = append(weights[:c.fixedIndex], weights[c.fixedIndex+1:]...)
	}

	gaps := make([]float64, c.extraParams)
	gaps[0], gaps[1] = penalty.Open(), penalty.Grow()

	g := Genome{Groups: [][]float64{gaps, weights}}
	if len(c.pairs) > 0 {
		g.Groups = append(g.Groups, sparse)
	}
	if err := c.spec().checkShape(g); err != nil {
		return Genome{}, err
	}
	return g, nil
}

