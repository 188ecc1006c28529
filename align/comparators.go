// Package align - position-pair comparators.
//
// A Comparator scores the pairing of position i of the left sequence with
// position j of the right sequence.  Scores must be finite and direction-
// consistent: always costs when minimizing, always similarities when
// maximizing.
package align

import "github.com/katalvlaran/phonalign/phonetics"

// Comparator computes a score for aligning left[i] with right[j].
// Valid only for 0 ≤ i < left.Len() and 0 ≤ j < right.Len().
type Comparator interface {
	Score(left, right phonetics.Sequence, i, j int) float64
}

// ComparatorFunc adapts a plain function to the Comparator interface.
type ComparatorFunc func(left, right phonetics.Sequence, i, j int) float64

// Score calls f.
func (f ComparatorFunc) Score(left, right phonetics.Sequence, i, j int) float64 {
	return f(left, right, i, j)
}

// FeaturePair names two correlated features of a sparse comparator by
// their vector indices. A negative index marks an unresolved feature name;
// such pairs are inert and contribute nothing.
type FeaturePair struct {
	A, B int
}

// LinearComparator scores a position pair as the weighted sum of
// per-feature differences:
//
//	score = Σ_k weights[k] · model.Difference(left[i][k], right[j][k])
//
// Weights beyond either vector's length are ignored.
type LinearComparator struct {
	model   phonetics.FeatureModel
	weights []float64
}

// NewLinearComparator creates a linear weight comparator. The weight slice
// is copied.
func NewLinearComparator(model phonetics.FeatureModel, weights []float64) *LinearComparator {
	return &LinearComparator{
		model:   model,
		weights: append([]float64(nil), weights...),
	}
}

// Weights returns a copy of the comparator's weight vector.
func (c *LinearComparator) Weights() []float64 {
	return append([]float64(nil), c.weights...)
}

// Score implements Comparator.
//
// Complexity: O(f) per call, f = feature count.
func (c *LinearComparator) Score(left, right phonetics.Sequence, i, j int) float64 {
	lF := left[i].Features
	rF := right[j].Features
	var score float64
	var k int
	for k = 0; k < len(c.weights) && k < len(lF) && k < len(rF); k++ {
		score += c.weights[k] * c.model.Difference(lF[k], rF[k])
	}
	return score
}

// SparseComparator extends LinearComparator with pairwise correction terms
// for declared correlated feature pairs:
//
//	score = linear + Σ_(a,b) w_ab · (diff(l[a], r[b]) + diff(l[b], r[a]))
//
// Pairs holding a negative index are inert.
type SparseComparator struct {
	linear *LinearComparator
	pairs  []FeaturePair
	sparse []float64 // one weight per pair, same order
}

// NewSparseComparator creates a sparse-matrix comparator. pairs and sparse
// must have equal length; extra entries on either side are ignored.
func NewSparseComparator(
	model phonetics.FeatureModel,
	weights []float64,
	pairs []FeaturePair,
	sparse []float64,
) *SparseComparator {
	return &SparseComparator{
		linear: NewLinearComparator(model, weights),
		pairs:  append([]FeaturePair(nil), pairs...),
		sparse: append([]float64(nil), sparse...),
	}
}

// Weights returns a copy of the underlying linear weight vector.
func (c *SparseComparator) Weights() []float64 {
	return c.linear.Weights()
}

// Pairs returns a copy of the declared correlated feature pairs.
func (c *SparseComparator) Pairs() []FeaturePair {
	return append([]FeaturePair(nil), c.pairs...)
}

// SparseWeights returns a copy of the per-pair correction weights.
func (c *SparseComparator) SparseWeights() []float64 {
	return append([]float64(nil), c.sparse...)
}

// Score implements Comparator.
func (c *SparseComparator) Score(left, right phonetics.Sequence, i, j int) float64 {
	score := c.linear.Score(left, right, i, j)
	lF := left[i].Features
	rF := right[j].Features
	model := c.linear.model
	var k int
	for k = 0; k < len(c.pairs) && k < len(c.sparse); k++ {
		p := c.pairs[k]
		if p.A < 0 || p.B < 0 || p.A >= len(lF) || p.B >= len(rF) || p.B >= len(lF) || p.A >= len(rF) {
			continue
		}
		w := c.sparse[k]
		score += w * (model.Difference(lF[p.A], rF[p.B]) + model.Difference(lF[p.B], rF[p.A]))
	}
	return score
}

// ContextComparator scores a position pair together with its immediate
// neighborhood. The weight vector is split into six disjoint blocks of
// featureCount weights each, applied to the position pairs
//
//	block 0: (i-1, j)    block 3: (i, j-1)
//	block 1: (i,   j)    block 4: (i, j)
//	block 2: (i+1, j)    block 5: (i, j+1)
//
// Out-of-range neighbor positions contribute zero.
type ContextComparator struct {
	model   phonetics.FeatureModel
	weights []float64
	fSize   int // features per block
}

// NewContextComparator creates a context-aware comparator. The weight
// vector should hold 6 × featureCount entries; it is copied.
func NewContextComparator(model phonetics.FeatureModel, weights []float64) *ContextComparator {
	return &ContextComparator{
		model:   model,
		weights: append([]float64(nil), weights...),
		fSize:   len(weights) / 6,
	}
}

// Score implements Comparator.
//
// Complexity: O(f) per call with six weighted block evaluations.
func (c *ContextComparator) Score(left, right phonetics.Sequence, i, j int) float64 {
	var score float64
	score += c.block(0, left, right, i-1, j)
	score += c.block(1, left, right, i, j)
	score += c.block(2, left, right, i+1, j)
	score += c.block(3, left, right, i, j-1)
	score += c.block(4, left, right, i, j)
	score += c.block(5, left, right, i, j+1)
	return score
}

// block applies one weight block to positions (i, j), or returns zero when
// either position is out of range.
func (c *ContextComparator) block(n int, left, right phonetics.Sequence, i, j int) float64 {
	if i < 0 || j < 0 || i >= len(left) || j >= len(right) {
		return 0
	}
	lF := left[i].Features
	rF := right[j].Features
	start := n * c.fSize
	var score float64
	var k int
	for k = 0; k < c.fSize && k < len(lF) && k < len(rF); k++ {
		score += c.weights[start+k] * c.model.Difference(lF[k], rF[k])
	}
	return score
}
