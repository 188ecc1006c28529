// Package align - sentinel errors and the Optimization direction.
package align

import (
	"errors"
	"math"
)

// Sentinel errors for the alignment engine.
var (
	// ErrNilComparator indicates a nil Comparator was supplied.
	ErrNilComparator = errors.New("align: comparator is nil")

	// ErrNilGapPenalty indicates a nil GapPenalty was supplied.
	ErrNilGapPenalty = errors.New("align: gap penalty is nil")

	// ErrNilOptimization indicates a nil Optimization was supplied.
	ErrNilOptimization = errors.New("align: optimization is nil")

	// ErrRaggedRows indicates alignment rows of unequal column counts.
	ErrRaggedRows = errors.New("align: alignment rows have unequal lengths")
)

// Optimization encapsulates whether the engine minimizes or maximizes.
//
// Better reports whether x is at least as optimal as y; ties return true,
// which is what lets the engine record multiple predecessors per cell.
// Bound is the worst representable value for the direction and seeds
// comparisons before any candidate has been seen.
type Optimization interface {
	// Better reports whether x is at least as optimal as y.
	Better(x, y float64) bool

	// Bound returns the direction's worst value (+Inf or -Inf).
	Bound() float64
}

// Minimize treats scores as costs: smaller is better.
var Minimize Optimization = minimize{}

// Maximize treats scores as similarities: larger is better.
var Maximize Optimization = maximize{}

type minimize struct{}

func (minimize) Better(x, y float64) bool { return x <= y }
func (minimize) Bound() float64           { return math.Inf(1) }

type maximize struct{}

func (maximize) Better(x, y float64) bool { return x >= y }
func (maximize) Bound() float64           { return math.Inf(-1) }
