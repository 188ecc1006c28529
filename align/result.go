// Package align - the AlignmentResult container.
package align

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/phonalign/phonetics"
)

// Result holds the outcome of an alignment: the two input sequences, every
// tied optimal alignment, the achieved score, and (for the full-matrix
// algorithm) the dynamic-programming score table.
//
// Invariant: every alignment in the set achieves the same optimal score.
type Result struct {
	left, right phonetics.Sequence
	alignments  []Alignment
	score       float64
	table       [][]float64 // nil for linear-space runs
}

// Left returns the first input sequence.
func (r *Result) Left() phonetics.Sequence { return r.left }

// Right returns the second input sequence.
func (r *Result) Right() phonetics.Sequence { return r.right }

// Score returns the optimal score shared by all returned alignments.
func (r *Result) Score() float64 { return r.score }

// Alignments returns every score-optimal alignment, duplicates suppressed,
// in deterministic order: fewest columns first, then lexicographically by
// rendered rows. Callers must not mutate the returned slice.
func (r *Result) Alignments() []Alignment { return r.alignments }

// Contains reports whether the result holds an alignment structurally
// equal to a.
func (r *Result) Contains(a Alignment) bool {
	for _, own := range r.alignments {
		if own.Equal(a) {
			return true
		}
	}
	return false
}

// TableRows exposes the score table row by row for external formatting.
// Row 0 and column 0 are the gap-initialization lanes. Returns nil when
// the algorithm did not retain a table (Hirschberg).
func (r *Result) TableRows() [][]float64 {
	if r.table == nil {
		return nil
	}
	rows := make([][]float64, len(r.table))
	var i int
	for i = 0; i < len(r.table); i++ {
		rows[i] = append([]float64(nil), r.table[i]...)
	}
	return rows
}

// FormattedTable renders the score table for diagnostics, one row per
// line, cells formatted to three decimals and separated by tabs.
// Returns "" when no table was retained.
func (r *Result) FormattedTable() string {
	if r.table == nil {
		return ""
	}
	var sb strings.Builder
	for _, row := range r.table {
		for j, v := range row {
			if j > 0 {
				sb.WriteByte('\t')
			}
			fmt.Fprintf(&sb, "%.3f", v)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
