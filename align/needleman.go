// Package align - the Needleman–Wunsch global alignment algorithm.
//
// Algorithm outline (full matrix):
//  1. Let n = left.Len(), m = right.Len(). Allocate an (n+1)×(m+1) arena of
//     cells, each holding a score, a predecessor-direction bitmask and the
//     vertical/horizontal gap run length ending at the cell.
//  2. Initialize: cell (0,0) holds the identity element 0; the first row
//     and column accumulate gap costs for increasing run lengths.
//  3. For each (i,j) with i,j ≥ 1 the Optimization's predicate selects the
//     best of three candidates:
//     diag = S[i-1][j-1] + comparator(left, right, i-1, j-1)
//     up   = S[i-1][j]   + comparator(left, gap, i-1, 0) + penalty(vRun)
//     left = S[i][j-1]   + comparator(right, gap, j-1, 0) + penalty(hRun)
//     Ties are recorded, not discarded: every optimal predecessor is kept
//     in the cell's direction mask.
//  4. Traceback from (n,m) follows every recorded predecessor back to the
//     origin, emitting one alignment per distinct path.
//
// Complexity: O(n·m) time and space for the fill; traceback is linear per
// alignment and worst-case exponential in the number of ties.
package align

import (
	"sort"

	"github.com/katalvlaran/phonalign/phonetics"
)

// Predecessor direction flags stored per arena cell.
const (
	dirDiag uint8 = 1 << iota
	dirUp
	dirLeft
)

// arena is the DP table stored as flat slices indexed by (i,j).
// Traceback walks it by index, never by pointer.
type arena struct {
	cols  int
	score []float64
	dirs  []uint8
	vRun  []int32 // vertical gap run ending at the cell, valid when dirUp set
	hRun  []int32 // horizontal gap run ending at the cell, valid when dirLeft set
}

func (ar *arena) at(i, j int) int { return i*ar.cols + j }

// NeedlemanWunsch aligns left with right under the given comparator, gap
// penalty and optimization direction, returning every score-optimal
// alignment together with the full score table.
//
// A zero-length sequence on either side degenerates to an all-gap
// alignment against the other sequence, priced purely by gap costs; this
// is not an error.
//
// Errors: ErrNilComparator, ErrNilGapPenalty, ErrNilOptimization.
func NeedlemanWunsch(
	left, right phonetics.Sequence,
	cmp Comparator,
	penalty GapPenalty,
	opt Optimization,
) (*Result, error) {
	if cmp == nil {
		return nil, ErrNilComparator
	}
	if penalty == nil {
		return nil, ErrNilGapPenalty
	}
	if opt == nil {
		return nil, ErrNilOptimization
	}

	n, m := left.Len(), right.Len()
	gapSeq := phonetics.Sequence{penalty.Gap()}

	ar := &arena{
		cols:  m + 1,
		score: make([]float64, (n+1)*(m+1)),
		dirs:  make([]uint8, (n+1)*(m+1)),
		vRun:  make([]int32, (n+1)*(m+1)),
		hRun:  make([]int32, (n+1)*(m+1)),
	}

	// First row and column: pure gap runs of increasing length.
	var i, j int
	for j = 1; j <= m; j++ {
		k := ar.at(0, j)
		ar.score[k] = ar.score[ar.at(0, j-1)] + cmp.Score(right, gapSeq, j-1, 0) + penalty.Cost(j)
		ar.dirs[k] = dirLeft
		ar.hRun[k] = int32(j)
	}
	for i = 1; i <= n; i++ {
		k := ar.at(i, 0)
		ar.score[k] = ar.score[ar.at(i-1, 0)] + cmp.Score(left, gapSeq, i-1, 0) + penalty.Cost(i)
		ar.dirs[k] = dirUp
		ar.vRun[k] = int32(i)
	}

	// Fill.
	for i = 1; i <= n; i++ {
		for j = 1; j <= m; j++ {
			diag := ar.score[ar.at(i-1, j-1)] + cmp.Score(left, right, i-1, j-1)

			vLen := int32(1)
			if ar.dirs[ar.at(i-1, j)]&dirUp != 0 {
				vLen = ar.vRun[ar.at(i-1, j)] + 1
			}
			up := ar.score[ar.at(i-1, j)] + cmp.Score(left, gapSeq, i-1, 0) + penalty.Cost(int(vLen))

			hLen := int32(1)
			if ar.dirs[ar.at(i, j-1)]&dirLeft != 0 {
				hLen = ar.hRun[ar.at(i, j-1)] + 1
			}
			lft := ar.score[ar.at(i, j-1)] + cmp.Score(right, gapSeq, j-1, 0) + penalty.Cost(int(hLen))

			best := diag
			if opt.Better(up, best) {
				best = up
			}
			if opt.Better(lft, best) {
				best = lft
			}

			var dirs uint8
			if diag == best {
				dirs |= dirDiag
			}
			if up == best {
				dirs |= dirUp
			}
			if lft == best {
				dirs |= dirLeft
			}

			k := ar.at(i, j)
			ar.score[k] = best
			ar.dirs[k] = dirs
			ar.vRun[k] = vLen
			ar.hRun[k] = hLen
		}
	}

	alignments := traceback(ar, left, right, penalty.Gap(), n, m)
	sort.Slice(alignments, func(a, b int) bool {
		ca, cb := alignments[a].Columns(), alignments[b].Columns()
		if ca != cb {
			return ca < cb
		}
		return alignments[a].String() < alignments[b].String()
	})

	return &Result{
		left:       left,
		right:      right,
		alignments: alignments,
		score:      ar.score[ar.at(n, m)],
		table:      tableRows(ar, n, m),
	}, nil
}

// traceback enumerates every optimal path from (n,m) to the origin and
// builds one alignment per path. Paths are walked depth-first, diagonal
// predecessors before vertical before horizontal, columns collected in
// reverse and flipped on emission. Duplicate alignments (identical padded
// rows) are suppressed; within one run identical row content implies
// identical symbols, so the rendered rows serve as the dedup key.
func traceback(ar *arena, left, right phonetics.Sequence, gap phonetics.Segment, n, m int) []Alignment {
	var (
		out     []Alignment
		seen    = make(map[string]struct{})
		rowTop  []phonetics.Segment // reversed left row under construction
		rowBot  []phonetics.Segment // reversed right row under construction
		descend func(i, j int)
	)

	emit := func() {
		cols := len(rowTop)
		top := make(phonetics.Sequence, cols)
		bot := make(phonetics.Sequence, cols)
		var c int
		for c = 0; c < cols; c++ {
			top[c] = rowTop[cols-1-c]
			bot[c] = rowBot[cols-1-c]
		}
		al := Alignment{rows: []phonetics.Sequence{top, bot}}
		key := al.String()
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, al)
	}

	descend = func(i, j int) {
		if i == 0 && j == 0 {
			emit()
			return
		}
		dirs := ar.dirs[ar.at(i, j)]
		if dirs&dirDiag != 0 {
			rowTop = append(rowTop, left[i-1])
			rowBot = append(rowBot, right[j-1])
			descend(i-1, j-1)
			rowTop = rowTop[:len(rowTop)-1]
			rowBot = rowBot[:len(rowBot)-1]
		}
		if dirs&dirUp != 0 {
			rowTop = append(rowTop, left[i-1])
			rowBot = append(rowBot, gap)
			descend(i-1, j)
			rowTop = rowTop[:len(rowTop)-1]
			rowBot = rowBot[:len(rowBot)-1]
		}
		if dirs&dirLeft != 0 {
			rowTop = append(rowTop, gap)
			rowBot = append(rowBot, right[j-1])
			descend(i, j-1)
			rowTop = rowTop[:len(rowTop)-1]
			rowBot = rowBot[:len(rowBot)-1]
		}
	}

	descend(n, m)
	return out
}

// tableRows copies the arena scores into row-major [][]float64 form.
func tableRows(ar *arena, n, m int) [][]float64 {
	rows := make([][]float64, n+1)
	var i int
	for i = 0; i <= n; i++ {
		rows[i] = append([]float64(nil), ar.score[ar.at(i, 0):ar.at(i, m+1)]...)
	}
	return rows
}

// ScoreAlignment prices a two-row alignment under the engine's gap
// semantics: diagonal columns cost comparator(left, right, i, j) on the
// gap-stripped positions; gap columns cost comparator(consumed, gap) plus
// the penalty for the gap run length ending at the column. Gap columns
// are recognized by segment equality with penalty.Gap().
//
// Useful to verify score consistency between an alignment and the DP
// table's final cell.
func ScoreAlignment(a Alignment, cmp Comparator, penalty GapPenalty) float64 {
	gap := penalty.Gap()
	gapSeq := phonetics.Sequence{gap}

	// Recover the unpadded input sequences.
	var leftSeq, rightSeq phonetics.Sequence
	var c int
	for c = 0; c < a.Columns(); c++ {
		if !a.Get(0, c).Equal(gap) {
			leftSeq = append(leftSeq, a.Get(0, c))
		}
		if !a.Get(1, c).Equal(gap) {
			rightSeq = append(rightSeq, a.Get(1, c))
		}
	}

	var score float64
	var i, j, vRun, hRun int
	for c = 0; c < a.Columns(); c++ {
		topGap := a.Get(0, c).Equal(gap)
		botGap := a.Get(1, c).Equal(gap)
		switch {
		case topGap && botGap:
			// Degenerate all-gap column; contributes nothing.
		case botGap:
			vRun++
			hRun = 0
			score += cmp.Score(leftSeq, gapSeq, i, 0) + penalty.Cost(vRun)
			i++
		case topGap:
			hRun++
			vRun = 0
			score += cmp.Score(rightSeq, gapSeq, j, 0) + penalty.Cost(hRun)
			j++
		default:
			vRun, hRun = 0, 0
			score += cmp.Score(leftSeq, rightSeq, i, j)
			i++
			j++
		}
	}
	return score
}
