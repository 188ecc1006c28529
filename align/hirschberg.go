// Package align - Hirschberg's linear-space global alignment.
//
// Same recurrence and gap-pricing semantics as NeedlemanWunsch, but only
// O(min(n,m)) auxiliary space: the left sequence is split at its midpoint,
// forward and reverse last-row score scans locate the optimal crossing
// column, and the two halves are solved recursively and concatenated.
//
// Differences from the full-matrix algorithm, by design:
//   - exactly one alignment is produced; ties are broken deterministically
//     (diagonal preferred over vertical over horizontal, earliest crossing
//     column at equal split scores), consistent with the full variant's
//     traceback order
//   - no score table is retained (Result.TableRows returns nil)
//   - gap runs crossing a split boundary are priced as two separate runs;
//     for length-independent penalties (null, constant) this is exact
//   - context-aware comparators see each half as its own sequence, so
//     scores may differ near split boundaries; prefer NeedlemanWunsch for
//     context comparators
package align

import "github.com/katalvlaran/phonalign/phonetics"

// Hirschberg aligns left with right in linear space, returning a Result
// holding exactly one optimal alignment and no score table.
//
// Errors: ErrNilComparator, ErrNilGapPenalty, ErrNilOptimization.
func Hirschberg(
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

	top, bot := hirschbergRows(left, right, cmp, penalty, opt)
	al := Alignment{rows: []phonetics.Sequence{top, bot}}

	return &Result{
		left:       left,
		right:      right,
		alignments: []Alignment{al},
		score:      ScoreAlignment(al, cmp, penalty),
	}, nil
}

// hirschbergRows builds the padded rows for the optimal alignment of left
// with right by divide and conquer.
func hirschbergRows(
	left, right phonetics.Sequence,
	cmp Comparator,
	penalty GapPenalty,
	opt Optimization,
) (phonetics.Sequence, phonetics.Sequence) {
	gap := penalty.Gap()
	n, m := left.Len(), right.Len()

	switch {
	case n == 0:
		top := make(phonetics.Sequence, m)
		var j int
		for j = 0; j < m; j++ {
			top[j] = gap
		}
		return top, append(phonetics.Sequence(nil), right...)
	case m == 0:
		bot := make(phonetics.Sequence, n)
		var i int
		for i = 0; i < n; i++ {
			bot[i] = gap
		}
		return append(phonetics.Sequence(nil), left...), bot
	case n == 1:
		// A single-segment side fits in the quadratic algorithm trivially;
		// reuse it so tie-breaking matches the full variant.
		res, _ := NeedlemanWunsch(left, right, cmp, penalty, opt)
		best := res.Alignments()[0]
		return best.Row(0), best.Row(1)
	}

	mid := n / 2
	forward := lastRow(left[:mid], right, cmp, penalty, opt)
	backward := lastRow(reversed(left[mid:]), reversed(right), cmp, penalty, opt)

	// Optimal crossing column: the j minimizing (or maximizing) the sum of
	// the forward prefix score and the backward suffix score. Earliest j
	// wins at ties.
	split := 0
	bestTotal := forward[0] + backward[m]
	var j int
	for j = 1; j <= m; j++ {
		total := forward[j] + backward[m-j]
		if total != bestTotal && opt.Better(total, bestTotal) {
			split = j
			bestTotal = total
		}
	}

	topL, botL := hirschbergRows(left[:mid], right[:split], cmp, penalty, opt)
	topR, botR := hirschbergRows(left[mid:], right[split:], cmp, penalty, opt)
	return append(topL, topR...), append(botL, botR...)
}

// lastRow runs one strip of the dynamic program in O(m) space and returns
// the final row of scores: out[j] = optimal score of aligning all of left
// against right[:j]. Tie-breaking is deterministic: diagonal over
// vertical over horizontal.
func lastRow(
	left, right phonetics.Sequence,
	cmp Comparator,
	penalty GapPenalty,
	opt Optimization,
) []float64 {
	n, m := left.Len(), right.Len()
	gapSeq := phonetics.Sequence{penalty.Gap()}

	prev := make([]float64, m+1)
	cur := make([]float64, m+1)
	prevVRun := make([]int32, m+1) // gap run when the cell was reached vertically, else 0
	curVRun := make([]int32, m+1)
	curHRun := make([]int32, m+1)

	var i, j int
	for j = 1; j <= m; j++ {
		prev[j] = prev[j-1] + cmp.Score(right, gapSeq, j-1, 0) + penalty.Cost(j)
	}

	for i = 1; i <= n; i++ {
		cur[0] = prev[0] + cmp.Score(left, gapSeq, i-1, 0) + penalty.Cost(i)
		curVRun[0] = int32(i)
		curHRun[0] = 0
		for j = 1; j <= m; j++ {
			diag := prev[j-1] + cmp.Score(left, right, i-1, j-1)

			vLen := prevVRun[j] + 1
			up := prev[j] + cmp.Score(left, gapSeq, i-1, 0) + penalty.Cost(int(vLen))

			hLen := curHRun[j-1] + 1
			lft := cur[j-1] + cmp.Score(right, gapSeq, j-1, 0) + penalty.Cost(int(hLen))

			switch {
			case opt.Better(diag, up) && opt.Better(diag, lft):
				cur[j] = diag
				curVRun[j] = 0
				curHRun[j] = 0
			case opt.Better(up, lft):
				cur[j] = up
				curVRun[j] = vLen
				curHRun[j] = 0
			default:
				cur[j] = lft
				curVRun[j] = 0
				curHRun[j] = hLen
			}
		}
		prev, cur = cur, prev
		prevVRun, curVRun = curVRun, prevVRun
	}
	return prev
}

// reversed returns a reversed copy of q.
func reversed(q phonetics.Sequence) phonetics.Sequence {
	out := make(phonetics.Sequence, len(q))
	var i int
	for i = 0; i < len(q); i++ {
		out[i] = q[len(q)-1-i]
	}
	return out
}
