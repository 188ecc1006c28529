// Package align computes optimal global alignments between pairs of
// phonetic sequences, with pluggable scoring, gap models and optimization
// direction.
//
// 🚀 What is global alignment?
//
//	Given two sequences, a global alignment pads both with gap segments so
//	they share one column count, pairing each column's segments.  The
//	Needleman–Wunsch dynamic program finds the padding with the optimal
//	total score under a Comparator (position-pair scoring) and a GapPenalty
//	(cost of contiguous gap runs).
//
// ✨ Key features:
//   - full-matrix mode (NeedlemanWunsch): exact O(N·M) time & memory,
//     enumerates every score-optimal alignment (ties preserved)
//   - linear-space mode (Hirschberg): O(min(N,M)) memory, single alignment
//   - direction-agnostic: Minimize costs or Maximize similarities
//   - comparators: linear per-feature weights, sparse feature correlations,
//     context-aware six-block scoring
//   - gap penalties: null, constant, convex (open + grow·(len−1))
//
// ⚙️ Usage:
//
//	cmp := align.NewLinearComparator(model, weights)
//	gap := align.NewConvexGapPenalty(gapSegment, 0.5, 0.1)
//
//	result, err := align.NeedlemanWunsch(left, right, cmp, gap, align.Minimize)
//	if err != nil { ... }
//	best := result.Alignments()[0]
//
// Gap pricing: a gap column is charged the comparator's score of the
// consumed segment against the gap segment itself, plus the penalty's cost
// for the gap run length ending at that column.  A "null" penalty therefore
// still prices gaps whenever the comparator distinguishes real segments
// from the gap segment.
//
// Performance:
//
//   - Time:   O(N·M) to fill; traceback is linear per optimal alignment
//     (worst-case exponential in the number of ties)
//   - Memory: O(N·M) (NeedlemanWunsch) or O(min(N,M)) (Hirschberg)
//
// See example_test.go for complete walkthroughs.
package align
