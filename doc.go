// Package phonalign aligns pairs of phonetic transcriptions and calibrates
// the scoring parameters that drive those alignments.
//
// 🚀 What is phonalign?
//
//	A pure-Go toolkit for symbolic sequence alignment in historical and
//	comparative linguistics:
//		• Phonetic primitives: feature models, segments, sequences
//		• Global alignment: Needleman–Wunsch with full tie enumeration
//		• Linear-space alignment: Hirschberg divide-and-conquer
//		• Pluggable scoring: linear, sparse-correlated and context comparators
//		• Gap models: null, constant and convex penalties
//		• Calibration: evolutionary search over comparator/gap parameters
//		  against human-curated reference alignments
//
// ✨ Why choose phonalign?
//
//   - Deterministic – seeded randomness everywhere, reproducible searches
//   - Tie-aware – every score-optimal alignment is recovered, not just one
//   - Direction-agnostic – minimize costs or maximize similarities
//   - Parallel where it pays – fitness evaluation fans out across workers
//
// Everything is organized under three subpackages plus a CLI:
//
//	phonetics/ — feature models, segments, sequences and the sequence factory
//	align/     — comparators, gap penalties and the alignment algorithms
//	calibrate/ — training corpora, genomes and the evolutionary search
//	cmd/       — the phonalign command-line driver
//
// Quick ASCII example:
//
//	# a m a p a r
//	# o m _ b e r
//
//	two cognates aligned column by column, gaps shown as "_".
//
// Dive into the package docs for contracts, complexity notes and error
// semantics; every package ships runnable examples.
//
//	go get github.com/katalvlaran/phonalign
package phonalign
