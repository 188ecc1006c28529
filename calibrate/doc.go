// Package calibrate searches for alignment scoring parameters that make
// computed alignments agree with human-curated reference alignments.
//
// 🚀 How does calibration work?
//
//	The comparator weights and gap penalties of the alignment engine are
//	flattened into a Genome: ordered parameter groups with fixed sizes and
//	bounds.  An evolutionary loop evaluates each genome's fitness — the
//	fraction of training word pairs whose computed alignment matches one
//	of the pair's acceptable reference alignments — keeps the elite,
//	mutates parameters with Gaussian noise, and stops once the best
//	fitness has been steady for a configured number of generations.
//
// ✨ Key pieces:
//   - Source / Group — reference alignments parsed from SDM training files
//   - Genome — parameter groups, plus the codec to and from concrete
//     comparators and gap penalties (Algorithm / Encode)
//   - Calibrator — owns the corpus and drives the search
//
// ⚙️ Usage:
//
//	cal, err := calibrate.NewCalibrator(factory, gapSeg, 2, correlated)
//	cal.AddSources("training/synthetic.sdm", "training/che_bcb.sdm")
//
//	best, fitness, err := cal.Calibrate(ctx, calibrate.DefaultOptions())
//	cmp, penalty, _ := cal.Algorithm(best)
//
// Determinism: the search threads one seeded random source through
// initialization and mutation (seed 0 selects a fixed default), so equal
// seeds reproduce equal results.  Fitness evaluations are pure functions
// of read-only state and run in parallel within each generation; the
// stopping rule itself remains stochastic across seeds.
//
// Concurrency: the corpus and feature model are loaded before the search
// and never mutated afterwards; parallel fitness workers share them
// read-only, so no locking is involved. Population structures are owned
// by the loop's controlling goroutine between generation barriers.
package calibrate
