// Package calibrate - sentinel errors, construction options and search
// options.
package calibrate

import (
	"errors"
	"math"

	"go.uber.org/zap"
)

// Sentinel errors for calibration setup and search configuration.
var (
	// ErrNilFactory indicates a nil sequence factory.
	ErrNilFactory = errors.New("calibrate: sequence factory is nil")

	// ErrBadExtraParams indicates fewer than two extraneous parameters;
	// the gap model needs at least open and grow.
	ErrBadExtraParams = errors.New("calibrate: extra parameter count must be at least 2")

	// ErrBadOptions indicates inconsistent search options.
	ErrBadOptions = errors.New("calibrate: invalid search options")

	// ErrBadGenome indicates a genome whose group shape does not match
	// the calibrator's genome spec.
	ErrBadGenome = errors.New("calibrate: genome shape mismatch")

	// ErrBadCorpus indicates a training file without a header block.
	ErrBadCorpus = errors.New("calibrate: training data lacks a header block")
)

// Parameter-group bounds. Gap parameters and sparse correlation weights
// may go negative; per-feature weights stay in the unit interval.
const (
	gapBoundMin, gapBoundMax       = -2.0, 2.0
	weightBoundMin, weightBoundMax = 0.0, 1.0
	sparseBoundMin, sparseBoundMax = -10.0, 10.0
)

// Default fixed-weight injection: the segment-identity feature keeps a
// constant weight of 1 at index 1 instead of being evolved.
const (
	defaultFixedWeight = 1.0
	defaultFixedIndex  = 1
)

// CalibratorOption configures a Calibrator at construction time.
type CalibratorOption func(*Calibrator)

// WithLogger attaches a logger for corpus warnings and the per-generation
// fitness trace. Default is a no-op logger.
func WithLogger(log *zap.Logger) CalibratorOption {
	return func(c *Calibrator) {
		if log != nil {
			c.log = log
		}
	}
}

// WithFixedWeight overrides the fixed feature weight and the index it is
// injected at. Passing NaN disables injection: every feature weight is
// evolved.
func WithFixedWeight(weight float64, index int) CalibratorOption {
	return func(c *Calibrator) {
		c.fixedWeight = weight
		c.fixedIndex = index
	}
}

// Options configures one calibration run.
//
// PopulationSize    – genomes per generation.
// Elite             – top-K genomes retained verbatim each generation.
// MutationProb      – per-parameter probability of Gaussian perturbation.
// MutationScale     – Gaussian sigma as a fraction of the group's span.
// SteadyGenerations – stop after this many generations without improvement.
// MaxGenerations    – hard cap on generations (safety net for flat fitness
//                     landscapes; the steady rule is the intended stop).
// Workers           – parallel fitness evaluations; 0 means GOMAXPROCS.
// Seed              – random seed; 0 selects the fixed default stream.
type Options struct {
	PopulationSize    int
	Elite             int
	MutationProb      float64
	MutationScale     float64
	SteadyGenerations int
	MaxGenerations    int
	Workers           int
	Seed              int64
}

// DefaultOptions returns search options with sensible defaults.
//
// Defaults:
//   - PopulationSize:    200
//   - Elite:             10
//   - MutationProb:      0.2
//   - MutationScale:     0.25
//   - SteadyGenerations: 50
//   - MaxGenerations:    1000
//   - Workers:           0 (GOMAXPROCS)
//   - Seed:              0 (fixed default stream)
func DefaultOptions() Options {
	return Options{
		PopulationSize:    200,
		Elite:             10,
		MutationProb:      0.2,
		MutationScale:     0.25,
		SteadyGenerations: 50,
		MaxGenerations:    1000,
		Workers:           0,
		Seed:              0,
	}
}

// validate reports whether the options are internally consistent.
func (o Options) validate() error {
	switch {
	case o.PopulationSize < 1,
		o.Elite < 1,
		o.Elite > o.PopulationSize,
		o.MutationProb < 0 || o.MutationProb > 1,
		o.MutationScale < 0 || math.IsNaN(o.MutationScale),
		o.SteadyGenerations < 1,
		o.MaxGenerations < 1,
		o.Workers < 0:
		return ErrBadOptions
	}
	return nil
}
