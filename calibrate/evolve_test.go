package calibrate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/phonalign/calibrate"
	"github.com/katalvlaran/phonalign/phonetics"
)

// unitGenome decodes to unit feature weights and a convex(0,0) penalty:
// the configuration the placeModelYAML scenarios were designed around.
func unitGenome() calibrate.Genome {
	return calibrate.Genome{Groups: [][]float64{{0, 0}, {1}}}
}

// TestNewCalibrator_Errors exercises the construction error paths.
func TestNewCalibrator_Errors(t *testing.T) {
	table, err := phonetics.ParseFeatureTable([]byte(placeModelYAML))
	require.NoError(t, err)
	factory := phonetics.NewSequenceFactory(table)
	gap, err := factory.ToSegment("░")
	require.NoError(t, err)

	_, err = calibrate.NewCalibrator(nil, gap, 2, nil)
	assert.ErrorIs(t, err, calibrate.ErrNilFactory)

	_, err = calibrate.NewCalibrator(factory, gap, 1, nil)
	assert.ErrorIs(t, err, calibrate.ErrBadExtraParams)

	_, err = calibrate.NewCalibrator(factory, gap, 2, nil,
		calibrate.WithFixedWeight(1.0, 9))
	assert.ErrorIs(t, err, calibrate.ErrBadOptions)
}

// TestFitness_MatchedAndUnmatched scores a two-group corpus where the
// unit genome reproduces exactly one group's reference: the first group
// names the true optimum, the second puts the gap one column too early.
func TestFitness_MatchedAndUnmatched(t *testing.T) {
	c := newPlaceCalibrator(t, nil)
	require.NoError(t, c.AddSourceText("pairs.sdm", `ALB
SRD

# a m a p a r
# o m ░ b e r

# a m a p a r
# o m b ░ e r
`))

	fit, err := c.Fitness(unitGenome())
	require.NoError(t, err)
	assert.Equal(t, 0.5, fit)
}

// TestFitness_EquivalentAlternatives counts a group as matched when any
// of its pipe-separated alternatives is among the computed optima.
func TestFitness_EquivalentAlternatives(t *testing.T) {
	c := newPlaceCalibrator(t, nil)
	require.NoError(t, c.AddSourceText("alts.sdm", `ALB
SRD

# a m a p a r | # a m a p a r
# o m b ░ e r | # o m ░ b e r
`))

	fit, err := c.Fitness(unitGenome())
	require.NoError(t, err)
	assert.Equal(t, 1.0, fit, "second alternative is the true optimum")
}

// TestFitness_ZeroEligibleGroups returns exactly 0 when no group has at
// least two rows, instead of dividing by zero.
func TestFitness_ZeroEligibleGroups(t *testing.T) {
	c := newPlaceCalibrator(t, nil)
	require.NoError(t, c.AddSourceText("single.sdm", `ALB

# a m a

# o m e
`))

	fit, err := c.Fitness(unitGenome())
	require.NoError(t, err)
	assert.Equal(t, 0.0, fit)
}

// identityModelYAML makes every achievable gap run at least break even
// (run cost is l·(4-l) at the harshest in-bounds penalty for runs of
// length l), so aligning a word with itself is optimal for every genome
// the search can produce.
const identityModelYAML = `
features: [place, gap]
symbols:
  "#": [0, 0]
  a: [10, 0]
  b: [30, 0]
  "░": [~, 5]
`

// newIdentityCalibrator builds a calibrator whose corpus is a word
// aligned with itself: fitness is 1 for every in-bounds genome.
func newIdentityCalibrator(t *testing.T) *calibrate.Calibrator {
	t.Helper()
	table, err := phonetics.ParseFeatureTable([]byte(identityModelYAML))
	require.NoError(t, err)
	factory := phonetics.NewSequenceFactory(table)
	gap, err := factory.ToSegment("░")
	require.NoError(t, err)

	c, err := calibrate.NewCalibrator(factory, gap, 2, nil,
		calibrate.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	require.NoError(t, c.AddSourceText("identity.sdm", `ALB
SRD

# a b a
# a b a
`))
	return c
}

// smallOptions keeps evolution runs fast in tests.
func smallOptions() calibrate.Options {
	opts := calibrate.DefaultOptions()
	opts.PopulationSize = 8
	opts.Elite = 2
	opts.SteadyGenerations = 2
	opts.MaxGenerations = 5
	opts.Workers = 2
	opts.Seed = 7
	return opts
}

// TestCalibrate_ReachesPerfectFitness runs the search on the identity
// corpus and expects the best fitness to be exactly 1.
func TestCalibrate_ReachesPerfectFitness(t *testing.T) {
	c := newIdentityCalibrator(t)

	best, fit, err := c.Calibrate(context.Background(), smallOptions())
	require.NoError(t, err)
	assert.Equal(t, 1.0, fit)
	require.Len(t, best.Groups, 2)
	assert.Len(t, best.Groups[0], 2)
	assert.Len(t, best.Groups[1], 1)
}

// TestCalibrate_Deterministic checks that the same seed reproduces the
// same trajectory: identical best genome and fitness across runs.
func TestCalibrate_Deterministic(t *testing.T) {
	opts := smallOptions()

	first, firstFit, err := newIdentityCalibrator(t).Calibrate(context.Background(), opts)
	require.NoError(t, err)
	second, secondFit, err := newIdentityCalibrator(t).Calibrate(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, firstFit, secondFit)
}

// TestCalibrate_BadOptions rejects inconsistent search options.
func TestCalibrate_BadOptions(t *testing.T) {
	c := newIdentityCalibrator(t)

	opts := smallOptions()
	opts.Elite = opts.PopulationSize + 1
	_, _, err := c.Calibrate(context.Background(), opts)
	assert.ErrorIs(t, err, calibrate.ErrBadOptions)
}

// TestCalibrate_CancelledContext stops the search when the context is
// already done.
func TestCalibrate_CancelledContext(t *testing.T) {
	c := newIdentityCalibrator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := c.Calibrate(ctx, smallOptions())
	assert.ErrorIs(t, err, context.Canceled)
}
