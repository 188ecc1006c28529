package calibrate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/phonalign/calibrate"
	"github.com/katalvlaran/phonalign/phonetics"
)

// placeModelYAML is the shared calibration test model. Symbols sharing a
// vector (a/o/e, p/b) align for free; distinct classes are 10+ apart, and
// the gap symbol is one unit away on the "gap" feature, so gap moves cost
// exactly 1 under unit weights and a convex(0,0) penalty.
const placeModelYAML = `
features: [place, gap]
symbols:
  "#": [0, 0]
  a: [10, 0]
  o: [10, 0]
  e: [10, 0]
  m: [20, 0]
  p: [30, 0]
  b: [30, 0]
  r: [40, 0]
  k: [50, 0]
  "░": [~, 1]
`

// newPlaceCalibrator builds a calibrator over placeModelYAML with two gap
// parameters and a test logger.
func newPlaceCalibrator(
	t *testing.T,
	correlated [][2]string,
	opts ...calibrate.CalibratorOption,
) *calibrate.Calibrator {
	t.Helper()
	table, err := phonetics.ParseFeatureTable([]byte(placeModelYAML))
	require.NoError(t, err)
	factory := phonetics.NewSequenceFactory(table)
	gap, err := factory.ToSegment("░")
	require.NoError(t, err)

	opts = append(opts, calibrate.WithLogger(zaptest.NewLogger(t)))
	c, err := calibrate.NewCalibrator(factory, gap, 2, correlated, opts...)
	require.NoError(t, err)
	return c
}

// TestAddSourceText_ParsesBlocks checks the block format end to end:
// comments stripped, the header fixing the row count, pipe-separated
// alternatives forming one group, and the anchor prepended when missing.
func TestAddSourceText_ParsesBlocks(t *testing.T) {
	c := newPlaceCalibrator(t, nil)

	const text = `% synthetic training data
ALB
SRD

# a m a p a r | # a m a p a r
# o m ░ b e r | # o m b ░ e r

a m a   % anchor omitted on purpose
o m e
`
	require.NoError(t, c.AddSourceText("synthetic.sdm", text))
	require.Len(t, c.Sources(), 1)

	src := c.Sources()[0]
	assert.Equal(t, "synthetic.sdm", src.Path)
	require.Len(t, src.Groups, 2)

	assert.Len(t, src.Groups[0], 2, "two pipe-separated alternatives")
	assert.Len(t, src.Groups[1], 1)

	first := src.Groups[0][0]
	assert.Equal(t, 2, first.Rows())
	assert.Equal(t, 7, first.Columns())

	bare := src.Groups[1][0]
	assert.Equal(t, "#", bare.Row(0).At(0).Symbol, "anchor prepended")
	assert.Equal(t, "#", bare.Row(1).At(0).Symbol)
}

// TestAddSourceText_SkipsMalformedBlocks feeds blocks with a wrong row
// count, ragged pipe columns and an unknown symbol; each is skipped while
// the well-formed block survives.
func TestAddSourceText_SkipsMalformedBlocks(t *testing.T) {
	c := newPlaceCalibrator(t, nil)

	const text = `ALB
SRD

# a m a
# o m e
# e r a

# a m a | # a m ░ a
# o m e

# a z a
# o m e

# a m a
# o m e
`
	require.NoError(t, c.AddSourceText("messy.sdm", text))
	require.Len(t, c.Sources(), 1)
	require.Len(t, c.Sources()[0].Groups, 1, "only the last block is well formed")
}

// TestAddSourceText_NoHeader rejects input that contains no blocks at all.
func TestAddSourceText_NoHeader(t *testing.T) {
	c := newPlaceCalibrator(t, nil)

	err := c.AddSourceText("empty.sdm", "% nothing but comments\n")
	assert.ErrorIs(t, err, calibrate.ErrBadCorpus)
	assert.Empty(t, c.Sources())
}

// TestAddSources_MissingFile logs and skips unreadable paths instead of
// failing the whole load.
func TestAddSources_MissingFile(t *testing.T) {
	c := newPlaceCalibrator(t, nil)

	c.AddSources("testdata/does-not-exist.sdm")
	assert.Empty(t, c.Sources())
}
