package phonetics_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/phonalign/phonetics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelYAML = `
features: [con, son, cnt]
symbols:
  a: [-1, 1, 1]
  m: [1, 1, -1]
  p: [1, -1, -1]
  "pʰ": [1, -1, 0]
  "#": [~, ~, ~]
`

// newTable parses the shared test model and fails the test on any error.
func newTable(t *testing.T) *phonetics.FeatureTable {
	t.Helper()
	table, err := phonetics.ParseFeatureTable([]byte(modelYAML))
	require.NoError(t, err, "test model must parse")
	return table
}

// TestDifference_Undefined verifies that NaN operands contribute zero.
func TestDifference_Undefined(t *testing.T) {
	assert.Equal(t, 0.0, phonetics.Difference(math.NaN(), 1), "NaN left operand must be zero")
	assert.Equal(t, 0.0, phonetics.Difference(1, math.NaN()), "NaN right operand must be zero")
	assert.Equal(t, 2.0, phonetics.Difference(-1, 1), "defined values use absolute difference")
}

// TestSegment_Equal verifies value-based equality over feature vectors,
// with NaN positions comparing equal to each other.
func TestSegment_Equal(t *testing.T) {
	a := phonetics.Segment{Symbol: "a", Features: []float64{1, math.NaN()}}
	b := phonetics.Segment{Symbol: "b", Features: []float64{1, math.NaN()}}
	c := phonetics.Segment{Symbol: "c", Features: []float64{1, 0}}

	assert.True(t, a.Equal(b), "identical vectors are equal regardless of symbol")
	assert.False(t, a.Equal(c), "NaN does not equal a defined value")
	assert.False(t, a.Equal(phonetics.Segment{Features: []float64{1}}), "length mismatch is unequal")
}

// TestFeatureTable_Basics exercises counts, name lookup and symbol access.
func TestFeatureTable_Basics(t *testing.T) {
	table := newTable(t)

	assert.Equal(t, 3, table.FeatureCount())

	i, ok := table.FeatureIndex("son")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = table.FeatureIndex("nas")
	assert.False(t, ok, "unknown feature name must report not-found")

	seg, err := table.Segment("m")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, -1}, seg.Features)

	_, err = table.Segment("q")
	assert.ErrorIs(t, err, phonetics.ErrUnknownSymbol)
}

// TestFeatureTable_AddRejectsBadVector verifies the vector-length invariant.
func TestFeatureTable_AddRejectsBadVector(t *testing.T) {
	table, err := phonetics.NewFeatureTable([]string{"x", "y"})
	require.NoError(t, err)

	assert.ErrorIs(t, table.Add("a", []float64{1}), phonetics.ErrBadVector)
	assert.ErrorIs(t, table.Add("", []float64{1, 2}), phonetics.ErrEmptyText)
	assert.NoError(t, table.Add("a", []float64{1, 2}))
}

// TestNewFeatureTable_Invalid verifies duplicate and empty feature names error.
func TestNewFeatureTable_Invalid(t *testing.T) {
	_, err := phonetics.NewFeatureTable(nil)
	assert.ErrorIs(t, err, phonetics.ErrBadModel, "empty feature list")

	_, err = phonetics.NewFeatureTable([]string{"a", "a"})
	assert.ErrorIs(t, err, phonetics.ErrBadModel, "duplicate feature name")
}

// TestParseFeatureTable_UndefinedValues verifies that null YAML entries
// decode to NaN feature values.
func TestParseFeatureTable_UndefinedValues(t *testing.T) {
	table := newTable(t)

	anchor, err := table.Segment("#")
	require.NoError(t, err)
	for _, v := range anchor.Features {
		assert.True(t, math.IsNaN(v), "anchor features must be undefined")
	}
}

// TestSequenceFactory_LongestMatch verifies greedy multi-rune tokenization.
func TestSequenceFactory_LongestMatch(t *testing.T) {
	factory := phonetics.NewSequenceFactory(newTable(t))

	seq, err := factory.ToSequence("#apʰam")
	require.NoError(t, err)
	require.Equal(t, 5, seq.Len())
	assert.Equal(t, "pʰ", seq.At(2).Symbol, "pʰ must win over its prefix p")
}

// TestSequenceFactory_WhitespaceSegmentation verifies explicit segmentation.
func TestSequenceFactory_WhitespaceSegmentation(t *testing.T) {
	factory := phonetics.NewSequenceFactory(newTable(t))

	seq, err := factory.ToSequence("# a m a")
	require.NoError(t, err)
	assert.Equal(t, 4, seq.Len())
	assert.Equal(t, "#ama", seq.String())
}

// TestSequenceFactory_EmptyInput verifies that empty text yields an empty
// sequence rather than an error; zero-length inputs are valid for alignment.
func TestSequenceFactory_EmptyInput(t *testing.T) {
	factory := phonetics.NewSequenceFactory(newTable(t))

	seq, err := factory.ToSequence("   ")
	require.NoError(t, err)
	assert.Equal(t, 0, seq.Len())
}

// TestSequenceFactory_UnknownSymbol verifies the tokenizer error path.
func TestSequenceFactory_UnknownSymbol(t *testing.T) {
	factory := phonetics.NewSequenceFactory(newTable(t))

	_, err := factory.ToSequence("#az")
	assert.ErrorIs(t, err, phonetics.ErrUnknownSymbol)

	_, err = factory.ToSegment("")
	assert.ErrorIs(t, err, phonetics.ErrEmptyText)
}

// TestSequence_Equal verifies element-wise sequence equality.
func TestSequence_Equal(t *testing.T) {
	factory := phonetics.NewSequenceFactory(newTable(t))

	a, err := factory.ToSequence("#ama")
	require.NoError(t, err)
	b, err := factory.ToSequence("# a m a")
	require.NoError(t, err)
	c, err := factory.ToSequence("#am")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
