package align_test

import (
	"testing"

	"github.com/katalvlaran/phonalign/align"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHirschberg_NilArguments verifies the sentinel error paths.
func TestHirschberg_NilArguments(t *testing.T) {
	f := newIntegerFixture(t)
	left := f.seq(t, "#a")

	_, err := align.Hirschberg(left, left, nil, f.penalty, align.Minimize)
	assert.ErrorIs(t, err, align.ErrNilComparator)

	_, err = align.Hirschberg(left, left, f.cmp, nil, align.Minimize)
	assert.ErrorIs(t, err, align.ErrNilGapPenalty)

	_, err = align.Hirschberg(left, left, f.cmp, f.penalty, nil)
	assert.ErrorIs(t, err, align.ErrNilOptimization)
}

// TestHirschberg_MatchesNeedlemanWunschScore verifies that the linear-space
// variant reaches the full-matrix optimum on the reference word pairs and
// produces an alignment of the optimal shape.
func TestHirschberg_MatchesNeedlemanWunschScore(t *testing.T) {
	f := newIntegerFixture(t)

	pairs := []struct {
		left, right string
	}{
		{"#amapar", "#omber"},
		{"#amapar", "#kombera"},
		{"#ammapar", "#kamabra"},
	}

	for _, p := range pairs {
		left, right := f.seq(t, p.left), f.seq(t, p.right)

		full, err := align.NeedlemanWunsch(left, right, f.cmp, f.penalty, align.Minimize)
		require.NoError(t, err)

		linear, err := align.Hirschberg(left, right, f.cmp, f.penalty, align.Minimize)
		require.NoError(t, err)

		assert.Equal(t, full.Score(), linear.Score(), "%s vs %s", p.left, p.right)
		require.Len(t, linear.Alignments(), 1, "exactly one alignment")
		assert.Equal(t,
			full.Alignments()[0].Columns(),
			linear.Alignments()[0].Columns(),
			"%s vs %s:\n%s", p.left, p.right, linear.Alignments()[0],
		)
	}
}

// TestHirschberg_SingleAlignmentPricedConsistently verifies that the
// returned alignment re-prices to the reported score.
func TestHirschberg_SingleAlignmentPricedConsistently(t *testing.T) {
	f := newIntegerFixture(t)

	result, err := align.Hirschberg(
		f.seq(t, "#ammapar"), f.seq(t, "#kamabra"),
		f.cmp, f.penalty, align.Minimize,
	)
	require.NoError(t, err)

	al := result.Alignments()[0]
	assert.Equal(t, result.Score(), align.ScoreAlignment(al, f.cmp, f.penalty))
	assert.Nil(t, result.TableRows(), "linear-space runs retain no table")
	assert.Empty(t, result.FormattedTable())
}

// TestHirschberg_EmptySide verifies the all-gap degenerate cases.
func TestHirschberg_EmptySide(t *testing.T) {
	f := newIntegerFixture(t)
	right := f.seq(t, "#ama")

	result, err := align.Hirschberg(nil, right, f.cmp, f.penalty, align.Minimize)
	require.NoError(t, err)
	require.Len(t, result.Alignments(), 1)
	assert.Equal(t, 4, result.Alignments()[0].Columns())
	assert.Equal(t, 4.0, result.Score())

	result, err = align.Hirschberg(right, nil, f.cmp, f.penalty, align.Minimize)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Alignments()[0].Columns())
}
