package calibrate_test

import (
	"testing"

	"github.com/katalvlaran/phonalign/calibrate"
	"github.com/katalvlaran/phonalign/phonetics"
)

// benchCalibrator builds a calibrator over a few cognate groups sized
// like real training entries.
func benchCalibrator(b *testing.B) *calibrate.Calibrator {
	b.Helper()
	table, err := phonetics.ParseFeatureTable([]byte(placeModelYAML))
	if err != nil {
		b.Fatal(err)
	}
	factory := phonetics.NewSequenceFactory(table)
	gap, err := factory.ToSegment("░")
	if err != nil {
		b.Fatal(err)
	}
	c, err := calibrate.NewCalibrator(factory, gap, 2, nil)
	if err != nil {
		b.Fatal(err)
	}
	if err := c.AddSourceText("bench.sdm", `ALB
SRD

# a m a p a r
# o m ░ b e r

# a m ░ a p a r ░
# k o m b ░ e r a

# a m m a p a r ░
# k a m ░ a b r a
`); err != nil {
		b.Fatal(err)
	}
	return c
}

// BenchmarkFitness measures one full corpus evaluation: decoding the
// genome and aligning every eligible group.
func BenchmarkFitness(b *testing.B) {
	c := benchCalibrator(b)
	genome := calibrate.Genome{Groups: [][]float64{{0, 0}, {1}}}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Fitness(genome); err != nil {
			b.Fatal(err)
		}
	}
}
