package calibrate_test

import (
	"fmt"

	"github.com/katalvlaran/phonalign/calibrate"
	"github.com/katalvlaran/phonalign/phonetics"
)

// ExampleCalibrator_Fitness loads a one-entry corpus and scores a
// hand-written parameter set against it.
func ExampleCalibrator_Fitness() {
	table, _ := phonetics.ParseFeatureTable([]byte(`
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
  "░": [~, 1]
`))
	factory := phonetics.NewSequenceFactory(table)
	gap, _ := factory.ToSegment("░")

	c, _ := calibrate.NewCalibrator(factory, gap, 2, nil)
	_ = c.AddSourceText("training.sdm", `ALB
SRD

# a m a p a r
# o m ░ b e r
`)

	genome := calibrate.Genome{Groups: [][]float64{{0, 0}, {1}}}
	fit, _ := c.Fitness(genome)

	fmt.Printf("%.1f\n", fit)
	// Output:
	// 1.0
}
