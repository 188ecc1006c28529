package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/phonalign/align"
	"github.com/katalvlaran/phonalign/calibrate"
	"github.com/katalvlaran/phonalign/phonetics"
)

// calibrateCmd runs the evolutionary parameter search
var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Calibrate alignment parameters against training data",
	Long: `Loads the configured training sources, evolves comparator weights and
gap parameters to reproduce the reference alignments, and prints the
best parameter set with its fitness. With calibrate.report set, also
dumps per-source CSVs of the best parameters' alignments.`,
	RunE: runCalibrate,
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	factory, gap, err := cfg.newFactory()
	if err != nil {
		return err
	}

	cc := cfg.Calibrate
	if len(cc.Sources) == 0 {
		return fmt.Errorf("config %s: calibrate.sources is empty", configPath)
	}

	extra := cc.ExtraParams
	if extra == 0 {
		extra = 2
	}
	cal, err := calibrate.NewCalibrator(factory, gap, extra, cc.Correlated,
		calibrate.WithLogger(logger))
	if err != nil {
		return err
	}
	cal.AddSources(cc.Sources...)

	best, fitness, err := cal.Calibrate(cmd.Context(), searchOptions(cc))
	if err != nil {
		return err
	}

	fmt.Printf("fitness: %.5f\n", fitness)
	fmt.Printf("parameters: %s\n", best)

	if cc.Report == "" {
		return nil
	}
	cmp, penalty, err := cal.Algorithm(best)
	if err != nil {
		return err
	}
	for _, src := range cal.Sources() {
		if err := writeSourceReport(cc.Report, src, cal, cmp, penalty); err != nil {
			return err
		}
	}
	return nil
}

// searchOptions merges the config over the library defaults; zero values
// keep the default.
func searchOptions(cc calibrateConfig) calibrate.Options {
	opts := calibrate.DefaultOptions()
	if cc.Population > 0 {
		opts.PopulationSize = cc.Population
	}
	if cc.Elite > 0 {
		opts.Elite = cc.Elite
	}
	if cc.MutationProb > 0 {
		opts.MutationProb = cc.MutationProb
	}
	if cc.MutationScale > 0 {
		opts.MutationScale = cc.MutationScale
	}
	if cc.SteadyGenerations > 0 {
		opts.SteadyGenerations = cc.SteadyGenerations
	}
	if cc.MaxGenerations > 0 {
		opts.MaxGenerations = cc.MaxGenerations
	}
	opts.Workers = cc.Workers
	opts.Seed = cc.Seed
	return opts
}

// writeSourceReport dumps one training source's groups aligned under the
// best parameters: whether the computed optima hit a reference, the
// inputs, and the first computed alignment.
func writeSourceReport(
	prefix string,
	src calibrate.Source,
	cal *calibrate.Calibrator,
	cmp align.Comparator,
	penalty align.GapPenalty,
) error {
	records := [][]string{{"Correct", "Left", "Right", "Output Left", "Output Right"}}
	for _, group := range src.Groups {
		if len(group) == 0 || group[0].Rows() < 2 {
			continue
		}
		left := stripGapColumns(group[0].Row(0), cal.Gap())
		right := stripGapColumns(group[0].Row(1), cal.Gap())

		result, err := align.NeedlemanWunsch(left, right, cmp, penalty, align.Minimize)
		if err != nil {
			return err
		}

		correct := "0"
		for _, ref := range group {
			if result.Contains(ref) {
				correct = "1"
				break
			}
		}
		best := result.Alignments()[0]
		records = append(records, []string{
			correct,
			left.String(),
			right.String(),
			best.RowString(0),
			best.RowString(1),
		})
	}

	out := prefix + "_" + filepath.Base(src.Path) + ".csv"
	logger.Info("writing report",
		zap.String("source", src.Path),
		zap.String("report", out),
		zap.Int("groups", len(records)-1),
	)
	return writeCSV(out, records)
}

// stripGapColumns recovers a raw input sequence from a reference row.
func stripGapColumns(row phonetics.Sequence, gap phonetics.Segment) phonetics.Sequence {
	out := make(phonetics.Sequence, 0, row.Len())
	for _, seg := range row {
		if seg.Equal(gap) {
			continue
		}
		out = append(out, seg)
	}
	return out
}
