package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/phonalign/align"
	"github.com/katalvlaran/phonalign/phonetics"
)

// alignCmd batch-aligns word-pair files
var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Align word pairs from the configured pair files",
	Long: `Reads each configured pair file ("left | right" per line), aligns every
pair under the configured weights and gap penalty, prints the best
alignment to stdout and writes a CSV report next to each input file.`,
	RunE: runAlign,
}

func runAlign(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	factory, gap, err := cfg.newFactory()
	if err != nil {
		return err
	}
	if len(cfg.Align.Pairs) == 0 {
		return fmt.Errorf("config %s: align.pairs is empty", configPath)
	}

	weights := cfg.Align.Weights
	if len(weights) == 0 {
		weights = make([]float64, factory.Table().FeatureCount())
		for i := range weights {
			weights[i] = 1
		}
	}
	cmp := align.NewLinearComparator(factory.Table(), weights)
	penalty := align.NewConvexGapPenalty(gap, cfg.Align.Open, cfg.Align.Grow)

	for _, path := range cfg.Align.Pairs {
		if err := alignFile(path, factory, cmp, penalty, cfg.Align.Hirschberg); err != nil {
			return err
		}
	}
	return nil
}

// alignFile aligns one pair file and writes <path>.csv beside it.
func alignFile(
	path string,
	factory *phonetics.SequenceFactory,
	cmp align.Comparator,
	penalty align.GapPenalty,
	hirschberg bool,
) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading pairs: %w", err)
	}

	records := [][]string{{"Left", "Right", "Score", "Output Left", "Output Right"}}
	for n, line := range strings.Split(string(data), "\n") {
		if i := strings.IndexByte(line, '%'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) != 2 {
			logger.Warn("skipping malformed pair line",
				zap.String("path", path),
				zap.Int("line", n+1),
			)
			continue
		}

		left, err := toAnchoredSequence(factory, parts[0])
		if err != nil {
			logger.Warn("skipping pair", zap.String("path", path), zap.Int("line", n+1), zap.Error(err))
			continue
		}
		right, err := toAnchoredSequence(factory, parts[1])
		if err != nil {
			logger.Warn("skipping pair", zap.String("path", path), zap.Int("line", n+1), zap.Error(err))
			continue
		}

		var result *align.Result
		if hirschberg {
			result, err = align.Hirschberg(left, right, cmp, penalty, align.Minimize)
		} else {
			result, err = align.NeedlemanWunsch(left, right, cmp, penalty, align.Minimize)
		}
		if err != nil {
			return fmt.Errorf("aligning %q | %q: %w", parts[0], parts[1], err)
		}

		best := result.Alignments()[0]
		fmt.Println(best)
		fmt.Println()

		records = append(records, []string{
			strings.TrimSpace(parts[0]),
			strings.TrimSpace(parts[1]),
			strconv.FormatFloat(result.Score(), 'f', 3, 64),
			best.RowString(0),
			best.RowString(1),
		})
	}

	return writeCSV(path+".csv", records)
}

// toAnchoredSequence tokenizes text, prepending the word-boundary anchor
// when absent.
func toAnchoredSequence(factory *phonetics.SequenceFactory, text string) (phonetics.Sequence, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "#") {
		text = "# " + text
	}
	return factory.ToSequence(text)
}

// writeCSV writes all records to path.
func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
