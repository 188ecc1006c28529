// Package calibrate - training corpus loading.
//
// Training data is a block-structured text format:
//   - "%" starts a comment running to end of line.
//   - Blank lines separate blocks.
//   - The first block is a header naming one language per line; its line
//     count fixes the row count for every data block.
//   - Each data block holds one aligned cognate entry. Lines are rows,
//     pipes ("|") separate equivalent alternative alignments:
//
//     a a b | a a b
//     a - b | - a b
//
//     Column i across the block's rows is one reference alignment; the
//     block's columns together form one Group.
//   - Every row is anchored: a leading "# " is prepended when absent.
//
// Malformed blocks (wrong row count, ragged columns, unknown symbols) are
// skipped and logged, never fatal: partial training data is still usable.
package calibrate

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/phonalign/align"
	"github.com/katalvlaran/phonalign/phonetics"
)

// Group is one cognate entry: a set of equivalent reference alignments.
// All alignments in a group share the same underlying sequences.
type Group []align.Alignment

// Source is one parsed training file.
type Source struct {
	Path   string
	Groups []Group
}

// AddSource reads and parses one training file.
func (c *Calibrator) AddSource(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading training data: %w", err)
	}
	return c.AddSourceText(path, string(data))
}

// AddSources loads every given path, logging and skipping failures.
// Partial corpora are acceptable; a calibration run over the files that
// did parse is more useful than no run at all.
func (c *Calibrator) AddSources(paths ...string) {
	for _, p := range paths {
		if err := c.AddSource(p); err != nil {
			c.log.Warn("skipping training source",
				zap.String("path", p),
				zap.Error(err),
			)
		}
	}
}

// AddSourceText parses training data already held in memory. The path is
// only used for labeling in logs and reports.
//
// Errors: ErrBadCorpus when no header block is present.
func (c *Calibrator) AddSourceText(path, text string) error {
	groups, err := c.parseGroups(path, text)
	if err != nil {
		return err
	}
	c.sources = append(c.sources, Source{Path: path, Groups: groups})
	return nil
}

// Sources returns the loaded training files in load order.
func (c *Calibrator) Sources() []Source { return c.sources }

// parseGroups parses one file's worth of blocks.
func (c *Calibrator) parseGroups(path, text string) ([]Group, error) {
	var (
		groups []Group
		rows   int
	)
	for n, block := range splitBlocks(text) {
		lines := blockLines(block)
		if len(lines) == 0 {
			continue
		}

		// First non-empty block is the language header; its line count is
		// the row count every data block must match.
		if rows == 0 {
			rows = len(lines)
			continue
		}

		if len(lines) != rows {
			c.log.Warn("skipping block with wrong row count",
				zap.String("path", path),
				zap.Int("block", n),
				zap.Int("want", rows),
				zap.Int("got", len(lines)),
			)
			continue
		}

		group, err := c.parseGroup(lines)
		if err != nil {
			c.log.Warn("skipping malformed block",
				zap.String("path", path),
				zap.Int("block", n),
				zap.Error(err),
			)
			continue
		}
		groups = append(groups, group)
	}
	if rows == 0 {
		return nil, ErrBadCorpus
	}
	return groups, nil
}

// parseGroup converts one data block into a Group: column i of the
// pipe-split rows becomes reference alignment i.
func (c *Calibrator) parseGroup(lines []string) (Group, error) {
	cells := make([][]string, len(lines))
	width := 0
	for i, line := range lines {
		parts := strings.Split(line, "|")
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}
		if i == 0 {
			width = len(parts)
		} else if len(parts) != width {
			return nil, fmt.Errorf("ragged columns: row 0 has %d, row %d has %d",
				width, i, len(parts))
		}
		cells[i] = parts
	}

	var group Group
	for col := 0; col < width; col++ {
		seqs := make([]phonetics.Sequence, len(cells))
		for row := range cells {
			item := cells[row][col]
			if !strings.HasPrefix(item, "#") {
				item = "# " + item
			}
			seq, err := c.factory.ToSequence(item)
			if err != nil {
				return nil, err
			}
			seqs[row] = seq
		}
		a, err := align.NewAlignment(seqs...)
		if err != nil {
			return nil, err
		}
		group = append(group, a)
	}
	return group, nil
}

// splitBlocks separates text into blank-line-delimited blocks, with
// comments already stripped.
func splitBlocks(text string) []string {
	text = stripComments(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n\n")
}

// blockLines returns the non-empty trimmed lines of one block.
func blockLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// stripComments removes "%"-to-end-of-line comments.
func stripComments(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, line := range strings.SplitAfter(text, "\n") {
		if i := strings.IndexByte(line, '%'); i >= 0 {
			b.WriteString(strings.TrimRight(line[:i], " \t"))
			if strings.HasSuffix(line, "\n") {
				b.WriteByte('\n')
			}
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}
