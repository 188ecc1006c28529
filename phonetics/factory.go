// Package phonetics - SequenceFactory: transcription text → Sequence.
//
// Tokenization policy:
//   - Whitespace in the input separates explicit segments ("a m pʰ a").
//   - Within a whitespace-free run, symbols are matched greedily, longest
//     symbol first, so multi-rune symbols ("pʰ", "t͡s") win over their
//     prefixes.
package phonetics

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SequenceFactory turns transcription strings into Segments and Sequences
// over one shared FeatureTable.
type SequenceFactory struct {
	table   *FeatureTable
	maxRune int // rune length of the longest registered symbol
}

// NewSequenceFactory creates a factory over the given table.
func NewSequenceFactory(table *FeatureTable) *SequenceFactory {
	var maxRune int
	for _, s := range table.symbols {
		if n := utf8.RuneCountInString(s); n > maxRune {
			maxRune = n
		}
	}
	return &SequenceFactory{table: table, maxRune: maxRune}
}

// Table returns the factory's feature table.
func (f *SequenceFactory) Table() *FeatureTable { return f.table }

// ToSegment converts a single symbol to a Segment.
//
// Errors: ErrEmptyText for empty input, ErrUnknownSymbol for a symbol
// absent from the table.
func (f *SequenceFactory) ToSegment(text string) (Segment, error) {
	if text == "" {
		return Segment{}, ErrEmptyText
	}
	return f.table.Segment(text)
}

// ToSequence tokenizes text into a Sequence.
//
// Whitespace-separated chunks are tokenized independently; inside a chunk
// the longest registered symbol matching the current position is consumed.
//
// Errors: ErrUnknownSymbol when no registered symbol matches a position.
// An empty or all-whitespace input yields an empty Sequence, not an error:
// zero-length sequences are valid alignment inputs.
//
// Complexity: O(len(text) · maxSymbolRunes).
func (f *SequenceFactory) ToSequence(text string) (Sequence, error) {
	var seq Sequence
	for _, chunk := range strings.Fields(text) {
		rest := chunk
		for rest != "" {
			seg, n, err := f.longestMatch(rest)
			if err != nil {
				return nil, fmt.Errorf("tokenizing %q: %w", chunk, err)
			}
			seq = append(seq, seg)
			rest = rest[n:]
		}
	}
	return seq, nil
}

// longestMatch finds the longest registered symbol prefixing s and returns
// the segment plus the consumed byte count.
func (f *SequenceFactory) longestMatch(s string) (Segment, int, error) {
	runes := []rune(s)
	limit := f.maxRune
	if limit > len(runes) {
		limit = len(runes)
	}
	var n int
	for n = limit; n > 0; n-- {
		candidate := string(runes[:n])
		if v, ok := f.table.vectors[candidate]; ok {
			return Segment{Symbol: candidate, Features: v}, len(candidate), nil
		}
	}
	return Segment{}, 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, string(runes[0]))
}
