// Package phonetics - FeatureTable, a concrete in-memory FeatureModel.
//
// A FeatureTable is built either programmatically (NewFeatureTable + Add)
// or from a YAML definition (ParseFeatureTable / LoadFeatureTable):
//
//	features: [con, son, cnt]
//	symbols:
//	  a: [-1, 1, 1]
//	  m: [1, 1, -1]
//	  "#": [~, ~, ~]   # anchor; undefined everywhere
//
// A null (~) entry marks an undefined feature value (NaN).
package phonetics

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FeatureTable is an ordered symbol → feature-vector mapping with named
// feature positions. It implements FeatureModel and is immutable once
// shared; the alignment and calibration layers only ever read it.
type FeatureTable struct {
	names   []string
	index   map[string]int
	vectors map[string][]FeatureValue
	symbols []string // insertion order; longest-match tokenization scans this
}

// NewFeatureTable creates an empty table over the given ordered feature names.
// Duplicate names return ErrBadModel.
func NewFeatureTable(names []string) (*FeatureTable, error) {
	if len(names) == 0 {
		return nil, ErrBadModel
	}
	index := make(map[string]int, len(names))
	var i int
	var name string
	for i, name = range names {
		if name == "" {
			return nil, ErrBadModel
		}
		if _, ok := index[name]; ok {
			return nil, ErrBadModel
		}
		index[name] = i
	}
	return &FeatureTable{
		names:   append([]string(nil), names...),
		index:   index,
		vectors: make(map[string][]FeatureValue),
	}, nil
}

// Add registers a symbol with its feature vector.
// The vector length must equal FeatureCount; ErrBadVector otherwise.
// Re-adding a symbol replaces its vector.
func (t *FeatureTable) Add(symbol string, features []FeatureValue) error {
	if symbol == "" {
		return ErrEmptyText
	}
	if len(features) != len(t.names) {
		return ErrBadVector
	}
	if _, ok := t.vectors[symbol]; !ok {
		t.symbols = append(t.symbols, symbol)
	}
	t.vectors[symbol] = append([]FeatureValue(nil), features...)
	return nil
}

// FeatureCount returns the number of features per segment.
func (t *FeatureTable) FeatureCount() int { return len(t.names) }

// Difference returns the per-feature dissimilarity |a-b|; NaN operands
// contribute zero.
func (t *FeatureTable) Difference(a, b FeatureValue) float64 {
	return Difference(a, b)
}

// FeatureIndex resolves a feature name to its vector position.
func (t *FeatureTable) FeatureIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// FeatureNames returns the ordered feature names. The slice is a copy.
func (t *FeatureTable) FeatureNames() []string {
	return append([]string(nil), t.names...)
}

// Symbols returns the registered symbols in insertion order. The slice is
// a copy.
func (t *FeatureTable) Symbols() []string {
	return append([]string(nil), t.symbols...)
}

// Segment builds a Segment for the given symbol, or ErrUnknownSymbol.
func (t *FeatureTable) Segment(symbol string) (Segment, error) {
	v, ok := t.vectors[symbol]
	if !ok {
		return Segment{}, fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
	}
	return Segment{Symbol: symbol, Features: v}, nil
}

// modelFile mirrors the YAML model layout. Null feature entries decode to
// nil pointers and become NaN.
type modelFile struct {
	Features []string                  `yaml:"features"`
	Symbols  map[string][]*FeatureValue `yaml:"symbols"`
}

// ParseFeatureTable builds a FeatureTable from a YAML model definition.
//
// Errors: ErrBadModel for malformed YAML or missing sections, ErrBadVector
// for a symbol whose vector length mismatches the feature list.
func ParseFeatureTable(data []byte) (*FeatureTable, error) {
	var file modelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadModel, err)
	}
	table, err := NewFeatureTable(file.Features)
	if err != nil {
		return nil, err
	}
	// Symbol insertion order only breaks tokenization ties between symbols
	// of equal rune length; map order is acceptable there.
	for symbol, raw := range file.Symbols {
		features := make([]FeatureValue, len(raw))
		var i int
		for i = 0; i < len(raw); i++ {
			if raw[i] == nil {
				features[i] = Undefined()
			} else {
				features[i] = *raw[i]
			}
		}
		if err = table.Add(symbol, features); err != nil {
			return nil, fmt.Errorf("symbol %q: %w", symbol, err)
		}
	}
	return table, nil
}

// LoadFeatureTable reads a YAML model definition from disk.
// The file handle is closed before returning on every path.
func LoadFeatureTable(path string) (*FeatureTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFeatureTable(data)
}
