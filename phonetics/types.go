// Package phonetics - core data types shared across phonalign.
//
// This file declares FeatureValue, Segment, Sequence, the FeatureModel
// capability and the package's sentinel errors.
//
// Errors:
//
//	ErrUnknownSymbol - a transcription symbol has no entry in the model.
//	ErrBadVector     - a feature vector does not match the model's size.
//	ErrBadModel      - a model definition is structurally invalid.
//	ErrEmptyText     - an empty string was given where a symbol is required.
package phonetics

import (
	"errors"
	"math"
	"strings"
)

// Sentinel errors for model loading and tokenization.
var (
	// ErrUnknownSymbol indicates a symbol absent from the feature table.
	ErrUnknownSymbol = errors.New("phonetics: unknown symbol")

	// ErrBadVector indicates a feature vector whose length does not match
	// the model's feature count.
	ErrBadVector = errors.New("phonetics: feature vector has wrong length")

	// ErrBadModel indicates a structurally invalid model definition.
	ErrBadModel = errors.New("phonetics: invalid feature model definition")

	// ErrEmptyText indicates an empty input where a symbol was required.
	ErrEmptyText = errors.New("phonetics: empty input text")
)

// FeatureValue is a single numeric feature. NaN marks an undefined feature;
// undefined features contribute zero to any difference.
type FeatureValue = float64

// Undefined is the FeatureValue used for unspecified features.
func Undefined() FeatureValue { return math.NaN() }

// Difference returns the absolute difference between two feature values.
// If either value is undefined (NaN) the difference is zero.
//
// Complexity: O(1).
func Difference(a, b FeatureValue) float64 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0
	}
	return math.Abs(a - b)
}

// FeatureModel is the capability the alignment core consumes.
//
// FeatureCount reports the dimensionality of every feature vector.
// Difference compares two feature values; it must be non-negative.
// FeatureIndex resolves a feature name to its vector position.
type FeatureModel interface {
	// FeatureCount returns the number of features per segment.
	FeatureCount() int

	// Difference returns the dissimilarity of two feature values.
	Difference(a, b FeatureValue) float64

	// FeatureIndex returns the position of the named feature and whether
	// the name is known to the model.
	FeatureIndex(name string) (int, bool)
}

// Segment is an atomic symbolic unit: a display symbol plus an immutable
// feature vector. Equality is value-based over the feature vector; the
// display symbol is presentation only.
type Segment struct {
	// Symbol is the printable form of the segment.
	Symbol string

	// Features is the segment's feature vector. Callers must not mutate it.
	Features []FeatureValue
}

// Equal reports whether s and o carry the same feature vector.
// Undefined (NaN) positions compare equal to each other.
//
// Complexity: O(f) where f = feature count.
func (s Segment) Equal(o Segment) bool {
	if len(s.Features) != len(o.Features) {
		return false
	}
	var i int
	for i = 0; i < len(s.Features); i++ {
		a, b := s.Features[i], o.Features[i]
		if math.IsNaN(a) && math.IsNaN(b) {
			continue
		}
		if a != b {
			return false
		}
	}
	return true
}

// Sequence is an ordered list of Segments belonging to one feature model.
// All segments in a Sequence share the same feature count.
type Sequence []Segment

// Len returns the number of segments in the sequence.
func (q Sequence) Len() int { return len(q) }

// At returns the segment at position i. The index must be in range.
func (q Sequence) At(i int) Segment { return q[i] }

// Equal reports element-wise equality of two sequences (Segment.Equal).
func (q Sequence) Equal(o Sequence) bool {
	if len(q) != len(o) {
		return false
	}
	var i int
	for i = 0; i < len(q); i++ {
		if !q[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// String renders the sequence as its concatenated symbols.
func (q Sequence) String() string {
	var sb strings.Builder
	for _, s := range q {
		sb.WriteString(s.Symbol)
	}
	return sb.String()
}
