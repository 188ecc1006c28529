// Package align - the Alignment table.
package align

import (
	"strings"
	"unicode"

	"github.com/katalvlaran/phonalign/phonetics"
)

// Alignment is a rectangular table of aligned, gap-padded sequences.
// Every row has the same column count; columns represent aligned
// positions. Immutable once built.
type Alignment struct {
	rows []phonetics.Sequence
}

// NewAlignment builds an Alignment from gap-padded rows.
// All rows must share one column count; ErrRaggedRows otherwise.
func NewAlignment(rows ...phonetics.Sequence) (Alignment, error) {
	var i int
	for i = 1; i < len(rows); i++ {
		if rows[i].Len() != rows[0].Len() {
			return Alignment{}, ErrRaggedRows
		}
	}
	copied := make([]phonetics.Sequence, len(rows))
	for i = 0; i < len(rows); i++ {
		copied[i] = append(phonetics.Sequence(nil), rows[i]...)
	}
	return Alignment{rows: copied}, nil
}

// Rows returns the number of aligned sequences.
func (a Alignment) Rows() int { return len(a.rows) }

// Columns returns the shared column count.
func (a Alignment) Columns() int {
	if len(a.rows) == 0 {
		return 0
	}
	return a.rows[0].Len()
}

// Row returns row i. Callers must not mutate the returned sequence.
func (a Alignment) Row(i int) phonetics.Sequence { return a.rows[i] }

// Get returns the segment at row i, column j.
func (a Alignment) Get(i, j int) phonetics.Segment { return a.rows[i][j] }

// Equal reports structural equality: same shape and segment-wise equal
// rows (value equality over feature vectors).
func (a Alignment) Equal(o Alignment) bool {
	if len(a.rows) != len(o.rows) {
		return false
	}
	var i int
	for i = 0; i < len(a.rows); i++ {
		if !a.rows[i].Equal(o.rows[i]) {
			return false
		}
	}
	return true
}

// DropAnchor returns a copy without the leading column when every row
// starts with a segment equal to anchor; otherwise the alignment is
// returned unchanged. Used to strip alignment anchors ("#") after
// processing.
func (a Alignment) DropAnchor(anchor phonetics.Segment) Alignment {
	if a.Columns() == 0 {
		return a
	}
	for _, row := range a.rows {
		if !row[0].Equal(anchor) {
			return a
		}
	}
	rows := make([]phonetics.Sequence, len(a.rows))
	var i int
	for i = 0; i < len(a.rows); i++ {
		rows[i] = append(phonetics.Sequence(nil), a.rows[i][1:]...)
	}
	return Alignment{rows: rows}
}

// RowString renders row i with columns padded to a shared width and
// separated by single spaces. Combining marks are excluded from the
// printable width so diacritics do not skew the layout.
func (a Alignment) RowString(i int) string {
	widths := a.columnWidths()
	var sb strings.Builder
	var j int
	for j = 0; j < a.Columns(); j++ {
		if j > 0 {
			sb.WriteByte(' ')
		}
		s := a.rows[i][j].Symbol
		sb.WriteString(s)
		for w := printableLength(s); w < widths[j]; w++ {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// String renders all rows, one per line.
func (a Alignment) String() string {
	lines := make([]string, len(a.rows))
	var i int
	for i = 0; i < len(a.rows); i++ {
		lines[i] = a.RowString(i)
	}
	return strings.Join(lines, "\n")
}

// columnWidths returns the maximum printable symbol width per column.
func (a Alignment) columnWidths() []int {
	widths := make([]int, a.Columns())
	for _, row := range a.rows {
		for j, seg := range row {
			if w := printableLength(seg.Symbol); w > widths[j] {
				widths[j] = w
			}
		}
	}
	return widths
}

// printableLength counts the visible runes of a symbol, skipping
// non-spacing combining marks.
func printableLength(s string) int {
	var n int
	for _, r := range s {
		if !unicode.Is(unicode.Mn, r) {
			n++
		}
	}
	return n
}
