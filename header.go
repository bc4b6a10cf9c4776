package rowcast

// header.go holds the immutable Header and Row containers.

import (
	"strings"

	"golang.org/x/text/cases"
)

// Header is an ordered sequence of column names. Lookup by name is
// case-insensitive (Unicode case folding) and the first match wins when
// names are duplicated - an acknowledged ambiguity, not an error.
//
// A Header is resolved exactly once per parse and read-only thereafter.
type Header struct {
	names []string
	index map[string]int // folded name -> first index
}

// NewHeader builds a Header from ordered column names.
func NewHeader(names []string) *Header {
	h := &Header{
		names: append([]string(nil), names...),
		index: make(map[string]int, len(names)),
	}
	for i, n := range names {
		key := foldName(n)
		if _, dup := h.index[key]; !dup {
			h.index[key] = i
		}
	}
	return h
}

// foldName normalizes a column name for case-insensitive comparison.
func foldName(name string) string {
	return cases.Fold().String(name)
}

// Len returns the number of columns.
func (h *Header) Len() int { return len(h.names) }

// Names returns a copy of the ordered column names.
func (h *Header) Names() []string {
	return append([]string(nil), h.names...)
}

// Name returns the column name at index i.
func (h *Header) Name(i int) string { return h.names[i] }

// Index returns the position of the first column matching name,
// case-insensitively.
func (h *Header) Index(name string) (int, bool) {
	i, ok := h.index[foldName(name)]
	return i, ok
}

// Row is an ordered sequence of raw cell strings, a reference to its
// Header, and a 1-based ordinal. The cell count need not equal the header
// length.
type Row struct {
	cells   []string
	header  *Header
	ordinal int
}

// NewRow builds a Row over its raw cells.
func NewRow(cells []string, header *Header, ordinal int) *Row {
	return &Row{cells: cells, header: header, ordinal: ordinal}
}

// Cells returns a copy of the raw cell values.
func (r *Row) Cells() []string {
	return append([]string(nil), r.cells...)
}

// Len returns the number of cells in the row.
func (r *Row) Len() int { return len(r.cells) }

// Cell returns the raw value at index i, reporting false when the row is
// shorter than i+1 cells.
func (r *Row) Cell(i int) (string, bool) {
	if i < 0 || i >= len(r.cells) {
		return "", false
	}
	return r.cells[i], true
}

// Named returns the raw value in the column matching name.
func (r *Row) Named(name string) (string, bool) {
	if r.header == nil {
		return "", false
	}
	i, ok := r.header.Index(name)
	if !ok {
		return "", false
	}
	return r.Cell(i)
}

// Header returns the row's header, which may be nil for headerless rows.
func (r *Row) Header() *Header { return r.header }

// Ordinal returns the row's 1-based position in its table's input.
func (r *Row) Ordinal() int { return r.ordinal }

// String renders the row in the canonical list form, e.g. "{Alice,30}".
func (r *Row) String() string {
	return "{" + strings.Join(r.cells, ",") + "}"
}
