package rowcast

// assemble.go turns raw lines into typed rows.

import "strings"

// rowParser parses one tokenized Row into a T. RecordParser satisfies it
// for typed records; rawRowParser passes the Row through untouched.
type rowParser[T any] interface {
	Parse(row *Row) (T, error)
}

// rawRowParser yields the raw Row itself, for untyped bag-of-cells tables.
type rawRowParser struct{}

func (rawRowParser) Parse(row *Row) (*Row, error) { return row, nil }

// RowAssembler converts one raw line into a typed row: tokenize, then
// assemble. Failures are tagged with their stage (tokenizer syntax failure
// vs field conversion failure) and carry the row ordinal, column name, and
// raw value.
type RowAssembler[T any] struct {
	tok    *Tokenizer
	parser rowParser[T]
}

// NewRowAssembler pairs a tokenizer with a record parser.
func NewRowAssembler[T any](tok *Tokenizer, rec *RecordParser[T]) *RowAssembler[T] {
	return &RowAssembler[T]{tok: tok, parser: rec}
}

// Assemble parses one line into a typed row under the given header. On
// failure it returns a *RowError.
func (a *RowAssembler[T]) Assemble(line string, ordinal int, header *Header) (T, error) {
	var zero T
	cells, err := a.tok.Tokenize(line)
	if err != nil {
		return zero, newRowError(ordinal, StageTokenize, err)
	}
	row := NewRow(cells, header, ordinal)
	v, err := a.parser.Parse(row)
	if err != nil {
		return zero, newRowError(ordinal, StageConvert, err)
	}
	return v, nil
}

// AssembleHeader tokenizes the designated header line and normalizes the
// names into a Header. Normalization trims surrounding whitespace only;
// case-insensitive matching lives in the Header itself.
func (a *RowAssembler[T]) AssembleHeader(line string) (*Header, error) {
	cells, err := a.tok.Tokenize(line)
	if err != nil {
		return nil, newRowError(0, StageTokenize, err)
	}
	names := make([]string, len(cells))
	for i, c := range cells {
		names[i] = strings.TrimSpace(c)
	}
	return NewHeader(names), nil
}
