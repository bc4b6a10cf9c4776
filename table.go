package rowcast

// table.go holds the Table container and the table-level orchestrator.
//
// TableAssembler is a small state machine:
//
//	AwaitingHeader -> ParsingRows -> {Done, Failed}
//
// The first transition happens immediately when a fixed header was supplied
// out of band, else after the first input line assembles into a header.
// During ParsingRows each line goes through the RowAssembler under the
// configured policy. Input is consumed forward-only in a single pass.

import (
	"errors"
	"iter"
)

// Table is an immutable collection of successfully assembled rows plus the
// Header they were parsed under. A table produced under the forgiving
// policy never contains a row whose assembly failed; those surface through
// the FailureSink and the Dropped count.
type Table[T any] struct {
	rows    []T
	header  *Header
	dropped int
}

// Len returns the number of rows.
func (t *Table[T]) Len() int { return len(t.rows) }

// Row returns the row at index i.
func (t *Table[T]) Row(i int) T { return t.rows[i] }

// Rows returns a copy of the rows in assembly order.
func (t *Table[T]) Rows() []T {
	return append([]T(nil), t.rows...)
}

// Header returns the table's header.
func (t *Table[T]) Header() *Header { return t.header }

// Dropped returns how many rows were excluded by the forgiving policy.
// A forgiving parse with zero successes and a nonzero Dropped count is
// distinct from trivially-empty input.
func (t *Table[T]) Dropped() int { return t.dropped }

// assemblerState tracks the orchestrator's progress through a parse. The
// terminal Done and Failed states are the two return paths of Parse.
type assemblerState int

const (
	awaitingHeader assemblerState = iota
	parsingRows
)

// TableAssembler orchestrates header resolution and per-row error policy.
// An assembler is reusable: each Parse call is an independent single pass.
type TableAssembler[T any] struct {
	rows           *RowAssembler[T]
	fixedHeader    *Header
	headerRowCount int
	forgiving      bool
	sink           FailureSink
	counter        *Counter
}

// NewTableAssembler builds an assembler for typed records. The policy
// defaults to fail-fast; set cfg.Policy to PolicyForgiving to opt in to
// per-row isolation.
func NewTableAssembler[T any](cfg Config, rec *RecordParser[T]) (*TableAssembler[T], error) {
	return newAssembler[T](cfg, rec, false)
}

// NewRawAssembler builds an assembler for untyped bag-of-raw-cells tables.
// The policy defaults to forgiving; set cfg.Policy to PolicyFailFast to
// abort on the first malformed line.
func NewRawAssembler(cfg Config) (*TableAssembler[*Row], error) {
	return newAssembler[*Row](cfg, rawRowParser{}, true)
}

func newAssembler[T any](cfg Config, parser rowParser[T], defaultForgiving bool) (*TableAssembler[T], error) {
	tok, err := NewTokenizer(cfg)
	if err != nil {
		return nil, err
	}

	forgiving := defaultForgiving
	switch cfg.Policy {
	case PolicyFailFast:
		forgiving = false
	case PolicyForgiving:
		forgiving = true
	}

	var fixed *Header
	if len(cfg.FixedHeader) > 0 {
		fixed = NewHeader(cfg.FixedHeader)
	}

	headerRows := cfg.HeaderRowCount
	if headerRows < 1 {
		headerRows = 1
	}

	return &TableAssembler[T]{
		rows:           &RowAssembler[T]{tok: tok, parser: parser},
		fixedHeader:    fixed,
		headerRowCount: headerRows,
		forgiving:      forgiving,
		sink:           NewSlogSink(nil),
	}, nil
}

// SetFailureSink replaces the failure sink used in forgiving mode. The
// default logs one structured slog entry per dropped row.
func (a *TableAssembler[T]) SetFailureSink(s FailureSink) {
	if s != nil {
		a.sink = s
	}
}

// BindCounter hands the assembler ownership of the counter backing any
// AutoSequence fields in its record shape. The counter is reset at the
// start of every parse so each table numbers from the counter's origin.
func (a *TableAssembler[T]) BindCounter(c *Counter) {
	a.counter = c
}

// Parse consumes the line sequence in a single forward pass and returns
// the assembled table.
//
// Under fail-fast, the first row failure is returned as the whole parse's
// result and no partial table is produced. Under forgiving, every row
// failure goes to the FailureSink and the parse always completes; the
// result's Dropped count says how many rows were excluded. Empty input
// with no fixed header is a NoHeaderError.
func (a *TableAssembler[T]) Parse(lines iter.Seq[string]) (*Table[T], error) {
	if a.counter != nil {
		a.counter.Reset()
	}

	state := awaitingHeader
	header := a.fixedHeader
	if header != nil {
		state = parsingRows
	}

	var rows []T
	dropped := 0
	ordinal := 0
	headerLines := 0

	for line := range lines {
		switch state {
		case awaitingHeader:
			// The first line of the header block becomes the Header;
			// any further header lines are consumed and discarded.
			if headerLines == 0 {
				h, err := a.rows.AssembleHeader(line)
				if err != nil {
					return nil, err
				}
				header = h
			}
			headerLines++
			if headerLines >= a.headerRowCount {
				state = parsingRows
			}

		case parsingRows:
			ordinal++
			rec, err := a.rows.Assemble(line, ordinal, header)
			if err != nil {
				if !a.forgiving {
					// Failed terminal state: the row error is the
					// whole parse's result.
					return nil, err
				}
				dropped++
				a.report(line, err)
				continue
			}
			rows = append(rows, rec)
		}
	}

	if header == nil {
		return nil, &NoHeaderError{}
	}

	return &Table[T]{rows: rows, header: header, dropped: dropped}, nil
}

// report sends one failure entry to the sink.
func (a *TableAssembler[T]) report(line string, err error) {
	f := RowFailure{Line: line, Err: err}
	var re *RowError
	if errors.As(err, &re) {
		f.Ordinal = re.Ordinal
		f.Column = re.Column
		f.Raw = re.Raw
	}
	a.sink.RowFailed(f)
}
