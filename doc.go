// Package rowcast converts delimited text into strongly-typed row values.
//
// Unlike encoding/csv, rowcast resolves table columns to record fields by
// name rather than position, converts each cell to a typed value with a
// blank/invalid distinction, and supports composite record shapes whose
// fields span several columns or no column at all.
//
// # Architecture
//
// The package is organized leaves-first:
//
//   - Tokenizer: splits one line into raw cells under a quote/list grammar.
//   - Converter / Registry: per-type string-to-value rules. A blank cell is
//     distinct from a malformed one, so optional fields can recover absence
//     without masking bad data.
//   - ColumnResolver: maps a logical field name (plus an optional scope) to
//     the actual column name via aliases, a naming function, and a prefix
//     template.
//   - FieldParser / RecordParser: generic record assembly. A RecordParser
//     walks its declared fields in order, resolves each field's column, and
//     parses the cell - or hands the whole row to field shapes that span
//     multiple columns (nested records, repetitions, conditionals) or none
//     (auto-incrementing sequences).
//   - RowAssembler: tokenizes a line, then assembles a typed row. Failures
//     are tagged with their stage and carry row ordinal, column, and raw
//     value for diagnostics.
//   - TableAssembler: resolves the header once, then consumes lines in a
//     single forward pass under one of two policies: fail-fast (first row
//     failure aborts the parse) or forgiving (failed rows are reported to a
//     FailureSink and excluded from the result).
//
// # Quick start
//
//	cfg := rowcast.DefaultConfig()
//	res := &rowcast.ColumnResolver{}
//
//	rec := rowcast.NewRecord(res,
//	    func(vs []any) (Person, error) {
//	        return Person{Name: vs[0].(string), Age: vs[1].(int64)}, nil
//	    },
//	    rowcast.Field{Name: "NAME", Parser: rowcast.Cell(rowcast.StringConv())},
//	    rowcast.Field{Name: "AGE", Parser: rowcast.Cell(rowcast.IntConv())},
//	)
//
//	ta, err := rowcast.NewTableAssembler(cfg, rec)
//	table, err := ta.Parse(rowcast.LinesOf("NAME,AGE", "Alice,30"))
//
// # Error handling
//
// Each failure kind has its own type: TokenizeError, ConversionError,
// MissingColumnError, VariantLookupError, NoHeaderError. Row-level failures
// are wrapped in RowError, which records the stage, row ordinal, column
// name, and raw value, so a diagnostic can be built without re-parsing.
package rowcast
