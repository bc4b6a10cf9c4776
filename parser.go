package rowcast

// parser.go implements generic record assembly.
//
// A RecordParser walks an externally supplied, ordered field list - one
// {name, parser} entry per declared field - instead of one hand-written
// combinator per field count. Each field's column is resolved by name, and
// the field's parser is invoked either on that single raw cell or, when no
// column backs the field, on the full row. That second path is what lets a
// field span several columns (nested records, repetitions) or none at all
// (auto-incrementing sequences).

import (
	"errors"
	"fmt"
	"sync"
)

// Source is what a field parser can draw from: a single raw cell value,
// the full row plus header, or both. HasRaw reports whether the field's
// resolved column was present in the header and the row.
type Source struct {
	Raw    string
	HasRaw bool
	Row    *Row
	Header *Header

	// Scope is the resolver scope for parsers that resolve further
	// column names, typically the enclosing field's name.
	Scope string

	resolver *ColumnResolver
	parsed   map[string]any
}

// Parsed returns the value of an earlier field in the current walk.
// Conditional shapes use it to select their variant.
func (s Source) Parsed(name string) (any, bool) {
	v, ok := s.parsed[name]
	return v, ok
}

// FieldParser derives one field's value from a Source.
type FieldParser interface {
	ParseField(src Source) (any, error)

	// NeedsCell reports whether the parser requires a raw cell value.
	// A field whose column is absent and whose parser needs a cell is a
	// fatal MissingColumnError for the row.
	NeedsCell() bool
}

// Field is one entry in a record shape's declared field list. The ordered
// list itself comes from the caller (or an external field-name provider);
// this core only consumes it.
type Field struct {
	Name   string
	Parser FieldParser
}

// singleCell reduces to a value converter applied to one raw cell.
type singleCell[T any] struct {
	conv Converter[T]
}

// Cell wraps a value converter as a FieldParser for a field backed by
// exactly one column.
func Cell[T any](conv Converter[T]) FieldParser {
	return singleCell[T]{conv: conv}
}

func (singleCell[T]) NeedsCell() bool { return true }

func (s singleCell[T]) ParseField(src Source) (any, error) {
	if !src.HasRaw {
		return nil, &MissingColumnError{}
	}
	v, err := s.conv(src.Raw)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// RecordParser assembles a composite value of type T from a row by walking
// its declared fields in order. It doubles as a FieldParser so record
// shapes nest: a nested record resolves its fields under the enclosing
// field's name as scope.
type RecordParser[T any] struct {
	resolver *ColumnResolver
	build    func(values []any) (T, error)
	fields   []Field
}

// NewRecord declares a record shape. build receives the parsed field
// values in declaration order and assembles the T.
func NewRecord[T any](resolver *ColumnResolver, build func(values []any) (T, error), fields ...Field) *RecordParser[T] {
	return &RecordParser[T]{resolver: resolver, build: build, fields: fields}
}

// Parse assembles one T from a row. The first field failure aborts the
// whole row; no partial records are produced.
func (p *RecordParser[T]) Parse(row *Row) (T, error) {
	return p.parse(row, "")
}

func (p *RecordParser[T]) parse(row *Row, scope string) (T, error) {
	var zero T
	h := row.Header()
	values := make([]any, len(p.fields))
	parsed := make(map[string]any, len(p.fields))

	for i, f := range p.fields {
		col := p.resolver.Resolve(f.Name, scope)
		src := Source{
			Row:      row,
			Header:   h,
			Scope:    f.Name,
			resolver: p.resolver,
			parsed:   parsed,
		}
		if h != nil {
			if idx, ok := h.Index(col); ok {
				if raw, found := row.Cell(idx); found {
					src.Raw, src.HasRaw = raw, true
				}
			}
		}

		if !src.HasRaw && f.Parser.NeedsCell() {
			return zero, &MissingColumnError{Field: f.Name, Column: col}
		}

		v, err := f.Parser.ParseField(src)
		if err != nil {
			return zero, fieldFailure(f.Name, col, src.Raw, err)
		}
		values[i] = v
		parsed[f.Name] = v
	}

	return p.build(values)
}

// fieldFailure attaches field and column context to a parse error.
func fieldFailure(field, column, raw string, err error) error {
	var me *MissingColumnError
	if errors.As(err, &me) {
		if me.Field == "" {
			me.Field, me.Column = field, column
		}
		return err
	}
	var ve *VariantLookupError
	if errors.As(err, &ve) && ve.Field == "" {
		ve.Field = field
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		// Nested record already attached its own context.
		return err
	}
	return &FieldError{Field: field, Column: column, Raw: raw, Err: err}
}

// ParseField lets a RecordParser serve as a nested field. The nested
// record's columns are resolved under the enclosing field's name as scope.
func (p *RecordParser[T]) ParseField(src Source) (any, error) {
	if src.Row == nil {
		return nil, errors.New("record field requires row context")
	}
	v, err := p.parse(src.Row, src.Scope)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// NeedsCell reports false: a record field draws from the whole row.
func (p *RecordParser[T]) NeedsCell() bool { return false }

// repeatCell consumes a densely-numbered run of same-typed columns.
type repeatCell[T any] struct {
	base  string
	start int
	conv  Converter[T]
}

// RepeatCell declares a repetition shape: it consumes columns base+N for
// N = start, start+1, ... and stops at the first missing ordinal, which is
// not an error. start values below 1 default to 1. The parsed value is a
// []T in column order.
func RepeatCell[T any](base string, start int, conv Converter[T]) FieldParser {
	if start < 1 {
		start = 1
	}
	return repeatCell[T]{base: base, start: start, conv: conv}
}

func (repeatCell[T]) NeedsCell() bool { return false }

func (r repeatCell[T]) ParseField(src Source) (any, error) {
	if src.Header == nil || src.Row == nil {
		return []T{}, nil
	}
	var out []T
	for n := r.start; ; n++ {
		col := src.resolver.Resolve(fmt.Sprintf("%s%d", r.base, n), src.Scope)
		idx, ok := src.Header.Index(col)
		if !ok {
			break
		}
		raw, ok := src.Row.Cell(idx)
		if !ok {
			break
		}
		v, err := r.conv(raw)
		if err != nil {
			return nil, &FieldError{Field: fmt.Sprintf("%s%d", r.base, n), Column: col, Raw: raw, Err: err}
		}
		out = append(out, v)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// conditional selects its parser at runtime from an earlier field's value.
type conditional struct {
	keyField string
	variants map[string]FieldParser
}

// ConditionalOn declares a conditional shape: the parser for this field is
// chosen from variants, keyed by the string form of the already-parsed
// field named keyField. An unmapped key is a fatal VariantLookupError.
func ConditionalOn(keyField string, variants map[string]FieldParser) FieldParser {
	return &conditional{keyField: keyField, variants: variants}
}

func (*conditional) NeedsCell() bool { return false }

func (c *conditional) ParseField(src Source) (any, error) {
	kv, ok := src.Parsed(c.keyField)
	if !ok {
		return nil, fmt.Errorf("conditional key field %q not parsed before use; declare it earlier in the field list", c.keyField)
	}
	key := fmt.Sprint(kv)
	p, ok := c.variants[key]
	if !ok {
		return nil, &VariantLookupError{Key: key}
	}
	return p.ParseField(src)
}

// Counter issues sequential values for system-generated fields. It is an
// explicit object threaded to whichever field needs it; there is no
// process-wide counter.
type Counter struct {
	mu    sync.Mutex
	start int64
	next  int64
}

// NewCounter returns a counter whose first value is start.
func NewCounter(start int64) *Counter {
	return &Counter{start: start, next: start}
}

// Next returns the current value and advances the counter.
func (c *Counter) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.next
	c.next++
	return v
}

// Reset rewinds the counter to its start value. TableAssembler calls this
// at the beginning of each parse for the counter it owns.
func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next = c.start
}

// autoSequence is a synthetic field with no backing column.
type autoSequence struct {
	counter *Counter
}

// AutoSequence declares a synthetic int64 field fed by a counter rather
// than a column.
func AutoSequence(c *Counter) FieldParser {
	return autoSequence{counter: c}
}

func (autoSequence) NeedsCell() bool { return false }

func (a autoSequence) ParseField(Source) (any, error) {
	return a.counter.Next(), nil
}
