package rowcast

// errors.go defines the failure taxonomy for the conversion core.
//
// Every error carries enough context (row ordinal, column name, raw value)
// to build a diagnostic without re-parsing the input. The first field-level
// error aborts that row's assembly entirely; no partial rows are produced.

import (
	"errors"
	"fmt"
)

// Stage identifies where in row assembly a failure occurred.
type Stage int

const (
	// StageTokenize means the raw line did not match the cell grammar.
	StageTokenize Stage = iota
	// StageConvert means tokenizing succeeded but a field failed to convert.
	StageConvert
)

// String returns a human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageTokenize:
		return "tokenize"
	case StageConvert:
		return "convert"
	default:
		return "unknown"
	}
}

// TokenizeError reports a malformed line, such as an unterminated quoted
// cell or an unclosed bracketed list. It carries the offending line and the
// byte offset where scanning stopped.
type TokenizeError struct {
	Line   string
	Pos    int
	Reason string
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("tokenize: %s at offset %d in %q", e.Reason, e.Pos, e.Line)
}

// ConversionError reports a cell value that did not convert to its target
// type. Blank marks an empty input, which signals "absent" for optional
// fields rather than "malformed". A non-blank ConversionError always means
// the input was non-empty and lexically wrong; Cause describes why.
type ConversionError struct {
	Type  string // converter type tag, e.g. "int" or "date"
	Raw   string
	Blank bool
	Cause error // nil when Blank
}

func (e *ConversionError) Error() string {
	if e.Blank {
		return fmt.Sprintf("convert %s: blank value", e.Type)
	}
	if e.Cause != nil {
		return fmt.Sprintf("convert %s: invalid value %q: %v", e.Type, e.Raw, e.Cause)
	}
	return fmt.Sprintf("convert %s: invalid value %q", e.Type, e.Raw)
}

func (e *ConversionError) Unwrap() error { return e.Cause }

// blankErr builds the Blank failure kind for a converter.
func blankErr(typeTag string) *ConversionError {
	return &ConversionError{Type: typeTag, Blank: true}
}

// invalidErr builds the Invalid failure kind for a converter.
func invalidErr(typeTag, raw string, cause error) *ConversionError {
	return &ConversionError{Type: typeTag, Raw: raw, Cause: cause}
}

// IsBlank reports whether err is a ConversionError of the Blank kind.
func IsBlank(err error) bool {
	var ce *ConversionError
	return errors.As(err, &ce) && ce.Blank
}

// MissingColumnError reports a required field whose resolved column is
// absent from the Header and whose parser cannot operate without a cell.
type MissingColumnError struct {
	Field  string // logical field name
	Column string // resolved column name
}

func (e *MissingColumnError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("missing column %q for field %q", e.Column, e.Field)
	}
	return fmt.Sprintf("missing column %q", e.Column)
}

// VariantLookupError reports a conditional field whose key value has no
// entry in the variant table.
type VariantLookupError struct {
	Field string // conditional field name
	Key   string // unmapped key value
}

func (e *VariantLookupError) Error() string {
	return fmt.Sprintf("no variant for key %q on field %q", e.Key, e.Field)
}

// NoHeaderError reports a parse that exhausted its input before a header
// could be resolved and had no fixed header supplied out of band.
type NoHeaderError struct{}

func (e *NoHeaderError) Error() string {
	return "no input lines and no fixed header"
}

// FieldError wraps a conversion failure with the field and column it
// occurred on. RecordParser attaches it during the field walk so RowError
// can surface column and raw value at the row level.
type FieldError struct {
	Field  string
	Column string
	Raw    string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q (column %q): %v", e.Field, e.Column, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// RowError is the row-level failure envelope. It tags the failure with its
// stage and the row's ordinal, and carries the column name and raw value
// when the inner error identifies them.
type RowError struct {
	Ordinal int
	Stage   Stage
	Column  string
	Raw     string
	Err     error
}

func (e *RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d: %s failure in column %q: %v", e.Ordinal, e.Stage, e.Column, e.Err)
	}
	return fmt.Sprintf("row %d: %s failure: %v", e.Ordinal, e.Stage, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// newRowError wraps err, pulling column and raw-value context from the
// inner error types that carry them.
func newRowError(ordinal int, stage Stage, err error) *RowError {
	re := &RowError{Ordinal: ordinal, Stage: stage, Err: err}

	var fe *FieldError
	var me *MissingColumnError
	switch {
	case errors.As(err, &fe):
		re.Column = fe.Column
		re.Raw = fe.Raw
	case errors.As(err, &me):
		re.Column = me.Column
	}
	return re
}
