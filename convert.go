package rowcast

// convert.go provides the per-type value converters.
//
// Converters handle the messy reality of user-provided tabular data:
//   - Multiple date formats (US, EU, ISO, etc.) with 2-digit year pivoting
//   - Currency symbols, thousands separators, and accounting negatives
//   - Various boolean spellings (yes/no, true/false, t/f, 1/0)
//
// Every converter distinguishes two failure kinds: Blank (empty input,
// meaning "absent") and Invalid (non-empty input that did not lexically
// match). The string converter is the one exception: it accepts the empty
// string as a valid value and has no blank case.

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Converter maps one raw cell string to a typed value. On failure it
// returns a *ConversionError of the Blank or Invalid kind.
type Converter[T any] func(raw string) (T, error)

// Opt is an explicit optional value. Valid is false when the source cell
// was blank.
type Opt[T any] struct {
	Value T
	Valid bool
}

// Optional wraps a converter so that a Blank failure becomes an explicit
// absent value. Invalid failures propagate unchanged: a non-empty malformed
// cell is always an error, even for an optional field.
func Optional[T any](conv Converter[T]) Converter[Opt[T]] {
	return func(raw string) (Opt[T], error) {
		v, err := conv(raw)
		if err != nil {
			if IsBlank(err) {
				return Opt[T]{}, nil
			}
			return Opt[T]{}, err
		}
		return Opt[T]{Value: v, Valid: true}, nil
	}
}

// numericRegex validates a numeric string after cleanup. Matches integers,
// decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// TwoDigitYearPivot defines how 2-digit years are interpreted. Parsed years
// more than this many years in the future are shifted back a century.
var TwoDigitYearPivot = 20

// Date layouts split by year format for proper 2-digit year handling.
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"2006-01-02", "2006/01/02", "2006.01.02",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
)

// StringConv returns the string converter. It uniquely accepts the empty
// string as a valid value; there is no blank case.
func StringConv() Converter[string] {
	return func(raw string) (string, error) {
		return raw, nil
	}
}

// BoolConv returns the boolean converter. Accepted spellings follow the
// usual CSV conventions: true/false, t/f, yes/no, y/n, 1/0 (case-insensitive).
func BoolConv() Converter[bool] {
	return func(raw string) (bool, error) {
		if raw == "" {
			return false, blankErr("bool")
		}
		switch strings.ToLower(raw) {
		case "true", "t", "yes", "y", "1":
			return true, nil
		case "false", "f", "no", "n", "0":
			return false, nil
		default:
			return false, invalidErr("bool", raw, errors.New("not a recognized boolean"))
		}
	}
}

// IntConv returns the base-10 signed integer converter.
func IntConv() Converter[int64] {
	return IntConvInBase(10)
}

// IntConvInBase returns a signed integer converter with an explicit radix
// modifier (2 through 36, or 0 for Go literal syntax).
func IntConvInBase(base int) Converter[int64] {
	return func(raw string) (int64, error) {
		if raw == "" {
			return 0, blankErr("int")
		}
		v, err := strconv.ParseInt(raw, base, 64)
		if err != nil {
			return 0, invalidErr("int", raw, err)
		}
		return v, nil
	}
}

// UintConv returns the base-10 unsigned integer converter.
func UintConv() Converter[uint64] {
	return UintConvInBase(10)
}

// UintConvInBase returns an unsigned integer converter with an explicit
// radix modifier.
func UintConvInBase(base int) Converter[uint64] {
	return func(raw string) (uint64, error) {
		if raw == "" {
			return 0, blankErr("uint")
		}
		v, err := strconv.ParseUint(raw, base, 64)
		if err != nil {
			return 0, invalidErr("uint", raw, err)
		}
		return v, nil
	}
}

// FloatConv returns the float64 converter.
func FloatConv() Converter[float64] {
	return func(raw string) (float64, error) {
		if raw == "" {
			return 0, blankErr("float")
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, invalidErr("float", raw, err)
		}
		return v, nil
	}
}

// NumericConv returns the arbitrary-precision numeric converter. It
// tolerates currency symbols, thousands separators, and the accounting
// negative format "(123.45)", then parses into a pgtype.Numeric.
func NumericConv() Converter[pgtype.Numeric] {
	return func(raw string) (pgtype.Numeric, error) {
		if raw == "" {
			return pgtype.Numeric{}, blankErr("numeric")
		}

		s := strings.TrimSpace(raw)

		// Accounting negative: "(123.45)"
		negative := false
		if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
			negative = true
			s = strings.TrimSpace(s[1 : len(s)-1])
		}

		s = strings.ReplaceAll(s, "$", "")
		s = strings.ReplaceAll(s, "€", "") // Euro
		s = strings.ReplaceAll(s, "£", "") // Pound
		s = strings.ReplaceAll(s, ",", "")
		s = strings.TrimSpace(s)

		if negative {
			s = "-" + s
		}

		if !numericRegex.MatchString(s) {
			return pgtype.Numeric{}, invalidErr("numeric", raw, errors.New("not a numeric format"))
		}

		var n pgtype.Numeric
		if err := n.Scan(s); err != nil {
			return pgtype.Numeric{}, invalidErr("numeric", raw, err)
		}
		return n, nil
	}
}

// DateConv returns the date converter. It tries 4-digit-year layouts first
// (unambiguous), then 2-digit-year layouts with pivot adjustment.
func DateConv() Converter[time.Time] {
	return func(raw string) (time.Time, error) {
		if raw == "" {
			return time.Time{}, blankErr("date")
		}

		s := strings.TrimSpace(raw)
		for _, layout := range fourDigitYearLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}

		pivotYear := time.Now().Year() + TwoDigitYearPivot
		for _, layout := range twoDigitYearLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				if t.Year() > pivotYear {
					t = t.AddDate(-100, 0, 0)
				}
				return t, nil
			}
		}

		return time.Time{}, invalidErr("date", raw, errors.New("no date layout matched"))
	}
}

// URLConv returns the URL converter. The value must be an absolute URL.
func URLConv() Converter[*url.URL] {
	return func(raw string) (*url.URL, error) {
		if raw == "" {
			return nil, blankErr("url")
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil, invalidErr("url", raw, err)
		}
		if u.Scheme == "" {
			return nil, invalidErr("url", raw, errors.New("missing scheme"))
		}
		return u, nil
	}
}

// PathConv returns the filesystem-path converter. The value is cleaned but
// not checked for existence; the core does no file I/O.
func PathConv() Converter[string] {
	return func(raw string) (string, error) {
		if raw == "" {
			return "", blankErr("path")
		}
		if strings.ContainsRune(raw, 0) {
			return "", invalidErr("path", raw, errors.New("NUL byte in path"))
		}
		return filepath.Clean(raw), nil
	}
}

// UUIDConv returns the UUID converter.
func UUIDConv() Converter[uuid.UUID] {
	return func(raw string) (uuid.UUID, error) {
		if raw == "" {
			return uuid.UUID{}, blankErr("uuid")
		}
		u, err := uuid.Parse(raw)
		if err != nil {
			return uuid.UUID{}, invalidErr("uuid", raw, err)
		}
		return u, nil
	}
}

// ListConv returns a converter for a homogeneous bracketed list. It expects
// the canonical `{a,b,c}` form the tokenizer emits and converts each
// element with elem. An element failure of either kind makes the whole list
// Invalid: inside a list there is no per-element absence.
func ListConv[T any](elem Converter[T]) Converter[[]T] {
	return func(raw string) ([]T, error) {
		if raw == "" {
			return nil, blankErr("list")
		}
		if !strings.HasPrefix(raw, "{") || !strings.HasSuffix(raw, "}") {
			return nil, invalidErr("list", raw, errors.New("not a canonical list"))
		}
		content := raw[1 : len(raw)-1]
		if content == "" {
			return []T{}, nil
		}
		parts := strings.Split(content, ",")
		out := make([]T, 0, len(parts))
		for i, p := range parts {
			v, err := elem(p)
			if err != nil {
				return nil, invalidErr("list", raw, fmt.Errorf("element %d: %w", i, err))
			}
			out = append(out, v)
		}
		return out, nil
	}
}
