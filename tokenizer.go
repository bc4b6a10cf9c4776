package rowcast

// tokenizer.go splits one raw line into cells.
//
// A row is one-or-more cells separated by the delimiter pattern. A cell is,
// in priority order: a quoted string, a bracketed list, or the longest run
// matching the plain-cell pattern. The three alternatives are syntactically
// disjoint for a well-formed configuration, so scanning never backtracks.
// Whitespace is significant and never implicitly trimmed.

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Tokenizer splits lines into raw cells under one dialect's grammar.
// A Tokenizer is immutable and safe for concurrent use.
type Tokenizer struct {
	delim   *regexp.Regexp // anchored delimiter pattern
	plain   *regexp.Regexp // anchored plain-cell pattern
	quote   rune
	lopen   rune
	lclose  rune
	lsep    rune
}

// NewTokenizer compiles the grammar described by cfg.
func NewTokenizer(cfg Config) (*Tokenizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	delim, err := regexp.Compile(`^(?:` + cfg.CellDelimiterPattern + `)`)
	if err != nil {
		return nil, err
	}
	plain, err := regexp.Compile(`^(?:` + cfg.PlainCellPattern + `)`)
	if err != nil {
		return nil, err
	}
	quote, _ := utf8.DecodeRuneInString(cfg.QuoteChar)
	lopen, _ := utf8.DecodeRuneInString(cfg.ListOpen)
	lclose, _ := utf8.DecodeRuneInString(cfg.ListClose)
	lsep, _ := utf8.DecodeRuneInString(cfg.ListSeparator)
	return &Tokenizer{
		delim:  delim,
		plain:  plain,
		quote:  quote,
		lopen:  lopen,
		lclose: lclose,
		lsep:   lsep,
	}, nil
}

// Tokenize splits one line into its ordered raw cells. List cells are
// re-serialized to the canonical `{a,b,c}` form regardless of the
// configured brackets and separator, so downstream converters see one
// stable shape across dialects.
func (t *Tokenizer) Tokenize(line string) ([]string, error) {
	var cells []string
	pos := 0
	for {
		cell, next, err := t.cell(line, pos)
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
		pos = next

		if pos >= len(line) {
			return cells, nil
		}
		m := t.delim.FindStringIndex(line[pos:])
		if m == nil || m[1] == 0 {
			return nil, &TokenizeError{Line: line, Pos: pos, Reason: "expected cell delimiter"}
		}
		pos += m[1]
	}
}

// cell scans one cell starting at pos and returns its value and the offset
// just past it.
func (t *Tokenizer) cell(line string, pos int) (string, int, error) {
	if pos < len(line) {
		switch r, _ := utf8.DecodeRuneInString(line[pos:]); r {
		case t.quote:
			return t.quoted(line, pos)
		case t.lopen:
			return t.list(line, pos)
		}
	}
	m := t.plain.FindStringIndex(line[pos:])
	if m == nil {
		return "", 0, &TokenizeError{Line: line, Pos: pos, Reason: "malformed cell"}
	}
	return line[pos : pos+m[1]], pos + m[1], nil
}

// quoted scans a quoted cell. The content is everything strictly between
// two quote characters; a backslash-escaped quote is accepted inside. A
// missing closing quote is a syntax failure.
func (t *Tokenizer) quoted(line string, pos int) (string, int, error) {
	var b strings.Builder
	i := pos + utf8.RuneLen(t.quote)
	for i < len(line) {
		r, sz := utf8.DecodeRuneInString(line[i:])
		if r == '\\' && i+sz < len(line) {
			nr, nsz := utf8.DecodeRuneInString(line[i+sz:])
			if nr == t.quote {
				b.WriteRune(t.quote)
				i += sz + nsz
				continue
			}
		}
		if r == t.quote {
			return b.String(), i + sz, nil
		}
		b.WriteRune(r)
		i += sz
	}
	return "", 0, &TokenizeError{Line: line, Pos: pos, Reason: "unterminated quoted cell"}
}

// list scans a bracketed list cell and re-serializes it canonically.
func (t *Tokenizer) list(line string, pos int) (string, int, error) {
	start := pos + utf8.RuneLen(t.lopen)
	end := -1
	for i := start; i < len(line); {
		r, sz := utf8.DecodeRuneInString(line[i:])
		if r == t.lclose {
			end = i
			break
		}
		i += sz
	}
	if end < 0 {
		return "", 0, &TokenizeError{Line: line, Pos: pos, Reason: "unterminated list cell"}
	}
	content := line[start:end]
	next := end + utf8.RuneLen(t.lclose)
	if content == "" {
		return "{}", next, nil
	}
	elems := strings.Split(content, string(t.lsep))
	return "{" + strings.Join(elems, ",") + "}", next, nil
}
