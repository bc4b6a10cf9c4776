package rowcast

import (
	"errors"
	"strings"
	"testing"
)

func defaultTokenizer(t *testing.T) *Tokenizer {
	t.Helper()
	tok, err := NewTokenizer(DefaultConfig())
	if err != nil {
		t.Fatalf("NewTokenizer: %v", err)
	}
	return tok
}

// ----------------------------------------------------------------------------
// Tokenize
// ----------------------------------------------------------------------------

func TestTokenize(t *testing.T) {
	tok := defaultTokenizer(t)

	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain cells",
			line: "a,b,c",
			want: []string{"a", "b", "c"},
		},
		{
			name: "single cell",
			line: "hello",
			want: []string{"hello"},
		},
		{
			name: "empty line is one empty cell",
			line: "",
			want: []string{""},
		},
		{
			name: "empty interior cell",
			line: "a,,b",
			want: []string{"a", "", "b"},
		},
		{
			name: "trailing delimiter yields empty cell",
			line: "a,",
			want: []string{"a", ""},
		},
		{
			name: "quoted cell containing the delimiter",
			line: `"a,b",c`,
			want: []string{"a,b", "c"},
		},
		{
			name: "quoted empty cell",
			line: `"",x`,
			want: []string{"", "x"},
		},
		{
			name: "escaped quote inside quoted cell",
			line: `"say \"hi\"",x`,
			want: []string{`say "hi"`, "x"},
		},
		{
			name: "list cell is canonicalized",
			line: "{a|b|c},x",
			want: []string{"{a,b,c}", "x"},
		},
		{
			name: "empty list",
			line: "{},x",
			want: []string{"{}", "x"},
		},
		{
			name: "single element list",
			line: "{only}",
			want: []string{"{only}"},
		},
		{
			name: "delimiter pattern absorbs surrounding space",
			line: "a, b",
			want: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tok.Tokenize(tt.line)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.line, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %q, want %q", tt.line, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Tokenize(%q)[%d] = %q, want %q", tt.line, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenizeSyntaxFailures(t *testing.T) {
	tok := defaultTokenizer(t)

	tests := []struct {
		name string
		line string
	}{
		{"unterminated quote", `"abc`},
		{"unterminated list", "{a|b"},
		{"garbage after quoted cell", `"a"b,c`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tok.Tokenize(tt.line)
			var te *TokenizeError
			if !errors.As(err, &te) {
				t.Fatalf("Tokenize(%q) error = %v, want *TokenizeError", tt.line, err)
			}
			if te.Line != tt.line {
				t.Errorf("TokenizeError.Line = %q, want %q", te.Line, tt.line)
			}
		})
	}
}

// Round-trip: joining tokenized plain cells with the delimiter reproduces
// the input, for any input free of delimiter, quote, and bracket characters
// inside unquoted cells.
func TestTokenizeRoundTrip(t *testing.T) {
	tok := defaultTokenizer(t)

	inputs := []string{
		"a,b,c",
		"one",
		"x,y",
		"cell with spaces,another cell",
	}
	for _, line := range inputs {
		cells, err := tok.Tokenize(line)
		if err != nil {
			t.Fatalf("Tokenize(%q) error: %v", line, err)
		}
		if got := strings.Join(cells, ","); got != line {
			t.Errorf("rejoin(%q) = %q", line, got)
		}
	}
}

// Any configured separator and bracket pair tokenizes to the canonical
// {a,b,c} form.
func TestTokenizeListCanonicalForm(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ListOpen = "<"
	cfg.ListClose = ">"
	cfg.ListSeparator = ";"

	tok, err := NewTokenizer(cfg)
	if err != nil {
		t.Fatalf("NewTokenizer: %v", err)
	}

	got, err := tok.Tokenize("<a;b;c>")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	if len(got) != 1 || got[0] != "{a,b,c}" {
		t.Errorf("Tokenize(<a;b;c>) = %q, want [{a,b,c}]", got)
	}
}

func TestTokenizeCustomDelimiter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CellDelimiterPattern = `\t`
	cfg.PlainCellPattern = `[^"\t]*`

	tok, err := NewTokenizer(cfg)
	if err != nil {
		t.Fatalf("NewTokenizer: %v", err)
	}

	got, err := tok.Tokenize("a\tb, with comma\tc")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	want := []string{"a", "b, with comma", "c"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// Whitespace inside cells is significant and never implicitly trimmed.
func TestTokenizeWhitespaceSignificant(t *testing.T) {
	tok := defaultTokenizer(t)

	got, err := tok.Tokenize(`" padded ",x`)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	if got[0] != " padded " {
		t.Errorf("quoted cell = %q, want %q", got[0], " padded ")
	}
}
