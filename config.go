package rowcast

// config.go defines the parse configuration and its YAML loader.
//
// A Config describes one table dialect: the cell grammar (delimiter, quote,
// list brackets), the error policy, and how the header is obtained. Configs
// are plain values; they are validated once when an assembler is built and
// read-only afterwards, so dialect profiles can be shared freely.

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Policy selects how row failures are handled during a parse.
type Policy int

const (
	// PolicyDefault uses the assembler's natural policy: fail-fast for
	// typed tables, forgiving for raw-cell tables.
	PolicyDefault Policy = iota

	// PolicyFailFast aborts the whole parse on the first row failure.
	// No partial table is produced.
	PolicyFailFast

	// PolicyForgiving reports each row failure to the FailureSink and
	// excludes the row from the result. The parse always completes.
	PolicyForgiving
)

// String returns the YAML spelling of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyFailFast:
		return "fail_fast"
	case PolicyForgiving:
		return "forgiving"
	default:
		return "default"
	}
}

// UnmarshalYAML parses "fail_fast", "forgiving", "default", or "".
func (p *Policy) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "", "default":
		*p = PolicyDefault
	case "fail_fast":
		*p = PolicyFailFast
	case "forgiving":
		*p = PolicyForgiving
	default:
		return fmt.Errorf("unknown policy %q", s)
	}
	return nil
}

// MarshalYAML emits the YAML spelling of the policy.
func (p Policy) MarshalYAML() (any, error) {
	return p.String(), nil
}

// Config holds all settings for one table dialect.
type Config struct {
	// CellDelimiterPattern is the regular expression separating cells
	// (default: `\s*,\s*`). It must not match the empty string.
	CellDelimiterPattern string `yaml:"cell_delimiter_pattern"`

	// PlainCellPattern is the regular expression for an unquoted,
	// unbracketed cell (default: `[^",]*`). By construction it should
	// exclude the quote and delimiter characters.
	PlainCellPattern string `yaml:"plain_cell_pattern"`

	// QuoteChar is the single character delimiting quoted cells
	// (default: `"`).
	QuoteChar string `yaml:"quote_char"`

	// ListOpen and ListClose are the single characters bracketing list
	// cells (default: `{` and `}`).
	ListOpen  string `yaml:"list_open"`
	ListClose string `yaml:"list_close"`

	// ListSeparator is the single character joining list elements on
	// input (default: `|`). Output always uses the canonical `{a,b,c}`
	// form regardless of this setting.
	ListSeparator string `yaml:"list_separator"`

	// Policy selects fail-fast or forgiving row-failure handling.
	Policy Policy `yaml:"policy"`

	// FixedHeader supplies column names out of band. When set, no input
	// line is consumed as a header.
	FixedHeader []string `yaml:"fixed_header"`

	// HeaderRowCount is the number of leading input lines that form the
	// header block (default: 1). The first line of the block is tokenized
	// as the Header; the rest are discarded. Ignored when FixedHeader is
	// set.
	HeaderRowCount int `yaml:"header_row_count"`
}

// DefaultConfig returns the standard comma-separated dialect.
func DefaultConfig() Config {
	return Config{
		CellDelimiterPattern: `\s*,\s*`,
		PlainCellPattern:     `[^",]*`,
		QuoteChar:            `"`,
		ListOpen:             "{",
		ListClose:            "}",
		ListSeparator:        "|",
		HeaderRowCount:       1,
	}
}

// ConfigFromYAML unmarshals a dialect profile over the defaults and
// validates the result. Unset fields keep their default values.
func ConfigFromYAML(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse dialect config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent:
// patterns compile, single-character fields hold exactly one rune, and the
// grammar's alternatives stay disjoint enough to scan without backtracking.
func (c Config) Validate() error {
	delim, err := regexp.Compile(c.CellDelimiterPattern)
	if err != nil {
		return fmt.Errorf("cell_delimiter_pattern: %w", err)
	}
	if delim.MatchString("") {
		return fmt.Errorf("cell_delimiter_pattern %q must not match the empty string", c.CellDelimiterPattern)
	}
	if _, err := regexp.Compile(c.PlainCellPattern); err != nil {
		return fmt.Errorf("plain_cell_pattern: %w", err)
	}
	for _, f := range []struct {
		name, val string
	}{
		{"quote_char", c.QuoteChar},
		{"list_open", c.ListOpen},
		{"list_close", c.ListClose},
		{"list_separator", c.ListSeparator},
	} {
		if utf8.RuneCountInString(f.val) != 1 {
			return fmt.Errorf("%s must be exactly one character, got %q", f.name, f.val)
		}
	}
	if c.QuoteChar == c.ListOpen {
		return fmt.Errorf("quote_char and list_open must differ")
	}
	if c.HeaderRowCount < 1 && len(c.FixedHeader) == 0 {
		return fmt.Errorf("header_row_count must be at least 1 without a fixed header")
	}
	return nil
}
