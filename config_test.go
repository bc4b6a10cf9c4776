package rowcast

import (
	"strings"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigFromYAML(t *testing.T) {
	cfg, err := ConfigFromYAML([]byte(`
list_open: "<"
list_close: ">"
list_separator: ";"
policy: forgiving
header_row_count: 2
fixed_header: [NAME, AGE]
`))
	if err != nil {
		t.Fatalf("ConfigFromYAML error: %v", err)
	}
	if cfg.ListOpen != "<" || cfg.ListClose != ">" || cfg.ListSeparator != ";" {
		t.Errorf("list config = %q %q %q", cfg.ListOpen, cfg.ListClose, cfg.ListSeparator)
	}
	if cfg.Policy != PolicyForgiving {
		t.Errorf("Policy = %v, want forgiving", cfg.Policy)
	}
	if cfg.HeaderRowCount != 2 {
		t.Errorf("HeaderRowCount = %d", cfg.HeaderRowCount)
	}
	if len(cfg.FixedHeader) != 2 || cfg.FixedHeader[0] != "NAME" {
		t.Errorf("FixedHeader = %v", cfg.FixedHeader)
	}

	// Unset fields keep their defaults.
	if cfg.CellDelimiterPattern != `\s*,\s*` {
		t.Errorf("CellDelimiterPattern = %q, want default", cfg.CellDelimiterPattern)
	}
	if cfg.QuoteChar != `"` {
		t.Errorf("QuoteChar = %q, want default", cfg.QuoteChar)
	}
}

func TestConfigValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{
			name:    "bad delimiter regex",
			mutate:  func(c *Config) { c.CellDelimiterPattern = "(" },
			wantSub: "cell_delimiter_pattern",
		},
		{
			name:    "delimiter matches empty",
			mutate:  func(c *Config) { c.CellDelimiterPattern = `\s*` },
			wantSub: "empty string",
		},
		{
			name:    "multi-rune quote",
			mutate:  func(c *Config) { c.QuoteChar = `""` },
			wantSub: "quote_char",
		},
		{
			name:    "quote equals list open",
			mutate:  func(c *Config) { c.QuoteChar = "{" },
			wantSub: "must differ",
		},
		{
			name:    "bad plain pattern",
			mutate:  func(c *Config) { c.PlainCellPattern = "[" },
			wantSub: "plain_cell_pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate accepted a bad config")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestPolicyYAMLRoundTrip(t *testing.T) {
	for _, p := range []Policy{PolicyDefault, PolicyFailFast, PolicyForgiving} {
		var got Policy
		cfg, err := ConfigFromYAML([]byte("policy: " + p.String()))
		if err != nil {
			t.Fatalf("ConfigFromYAML(policy: %s) error: %v", p, err)
		}
		got = cfg.Policy
		if got != p {
			t.Errorf("round-trip of %v = %v", p, got)
		}
	}
}

func TestPolicyYAMLUnknown(t *testing.T) {
	if _, err := ConfigFromYAML([]byte("policy: lenient")); err == nil {
		t.Error("unknown policy accepted")
	}
}
