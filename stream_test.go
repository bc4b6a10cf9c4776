package rowcast

import (
	"strings"
	"testing"
)

func collect(seq func(func(string) bool)) []string {
	var out []string
	seq(func(s string) bool {
		out = append(out, s)
		return true
	})
	return out
}

func TestLinesStripsBOMAndCR(t *testing.T) {
	input := "\ufeffNAME,AGE\r\nAlice,30\r\nBob,25"
	got := collect(Lines(strings.NewReader(input)))

	want := []string{"NAME,AGE", "Alice,30", "Bob,25"}
	if len(got) != len(want) {
		t.Fatalf("Lines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLinesSanitizesInvalidUTF8(t *testing.T) {
	input := "ok\nbad\xff\xfeline\n"
	got := collect(Lines(strings.NewReader(input)))

	if len(got) != 2 {
		t.Fatalf("Lines = %q", got)
	}
	if got[0] != "ok" {
		t.Errorf("line 0 = %q", got[0])
	}
	if strings.ContainsRune(got[1], 0xFFFD) == false {
		t.Errorf("invalid bytes not sanitized: %q", got[1])
	}
	if !strings.HasPrefix(got[1], "bad") || !strings.HasSuffix(got[1], "line") {
		t.Errorf("line 1 = %q", got[1])
	}
}

func TestLinesOfStopsEarly(t *testing.T) {
	seq := LinesOf("a", "b", "c")
	var got []string
	seq(func(s string) bool {
		got = append(got, s)
		return len(got) < 2
	})
	if len(got) != 2 {
		t.Errorf("early stop collected %q", got)
	}
}

// Lines feeds straight into a table parse.
func TestLinesEndToEnd(t *testing.T) {
	ta, err := NewRawAssembler(DefaultConfig())
	if err != nil {
		t.Fatalf("NewRawAssembler: %v", err)
	}

	table, err := ta.Parse(Lines(strings.NewReader("\ufeffA,B\r\n1,2\r\n3,4\r\n")))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len = %d, want 2", table.Len())
	}
	if v, _ := table.Row(1).Named("A"); v != "3" {
		t.Errorf("row 2 A = %q, want 3", v)
	}
}
