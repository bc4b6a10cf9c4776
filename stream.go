package rowcast

// stream.go adapts arbitrary text sources into the line sequences the
// assemblers consume, handling the usual artifacts of user-exported files:
// a UTF-8 BOM on the first line (Windows programs love adding one),
// carriage returns from CRLF line endings, and invalid UTF-8 sequences,
// which are replaced with the Unicode replacement character so a bad byte
// cannot poison tokenization.

import (
	"bufio"
	"io"
	"iter"
	"strings"
	"unicode/utf8"
)

// LinesOf wraps literal lines as a sequence. Handy in tests and for
// callers that already hold their input in memory.
func LinesOf(lines ...string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, l := range lines {
			if !yield(l) {
				return
			}
		}
	}
}

// Lines reads r line by line. The UTF-8 BOM is stripped from the first
// line, a trailing carriage return is stripped from every line, and
// invalid UTF-8 is sanitized. Read errors end the sequence; the source is
// responsible for its own I/O error reporting, the core only consumes
// lines.
func Lines(r io.Reader) iter.Seq[string] {
	return func(yield func(string) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		first := true
		for sc.Scan() {
			line := sc.Text()
			if first {
				line = strings.TrimPrefix(line, "\ufeff")
				first = false
			}
			line = strings.TrimSuffix(line, "\r")
			if !utf8.ValidString(line) {
				line = strings.ToValidUTF8(line, string(utf8.RuneError))
			}
			if !yield(line) {
				return
			}
		}
	}
}
