// Package diag implements the compiler's diagnostic queue: a buffer of
// formatted, located error messages that every pass appends to and that is
// flushed to stderr at the end of each pass, per spec.md §6/§7. No
// diagnostic is ever raised as a Go panic; semantic errors are always
// values.
//
// Grounded on the channel-fed error buffer of
// _examples/hhramberg-go-vslc/src/util/perror.go, simplified to the
// single-threaded pipeline spec.md §5 mandates (no goroutine, no mutex:
// passes never overlap) and extended with github.com/pkg/errors so a
// Diagnostic can carry a wrapped cause for %+v debugging without changing
// its one-line user-facing format.
package diag

import (
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
)

// Diagnostic is one compiler-reported problem, located in the source.
type Diagnostic struct {
	Line    int
	Col     int
	Message string
	cause   error
}

// Error implements the error interface with the spec's wire format:
// "L<line>:<col>: <message>".
func (d Diagnostic) Error() string {
	return fmt.Sprintf("L%d:%d: %s", d.Line, d.Col, d.Message)
}

// Cause returns the wrapped underlying error, if any, for %+v reporting.
func (d Diagnostic) Cause() error { return d.cause }

// Sink accumulates diagnostics across a compilation. The zero value is
// ready to use. Flush empties the printable buffer at the end of each
// pass, but Total keeps counting for the whole compilation so later passes
// can check "did any earlier pass fail" (spec.md §7: pass 3 runs only if
// zero errors were emitted across passes 1-2).
type Sink struct {
	items []Diagnostic
	total int
}

// Addf records a new diagnostic at line:col with a printf-style message.
func (s *Sink) Addf(line, col int, format string, args ...interface{}) {
	s.items = append(s.items, Diagnostic{Line: line, Col: col, Message: fmt.Sprintf(format, args...)})
	s.total++
}

// Wrap records a new diagnostic whose message is built from an underlying
// Go error, preserving it as the diagnostic's cause.
func (s *Sink) Wrap(line, col int, cause error, context string) {
	s.items = append(s.items, Diagnostic{
		Line:    line,
		Col:     col,
		Message: fmt.Sprintf("%s: %s", context, cause),
		cause:   errors.Wrap(cause, context),
	})
	s.total++
}

// Total returns the number of diagnostics recorded across the whole
// compilation, including ones already Flushed.
func (s *Sink) Total() int { return s.total }

// Len returns the number of buffered diagnostics.
func (s *Sink) Len() int { return len(s.items) }

// Empty reports whether no diagnostics have been recorded.
func (s *Sink) Empty() bool { return len(s.items) == 0 }

// All returns the buffered diagnostics, sorted by source position.
func (s *Sink) All() []Diagnostic {
	out := make([]Diagnostic, len(s.items))
	copy(out, s.items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Flush writes every buffered diagnostic to w, one per line, and clears the
// buffer. compiler.Run calls this at the end of each pass, per spec.md §6.
func (s *Sink) Flush(w io.Writer) {
	for _, d := range s.All() {
		fmt.Fprintln(w, d.Error())
	}
	s.items = nil
}
