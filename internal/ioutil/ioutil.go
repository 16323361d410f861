// Package ioutil provides the compiler's output sink: a buffered Writer
// that accumulates text and flushes it to a file or stdout in one shot.
//
// Grounded on _examples/hhramberg-go-vslc/src/util/io.go's Writer type,
// simplified from that package's channel-fed, many-worker-thread design
// down to the single-threaded model of spec.md §5: one pass writes at a
// time, so there is no listener goroutine, no close channel, and no
// WaitGroup to join.
package ioutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Writer buffers output in a strings.Builder and flushes it to an
// underlying io.Writer on demand.
type Writer struct {
	sb strings.Builder
}

// Write appends a formatted string to the buffer.
func (w *Writer) Write(format string, args ...interface{}) {
	w.sb.WriteString(fmt.Sprintf(format, args...))
}

// WriteString appends a plain string to the buffer.
func (w *Writer) WriteString(s string) {
	w.sb.WriteString(s)
}

// Flush writes the buffered text to dst and resets the buffer.
func (w *Writer) Flush(dst io.Writer) error {
	bw := bufio.NewWriter(dst)
	if _, err := bw.WriteString(w.sb.String()); err != nil {
		return err
	}
	w.sb = strings.Builder{}
	return bw.Flush()
}

// Open resolves an output destination: path, if non-empty, is truncated
// and created; otherwise os.Stdout is returned with a no-op closer.
func Open(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
