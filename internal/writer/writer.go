// Package writer implements the listing output.
package writer

import (
	"bufio"
	"fmt"
	"io"
)

// Writer writes listing lines to a buffered output.
type Writer struct {
	buf   *bufio.Writer
	lines int
}

// New creates a new writer.
func New(writer io.Writer) *Writer {
	return &Writer{
		buf: bufio.NewWriter(writer),
	}
}

// WriteLine writes a single line, a newline is appended.
func (w *Writer) WriteLine(line string) error {
	if _, err := fmt.Fprintln(w.buf, line); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	w.lines++
	return nil
}

// Lines returns the number of lines written.
func (w *Writer) Lines() int {
	return w.lines
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}
