package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Printer receives report output one line at a time, in order.
type Printer interface {
	Print(line string) error
}

// PrinterFunc adapts a function to Printer.
type PrinterFunc func(line string) error

// Print calls f(line).
func (f PrinterFunc) Print(line string) error { return f(line) }

// Buffer collects output in memory.
type Buffer []string

// Print appends line.
func (b *Buffer) Print(line string) error {
	*b = append(*b, line)
	return nil
}

// String joins the collected lines, each terminated by a newline.
func (b Buffer) String() string {
	var sb strings.Builder
	for _, line := range b {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Replay prints every collected line to p, in order.
func (b Buffer) Replay(p Printer) error {
	for _, line := range b {
		if err := p.Print(line); err != nil {
			return err
		}
	}
	return nil
}

// WriterPrinter writes newline-terminated lines to a buffered writer. Close
// flushes and, when the printer owns the underlying writer, closes it.
type WriterPrinter struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewWriterPrinter wraps w. The caller keeps ownership of w.
func NewWriterPrinter(w io.Writer) *WriterPrinter {
	return &WriterPrinter{w: bufio.NewWriter(w)}
}

// CreateFilePrinter creates (or truncates) path and returns a printer that
// owns the file.
func CreateFilePrinter(path string) (*WriterPrinter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create report file: %w", err)
	}
	return &WriterPrinter{w: bufio.NewWriter(f), closer: f}, nil
}

// Print writes line followed by a newline.
func (p *WriterPrinter) Print(line string) error {
	if _, err := p.w.WriteString(line); err != nil {
		return err
	}
	return p.w.WriteByte('\n')
}

// Close flushes buffered output and closes an owned file.
func (p *WriterPrinter) Close() error {
	err := p.w.Flush()
	if p.closer != nil {
		err = errors.Join(err, p.closer.Close())
	}
	return err
}
