package telemetry

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// Writer appends window rows to a CSV stream, writing the header once.
type Writer struct {
	out           io.Writer
	headerWritten bool
}

// NewWriter returns a writer over out. A nil out discards rows.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Write appends one row.
func (w *Writer) Write(stats WindowStats) error {
	if w == nil || w.out == nil {
		return nil
	}

	records := []WindowStats{stats}
	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.out); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.out); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}
