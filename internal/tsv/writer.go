// Package tsv writes tab-separated extract files.
package tsv

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Writer appends rows to a tab-delimited file. Embedded tabs and
// newlines get standard CSV quoting.
type Writer struct {
	file *os.File
	csv  *csv.Writer
}

// Create opens path for writing, replacing any existing file at that
// location.
func Create(path string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating extract file: %w", err)
	}

	w := csv.NewWriter(file)
	w.Comma = '\t'

	return &Writer{file: file, csv: w}, nil
}

// Append writes one row.
func (w *Writer) Append(row []string) error {
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("writing extract row: %w", err)
	}
	return nil
}

// Close flushes buffered rows and closes the file.
func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.file.Close()
		return fmt.Errorf("flushing extract file: %w", err)
	}
	return w.file.Close()
}
