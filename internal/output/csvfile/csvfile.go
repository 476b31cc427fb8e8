// Package csvfile writes match reports as CSV, one row per (input, rank).
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/crimson-sun/sectormatch/internal/model"
)

// Output writes reports as CSV. A header row precedes each report; the code
// column appears only for code-bearing classifications.
type Output struct {
	w      *csv.Writer
	closer io.Closer // non-nil when Output owns the destination file
}

// New creates a CSV Output writing to w.
func New(w io.Writer) *Output {
	return &Output{w: csv.NewWriter(w)}
}

// Create creates or truncates the file at path and writes CSV to it. The
// file is closed by Close.
func Create(path string) (*Output, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv output: %w", err)
	}
	return &Output{w: csv.NewWriter(f), closer: f}, nil
}

func (o *Output) Write(_ context.Context, report model.Report) error {
	var header []string
	if report.Coded {
		header = []string{"input", "order", "code", "sector", "similarity"}
	} else {
		header = []string{"input", "order", "sector", "similarity"}
	}
	if err := o.w.Write(header); err != nil {
		return fmt.Errorf("csv output: %w", err)
	}

	for _, row := range report.Rows {
		record := []string{row.Input, strconv.Itoa(row.Order)}
		if report.Coded {
			record = append(record, row.Code)
		}
		record = append(record,
			row.Sector,
			strconv.FormatFloat(row.Similarity, 'f', 6, 64),
		)
		if err := o.w.Write(record); err != nil {
			return fmt.Errorf("csv output: %w", err)
		}
	}

	o.w.Flush()
	if err := o.w.Error(); err != nil {
		return fmt.Errorf("csv output: %w", err)
	}
	return nil
}

// Close flushes buffered rows and closes the destination file if Output
// owns it.
func (o *Output) Close() error {
	o.w.Flush()
	if err := o.w.Error(); err != nil {
		return fmt.Errorf("csv output: %w", err)
	}
	if o.closer != nil {
		return o.closer.Close()
	}
	return nil
}
