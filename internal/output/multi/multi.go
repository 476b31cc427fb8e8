// Package multi fans reports out to several destinations.
package multi

import (
	"context"
	"errors"

	"github.com/crimson-sun/sectormatch/internal/model"
	"github.com/crimson-sun/sectormatch/internal/output"
)

// Multi fans out reports to multiple output.Writer implementations.
// If one writer fails, the remaining writers still receive the report.
type Multi struct {
	writers []output.Writer
}

// New creates a Multi that fans out to the given writers.
func New(writers ...output.Writer) *Multi {
	return &Multi{writers: writers}
}

// Write delivers the report to every wrapped writer. Errors are collected
// but do not prevent delivery to subsequent writers.
func (m *Multi) Write(ctx context.Context, report model.Report) error {
	var errs []error
	for _, w := range m.writers {
		if err := w.Write(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close calls Close on every wrapped writer, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, w := range m.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
