// Package stdout renders match reports as an aligned text table.
package stdout

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/crimson-sun/sectormatch/internal/model"
)

// Output writes reports as tab-aligned tables. The code column appears only
// for code-bearing classifications.
type Output struct {
	w io.Writer
}

// New creates a table Output writing to w (os.Stdout in the CLI).
func New(w io.Writer) *Output {
	return &Output{w: w}
}

func (o *Output) Write(_ context.Context, report model.Report) error {
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)

	if report.Coded {
		fmt.Fprintln(tw, "INPUT\tORDER\tCODE\tSECTOR\tSIMILARITY")
		for _, row := range report.Rows {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%.4f\n",
				row.Input, row.Order, row.Code, row.Sector, row.Similarity)
		}
	} else {
		fmt.Fprintln(tw, "INPUT\tORDER\tSECTOR\tSIMILARITY")
		for _, row := range report.Rows {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%.4f\n",
				row.Input, row.Order, row.Sector, row.Similarity)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
