// Package tabulator reshapes per-input rankings into the final report:
// one row per (input, rank), resolved against the reference catalog.
package tabulator

import (
	"fmt"

	"github.com/crimson-sun/sectormatch/internal/catalog"
	"github.com/crimson-sun/sectormatch/internal/engine/ranker"
	"github.com/crimson-sun/sectormatch/internal/model"
)

// InsufficientEntriesError reports a top-N request larger than the catalog.
// Available is the maximum valid value, so callers can retry with it.
type InsufficientEntriesError struct {
	Requested int
	Available int
}

func (e *InsufficientEntriesError) Error() string {
	return fmt.Sprintf("tabulator: %d guesses requested but catalog has only %d entries",
		e.Requested, e.Available)
}

// Tabulate builds the report for one matching session. Rows are ordered by
// (input order as supplied, ascending rank 1..topN); codes are resolved only
// for code-bearing catalogs, so both catalog shapes share one row type.
func Tabulate(inputs []string, ranked [][]ranker.Match, cat *catalog.Catalog, topN int) (model.Report, error) {
	if topN <= 0 {
		return model.Report{}, fmt.Errorf("tabulator: guesses must be positive, got %d", topN)
	}
	if topN > cat.Len() {
		return model.Report{}, &InsufficientEntriesError{Requested: topN, Available: cat.Len()}
	}
	if len(ranked) != len(inputs) {
		return model.Report{}, fmt.Errorf("tabulator: %d rankings for %d inputs", len(ranked), len(inputs))
	}

	rows := make([]model.Row, 0, len(inputs)*topN)
	for i, input := range inputs {
		for r := 0; r < topN; r++ {
			m := ranked[i][r]
			entry := cat.Entries[m.Index]
			row := model.Row{
				Input:      input,
				Order:      r + 1,
				Sector:     entry.Label,
				Similarity: m.Score,
			}
			if cat.Coded {
				row.Code = entry.Code
			}
			rows = append(rows, row)
		}
	}

	return model.Report{
		Classification: cat.Name,
		Coded:          cat.Coded,
		Guesses:        topN,
		Rows:           rows,
	}, nil
}
