package tabulator

import (
	"errors"
	"testing"

	"github.com/crimson-sun/sectormatch/internal/catalog"
	"github.com/crimson-sun/sectormatch/internal/engine/ranker"
	"github.com/crimson-sun/sectormatch/internal/model"
)

func plainCatalog(labels ...string) *catalog.Catalog {
	entries := make([]model.ReferenceEntry, len(labels))
	for i, l := range labels {
		entries[i] = model.ReferenceEntry{Label: l}
	}
	return &catalog.Catalog{Name: "test", Entries: entries}
}

func TestTabulateWorkedExample(t *testing.T) {
	cat := plainCatalog("Agriculture", "Mining", "Manufacturing")
	ranked := [][]ranker.Match{{
		{Index: 0, Score: 0.9},
		{Index: 1, Score: 0.2},
		{Index: 2, Score: 0.1},
	}}

	report, err := Tabulate([]string{"farming"}, ranked, cat, 2)
	if err != nil {
		t.Fatalf("Tabulate() error: %v", err)
	}
	want := []model.Row{
		{Input: "farming", Order: 1, Sector: "Agriculture", Similarity: 0.9},
		{Input: "farming", Order: 2, Sector: "Mining", Similarity: 0.2},
	}
	if len(report.Rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(report.Rows), len(want))
	}
	for i, w := range want {
		if report.Rows[i] != w {
			t.Errorf("row %d = %+v, want %+v", i, report.Rows[i], w)
		}
	}
}

func TestTabulateCodedCatalog(t *testing.T) {
	cat := &catalog.Catalog{
		Name:  "test-coded",
		Coded: true,
		Entries: []model.ReferenceEntry{
			{Code: "A01", Label: "Crop farming"},
			{Code: "B05", Label: "Coal mining"},
		},
	}
	ranked := [][]ranker.Match{{
		{Index: 1, Score: 0.8},
		{Index: 0, Score: 0.3},
	}}

	report, err := Tabulate([]string{"coal"}, ranked, cat, 1)
	if err != nil {
		t.Fatalf("Tabulate() error: %v", err)
	}
	row := report.Rows[0]
	if row.Order != 1 || row.Code != "B05" || row.Sector != "Coal mining" || row.Similarity != 0.8 {
		t.Errorf("row = %+v, want order=1 code=B05 sector=Coal mining similarity=0.8", row)
	}
	if !report.Coded {
		t.Error("report should be marked coded")
	}
}

func TestTabulateRowCountAndOrder(t *testing.T) {
	cat := plainCatalog("a", "b", "c", "d")
	inputs := []string{"x", "y", "z"}
	ranked := make([][]ranker.Match, len(inputs))
	for i := range ranked {
		ranked[i] = []ranker.Match{
			{Index: 3, Score: 0.9}, {Index: 1, Score: 0.5},
			{Index: 0, Score: 0.4}, {Index: 2, Score: 0.1},
		}
	}

	const topN = 3
	report, err := Tabulate(inputs, ranked, cat, topN)
	if err != nil {
		t.Fatalf("Tabulate() error: %v", err)
	}
	if len(report.Rows) != len(inputs)*topN {
		t.Fatalf("got %d rows, want %d", len(report.Rows), len(inputs)*topN)
	}
	for i, row := range report.Rows {
		wantInput := inputs[i/topN]
		wantOrder := i%topN + 1
		if row.Input != wantInput || row.Order != wantOrder {
			t.Fatalf("row %d = (input=%q order=%d), want (input=%q order=%d)",
				i, row.Input, row.Order, wantInput, wantOrder)
		}
	}
}

func TestTabulateInsufficientEntries(t *testing.T) {
	cat := plainCatalog("a", "b")
	ranked := [][]ranker.Match{{{Index: 0, Score: 1}, {Index: 1, Score: 0.5}}}

	_, err := Tabulate([]string{"x"}, ranked, cat, 3)
	var insErr *InsufficientEntriesError
	if !errors.As(err, &insErr) {
		t.Fatalf("expected InsufficientEntriesError, got %v", err)
	}
	if insErr.Available != 2 || insErr.Requested != 3 {
		t.Errorf("got Requested=%d Available=%d, want 3 and 2", insErr.Requested, insErr.Available)
	}
}

func TestTabulateRejectsNonPositiveTopN(t *testing.T) {
	cat := plainCatalog("a")
	ranked := [][]ranker.Match{{{Index: 0, Score: 1}}}

	for _, n := range []int{0, -1} {
		if _, err := Tabulate([]string{"x"}, ranked, cat, n); err == nil {
			t.Errorf("Tabulate(topN=%d): expected error", n)
		}
	}
}

func TestTabulateRankingInputMismatch(t *testing.T) {
	cat := plainCatalog("a")
	ranked := [][]ranker.Match{{{Index: 0, Score: 1}}}

	if _, err := Tabulate([]string{"x", "y"}, ranked, cat, 1); err == nil {
		t.Fatal("expected error for mismatched rankings/inputs")
	}
}
