// Package engine orchestrates the normalize → embed → rank → tabulate
// pipeline that matches free-text sector names against a reference
// classification.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/crimson-sun/sectormatch/internal/catalog"
	"github.com/crimson-sun/sectormatch/internal/engine/embedder"
	"github.com/crimson-sun/sectormatch/internal/engine/normalize"
	"github.com/crimson-sun/sectormatch/internal/engine/ranker"
	"github.com/crimson-sun/sectormatch/internal/engine/tabulator"
	"github.com/crimson-sun/sectormatch/internal/model"
)

// Engine matches input texts against one reference catalog. Reference
// embeddings are computed once, on first use, and reused across calls.
type Engine struct {
	embedder embedder.Embedder
	catalog  *catalog.Catalog

	refMu   sync.Mutex
	refVecs [][]float32
}

// New creates an Engine for the given catalog.
func New(emb embedder.Embedder, cat *catalog.Catalog) *Engine {
	return &Engine{embedder: emb, catalog: cat}
}

// Catalog returns the reference catalog the engine matches against.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Match ranks every catalog entry against every input and returns the top
// topN candidates per input. Validation errors are returned before any
// embedding work happens.
func (e *Engine) Match(ctx context.Context, inputs []string, topN int) (model.Report, error) {
	if len(inputs) == 0 {
		return model.Report{}, ranker.ErrEmptyInput
	}
	if topN <= 0 {
		return model.Report{}, fmt.Errorf("engine: number of guesses must be positive, got %d", topN)
	}
	if topN > e.catalog.Len() {
		return model.Report{}, &tabulator.InsufficientEntriesError{
			Requested: topN,
			Available: e.catalog.Len(),
		}
	}

	refs, err := e.referenceVectors(ctx)
	if err != nil {
		return model.Report{}, err
	}

	inVecs, err := e.embedder.EmbedBatch(ctx, normalize.CleanAll(inputs))
	if err != nil {
		return model.Report{}, fmt.Errorf("engine: embedding inputs: %w", err)
	}

	ranked, err := ranker.Rank(inVecs, refs)
	if err != nil {
		return model.Report{}, err
	}

	// Rows carry the inputs as given, not the normalized form.
	return tabulator.Tabulate(inputs, ranked, e.catalog, topN)
}

// referenceVectors embeds the catalog labels on first use and caches the
// result. Only a successful embed is cached: a failure (a canceled context,
// a provider hiccup) is returned to its caller and the next call starts
// over, so one bad call cannot poison the engine for later ones.
func (e *Engine) referenceVectors(ctx context.Context) ([][]float32, error) {
	e.refMu.Lock()
	defer e.refMu.Unlock()

	if e.refVecs != nil {
		return e.refVecs, nil
	}
	vecs, err := e.embedder.EmbedBatch(ctx, normalize.CleanAll(e.catalog.Labels()))
	if err != nil {
		return nil, fmt.Errorf("engine: embedding %s catalog: %w", e.catalog.Name, err)
	}
	e.refVecs = vecs
	return e.refVecs, nil
}
