package sectormatch

import (
	"context"
	"fmt"

	"github.com/crimson-sun/sectormatch/internal/catalog"
	"github.com/crimson-sun/sectormatch/internal/engine"
	"github.com/crimson-sun/sectormatch/internal/engine/embedder"
	"github.com/crimson-sun/sectormatch/internal/engine/ranker"
	"github.com/crimson-sun/sectormatch/internal/engine/tabulator"
)

// ErrUnknownClassification is returned by New when the classification name
// doesn't resolve to a reference list.
var ErrUnknownClassification = catalog.ErrUnknownClassification

// ErrEmptyInput is returned by Match when no inputs are given.
var ErrEmptyInput = ranker.ErrEmptyInput

// InsufficientEntriesError is returned when more guesses are requested than
// the classification has entries. Available is the maximum valid value.
type InsufficientEntriesError = tabulator.InsufficientEntriesError

// DimensionMismatchError is returned when embedding vectors disagree on
// dimensionality.
type DimensionMismatchError = ranker.DimensionMismatchError

// Embedder converts batches of texts into vectors. Implementations must be
// deterministic within a Matcher's lifetime: equal texts, equal vectors.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Close() error
}

// Matcher matches input texts against one reference classification.
// Safe for concurrent use.
type Matcher struct {
	engine   *engine.Engine
	embedder embedder.Embedder
	guesses  int
}

// New creates a Matcher for the given classification. The classification is
// resolved before any model loading, so an unknown name fails fast with
// ErrUnknownClassification. Loading the ONNX model is expensive — create
// once, reuse across requests.
func New(classification string, opts ...Option) (*Matcher, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	cat, err := catalog.Load(classification)
	if err != nil {
		return nil, err
	}

	var emb embedder.Embedder
	if o.embedder != nil {
		emb = o.embedder
	} else {
		modelPath, vocabPath, projPath := resolvePaths(o)
		emb, err = embedder.NewONNX(embedder.Config{
			ModelPath:      modelPath,
			VocabPath:      vocabPath,
			ProjectionPath: projPath,
		})
		if err != nil {
			return nil, fmt.Errorf("sectormatch: %w", err)
		}
	}

	if !o.noCache {
		emb = embedder.NewCached(emb, classification)
	}

	return &Matcher{
		engine:   engine.New(emb, cat),
		embedder: emb,
		guesses:  o.guesses,
	}, nil
}

// Match ranks every entry of the classification against every input and
// returns the configured number of candidates per input, best first.
func (m *Matcher) Match(ctx context.Context, inputs ...string) (Report, error) {
	report, err := m.engine.Match(ctx, inputs, m.guesses)
	if err != nil {
		return Report{}, err
	}
	return reportFromModel(report), nil
}

// Classification returns the canonical name of the loaded classification.
func (m *Matcher) Classification() string {
	return m.engine.Catalog().Name
}

// Close releases embedding provider resources.
func (m *Matcher) Close() error {
	return m.embedder.Close()
}

// Classifications returns the canonical names of all available reference
// classifications, sorted.
func Classifications() []string {
	return catalog.Names()
}
