// Package ranker scores input embeddings against reference embeddings and
// produces, per input, the full descending-sorted ranking of reference
// indices. Truncation to top-N is the tabulator's job.
package ranker

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrEmptyInput is returned when either vector sequence is empty.
var ErrEmptyInput = errors.New("ranker: empty input")

// DimensionMismatchError reports a vector whose length disagrees with the
// rest of the batch. This is a programming error upstream (embedding
// providers return fixed-length vectors), surfaced rather than recovered.
type DimensionMismatchError struct {
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("ranker: vector dimension %d, want %d", e.Got, e.Want)
}

// Match pairs a reference index with its cosine similarity to one input.
type Match struct {
	Index int
	Score float64
}

// Rank computes the cosine similarity of every input vector against every
// reference vector and returns, for each input, all reference indices
// sorted by descending score. Ties keep ascending index order (stable
// sort), so identical inputs always rank identically.
//
// Pure function of its arguments; inputs are never mutated.
func Rank(inputs, refs [][]float32) ([][]Match, error) {
	if len(inputs) == 0 || len(refs) == 0 {
		return nil, ErrEmptyInput
	}

	dim := len(inputs[0])
	for _, v := range inputs {
		if len(v) != dim {
			return nil, &DimensionMismatchError{Want: dim, Got: len(v)}
		}
	}
	for _, v := range refs {
		if len(v) != dim {
			return nil, &DimensionMismatchError{Want: dim, Got: len(v)}
		}
	}

	ranked := make([][]Match, len(inputs))
	for i, in := range inputs {
		row := make([]Match, len(refs))
		for j, ref := range refs {
			row[j] = Match{Index: j, Score: cosineSimilarity(in, ref)}
		}
		sort.SliceStable(row, func(a, b int) bool {
			return row[a].Score > row[b].Score
		})
		ranked[i] = row
	}
	return ranked, nil
}

// cosineSimilarity computes dot(a,b) / (|a| * |b|), accumulating in float64.
// Zero-norm vectors score 0 against everything.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
