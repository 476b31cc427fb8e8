package embedder

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"io"
	"sync"
)

// ErrClosed is returned by EmbedBatch after Close.
var ErrClosed = errors.New("embedder: closed")

// Cached wraps an Embedder with an in-memory vector cache keyed by
// model|text. Reference lists are embedded once per process and duplicate
// inputs within a batch hit the underlying provider only once.
type Cached struct {
	inner Embedder
	model string

	mu     sync.RWMutex
	cache  map[string][]float32
	closed bool
}

// NewCached wraps inner with a cache. model distinguishes cache entries
// when providers are swapped within one process.
func NewCached(inner Embedder, model string) *Cached {
	return &Cached{
		inner: inner,
		model: model,
		cache: make(map[string][]float32),
	}
}

// EmbedBatch serves hits from the cache and forwards only the misses
// (deduplicated) to the wrapped provider.
func (c *Cached) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, len(texts))
	keys := make([]string, len(texts))

	var missTexts []string
	missIndex := make(map[string]int) // key → position in missTexts

	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return nil, ErrClosed
	}
	for i, text := range texts {
		keys[i] = c.cacheKey(text)
		if vec, ok := c.cache[keys[i]]; ok {
			out[i] = cloneVector(vec)
			continue
		}
		if _, queued := missIndex[keys[i]]; !queued {
			missIndex[keys[i]] = len(missTexts)
			missTexts = append(missTexts, text)
		}
	}
	c.mu.RUnlock()

	if len(missTexts) == 0 {
		return out, nil
	}

	vecs, err := c.inner.EmbedBatch(ctx, missTexts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	for key, pos := range missIndex {
		c.cache[key] = cloneVector(vecs[pos])
	}
	c.mu.Unlock()

	for i := range texts {
		if out[i] == nil {
			out[i] = cloneVector(vecs[missIndex[keys[i]]])
		}
	}
	return out, nil
}

// Close drops the cache and closes the wrapped provider. Later EmbedBatch
// calls return ErrClosed.
func (c *Cached) Close() error {
	c.mu.Lock()
	c.cache = nil
	c.closed = true
	c.mu.Unlock()
	return c.inner.Close()
}

func (c *Cached) cacheKey(text string) string {
	h := sha1.New()
	_, _ = io.WriteString(h, c.model)
	_, _ = io.WriteString(h, "|")
	_, _ = io.WriteString(h, text)
	return hex.EncodeToString(h.Sum(nil))
}

func cloneVector(vec []float32) []float32 {
	out := make([]float32, len(vec))
	copy(out, vec)
	return out
}
