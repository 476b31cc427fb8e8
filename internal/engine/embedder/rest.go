package embedder

import (
	"context"
	"fmt"

	"github.com/crimson-sun/sectormatch/internal/httpclient"
)

func init() {
	Register("rest", func(cfg Config) (Embedder, error) { return NewREST(cfg) })
}

// REST embeds text through a generic JSON embedding service, e.g. a
// text-embeddings-inference or Ollama-style deployment. The endpoint must
// accept {"model": ..., "texts": [...]} and return
// {"embeddings": [[...], ...]} in input order.
type REST struct {
	client *httpclient.Client
	url    string
	model  string
}

var _ Embedder = (*REST)(nil)

type restRequest struct {
	Model string   `json:"model,omitempty"`
	Texts []string `json:"texts"`
}

type restResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// NewREST creates a REST embedding provider.
func NewREST(cfg Config) (*REST, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("embedder: rest provider requires a base URL")
	}
	return &REST{
		client: httpclient.New(cfg.APIKey),
		url:    cfg.BaseURL,
		model:  cfg.Model,
	}, nil
}

// EmbedBatch posts the texts and returns one vector per input.
func (r *REST) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var resp restResponse
	err := r.client.PostJSON(ctx, r.url, restRequest{Model: r.model, Texts: texts}, &resp)
	if err != nil {
		return nil, fmt.Errorf("embedder: rest: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedder: rest: got %d embeddings for %d texts",
			len(resp.Embeddings), len(texts))
	}
	return resp.Embeddings, nil
}

// Close is a no-op; the client holds no resources.
func (r *REST) Close() error {
	return nil
}
