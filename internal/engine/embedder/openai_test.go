package embedder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// embeddingsStub mimics the OpenAI embeddings endpoint. It echoes one
// vector per input, optionally returning items out of order.
func embeddingsStub(t *testing.T, reverse bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
			http.Error(w, "bad request", 400)
			return
		}

		type item struct {
			Object    string    `json:"object"`
			Index     int       `json:"index"`
			Embedding []float64 `json:"embedding"`
		}
		data := make([]item, len(req.Input))
		for i := range req.Input {
			data[i] = item{
				Object:    "embedding",
				Index:     i,
				Embedding: []float64{float64(i), float64(i) + 0.5},
			}
		}
		if reverse {
			for i, j := 0, len(data)-1; i < j; i, j = i+1, j-1 {
				data[i], data[j] = data[j], data[i]
			}
		}

		resp := map[string]any{
			"object": "list",
			"data":   data,
			"model":  req.Model,
			"usage":  map[string]int{"prompt_tokens": 1, "total_tokens": 1},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAIEmbedBatch(t *testing.T) {
	srv := embeddingsStub(t, false)
	defer srv.Close()

	emb, err := NewOpenAI(Config{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer emb.Close()

	vecs, err := emb.EmbedBatch(context.Background(), []string{"coal mining", "agriculture"})
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}
	if len(vecs) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vecs))
	}
	if !closeEnough(vecs[0][0], 0) || !closeEnough(vecs[0][1], 0.5) {
		t.Errorf("vector 0: got %v", vecs[0])
	}
	if !closeEnough(vecs[1][0], 1) || !closeEnough(vecs[1][1], 1.5) {
		t.Errorf("vector 1: got %v", vecs[1])
	}
}

func TestOpenAIOutOfOrderResponse(t *testing.T) {
	srv := embeddingsStub(t, true)
	defer srv.Close()

	emb, err := NewOpenAI(Config{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer emb.Close()

	vecs, err := emb.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}
	// Vectors must land at their declared index regardless of response order.
	for i, vec := range vecs {
		if !closeEnough(vec[0], float32(i)) {
			t.Errorf("vector %d: expected first dim %d, got %v", i, i, vec)
		}
	}
}

func TestOpenAIEmptyBatch(t *testing.T) {
	emb, err := NewOpenAI(Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vecs, err := emb.EmbedBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vecs != nil {
		t.Errorf("expected nil for empty batch, got %v", vecs)
	}
}

func TestOpenAIRequiresAPIKey(t *testing.T) {
	if _, err := NewOpenAI(Config{}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestOpenAIDefaultModel(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotModel = req.Model
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.1]}],"model":"m","usage":{"prompt_tokens":1,"total_tokens":1}}`))
	}))
	defer srv.Close()

	emb, err := NewOpenAI(Config{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := emb.EmbedBatch(context.Background(), []string{"x"}); err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}
	if gotModel != openAIDefaultModel {
		t.Errorf("expected model %q, got %q", openAIDefaultModel, gotModel)
	}
}
