package embedder

import (
	"context"
	"fmt"
)

func init() {
	Register("onnx", func(cfg Config) (Embedder, error) { return NewONNX(cfg) })
}

// ONNX runs a BERT-style sentence-embedding model locally. The pipeline is:
// tokenize → ONNX inference → attention-masked mean pooling → optional
// dense projection.
type ONNX struct {
	session *onnxSession
	tok     *tokenizer
	proj    *projection // nil when the model ships without a dense module
}

// NewONNX loads the model, vocabulary, and (if configured) projection
// weights. Sentence-transformers exports that include a 2_Dense module need
// ProjectionPath set; plain mean-pooling models leave it empty.
func NewONNX(cfg Config) (*ONNX, error) {
	sess, err := newONNXSession(cfg.ModelPath, cfg.OrtLibrary)
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}

	tok, err := newTokenizer(cfg.VocabPath, cfg.MaxSeqLen)
	if err != nil {
		sess.close()
		return nil, fmt.Errorf("embedder: %w", err)
	}

	var proj *projection
	if cfg.ProjectionPath != "" {
		proj, err = loadProjection(cfg.ProjectionPath)
		if err != nil {
			sess.close()
			return nil, fmt.Errorf("embedder: %w", err)
		}
		if int(sess.embedDim) != proj.inDim {
			sess.close()
			return nil, fmt.Errorf("embedder: model output dim %d != projection input dim %d",
				sess.embedDim, proj.inDim)
		}
	}

	return &ONNX{session: sess, tok: tok, proj: proj}, nil
}

// Dim returns the final embedding dimensionality (after projection, if any).
func (e *ONNX) Dim() int {
	if e.proj != nil {
		return e.proj.outDim
	}
	return int(e.session.embedDim)
}

// EmbedBatch embeds the texts in a single inference call with dynamic
// padding to the longest sequence in the batch.
func (e *ONNX) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batch := e.tok.tokenizeBatch(texts)

	hidden, err := e.session.infer(
		batch.inputIDs, batch.attentionMask, batch.tokenTypeIDs,
		batch.batchSize, batch.seqLen,
	)
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}

	pooled := meanPool(hidden, batch.attentionMask, batch.batchSize, batch.seqLen, e.session.embedDim)

	dim := e.session.embedDim
	results := make([][]float32, batch.batchSize)
	for i := int64(0); i < batch.batchSize; i++ {
		vec := pooled[i*dim : (i+1)*dim]
		if e.proj != nil {
			results[i] = e.proj.apply(vec)
		} else {
			out := make([]float32, dim)
			copy(out, vec)
			results[i] = out
		}
	}
	return results, nil
}

// Close releases ONNX Runtime resources.
func (e *ONNX) Close() error {
	if e.session != nil {
		return e.session.close()
	}
	return nil
}
