package sectormatch

import (
	"os"
	"path/filepath"
)

type options struct {
	guesses        int
	modelDir       string
	modelPath      string
	vocabPath      string
	projectionPath string
	embedder       Embedder
	noCache        bool
}

// Option configures a Matcher instance.
type Option func(*options)

// WithGuesses sets how many candidates are returned per input. Default: 3.
func WithGuesses(n int) Option {
	return func(o *options) {
		o.guesses = n
	}
}

// WithModelDir sets the directory containing model files.
// Expects: model.onnx, vocab.txt, and optionally 2_Dense/model.safetensors.
func WithModelDir(dir string) Option {
	return func(o *options) {
		o.modelDir = dir
	}
}

// WithModelPaths sets explicit paths for each model file. Use this when
// model files aren't in the default directory layout. projection may be
// empty for models without a dense module.
func WithModelPaths(model, vocab, projection string) Option {
	return func(o *options) {
		o.modelPath = model
		o.vocabPath = vocab
		o.projectionPath = projection
	}
}

// WithEmbedder supplies a custom embedding provider instead of the local
// ONNX model. The Matcher takes ownership and closes it on Close.
func WithEmbedder(e Embedder) Option {
	return func(o *options) {
		o.embedder = e
	}
}

// WithoutCache disables the in-memory embedding cache.
func WithoutCache() Option {
	return func(o *options) {
		o.noCache = true
	}
}

func defaultOptions() options {
	return options{
		guesses: 3,
	}
}

// resolvePaths determines the model, vocab, and projection file paths from
// the configured options. Explicit paths take precedence over modelDir. The
// projection is included only when the dense-module file exists.
func resolvePaths(o options) (model, vocab, projection string) {
	if o.modelPath != "" {
		return o.modelPath, o.vocabPath, o.projectionPath
	}
	dir := o.modelDir
	if dir == "" {
		dir = "models"
	}
	projection = filepath.Join(dir, "2_Dense", "model.safetensors")
	if _, err := os.Stat(projection); err != nil {
		projection = ""
	}
	return filepath.Join(dir, "model.onnx"),
		filepath.Join(dir, "vocab.txt"),
		projection
}
