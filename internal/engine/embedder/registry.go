package embedder

import (
	"fmt"
	"sort"
)

// Config carries provider settings. Each provider reads the fields it
// needs and ignores the rest.
type Config struct {
	Provider string

	// onnx
	ModelPath      string
	VocabPath      string
	ProjectionPath string
	OrtLibrary     string
	MaxSeqLen      int

	// openai / rest
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int
}

// Constructor builds an Embedder from a Config.
type Constructor func(cfg Config) (Embedder, error)

var registry = map[string]Constructor{}

// Register adds a provider constructor under the given name.
func Register(name string, ctor Constructor) {
	registry[name] = ctor
}

// New builds the provider named by cfg.Provider.
func New(cfg Config) (Embedder, error) {
	ctor, ok := registry[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("embedder: unknown provider %q (available: %v)", cfg.Provider, Providers())
	}
	return ctor(cfg)
}

// Providers returns the registered provider names, sorted.
func Providers() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
