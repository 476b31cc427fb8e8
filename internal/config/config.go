// Package config assembles runtime configuration in three layers:
// built-in defaults, an optional YAML file, then SECTORMATCH_* environment
// variables. Later layers win.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
)

// Version is the sectormatch release version.
const Version = "0.2.0"

// Config holds all sectormatch configuration.
type Config struct {
	Classification string `yaml:"classification"`
	Guesses        int    `yaml:"guesses"`
	LogLevel       string `yaml:"log_level"`

	Embedder EmbedderConfig `yaml:"embedder"`
	Output   OutputConfig   `yaml:"output"`
}

// EmbedderConfig holds embedding provider settings. Each provider reads the
// fields it needs.
type EmbedderConfig struct {
	Provider string `yaml:"provider"` // "onnx", "openai", "rest"

	// onnx
	ModelPath      string `yaml:"model_path"`
	VocabPath      string `yaml:"vocab_path"`
	ProjectionPath string `yaml:"projection_path"`
	OrtLibrary     string `yaml:"ort_library"`
	MaxSeqLen      int    `yaml:"max_seq_len"`

	// openai / rest
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`

	DisableCache bool `yaml:"disable_cache"`
}

// OutputConfig holds report destination settings.
type OutputConfig struct {
	Format       string `yaml:"format"` // "table", "csv"
	Path         string `yaml:"path"`   // csv destination; empty writes to stdout
	WebhookURL   string `yaml:"webhook_url"`
	WebhookToken string `yaml:"webhook_token"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Classification: "NACE",
		Guesses:        3,
		LogLevel:       "info",
		Embedder: EmbedderConfig{
			Provider:  "onnx",
			ModelPath: "models/model.onnx",
			VocabPath: "models/vocab.txt",
		},
		Output: OutputConfig{
			Format: "table",
		},
	}
}

// Load builds the configuration. path names a YAML file and may be empty.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Classification = getenv("SECTORMATCH_CLASSIFICATION", c.Classification)
	c.Guesses = getenvInt("SECTORMATCH_GUESSES", c.Guesses)
	c.LogLevel = getenv("SECTORMATCH_LOG_LEVEL", c.LogLevel)

	c.Embedder.Provider = getenv("SECTORMATCH_PROVIDER", c.Embedder.Provider)
	c.Embedder.ModelPath = getenv("SECTORMATCH_MODEL_PATH", c.Embedder.ModelPath)
	c.Embedder.VocabPath = getenv("SECTORMATCH_VOCAB_PATH", c.Embedder.VocabPath)
	c.Embedder.ProjectionPath = getenv("SECTORMATCH_PROJECTION_PATH", c.Embedder.ProjectionPath)
	c.Embedder.OrtLibrary = getenv("SECTORMATCH_ORT_LIBRARY", c.Embedder.OrtLibrary)
	c.Embedder.MaxSeqLen = getenvInt("SECTORMATCH_MAX_SEQ_LEN", c.Embedder.MaxSeqLen)
	c.Embedder.APIKey = getenv("SECTORMATCH_API_KEY", c.Embedder.APIKey)
	c.Embedder.BaseURL = getenv("SECTORMATCH_BASE_URL", c.Embedder.BaseURL)
	c.Embedder.Model = getenv("SECTORMATCH_MODEL", c.Embedder.Model)
	c.Embedder.Dimensions = getenvInt("SECTORMATCH_DIMENSIONS", c.Embedder.Dimensions)

	c.Output.Format = getenv("SECTORMATCH_OUTPUT", c.Output.Format)
	c.Output.Path = getenv("SECTORMATCH_OUTPUT_PATH", c.Output.Path)
	c.Output.WebhookURL = getenv("SECTORMATCH_WEBHOOK_URL", c.Output.WebhookURL)
	c.Output.WebhookToken = getenv("SECTORMATCH_WEBHOOK_TOKEN", c.Output.WebhookToken)

	// The conventional key works as a fallback for the openai provider.
	if c.Embedder.APIKey == "" {
		c.Embedder.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}

// Validate reports every problem with the configuration, joined.
func (c *Config) Validate() error {
	var errs []error

	if c.Classification == "" {
		errs = append(errs, errors.New("classification must not be empty"))
	}
	if c.Guesses <= 0 {
		errs = append(errs, fmt.Errorf("guesses must be positive, got %d", c.Guesses))
	}

	switch c.Embedder.Provider {
	case "onnx":
		if _, err := os.Stat(c.Embedder.ModelPath); err != nil {
			errs = append(errs, fmt.Errorf("model file %s not found (set SECTORMATCH_MODEL_PATH)", c.Embedder.ModelPath))
		}
		if _, err := os.Stat(c.Embedder.VocabPath); err != nil {
			errs = append(errs, fmt.Errorf("vocab file %s not found (set SECTORMATCH_VOCAB_PATH)", c.Embedder.VocabPath))
		}
		if c.Embedder.ProjectionPath != "" {
			if _, err := os.Stat(c.Embedder.ProjectionPath); err != nil {
				errs = append(errs, fmt.Errorf("projection file %s not found", c.Embedder.ProjectionPath))
			}
		}
	case "openai":
		if c.Embedder.APIKey == "" {
			errs = append(errs, errors.New("openai provider requires SECTORMATCH_API_KEY or OPENAI_API_KEY"))
		}
	case "rest":
		if c.Embedder.BaseURL == "" {
			errs = append(errs, errors.New("rest provider requires SECTORMATCH_BASE_URL"))
		}
	case "":
		errs = append(errs, errors.New("embedder provider must not be empty"))
	default:
		errs = append(errs, fmt.Errorf("unknown embedder provider %q", c.Embedder.Provider))
	}

	switch c.Output.Format {
	case "table", "csv":
	default:
		errs = append(errs, fmt.Errorf("unknown output format %q (valid: table, csv)", c.Output.Format))
	}

	return errors.Join(errs...)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
