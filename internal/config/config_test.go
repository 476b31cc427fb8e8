package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var allEnvKeys = []string{
	"SECTORMATCH_CLASSIFICATION", "SECTORMATCH_GUESSES", "SECTORMATCH_LOG_LEVEL",
	"SECTORMATCH_PROVIDER", "SECTORMATCH_MODEL_PATH", "SECTORMATCH_VOCAB_PATH",
	"SECTORMATCH_PROJECTION_PATH", "SECTORMATCH_ORT_LIBRARY", "SECTORMATCH_MAX_SEQ_LEN",
	"SECTORMATCH_API_KEY", "SECTORMATCH_BASE_URL", "SECTORMATCH_MODEL",
	"SECTORMATCH_DIMENSIONS", "SECTORMATCH_OUTPUT", "SECTORMATCH_OUTPUT_PATH",
	"SECTORMATCH_WEBHOOK_URL", "SECTORMATCH_WEBHOOK_TOKEN", "OPENAI_API_KEY",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvKeys {
		if v, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, v) })
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Classification != "NACE" {
		t.Errorf("expected default classification NACE, got %q", cfg.Classification)
	}
	if cfg.Guesses != 3 {
		t.Errorf("expected default guesses 3, got %d", cfg.Guesses)
	}
	if cfg.Embedder.Provider != "onnx" {
		t.Errorf("expected default provider onnx, got %q", cfg.Embedder.Provider)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("expected default output table, got %q", cfg.Output.Format)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `classification: exiobase
guesses: 5
embedder:
  provider: openai
  api_key: sk-test
  model: text-embedding-3-large
output:
  format: csv
  path: out.csv
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Classification != "exiobase" {
		t.Errorf("classification = %q, want exiobase", cfg.Classification)
	}
	if cfg.Guesses != 5 {
		t.Errorf("guesses = %d, want 5", cfg.Guesses)
	}
	if cfg.Embedder.Provider != "openai" || cfg.Embedder.APIKey != "sk-test" {
		t.Errorf("unexpected embedder config: %+v", cfg.Embedder)
	}
	if cfg.Embedder.Model != "text-embedding-3-large" {
		t.Errorf("model = %q", cfg.Embedder.Model)
	}
	if cfg.Output.Format != "csv" || cfg.Output.Path != "out.csv" {
		t.Errorf("unexpected output config: %+v", cfg.Output)
	}
	// Untouched fields keep their defaults.
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q, want default info", cfg.LogLevel)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("guesses: [not an int"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("classification: exiobase\nguesses: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	os.Setenv("SECTORMATCH_CLASSIFICATION", "NAICS")
	os.Setenv("SECTORMATCH_GUESSES", "7")
	defer os.Unsetenv("SECTORMATCH_CLASSIFICATION")
	defer os.Unsetenv("SECTORMATCH_GUESSES")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Classification != "NAICS" {
		t.Errorf("env should override file: got %q", cfg.Classification)
	}
	if cfg.Guesses != 7 {
		t.Errorf("env should override file: got %d", cfg.Guesses)
	}
}

func TestLoad_OpenAIKeyFallback(t *testing.T) {
	clearEnv(t)

	os.Setenv("OPENAI_API_KEY", "sk-fallback")
	defer os.Unsetenv("OPENAI_API_KEY")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Embedder.APIKey != "sk-fallback" {
		t.Errorf("expected OPENAI_API_KEY fallback, got %q", cfg.Embedder.APIKey)
	}
}

func TestLoad_ExplicitKeyBeatsFallback(t *testing.T) {
	clearEnv(t)

	os.Setenv("SECTORMATCH_API_KEY", "sk-explicit")
	os.Setenv("OPENAI_API_KEY", "sk-fallback")
	defer os.Unsetenv("SECTORMATCH_API_KEY")
	defer os.Unsetenv("OPENAI_API_KEY")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Embedder.APIKey != "sk-explicit" {
		t.Errorf("expected explicit key to win, got %q", cfg.Embedder.APIKey)
	}
}

// --- Validation tests ---

// validConfig returns a Config with real temp files so file-existence
// checks pass.
func validConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"model.onnx", "vocab.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := Defaults()
	cfg.Embedder.ModelPath = filepath.Join(dir, "model.onnx")
	cfg.Embedder.VocabPath = filepath.Join(dir, "vocab.txt")
	return cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected nil error for valid config, got: %v", err)
	}
}

func TestValidate_NonPositiveGuesses(t *testing.T) {
	cfg := validConfig(t)
	cfg.Guesses = 0
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "guesses") {
		t.Fatalf("expected error mentioning 'guesses', got: %v", err)
	}
}

func TestValidate_MissingModelFile(t *testing.T) {
	cfg := validConfig(t)
	cfg.Embedder.ModelPath = "/nonexistent/model.onnx"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "model") {
		t.Fatalf("expected error mentioning 'model', got: %v", err)
	}
}

func TestValidate_OpenAIMissingKey(t *testing.T) {
	cfg := validConfig(t)
	cfg.Embedder.Provider = "openai"
	cfg.Embedder.APIKey = ""
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "API_KEY") {
		t.Fatalf("expected error mentioning the key variable, got: %v", err)
	}
}

func TestValidate_RESTMissingBaseURL(t *testing.T) {
	cfg := validConfig(t)
	cfg.Embedder.Provider = "rest"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "BASE_URL") {
		t.Fatalf("expected error mentioning the base URL, got: %v", err)
	}
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := validConfig(t)
	cfg.Embedder.Provider = "carrier-pigeon"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "carrier-pigeon") {
		t.Fatalf("expected error naming the provider, got: %v", err)
	}
}

func TestValidate_BadOutputFormat(t *testing.T) {
	cfg := validConfig(t)
	cfg.Output.Format = "xml"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Fatalf("expected error naming the format, got: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.Classification = ""
	cfg.Guesses = -1
	cfg.Output.Format = "xml"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for multiple bad fields")
	}
	msg := err.Error()
	for _, want := range []string{"classification", "guesses", "xml"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected error to mention %q, got: %v", want, msg)
		}
	}
}

// --- getenvInt tests ---

func TestGetenvInt(t *testing.T) {
	tests := []struct {
		name     string
		envVal   string
		set      bool
		fallback int
		want     int
	}{
		{"empty uses fallback", "", false, 3, 3},
		{"valid int", "5", true, 3, 5},
		{"zero", "0", true, 3, 0},
		{"invalid falls back", "abc", true, 3, 3},
		{"negative", "-1", true, 3, -1},
	}

	const key = "SECTORMATCH_TEST_GETENVINT"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				os.Setenv(key, tt.envVal)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}
			got := getenvInt(key, tt.fallback)
			if got != tt.want {
				t.Errorf("getenvInt(%q, %d) = %d, want %d", tt.envVal, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestVersion_IsSet(t *testing.T) {
	if Version == "" {
		t.Fatal("expected non-empty Version constant")
	}
}
