// Command sectormatch matches sector names given as arguments (or on stdin,
// one per line) against a reference classification and prints the ranked
// candidates.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/crimson-sun/sectormatch/internal/catalog"
	"github.com/crimson-sun/sectormatch/internal/config"
	"github.com/crimson-sun/sectormatch/internal/engine"
	"github.com/crimson-sun/sectormatch/internal/engine/embedder"
	"github.com/crimson-sun/sectormatch/internal/logging"
	"github.com/crimson-sun/sectormatch/internal/output"
	"github.com/crimson-sun/sectormatch/internal/output/csvfile"
	"github.com/crimson-sun/sectormatch/internal/output/multi"
	"github.com/crimson-sun/sectormatch/internal/output/stdout"
	"github.com/crimson-sun/sectormatch/internal/output/webhook"
)

func main() {
	var (
		configPath     = flag.String("config", "", "path to YAML config file")
		classification = flag.String("classification", "", "reference classification to match against")
		guesses        = flag.Int("guesses", 0, "number of candidates per input")
		provider       = flag.String("provider", "", "embedding provider: onnx, openai, rest")
		outFormat      = flag.String("output", "", "report format: table, csv")
		outPath        = flag.String("output-path", "", "write csv report to this file instead of stdout")
		list           = flag.Bool("list", false, "list supported classifications and exit")
		version        = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Println("sectormatch", config.Version)
		return
	}
	if *list {
		for _, name := range catalog.Names() {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("sectormatch: %v", err)
	}
	applyFlags(&cfg, *classification, *guesses, *provider, *outFormat, *outPath)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("sectormatch: invalid configuration:\n%v", err)
	}

	reportOnStdout := cfg.Output.Format == "table" || cfg.Output.Path == ""
	logging.Init(reportOnStdout, logging.ParseLevel(cfg.LogLevel))

	inputs, err := readInputs(flag.Args())
	if err != nil {
		log.Fatalf("sectormatch: %v", err)
	}
	if len(inputs) == 0 {
		log.Fatal("sectormatch: no inputs; pass sector names as arguments or on stdin")
	}

	// Resolve the classification before touching any model files, so typos
	// fail fast.
	cat, err := catalog.Load(cfg.Classification)
	if err != nil {
		log.Fatalf("sectormatch: %v", err)
	}

	emb, err := embedder.New(embedder.Config{
		Provider:       cfg.Embedder.Provider,
		ModelPath:      cfg.Embedder.ModelPath,
		VocabPath:      cfg.Embedder.VocabPath,
		ProjectionPath: cfg.Embedder.ProjectionPath,
		OrtLibrary:     cfg.Embedder.OrtLibrary,
		MaxSeqLen:      cfg.Embedder.MaxSeqLen,
		APIKey:         cfg.Embedder.APIKey,
		BaseURL:        cfg.Embedder.BaseURL,
		Model:          cfg.Embedder.Model,
		Dimensions:     cfg.Embedder.Dimensions,
	})
	if err != nil {
		log.Fatalf("sectormatch: %v", err)
	}
	if !cfg.Embedder.DisableCache {
		emb = embedder.NewCached(emb, cfg.Embedder.Provider+"/"+cfg.Embedder.Model)
	}
	defer emb.Close()

	writer, err := buildWriter(cfg.Output)
	if err != nil {
		log.Fatalf("sectormatch: %v", err)
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("matching",
		"classification", cat.Name,
		"entries", cat.Len(),
		"inputs", len(inputs),
		"guesses", cfg.Guesses,
		"provider", cfg.Embedder.Provider,
	)

	report, err := engine.New(emb, cat).Match(ctx, inputs, cfg.Guesses)
	if err != nil {
		log.Fatalf("sectormatch: %v", err)
	}

	if err := writer.Write(ctx, report); err != nil {
		log.Fatalf("sectormatch: %v", err)
	}
}

// applyFlags overlays explicitly set command-line flags on the config.
func applyFlags(cfg *config.Config, classification string, guesses int, provider, format, path string) {
	if classification != "" {
		cfg.Classification = classification
	}
	if guesses != 0 {
		cfg.Guesses = guesses
	}
	if provider != "" {
		cfg.Embedder.Provider = provider
	}
	if format != "" {
		cfg.Output.Format = format
	}
	if path != "" {
		cfg.Output.Path = path
		cfg.Output.Format = "csv"
	}
}

// readInputs returns the positional arguments, or, when there are none,
// non-empty lines read from stdin.
func readInputs(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Mode()&os.ModeCharDevice != 0 {
		// Interactive terminal with no piped input.
		return nil, nil
	}

	var inputs []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			inputs = append(inputs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return inputs, nil
}

// buildWriter assembles the report destination: the configured format plus
// an optional webhook fan-out.
func buildWriter(cfg config.OutputConfig) (output.Writer, error) {
	var primary output.Writer
	switch cfg.Format {
	case "csv":
		if cfg.Path != "" {
			w, err := csvfile.Create(cfg.Path)
			if err != nil {
				return nil, err
			}
			primary = w
		} else {
			primary = csvfile.New(os.Stdout)
		}
	default:
		primary = stdout.New(os.Stdout)
	}

	if cfg.WebhookURL == "" {
		return primary, nil
	}
	return multi.New(primary, webhook.New(cfg.WebhookURL, cfg.WebhookToken)), nil
}
