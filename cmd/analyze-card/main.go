package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vaulty/card-analyzer/config"
	"github.com/vaulty/card-analyzer/internal/card"
	"github.com/vaulty/card-analyzer/internal/llm"
	"github.com/vaulty/card-analyzer/internal/render"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <image-path>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Analyze a trading card image with AI vision.\n\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nSupported formats: JPEG, PNG, GIF, WebP\n")
	fmt.Fprintf(os.Stderr, "\nEnvironment variables:\n")
	fmt.Fprintf(os.Stderr, "  ANTHROPIC_API_KEY - Required for the anthropic provider (default)\n")
	fmt.Fprintf(os.Stderr, "  GEMINI_API_KEY    - Required for the gemini provider\n")
}

func main() {
	var (
		jsonPath    string
		apiKey      string
		provider    string
		verbose     bool
		quiet       bool
		showVersion bool
	)

	flag.StringVar(&jsonPath, "json", "", "Export results to a JSON file")
	flag.StringVar(&jsonPath, "j", "", "Shorthand for -json")
	flag.StringVar(&apiKey, "api-key", "", "API key (overrides the environment)")
	flag.StringVar(&apiKey, "k", "", "Shorthand for -api-key")
	flag.StringVar(&provider, "provider", "", "Vision provider: anthropic or gemini")
	flag.BoolVar(&verbose, "verbose", false, "Show the raw model response")
	flag.BoolVar(&verbose, "v", false, "Shorthand for -verbose")
	flag.BoolVar(&quiet, "quiet", false, "Minimal output, only essential results")
	flag.BoolVar(&quiet, "q", false, "Shorthand for -quiet")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Usage = usage
	flag.Parse()

	// The analyzer internals log through zerolog. Keep the terminal
	// clean by default; -verbose surfaces retry and cache chatter,
	// -quiet drops everything but errors.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch {
	case verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	if showVersion {
		fmt.Printf("analyze-card %s - Vaulty Protocol\n", render.Version)
		return
	}

	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}
	imagePath := flag.Arg(0)

	// Load env file from user config directory (same as the bot)
	config.LoadEnvFile()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if provider != "" {
		cfg.Provider = provider
	}

	ctx := context.Background()
	analyzer, err := newAnalyzer(ctx, cfg, apiKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	payload, err := card.NewLoader().LoadFile(imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !quiet {
		fmt.Printf("Analyzing: %s\n\n", imagePath)
	}

	result, err := analyzer.AnalyzeCard(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrAuth):
			fmt.Fprintln(os.Stderr, "API Error: the API key was rejected")
		case errors.Is(err, llm.ErrRateLimited):
			fmt.Fprintln(os.Stderr, "API Error: rate limited, try again in a minute")
		case errors.Is(err, llm.ErrTimeout):
			fmt.Fprintln(os.Stderr, "API Error: the request timed out")
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	if verbose {
		fmt.Println("--- Raw model response ---")
		fmt.Println(result.Analysis.RawText)
		fmt.Println("--------------------------")
		fmt.Println()
	}

	if quiet {
		fmt.Println(render.Summary(result.Analysis))
	} else {
		fmt.Println(render.Terminal(result.Analysis))
	}

	if verbose {
		fmt.Printf("Tokens: %d in / %d out / %d total\n",
			result.Usage.InputTokens, result.Usage.OutputTokens, result.Usage.TotalTokens)
		fmt.Printf("Cost:   $%.6f\n", result.Usage.CostUSD)
	}

	if jsonPath != "" {
		if err := exportJSON(result.Analysis, imagePath, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\n✓ Results exported to: %s\n", jsonPath)
	}
}

// newAnalyzer picks the vision provider, applying the -api-key override.
func newAnalyzer(ctx context.Context, cfg *config.Config, apiKey string) (llm.Analyzer, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		key := cfg.GeminiAPIKey
		if apiKey != "" {
			key = apiKey
		}
		if key == "" {
			return nil, errors.New("no API key provided: set GEMINI_API_KEY or use -api-key")
		}
		return llm.NewGeminiAnalyzer(ctx, llm.GeminiConfig{APIKey: key})
	case config.ProviderAnthropic, "":
		key := cfg.AnthropicAPIKey
		if apiKey != "" {
			key = apiKey
		}
		if key == "" {
			return nil, errors.New("no API key provided: set ANTHROPIC_API_KEY or use -api-key")
		}
		return llm.NewAnthropicAnalyzer(llm.AnthropicConfig{APIKey: key}), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s (use anthropic or gemini)", cfg.Provider)
	}
}

// exportJSON writes the analysis with metadata attached to path.
func exportJSON(a *card.Analysis, imagePath, path string) error {
	absPath, err := filepath.Abs(imagePath)
	if err != nil {
		absPath = imagePath
	}

	doc, err := render.Export(a, render.Metadata{
		AnalyzedAt:      time.Now(),
		ImagePath:       absPath,
		AnalyzerVersion: render.Version,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
