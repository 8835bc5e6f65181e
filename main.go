package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/vaulty/card-analyzer/config"
	"github.com/vaulty/card-analyzer/internal/bot"
	"github.com/vaulty/card-analyzer/internal/llm"
	"github.com/vaulty/card-analyzer/internal/maintenance"
	"github.com/vaulty/card-analyzer/internal/storage"
)

const logFileName = "vaulty-bot.log"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Try to load existing .env file
	config.LoadEnvFile()

	cfg, err := config.Load()
	if err != nil {
		fatalWithWait("invalid configuration: %v", err)
	}

	// Check if required config is missing
	if missing := cfg.Missing(); len(missing) > 0 {
		if isInteractiveTerminal() {
			// Interactive terminal - run setup wizard
			if !runSetupWizard() {
				waitOnWindows()
				os.Exit(1)
			}
			// The wizard exports its answers, so read the environment again
			cfg, err = config.Load()
			if err != nil {
				fatalWithWait("invalid configuration: %v", err)
			}
		} else {
			// Non-interactive (systemd, k8s, etc.) - fail with clear error
			fatalWithWait("missing required config: %s", strings.Join(missing, ", "))
		}
	}

	// JOURNAL_STREAM is set by systemd when running as a service.
	// Skip file logging under systemd (journald handles it, and ProtectSystem=strict
	// makes the working directory read-only).
	if _, underSystemd := os.LookupEnv("JOURNAL_STREAM"); underSystemd {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		// Local development: log to both stderr and file
		logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			fatalWithWait("failed to open log file: %v", err)
		}
		defer logFile.Close()

		consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr}
		fileWriter := zerolog.ConsoleWriter{Out: logFile, NoColor: true}
		multiWriter := io.MultiWriter(consoleWriter, fileWriter)
		log.Logger = log.Output(multiWriter)

		log.Info().Str("logFile", logFileName).Msg("logging to file")
	}

	tg, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		fatalWithWait("failed to initialize telegram bot: %v", err)
	}
	tg.Debug = false
	log.Info().Str("username", tg.Self.UserName).Msg("authorized on account")

	// Register bot commands for Telegram's command menu
	bot.RegisterCommands(tg)

	store, err := storage.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		fatalWithWait("failed to initialize store: %v", err)
	}
	defer store.Close()
	log.Info().Str("dbPath", cfg.DBPath).Msg("store initialized")

	// Create context that cancels on SIGINT or SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	analyzer, err := newAnalyzer(ctx, cfg)
	if err != nil {
		fatalWithWait("failed to initialize vision analyzer: %v", err)
	}
	log.Info().Str("provider", cfg.Provider).Msg("vision analyzer initialized")

	// Retry transient failures, then serve repeat images from the cache
	visionAnalyzer := llm.NewCachedAnalyzer(llm.NewRetryingAnalyzer(analyzer), store)

	g, ctx := errgroup.WithContext(ctx)

	// Run bot update loop
	g.Go(func() error {
		return runBot(ctx, tg, visionAnalyzer, store, cfg.AdminTelegramID)
	})

	// Run periodic cache pruning and usage reporting
	maintenanceService := maintenance.NewService(store)
	g.Go(func() error {
		maintenanceService.Run(ctx)
		return nil
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("shutdown with error")
	} else {
		log.Info().Msg("shutdown complete")
	}
}

// newAnalyzer picks the vision provider from the config.
func newAnalyzer(ctx context.Context, cfg *config.Config) (llm.Analyzer, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return llm.NewGeminiAnalyzer(ctx, llm.GeminiConfig{APIKey: cfg.GeminiAPIKey})
	default:
		return llm.NewAnthropicAnalyzer(llm.AnthropicConfig{APIKey: cfg.AnthropicAPIKey}), nil
	}
}

func runBot(ctx context.Context, tg *tgbotapi.BotAPI, analyzer llm.Analyzer, store storage.Store, adminID int64) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := tg.GetUpdatesChan(updateConfig)

	b := bot.NewBot(tg, analyzer, store, adminID)

	var wg sync.WaitGroup

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("stopping bot update loop")
			tg.StopReceivingUpdates()
			log.Info().Msg("waiting for active handlers to finish")
			wg.Wait()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				log.Warn().Msg("updates channel closed")
				wg.Wait()
				return nil
			}
			wg.Add(1)
			go func(u tgbotapi.Update) {
				defer wg.Done()
				b.HandleUpdate(ctx, u)
			}(update)
		}
	}
}
