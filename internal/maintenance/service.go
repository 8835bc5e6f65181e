package maintenance

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vaulty/card-analyzer/internal/storage"
)

const (
	// PruneInterval is how often expired cache entries are removed.
	PruneInterval = 6 * time.Hour

	// CacheMaxAge is how long a cached analysis stays usable. Market
	// values drift, so month-old estimates are stale anyway.
	CacheMaxAge = 30 * 24 * time.Hour

	// usageReportInterval is how often the usage summary is logged.
	usageReportInterval = 24 * time.Hour
)

// Service runs periodic database housekeeping: it prunes expired cache
// entries and logs a daily usage summary.
type Service struct {
	store storage.Store
}

// NewService creates a new maintenance service.
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// Run starts the housekeeping loop. It blocks until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) {
	log.Info().Dur("prune_interval", PruneInterval).Msg("starting maintenance service")

	// Catch up on anything that expired while the bot was down
	s.pruneCache()

	pruneTicker := time.NewTicker(PruneInterval)
	defer pruneTicker.Stop()

	reportTicker := time.NewTicker(usageReportInterval)
	defer reportTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("maintenance service stopped")
			return
		case <-pruneTicker.C:
			s.pruneCache()
		case <-reportTicker.C:
			s.reportUsage()
		}
	}
}

// pruneCache removes cache entries older than CacheMaxAge.
func (s *Service) pruneCache() {
	pruned, err := s.store.PruneAnalysisCache(CacheMaxAge)
	if err != nil {
		log.Error().Err(err).Msg("failed to prune analysis cache")
		return
	}
	if pruned > 0 {
		log.Info().Int64("pruned", pruned).Msg("pruned expired cache entries")
	}
}

// reportUsage logs aggregate token usage for the last report window.
func (s *Service) reportUsage() {
	totals, err := s.store.UsageSummary(time.Now().Add(-usageReportInterval))
	if err != nil {
		log.Error().Err(err).Msg("failed to summarize usage")
		return
	}
	log.Info().
		Int64("analyses", totals.Analyses).
		Int64("input_tokens", totals.InputTokens).
		Int64("output_tokens", totals.OutputTokens).
		Float64("cost_usd", totals.CostUSD).
		Msg("vision usage in the last 24h")
}
