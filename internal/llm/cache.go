package llm

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/vaulty/card-analyzer/internal/card"
	"github.com/vaulty/card-analyzer/internal/storage"
)

// CachedAnalyzer wraps an Analyzer with SQLite-backed caching keyed on
// image content. Cache failures are logged and otherwise ignored; the
// wrapped analyzer is always the fallback.
type CachedAnalyzer struct {
	inner Analyzer
	store storage.Store
}

// NewCachedAnalyzer creates a cached analyzer. A nil store disables
// caching without disabling analysis.
func NewCachedAnalyzer(inner Analyzer, store storage.Store) *CachedAnalyzer {
	return &CachedAnalyzer{inner: inner, store: store}
}

// hashPayload creates a SHA256 hash from the image bytes.
// Includes a length prefix to prevent boundary collisions.
func hashPayload(payload *card.ImagePayload) string {
	h := sha256.New()
	binary.Write(h, binary.LittleEndian, int64(len(payload.Data)))
	h.Write(payload.Data)
	return hex.EncodeToString(h.Sum(nil))
}

// AnalyzeCard implements the Analyzer interface with caching.
func (c *CachedAnalyzer) AnalyzeCard(ctx context.Context, payload *card.ImagePayload) (*AnalysisResult, error) {
	hash := hashPayload(payload)

	if c.store != nil {
		cached, err := c.store.GetAnalysisCache(hash)
		if err != nil {
			log.Warn().Err(err).Msg("failed to check analysis cache")
		} else if cached != nil {
			var analysis card.Analysis
			if err := json.Unmarshal([]byte(cached.AnalysisJSON), &analysis); err != nil {
				log.Warn().Err(err).Msg("failed to decode cached analysis")
			} else {
				log.Debug().Str("hash", hash[:16]).Msg("analysis cache hit")
				return &AnalysisResult{
					Analysis: &analysis,
					Usage:    Usage{}, // Zero usage for cached result
				}, nil
			}
		}
	}

	result, err := c.inner.AnalyzeCard(ctx, payload)
	if err != nil {
		return nil, err
	}

	if c.store != nil && result.Analysis != nil {
		encoded, err := json.Marshal(result.Analysis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to encode analysis for cache")
			return result, nil
		}
		entry := &storage.AnalysisCacheEntry{
			AnalysisJSON: string(encoded),
			Model:        result.Usage.Model,
		}
		if err := c.store.SetAnalysisCache(hash, entry); err != nil {
			log.Warn().Err(err).Msg("failed to cache analysis")
		} else {
			log.Debug().Str("hash", hash[:16]).Msg("cached analysis")
		}
	}

	return result, nil
}
