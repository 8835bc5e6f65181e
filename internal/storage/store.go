package storage

import (
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// AnalysisCacheEntry represents a cached card analysis, serialized as
// JSON, along with the model that produced it.
type AnalysisCacheEntry struct {
	AnalysisJSON string
	Model        string
}

// UsageRecord is one vision call's token usage, attributed to the chat
// user who triggered it. TelegramID is 0 for CLI invocations.
type UsageRecord struct {
	TelegramID   int64
	Model        string
	InputTokens  int64
	OutputTokens int64
	CostUSD      float64
}

// UsageTotals aggregates the usage log.
type UsageTotals struct {
	Analyses     int64
	InputTokens  int64
	OutputTokens int64
	CostUSD      float64
}

// Store defines the persistence interface for the analyzer.
type Store interface {
	// Analysis cache methods
	GetAnalysisCache(imageHash string) (*AnalysisCacheEntry, error)
	SetAnalysisCache(imageHash string, entry *AnalysisCacheEntry) error
	PruneAnalysisCache(olderThan time.Duration) (int64, error)
	AnalysisCacheCount() (int64, error)

	// Usage log methods
	RecordUsage(rec *UsageRecord) error
	UsageSummary(since time.Time) (*UsageTotals, error)

	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore creates a new SQLite-based store at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Configure SQLite with WAL mode and busy timeout for better concurrency
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set file permissions (only works on creation)
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		// Ignore error if file doesn't exist yet
	}

	store := &SQLiteStore{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) init() error {
	cacheQuery := `
	CREATE TABLE IF NOT EXISTS analysis_cache (
		image_hash TEXT PRIMARY KEY,
		analysis TEXT NOT NULL,
		model TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(cacheQuery); err != nil {
		return fmt.Errorf("failed to create analysis_cache table: %w", err)
	}

	usageQuery := `
	CREATE TABLE IF NOT EXISTS usage_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		telegram_id INTEGER NOT NULL DEFAULT 0,
		model TEXT NOT NULL,
		input_tokens INTEGER NOT NULL,
		output_tokens INTEGER NOT NULL,
		cost_usd REAL NOT NULL,
		created_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(usageQuery); err != nil {
		return fmt.Errorf("failed to create usage_log table: %w", err)
	}

	return nil
}

// GetAnalysisCache retrieves a cached analysis by image hash.
// Returns nil, nil if no cache entry exists.
func (s *SQLiteStore) GetAnalysisCache(imageHash string) (*AnalysisCacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entry AnalysisCacheEntry
	err := s.db.QueryRow(
		"SELECT analysis, model FROM analysis_cache WHERE image_hash = ?",
		imageHash,
	).Scan(&entry.AnalysisJSON, &entry.Model)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis cache: %w", err)
	}

	return &entry, nil
}

// SetAnalysisCache stores an analysis in the cache.
func (s *SQLiteStore) SetAnalysisCache(imageHash string, entry *AnalysisCacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO analysis_cache (image_hash, analysis, model, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(image_hash) DO UPDATE SET
			analysis = excluded.analysis,
			model = excluded.model,
			created_at = excluded.created_at
	`, imageHash, entry.AnalysisJSON, entry.Model, time.Now())

	if err != nil {
		return fmt.Errorf("failed to cache analysis: %w", err)
	}
	return nil
}

// PruneAnalysisCache deletes cache entries older than the given age and
// returns how many were removed.
func (s *SQLiteStore) PruneAnalysisCache(olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	res, err := s.db.Exec("DELETE FROM analysis_cache WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune analysis cache: %w", err)
	}

	pruned, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned rows: %w", err)
	}
	return pruned, nil
}

// AnalysisCacheCount returns the number of cached analyses.
func (s *SQLiteStore) AnalysisCacheCount() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM analysis_cache").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return count, nil
}

// RecordUsage appends one vision call to the usage log.
func (s *SQLiteStore) RecordUsage(rec *UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO usage_log (telegram_id, model, input_tokens, output_tokens, cost_usd, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.TelegramID, rec.Model, rec.InputTokens, rec.OutputTokens, rec.CostUSD, time.Now())

	if err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}
	return nil
}

// UsageSummary aggregates the usage log from since onward. A zero since
// covers the whole log.
func (s *SQLiteStore) UsageSummary(since time.Time) (*UsageTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var totals UsageTotals
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(input_tokens), 0),
		       COALESCE(SUM(output_tokens), 0),
		       COALESCE(SUM(cost_usd), 0)
		FROM usage_log
		WHERE created_at >= ?
	`, since).Scan(&totals.Analyses, &totals.InputTokens, &totals.OutputTokens, &totals.CostUSD)

	if err != nil {
		return nil, fmt.Errorf("failed to summarize usage: %w", err)
	}
	return &totals, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
