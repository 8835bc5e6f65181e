package render

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vaulty/card-analyzer/internal/card"
)

// Version is the analyzer version stamped into exported documents and
// shown by the CLI.
const Version = "1.0.0"

// JSON renders the analysis as an indented document that mirrors the
// model one to one. Absent fields serialize as null, never disappear.
func JSON(a *card.Analysis) (string, error) {
	encoded, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode analysis: %w", err)
	}
	return string(encoded), nil
}

// Metadata describes one analysis run for an exported document.
type Metadata struct {
	AnalyzedAt      time.Time `json:"analyzed_at"`
	ImagePath       string    `json:"image_path"`
	AnalyzerVersion string    `json:"analyzer_version"`
}

// Export renders the analysis together with run metadata. This is the
// document the CLI writes next to the image.
func Export(a *card.Analysis, meta Metadata) (string, error) {
	if meta.AnalyzerVersion == "" {
		meta.AnalyzerVersion = Version
	}
	doc := struct {
		*card.Analysis
		Metadata Metadata `json:"metadata"`
	}{Analysis: a, Metadata: meta}

	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode analysis: %w", err)
	}
	return string(encoded), nil
}
