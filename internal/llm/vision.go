package llm

import (
	"context"

	"github.com/vaulty/card-analyzer/internal/card"
)

// Usage contains token usage and cost information for one vision call.
// A zero Usage means the result came from the cache.
type Usage struct {
	Model        string
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
	CostUSD      float64
}

// AnalysisResult contains the structured card analysis and usage information.
type AnalysisResult struct {
	Analysis *card.Analysis
	Usage    Usage
}

// Analyzer can analyze trading card images.
type Analyzer interface {
	// AnalyzeCard sends one card image to the vision model and returns the
	// structured analysis. The call is synchronous; cancellation comes from
	// the context.
	AnalyzeCard(ctx context.Context, payload *card.ImagePayload) (*AnalysisResult, error)
}

// calculateTokenCost converts token counts to USD given per-million-token
// prices.
func calculateTokenCost(inputTokens, outputTokens int64, inputPrice, outputPrice float64) float64 {
	inputCost := float64(inputTokens) / 1_000_000 * inputPrice
	outputCost := float64(outputTokens) / 1_000_000 * outputPrice
	return inputCost + outputCost
}
