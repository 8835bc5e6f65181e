package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/vaulty/card-analyzer/internal/card"
)

const geminiModel = "gemini-3-flash-preview"

// Gemini pricing (per million tokens)
const (
	geminiInputPricePerMillion  = 0.50 // $0.50 per 1M input tokens (text/image/video)
	geminiOutputPricePerMillion = 3.00 // $3.00 per 1M output tokens (including thinking)
)

// GeminiConfig carries credentials and model selection for the Gemini
// provider.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// GeminiAnalyzer is an alternative Analyzer backed by Gemini vision
// models. It uses the same instruction text and reply extraction as the
// Anthropic provider.
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
}

func NewGeminiAnalyzer(ctx context.Context, cfg GeminiConfig) (*GeminiAnalyzer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", ErrAuth)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := geminiModel
	if cfg.Model != "" {
		model = cfg.Model
	}
	return &GeminiAnalyzer{client: client, model: model}, nil
}

// AnalyzeCard implements the Analyzer interface using Gemini.
func (g *GeminiAnalyzer) AnalyzeCard(ctx context.Context, payload *card.ImagePayload) (*AnalysisResult, error) {
	req := BuildRequest(payload)
	parts := []*genai.Part{
		genai.NewPartFromText(req.Instruction),
		{InlineData: &genai.Blob{Data: payload.Data, MIMEType: payload.MIMEType}},
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, classifyGeminiError(err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: no candidates in reply", ErrEmptyResponse)
	}

	analysis, err := ExtractAnalysis(result.Text())
	if err != nil {
		return nil, err
	}

	usage := Usage{Model: g.model}
	if result.UsageMetadata != nil {
		usage.InputTokens = int64(result.UsageMetadata.PromptTokenCount)
		usage.OutputTokens = int64(result.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int64(result.UsageMetadata.TotalTokenCount)
		usage.CostUSD = calculateTokenCost(usage.InputTokens, usage.OutputTokens,
			geminiInputPricePerMillion, geminiOutputPricePerMillion)
	}

	log.Info().
		Str("model", g.model).
		Int64("inputTokens", usage.InputTokens).
		Int64("outputTokens", usage.OutputTokens).
		Float64("costUSD", usage.CostUSD).
		Msg("vision llm call")

	return &AnalysisResult{Analysis: analysis, Usage: usage}, nil
}

// classifyGeminiError maps Gemini SDK failures onto the error taxonomy.
func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatusError(apiErr.Code, apiErr.Message)
	}
	return classifyTransportError(err)
}
