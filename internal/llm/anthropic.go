package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/vaulty/card-analyzer/internal/card"
)

const (
	anthropicBaseURL    = "https://api.anthropic.com"
	anthropicAPIVersion = "2023-06-01"
	anthropicModel      = "claude-sonnet-4-20250514"
)

// Claude Sonnet pricing (per million tokens)
const (
	anthropicInputPricePerMillion  = 3.00  // $3.00 per 1M input tokens
	anthropicOutputPricePerMillion = 15.00 // $15.00 per 1M output tokens
)

const (
	// DefaultTimeout bounds a single analysis call.
	DefaultTimeout = 60 * time.Second
	// DefaultMaxTokens caps the model's reply length.
	DefaultMaxTokens = 2000
)

// AnthropicConfig carries everything the analyzer needs. Credentials and
// endpoint live here rather than in ambient state; zero values for the
// optional fields pick the defaults above.
type AnthropicConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// AnthropicAnalyzer sends card images to the Anthropic Messages API.
type AnthropicAnalyzer struct {
	httpClient *resty.Client
	apiKey     string
	model      string
	maxTokens  int
	timeout    time.Duration
}

// NewAnthropicAnalyzer creates an analyzer from cfg. A missing API key is
// not an error at construction time: every call on such an analyzer fails
// with ErrAuth before any network activity.
func NewAnthropicAnalyzer(cfg AnthropicConfig) *AnthropicAnalyzer {
	a := &AnthropicAnalyzer{
		apiKey:    cfg.APIKey,
		model:     anthropicModel,
		maxTokens: DefaultMaxTokens,
		timeout:   DefaultTimeout,
	}
	if cfg.Model != "" {
		a.model = cfg.Model
	}
	if cfg.MaxTokens > 0 {
		a.maxTokens = cfg.MaxTokens
	}
	if cfg.Timeout > 0 {
		a.timeout = cfg.Timeout
	}

	baseURL := anthropicBaseURL
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}
	a.httpClient = resty.New().
		SetDebug(false).
		SetBaseURL(baseURL).
		SetHeaders(map[string]string{
			"Content-Type":      "application/json",
			"anthropic-version": anthropicAPIVersion,
		})

	return a
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string          `json:"role"`
	Content []anthropicPart `json:"content"`
}

type anthropicPart struct {
	Type   string                `json:"type"`
	Text   string                `json:"text,omitempty"`
	Source *anthropicImageSource `json:"source,omitempty"`
}

type anthropicImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int64 `json:"input_tokens"`
		OutputTokens int64 `json:"output_tokens"`
	} `json:"usage"`
}

type anthropicErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// AnalyzeCard performs one synchronous vision call. The image goes first
// in the message, then the instruction text.
func (a *AnthropicAnalyzer) AnalyzeCard(ctx context.Context, payload *card.ImagePayload) (*AnalysisResult, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", ErrAuth)
	}

	req := BuildRequest(payload)
	body := anthropicRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages: []anthropicMessage{{
			Role: "user",
			Content: []anthropicPart{
				{Type: "image", Source: &anthropicImageSource{
					Type:      "base64",
					MediaType: payload.MIMEType,
					Data:      base64.StdEncoding.EncodeToString(payload.Data),
				}},
				{Type: "text", Text: req.Instruction},
			},
		}},
	}

	reqCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	result := &anthropicResponse{}
	apiErr := &anthropicErrorResponse{}
	res, err := a.httpClient.NewRequest().
		SetContext(reqCtx).
		SetHeader("x-api-key", a.apiKey).
		SetBody(&body).
		SetResult(result).
		SetError(apiErr).
		Post("/v1/messages")
	if err != nil {
		return nil, classifyTransportError(err)
	}
	if res.IsError() {
		return nil, classifyStatusError(res.StatusCode(), apiErr.Error.Message)
	}

	text := responseText(result)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no text content in reply", ErrEmptyResponse)
	}
	analysis, err := ExtractAnalysis(text)
	if err != nil {
		return nil, err
	}

	usage := Usage{
		Model:        a.model,
		InputTokens:  result.Usage.InputTokens,
		OutputTokens: result.Usage.OutputTokens,
		TotalTokens:  result.Usage.InputTokens + result.Usage.OutputTokens,
	}
	usage.CostUSD = calculateTokenCost(usage.InputTokens, usage.OutputTokens,
		anthropicInputPricePerMillion, anthropicOutputPricePerMillion)

	log.Info().
		Str("model", a.model).
		Int64("inputTokens", usage.InputTokens).
		Int64("outputTokens", usage.OutputTokens).
		Float64("costUSD", usage.CostUSD).
		Msg("vision llm call")

	return &AnalysisResult{Analysis: analysis, Usage: usage}, nil
}

func responseText(res *anthropicResponse) string {
	var b strings.Builder
	for _, part := range res.Content {
		if part.Type == "text" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// classifyTransportError maps low-level request failures onto the error
// taxonomy. Deadline hits become ErrTimeout; caller cancellation passes
// through untouched.
func classifyTransportError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
}

// classifyStatusError maps provider HTTP statuses onto the error
// taxonomy.
func classifyStatusError(status int, message string) error {
	if message == "" {
		message = http.StatusText(status)
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s (status: %d)", ErrAuth, message, status)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s (status: %d)", ErrRateLimited, message, status)
	default:
		return fmt.Errorf("%w: %s (status: %d)", ErrTransport, message, status)
	}
}
