package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"kb-assessor/config"
	"kb-assessor/models"
)

// LLMClient posts chat-style requests to a /responses-style generation
// endpoint and returns the decoded body without interpreting its shape;
// providers disagree enough about response structure that extraction is the
// caller's problem. The raw body is always captured in the logs because it
// is the primary debugging tool when a provider changes shape.
type LLMClient struct {
	baseURL      string
	model        string
	apiKey       string
	temperature  float64
	maxTokens    int
	userAgent    string
	logResponses bool
	httpClient   *http.Client
	logger       *slog.Logger
}

type chatPayload struct {
	Model           string               `json:"model"`
	Input           []models.ChatMessage `json:"input"`
	Temperature     float64              `json:"temperature"`
	MaxOutputTokens int                  `json:"max_output_tokens"`
}

func NewLLMClient(cfg *config.LLMConfig, appCfg *config.AppConfig, logger *slog.Logger) (*LLMClient, error) {
	if cfg.BaseURL == "" || cfg.Model == "" {
		return nil, fmt.Errorf("llm configuration incomplete")
	}

	httpClient, err := newHTTPClient(appCfg.AssessmentTimeout, cfg.VerifySSL, cfg.CABundle)
	if err != nil {
		return nil, fmt.Errorf("failed to build llm http client: %w", err)
	}

	return &LLMClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		model:        cfg.Model,
		apiKey:       cfg.APIKey,
		temperature:  cfg.Temperature,
		maxTokens:    cfg.MaxTokens,
		userAgent:    appCfg.UserAgent,
		logResponses: appCfg.LogLLMResponses,
		httpClient:   httpClient,
		logger:       logger,
	}, nil
}

// Model reports the configured model identifier, recorded on each done
// assessment.
func (c *LLMClient) Model() string {
	return c.model
}

// Chat sends the ordered message list and returns the provider's decoded
// JSON object. Non-2xx statuses, transport failures and non-object bodies
// are all hard errors.
func (c *LLMClient) Chat(ctx context.Context, messages []models.ChatMessage) (map[string]any, error) {
	payload := chatPayload{
		Model:           c.model,
		Input:           messages,
		Temperature:     c.temperature,
		MaxOutputTokens: c.maxTokens,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal llm payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUpstreamRequest, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "llm request failed", "error", err, "model", c.model)
		return nil, fmt.Errorf("%w: %v", models.ErrUpstreamRequest, err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.ErrorContext(ctx, "failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", models.ErrUpstreamRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.ErrorContext(ctx, "llm returned non-2xx status",
			"status", resp.StatusCode,
			"body", string(body))

		return nil, fmt.Errorf("%w: llm status %d: %s", models.ErrUpstreamRequest, resp.StatusCode, string(body))
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		c.logger.ErrorContext(ctx, "failed to decode llm response", "error", err, "body", string(body))
		return nil, fmt.Errorf("%w: failed to decode llm response: %v", models.ErrUpstreamRequest, err)
	}

	c.logger.InfoContext(ctx, "llm response received", "status", resp.StatusCode, "model", c.model)

	if c.logResponses {
		c.logger.InfoContext(ctx, "llm raw response", "body", string(body))
	} else {
		c.logger.DebugContext(ctx, "llm raw response", "body", string(body))
	}

	return decoded, nil
}
