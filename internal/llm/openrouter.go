package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ledgerlift/internal/ingesterror"
	"ledgerlift/internal/logging"
)

// Default configuration for the OpenRouter-compatible endpoint.
const (
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel   = "openai/gpt-4o-mini"
	DefaultOpenRouterTimeout = 120 * time.Second
)

// OpenRouterConfig holds configuration for the OpenRouter client. BaseURL can
// point at any OpenAI-compatible chat-completions endpoint.
type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration

	// DebugLogging enables fingerprint-and-length diagnostics for every
	// outbound request.
	DebugLogging bool
}

// OpenRouterClient talks to an OpenAI-compatible chat-completions API with a
// schema-constrained response format.
type OpenRouterClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	debug   bool
	log     logging.Logger
}

var _ Client = (*OpenRouterClient)(nil)

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`

	// Temperature is pinned to 0 for deterministic-as-possible sampling,
	// so it is serialized unconditionally.
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *namedSchema `json:"json_schema,omitempty"`
}

type namedSchema struct {
	Name   string      `json:"name"`
	Strict bool        `json:"strict"`
	Schema interface{} `json:"schema"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewOpenRouterClient creates a client for the configured endpoint. A missing
// API key is a ConfigurationError raised before any network I/O.
func NewOpenRouterClient(cfg OpenRouterConfig, logger logging.Logger) (*OpenRouterClient, error) {
	if cfg.APIKey == "" {
		return nil, &ingesterror.ConfigurationError{Option: "ai.api_key"}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOpenRouterBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenRouterModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultOpenRouterTimeout
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	return &OpenRouterClient{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		debug:   cfg.DebugLogging,
		log:     logger,
	}, nil
}

// ModelName returns the configured model identifier.
func (c *OpenRouterClient) ModelName() string {
	return c.model
}

// Complete issues a single chat-completions call and returns the raw message
// content. Non-success statuses surface as UpstreamError; an undecodable
// envelope surfaces as MalformedResponseError.
func (c *OpenRouterClient) Complete(ctx context.Context, req Request) (string, error) {
	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Temperature: 0,
	}
	if req.Schema != nil {
		reqBody.ResponseFormat = &responseFormat{
			Type: "json_schema",
			JSONSchema: &namedSchema{
				Name:   req.SchemaName,
				Strict: true,
				Schema: req.Schema,
			},
		}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	if c.debug {
		c.log.Debug("sending completion request",
			logging.Field{Key: logging.FieldModel, Value: c.model},
			logging.Field{Key: logging.FieldFingerprint, Value: Fingerprint(req.User)},
			logging.Field{Key: logging.FieldByteLen, Value: len(jsonBody)},
		)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Status only; the body travels in the error, not the logs.
		c.log.Warn("upstream request failed",
			logging.Field{Key: logging.FieldStatus, Value: resp.StatusCode})
		return "", &ingesterror.UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", &ingesterror.MalformedResponseError{
			Reason: "response envelope is not valid JSON",
			Err:    err,
		}
	}
	if chatResp.Error != nil {
		return "", &ingesterror.UpstreamError{Status: resp.StatusCode, Body: chatResp.Error.Message}
	}
	if len(chatResp.Choices) == 0 {
		return "", &ingesterror.MalformedResponseError{Reason: "no response choices returned"}
	}

	return chatResp.Choices[0].Message.Content, nil
}
