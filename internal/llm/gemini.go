package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"ledgerlift/internal/ingesterror"
	"ledgerlift/internal/logging"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey       string
	Model        string
	DebugLogging bool
}

// GeminiClient implements Client against the Google Gemini API. Gemini has no
// named-schema response format in this API surface, so the schema is embedded
// into the prompt and the textual payload is validated by the caller, same as
// any freeform response.
type GeminiClient struct {
	apiKey string
	model  string
	debug  bool
	log    logging.Logger

	mu     sync.Mutex
	client *genai.Client
}

var _ Client = (*GeminiClient)(nil)

// NewGeminiClient creates a Gemini-backed client. A missing API key is a
// ConfigurationError raised before any network I/O; the underlying connection
// is established lazily on first use.
func NewGeminiClient(cfg GeminiConfig, logger logging.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, &ingesterror.ConfigurationError{Option: "ai.api_key"}
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	return &GeminiClient{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		debug:  cfg.DebugLogging,
		log:    logger,
	}, nil
}

// ModelName returns the configured model identifier.
func (c *GeminiClient) ModelName() string {
	return c.model
}

func (c *GeminiClient) ensureClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return c.client, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	c.client = client
	return client, nil
}

// Complete issues a single generation call and returns the raw text of the
// first candidate.
func (c *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	client, err := c.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	prompt := c.buildPrompt(req)

	if c.debug {
		c.log.Debug("sending completion request",
			logging.Field{Key: logging.FieldModel, Value: c.model},
			logging.Field{Key: logging.FieldFingerprint, Value: Fingerprint(prompt)},
			logging.Field{Key: logging.FieldByteLen, Value: len(prompt)},
		)
	}

	model := client.GenerativeModel(c.model)
	temperature := float32(0)
	model.GenerationConfig.Temperature = &temperature

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			c.log.Warn("upstream request failed",
				logging.Field{Key: logging.FieldStatus, Value: gerr.Code})
			return "", &ingesterror.UpstreamError{Status: gerr.Code, Body: gerr.Message}
		}
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &ingesterror.MalformedResponseError{Reason: "no candidates returned"}
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", &ingesterror.MalformedResponseError{Reason: "candidate carries no text parts"}
	}

	return b.String(), nil
}

// buildPrompt folds the system instruction and, when present, the response
// schema into a single text prompt.
func (c *GeminiClient) buildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString(req.System)
	b.WriteString("\n\n")
	b.WriteString(req.User)

	if req.Schema != nil {
		if schemaJSON, err := json.Marshal(req.Schema); err == nil {
			b.WriteString("\n\nRespond with a single JSON object conforming to the JSON Schema ")
			b.WriteString(req.SchemaName)
			b.WriteString(" below. Output raw JSON only, without markdown fences.\n")
			b.Write(schemaJSON)
		}
	}

	return b.String()
}
