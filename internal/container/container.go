// Package container provides dependency injection for the application.
// It centralizes the creation and wiring of all dependencies, making them
// explicit and testable.
package container

import (
	"fmt"

	"ledgerlift/internal/config"
	"ledgerlift/internal/dedup"
	"ledgerlift/internal/llm"
	"ledgerlift/internal/logging"
	"ledgerlift/internal/pipeline"
	"ledgerlift/internal/store"
)

// Container holds all application dependencies and provides methods to access
// them. It is immutable after creation; all fields are private and reached
// through getters.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	store    *store.CategoryStore
	client   llm.Client
	pipeline *pipeline.Pipeline
	detector *dedup.Detector
}

// NewContainer creates and wires all application dependencies. Client
// construction fails fast with a ConfigurationError when the API key is
// missing, before any network call.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	client, err := newClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	categoryStore := store.NewCategoryStore(cfg.Categories.File, logger)

	logger.Info("container initialized",
		logging.Field{Key: logging.FieldProvider, Value: cfg.AI.Provider},
		logging.Field{Key: logging.FieldModel, Value: client.ModelName()})

	return &Container{
		logger:   logger,
		config:   cfg,
		store:    categoryStore,
		client:   client,
		pipeline: pipeline.New(client, logger),
		detector: dedup.New(client, logger),
	}, nil
}

func newClient(cfg *config.Config, logger logging.Logger) (llm.Client, error) {
	switch cfg.AI.Provider {
	case config.ProviderGemini:
		client, err := llm.NewGeminiClient(llm.GeminiConfig{
			APIKey:       cfg.AI.APIKey,
			Model:        cfg.AI.Model,
			DebugLogging: cfg.AI.DebugLogging,
		}, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderOpenRouter:
		client, err := llm.NewOpenRouterClient(llm.OpenRouterConfig{
			APIKey:       cfg.AI.APIKey,
			BaseURL:      cfg.AI.BaseURL,
			Model:        cfg.AI.Model,
			Timeout:      cfg.Timeout(),
			DebugLogging: cfg.AI.DebugLogging,
		}, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.AI.Provider)
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the container's category store instance.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetClient returns the completion client selected by configuration.
func (c *Container) GetClient() llm.Client {
	return c.client
}

// GetPipeline returns the statement ingestion pipeline.
func (c *Container) GetPipeline() *pipeline.Pipeline {
	return c.pipeline
}

// GetDetector returns the duplicate candidate detector.
func (c *Container) GetDetector() *dedup.Detector {
	return c.detector
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("container closed")
	return nil
}
