// Package pipeline chains the ingestion stages: normalize the raw statement,
// compose the extraction request, call the completion service and reconcile
// the result against the source lines. Every value is request-scoped; the
// pipeline holds no state between invocations and never returns a partial
// result on failure.
package pipeline

import (
	"context"
	"fmt"

	"ledgerlift/internal/extractor"
	"ledgerlift/internal/llm"
	"ledgerlift/internal/logging"
	"ledgerlift/internal/models"
	"ledgerlift/internal/normalizer"
	"ledgerlift/internal/prompt"
	"ledgerlift/internal/reconcile"
)

// Pipeline runs statement ingestion end to end.
type Pipeline struct {
	extractor *extractor.Extractor
	log       logging.Logger
}

// New creates a Pipeline backed by the given completion client.
func New(client llm.Client, log logging.Logger) *Pipeline {
	if log == nil {
		log = logging.GetLogger()
	}
	return &Pipeline{
		extractor: extractor.New(client, log),
		log:       log,
	}
}

// Ingest converts a raw statement into validated transactions. Known category
// names, when provided, are offered to the model so categorization stays
// within the caller's taxonomy. The call makes a single upstream attempt and
// honors ctx cancellation.
func (p *Pipeline) Ingest(ctx context.Context, input models.RawStatementInput, knownCategories []string) (models.ExtractionResult, error) {
	empty := models.ExtractionResult{Expenses: []models.ParsedTransaction{}}

	if err := input.Validate(); err != nil {
		return empty, fmt.Errorf("invalid statement input: %w", err)
	}

	block, lines := normalizer.Normalize(input)
	p.log.WithFields(
		logging.Field{Key: logging.FieldContentType, Value: string(input.ContentType)},
		logging.Field{Key: logging.FieldLineCount, Value: len(lines)},
	).Info("ingesting statement")

	req := prompt.Compose(input.ContentType, block, knownCategories)

	txns, err := p.extractor.Extract(ctx, req)
	if err != nil {
		return empty, err
	}

	kept := reconcile.Apply(input.ContentType, txns, lines, p.log)
	p.log.WithField(logging.FieldCount, len(kept)).Info("statement ingested")
	return models.ExtractionResult{Expenses: kept}, nil
}
