// Package extractor turns a composed extraction request into validated
// transaction records. The upstream model is treated as an untrusted oracle:
// everything it returns is re-validated locally before any element is
// accepted, and anything failing validation is dropped rather than defaulted.
package extractor

import (
	"context"

	"ledgerlift/internal/llm"
	"ledgerlift/internal/logging"
	"ledgerlift/internal/models"
	"ledgerlift/internal/prompt"
)

// Extractor sends schema-constrained extraction requests and parses the
// returned payload into ParsedTransaction records.
type Extractor struct {
	client llm.Client
	log    logging.Logger
}

// New creates an Extractor backed by the given completion client.
func New(client llm.Client, log logging.Logger) *Extractor {
	if log == nil {
		log = logging.GetLogger()
	}
	return &Extractor{client: client, log: log}
}

// Extract issues a single completion request and validates the result.
// It makes exactly one attempt: upstream failures are returned to the caller
// unmodified so the caller can decide whether to retry.
func (e *Extractor) Extract(ctx context.Context, req prompt.ExtractionRequest) ([]models.ParsedTransaction, error) {
	payload, err := e.client.Complete(ctx, llm.Request{
		System:     req.SystemInstruction,
		User:       req.UserInstruction,
		SchemaName: prompt.SchemaName,
		Schema:     req.Schema,
	})
	if err != nil {
		return nil, err
	}

	e.log.WithFields(
		logging.Field{Key: logging.FieldModel, Value: e.client.ModelName()},
		logging.Field{Key: logging.FieldFingerprint, Value: llm.Fingerprint(payload)},
		logging.Field{Key: logging.FieldByteLen, Value: len(payload)},
	).Debug("received extraction payload")

	return ParsePayload(payload, e.log)
}
