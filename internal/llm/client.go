// Package llm provides clients for the external text-generation services the
// pipeline calls. All clients implement the same Client interface so the
// extraction and duplicate-detection stages stay provider agnostic.
//
// The service is treated as an untrusted, best-effort oracle: clients return
// the raw message content and leave structural validation to their callers.
package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Request is one completion request. Schema, when set, constrains the
// response to the named structural schema; a nil Schema requests free text.
type Request struct {
	System string
	User   string

	// SchemaName and Schema request a schema-constrained response.
	SchemaName string
	Schema     interface{}
}

// Client sends a completion request and returns the raw content of the first
// candidate. Exactly one outbound call per invocation; no retries, no
// internal timeout beyond the transport's. Cancelling ctx aborts the call.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	ModelName() string
}

// Fingerprint returns a short content hash used for diagnostic logging.
// Logs carry fingerprints and byte lengths only, never statement content.
func Fingerprint(payload string) string {
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])[:12]
}
