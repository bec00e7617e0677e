// Package ingesterror defines the error taxonomy of the ingestion pipeline.
// Callers branch on these types to decide whether a failure is retryable
// (upstream), fatal (configuration) or a contract violation (malformed
// response).
package ingesterror

import (
	"errors"
	"fmt"
)

// ConfigurationError indicates a required credential or service identifier is
// absent. It is raised before any network call and is never retryable.
type ConfigurationError struct {
	Option string
	Msg    string
}

func (e *ConfigurationError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("configuration error: %s: %s", e.Option, e.Msg)
	}
	return fmt.Sprintf("configuration error: %s is not set", e.Option)
}

// UpstreamError indicates the external text-generation service responded with
// a non-success status. The raw body is kept for diagnosis; the pipeline makes
// a single attempt and leaves retry decisions to the caller.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	body := e.Body
	const maxLen = 200
	if len(body) > maxLen {
		body = body[:maxLen] + "..."
	}
	return fmt.Sprintf("upstream service returned status %d: %s", e.Status, body)
}

// MalformedResponseError indicates a successful response whose content cannot
// be interpreted as valid structured data under the extraction contract.
type MalformedResponseError struct {
	Reason  string
	Snippet string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("malformed response: %s (snippet: %q)", e.Reason, e.Snippet)
	}
	return fmt.Sprintf("malformed response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// IsConfiguration reports whether err is (or wraps) a ConfigurationError.
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsUpstream reports whether err is (or wraps) an UpstreamError. The status
// of the innermost UpstreamError is returned when found.
func IsUpstream(err error) (int, bool) {
	var target *UpstreamError
	if errors.As(err, &target) {
		return target.Status, true
	}
	return 0, false
}

// IsMalformedResponse reports whether err is (or wraps) a MalformedResponseError.
func IsMalformedResponse(err error) bool {
	var target *MalformedResponseError
	return errors.As(err, &target)
}
