// Package dedup asks the completion service which already-stored transactions
// look like redundant copies of another entry in the same set. The service is
// not trusted: whatever it returns is intersected with the identifiers it was
// given, so the result can never name a transaction outside the input set.
package dedup

import (
	"context"
	"encoding/json"
	"strings"

	"ledgerlift/internal/currencyutils"
	"ledgerlift/internal/ingesterror"
	"ledgerlift/internal/llm"
	"ledgerlift/internal/logging"
	"ledgerlift/internal/models"
)

const systemInstruction = "You are a bookkeeping assistant that spots duplicate transactions. " +
	"Given a list of stored transactions, identify entries that are redundant copies of another entry in the same list. " +
	"Flag only the redundant copy, never the original it duplicates. " +
	"Respond with a JSON object of the form {\"duplicateIds\": [\"id1\", \"id2\"]}. " +
	"If there are no duplicates, respond with {\"duplicateIds\": []}."

// Detector finds likely duplicate transactions among an existing record set.
type Detector struct {
	client llm.Client
	log    logging.Logger
}

// New creates a Detector backed by the given completion client.
func New(client llm.Client, log logging.Logger) *Detector {
	if log == nil {
		log = logging.GetLogger()
	}
	return &Detector{client: client, log: log}
}

// Detect returns the identifiers of transactions judged to duplicate another
// entry of existing. The result is always a subset of the input identifiers.
// Ambiguous or unparseable responses degrade to an empty result rather than an
// error; a missed duplicate costs less than a fabricated one.
func (d *Detector) Detect(ctx context.Context, existing []models.ExistingTransaction) (models.DuplicateResult, error) {
	empty := models.DuplicateResult{DuplicateIDs: []string{}}
	if len(existing) == 0 {
		return empty, nil
	}

	user := buildQuery(existing)
	d.log.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(existing)},
		logging.Field{Key: logging.FieldFingerprint, Value: llm.Fingerprint(user)},
	).Debug("requesting duplicate candidates")

	payload, err := d.client.Complete(ctx, llm.Request{
		System: systemInstruction,
		User:   user,
	})
	if err != nil {
		if ingesterror.IsMalformedResponse(err) {
			d.log.WithError(err).Warn("unusable duplicate response, returning empty result")
			return empty, nil
		}
		return empty, err
	}

	known := make(map[string]bool, len(existing))
	for _, tx := range existing {
		known[tx.ID] = true
	}

	seen := make(map[string]bool)
	ids := []string{}
	for _, id := range parseIdentifiers(payload) {
		if known[id] && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	d.log.WithField(logging.FieldCount, len(ids)).Debug("duplicate candidates after intersection")
	return models.DuplicateResult{DuplicateIDs: ids}, nil
}

func buildQuery(existing []models.ExistingTransaction) string {
	var b strings.Builder
	b.WriteString("Stored transactions:\n")
	for _, tx := range existing {
		b.WriteString("- id: ")
		b.WriteString(tx.ID)
		b.WriteString("; amount: ")
		b.WriteString(currencyutils.FormatAmount(tx.Amount, tx.Currency))
		b.WriteString("; date: ")
		b.WriteString(tx.OccurredOn)
		if tx.Merchant != "" {
			b.WriteString("; merchant: ")
			b.WriteString(tx.Merchant)
		}
		if tx.Category != "" {
			b.WriteString("; category: ")
			b.WriteString(tx.Category)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nWhich of these are redundant copies of another entry in the list?")
	return b.String()
}

// parseIdentifiers tolerates both structured and freeform responses. It tries
// the {"duplicateIds": [...]} object first, then a bare JSON array, and falls
// back to tokenizing the text on whitespace, commas and newlines.
func parseIdentifiers(payload string) []string {
	cleaned := strings.TrimSpace(stripFences(payload))

	var structured struct {
		DuplicateIDs []string `json:"duplicateIds"`
	}
	if err := json.Unmarshal([]byte(cleaned), &structured); err == nil {
		return structured.DuplicateIDs
	}

	var bare []string
	if err := json.Unmarshal([]byte(cleaned), &bare); err == nil {
		return bare
	}

	return tokenize(cleaned)
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', ',', ';':
			return true
		}
		return false
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.Trim(f, "\"'`[]{}().")
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func stripFences(payload string) string {
	s := strings.TrimSpace(payload)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
