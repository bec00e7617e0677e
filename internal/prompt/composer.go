package prompt

import (
	"strconv"
	"strings"

	"ledgerlift/internal/models"
)

// ExtractionRequest is the fully composed instruction set for one extraction
// call. It is determined entirely by the input; identical input produces a
// byte-identical request.
type ExtractionRequest struct {
	ContentType       models.ContentType
	SystemInstruction string
	UserInstruction   string
	Schema            *Schema
}

const systemInstruction = "You are a financial statement extraction engine. " +
	"You convert raw statement content into structured transaction records. " +
	"You respond with data matching the requested schema and nothing else. " +
	"You never invent transactions that are not present in the input."

// extractionRules is the fixed rule set shared by both content types.
var extractionRules = []string{
	`Return an object with a single "expenses" array. The array order must match the order of the input records.`,
	`Dates: output "occurredOn" as an ISO-8601 calendar date (YYYY-MM-DD). If a record shows two dates, prefer the later/posted date.`,
	`Currency: always the ISO 4217 three-letter code (e.g. "USD", "CHF"), never a symbol.`,
	`Sign: purchases are positive, refunds and credits are negative. Honor explicit minus signs and textual credit markers such as "CR".`,
	`Omit "merchant", "paymentMethod" and "category" entirely when they cannot be determined from the record. Never fabricate a value.`,
	`"note" is a short human-style summary of the record. It must never contain a date.`,
	`Do not invent transactions that are absent from the input, and do not drop any that are present.`,
}

// Compose builds the extraction request for the given content type and
// normalized statement block. knownCategories, when non-empty, constrains the
// optional category field. Pure string and schema construction; no I/O.
func Compose(contentType models.ContentType, block string, knownCategories []string) ExtractionRequest {
	var b strings.Builder

	b.WriteString("Extract every financial transaction from the statement content below.\n\nRules:\n")
	for i, rule := range extractionRules {
		writeRule(&b, i+1, rule)
	}

	n := len(extractionRules)
	if contentType == models.ContentTypeSpreadsheet {
		n++
		writeRule(&b, n, `Each input line is prefixed with its 1-based index ("3: ..."). Every expense must carry the "lineIndex" of the line it was extracted from. The prefix itself is not part of the record.`)
	} else {
		n++
		writeRule(&b, n, `The input is free text extracted from a PDF; it has no stable line numbering. Do not emit a "lineIndex" field.`)
	}

	if len(knownCategories) > 0 {
		n++
		writeRule(&b, n, `When assigning "category", use one of the known categories listed below if one clearly applies; otherwise omit the field.`)
		b.WriteString("\nKnown categories: ")
		b.WriteString(strings.Join(knownCategories, ", "))
		b.WriteString("\n")
	}

	b.WriteString("\nStatement content:\n")
	b.WriteString(block)

	return ExtractionRequest{
		ContentType:       contentType,
		SystemInstruction: systemInstruction,
		UserInstruction:   b.String(),
		Schema:            ExpensesSchema(string(contentType)),
	}
}

func writeRule(b *strings.Builder, n int, rule string) {
	b.WriteString(strconv.Itoa(n))
	b.WriteString(". ")
	b.WriteString(rule)
	b.WriteString("\n")
}
