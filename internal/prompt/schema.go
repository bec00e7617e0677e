// Package prompt builds the deterministic instruction set sent to the
// text-generation service, together with the structural schema that
// constrains its output.
package prompt

// SchemaName is the name under which the response schema is registered with
// the service.
const SchemaName = "expenses_schema"

// Schema is a JSON Schema descriptor. encoding/json marshals map keys in
// sorted order, so serialization is deterministic for identical input.
type Schema struct {
	Type                 string             `json:"type"`
	Description          string             `json:"description,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty"`
}

// ExpensesSchema returns the extraction schema: an object with a single
// "expenses" array whose elements require amount, currency and occurredOn.
// additionalProperties is disallowed at every object level. In spreadsheet
// mode the elements additionally carry the optional lineIndex anchor.
//
// The schema is built fresh per call; nothing is cached.
func ExpensesSchema(contentType string) *Schema {
	no := false

	item := &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"amount": {
				Type:        "number",
				Description: "Transaction amount. Positive for purchases, negative for refunds and credits.",
			},
			"currency": {
				Type:        "string",
				Description: "ISO 4217 three-letter currency code, e.g. USD.",
			},
			"occurredOn": {
				Type:        "string",
				Description: "Transaction date as ISO-8601 calendar date (YYYY-MM-DD).",
			},
			"merchant": {
				Type:        "string",
				Description: "Merchant or counterparty name, when determinable.",
			},
			"paymentMethod": {
				Type:        "string",
				Description: "Payment method, when determinable.",
			},
			"note": {
				Type:        "string",
				Description: "Short human-style summary. Must not contain a date.",
			},
			"category": {
				Type:        "string",
				Description: "Spending category, when determinable.",
			},
		},
		Required:             []string{"amount", "currency", "occurredOn"},
		AdditionalProperties: &no,
	}

	if contentType == "spreadsheet" {
		item.Properties["lineIndex"] = &Schema{
			Type:        "integer",
			Description: "1-based index of the input line this transaction was extracted from.",
		}
	}

	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"expenses": {
				Type:  "array",
				Items: item,
			},
		},
		Required:             []string{"expenses"},
		AdditionalProperties: &no,
	}
}
