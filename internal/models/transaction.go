package models

import (
	"github.com/shopspring/decimal"
)

// ParsedTransaction is one validated transaction extracted from a statement.
// Amounts use decimal.Decimal to avoid float drift on monetary values. Sign
// follows the purchase convention: purchases are positive, refunds and
// credits negative.
//
// Optional fields are empty (omitted on the wire) when the source line does
// not determine them; they are never fabricated.
type ParsedTransaction struct {
	Amount     decimal.Decimal `json:"amount" csv:"Amount"`
	Currency   string          `json:"currency" csv:"Currency"`
	OccurredOn string          `json:"occurredOn" csv:"Date"`

	Merchant      string `json:"merchant,omitempty" csv:"Merchant"`
	PaymentMethod string `json:"paymentMethod,omitempty" csv:"PaymentMethod"`
	Note          string `json:"note,omitempty" csv:"Note"`
	Category      string `json:"category,omitempty" csv:"Category"`

	// LineIndex anchors the transaction to its originating input line
	// (spreadsheet mode only). Zero means no anchor.
	LineIndex int `json:"lineIndex,omitempty" csv:"LineIndex"`
}

// ExtractionResult is the value surfaced to callers of the extraction path.
type ExtractionResult struct {
	Expenses []ParsedTransaction `json:"expenses"`
}

// ExistingTransaction is an already persisted transaction, as supplied by the
// transaction store for duplicate detection. IDs are opaque and caller
// assigned.
type ExistingTransaction struct {
	ID         string          `json:"id" csv:"ID"`
	Amount     decimal.Decimal `json:"amount" csv:"Amount"`
	Currency   string          `json:"currency" csv:"Currency"`
	Merchant   string          `json:"merchant,omitempty" csv:"Merchant"`
	OccurredOn string          `json:"occurredOn" csv:"Date"`
	Category   string          `json:"category,omitempty" csv:"Category"`
}

// DuplicateResult is the value surfaced to callers of the duplicate-detection
// path. DuplicateIDs is always a subset of the queried candidate IDs.
type DuplicateResult struct {
	DuplicateIDs []string `json:"duplicateIds"`
}
