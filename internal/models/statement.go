// Package models provides the data structures used throughout the application.
package models

import "fmt"

// ContentType identifies the shape of a raw statement input.
type ContentType string

const (
	// ContentTypeSpreadsheet is an ordered sequence of row-strings exported
	// from a spreadsheet. Each row keeps a stable 1-based line index.
	ContentTypeSpreadsheet ContentType = "spreadsheet"

	// ContentTypePDF is a single block of free text extracted from a PDF.
	// Line indexing is not meaningful for free text.
	ContentTypePDF ContentType = "pdf"
)

// Valid reports whether the content type is one of the supported values.
func (c ContentType) Valid() bool {
	return c == ContentTypeSpreadsheet || c == ContentTypePDF
}

// RawStatementInput is the undecoded statement content handed to the pipeline.
// File decoding (XLSX/CSV/PDF byte parsing) happens upstream; the pipeline
// only sees row-strings or extracted text. The value is consumed once and
// never mutated.
type RawStatementInput struct {
	ContentType ContentType

	// Rows holds the spreadsheet rows in original order. Only set for
	// ContentTypeSpreadsheet. Blank rows are kept so indices stay stable.
	Rows []string

	// Text holds the extracted free text. Only set for ContentTypePDF.
	Text string
}

// Validate checks the input is internally consistent.
func (r RawStatementInput) Validate() error {
	if !r.ContentType.Valid() {
		return fmt.Errorf("unsupported content type: %q", r.ContentType)
	}
	if r.ContentType == ContentTypeSpreadsheet && r.Text != "" {
		return fmt.Errorf("spreadsheet input must use Rows, not Text")
	}
	if r.ContentType == ContentTypePDF && len(r.Rows) > 0 {
		return fmt.Errorf("pdf input must use Text, not Rows")
	}
	return nil
}

// NumberedLine is one logical statement record with its stable 1-based index.
// Indices are contiguous starting at 1, in source order.
type NumberedLine struct {
	Index int
	Text  string
}
