// Package normalizer converts heterogeneous statement input into the
// canonical line-indexed form embedded into extraction prompts.
package normalizer

import (
	"fmt"
	"strings"

	"ledgerlift/internal/models"
)

// NumberLines assigns contiguous 1-based indices to spreadsheet rows, in
// original order. Blank rows keep their index so extracted transactions can
// always be mapped back to the source. This stage cannot fail; an empty input
// yields an empty sequence.
func NumberLines(rows []string) []models.NumberedLine {
	lines := make([]models.NumberedLine, 0, len(rows))
	for i, row := range rows {
		lines = append(lines, models.NumberedLine{
			Index: i + 1,
			Text:  row,
		})
	}
	return lines
}

// RenderBlock renders numbered lines as a single text block for prompt
// embedding, one "index: text" entry per line.
func RenderBlock(lines []models.NumberedLine) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d: %s", line.Index, line.Text)
	}
	return b.String()
}

// Normalize produces the canonical text block for any supported input. For
// spreadsheets each row becomes a numbered line; for PDF extracts the text
// passes through untouched, since free text has no stable line anchors.
func Normalize(input models.RawStatementInput) (block string, lines []models.NumberedLine) {
	switch input.ContentType {
	case models.ContentTypeSpreadsheet:
		lines = NumberLines(input.Rows)
		return RenderBlock(lines), lines
	default:
		return input.Text, nil
	}
}
