// Package reconcile enforces the invariants the model is not trusted to
// uphold: line anchors must point at real input lines and dates must be ISO
// calendar dates. Its only actions are keep or drop; it never repairs or
// infers missing data, and it preserves the order of survivors.
package reconcile

import (
	"ledgerlift/internal/dateutils"
	"ledgerlift/internal/logging"
	"ledgerlift/internal/models"
)

// Apply filters extracted transactions against the original numbered lines.
// In spreadsheet mode a transaction whose lineIndex does not reference an
// input line is dropped as unanchored. In PDF mode line anchors carry no
// meaning and are stripped. Transactions with non-ISO dates are dropped in
// both modes.
func Apply(contentType models.ContentType, txns []models.ParsedTransaction, lines []models.NumberedLine, log logging.Logger) []models.ParsedTransaction {
	if log == nil {
		log = logging.GetLogger()
	}

	valid := make(map[int]bool, len(lines))
	for _, line := range lines {
		valid[line.Index] = true
	}

	kept := make([]models.ParsedTransaction, 0, len(txns))
	for _, tx := range txns {
		if !dateutils.IsISODate(tx.OccurredOn) {
			log.WithFields(
				logging.Field{Key: logging.FieldReason, Value: "non-ISO date"},
				logging.Field{Key: logging.FieldLineIndex, Value: tx.LineIndex},
			).Warn("dropping transaction")
			continue
		}

		switch contentType {
		case models.ContentTypeSpreadsheet:
			if tx.LineIndex != 0 && !valid[tx.LineIndex] {
				log.WithFields(
					logging.Field{Key: logging.FieldReason, Value: "dangling line anchor"},
					logging.Field{Key: logging.FieldLineIndex, Value: tx.LineIndex},
				).Warn("dropping transaction")
				continue
			}
		case models.ContentTypePDF:
			tx.LineIndex = 0
		}

		kept = append(kept, tx)
	}

	if len(kept) != len(txns) {
		log.WithFields(
			logging.Field{Key: logging.FieldCount, Value: len(kept)},
			logging.Field{Key: "dropped", Value: len(txns) - len(kept)},
		).Info("reconciliation dropped transactions")
	}
	return kept
}
