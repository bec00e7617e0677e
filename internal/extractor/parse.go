package extractor

import (
	"encoding/json"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/shopspring/decimal"

	"ledgerlift/internal/currencyutils"
	"ledgerlift/internal/ingesterror"
	"ledgerlift/internal/logging"
	"ledgerlift/internal/models"
)

// wireExpense mirrors one element of the schema-constrained response. Required
// fields are pointers so that absence can be told apart from a zero value.
type wireExpense struct {
	Amount        *decimal.Decimal `json:"amount"`
	Currency      *string          `json:"currency"`
	OccurredOn    *string          `json:"occurredOn"`
	Merchant      string           `json:"merchant"`
	PaymentMethod string           `json:"paymentMethod"`
	Note          string           `json:"note"`
	Category      string           `json:"category"`
	LineIndex     int              `json:"lineIndex"`
}

type wireEnvelope struct {
	Expenses *[]wireExpense `json:"expenses"`
}

// ParsePayload interprets a raw model payload as an extraction result.
// A payload that is not a JSON object yields a MalformedResponseError. A JSON
// object without the expenses field yields an empty result, since the absence
// of transactions is a valid outcome. Elements missing a required field or
// carrying an unrecognizable currency are dropped, never defaulted.
func ParsePayload(payload string, log logging.Logger) ([]models.ParsedTransaction, error) {
	if log == nil {
		log = logging.GetLogger()
	}

	cleaned := stripFences(payload)

	var env wireEnvelope
	if err := json.Unmarshal([]byte(cleaned), &env); err != nil {
		repaired, repairErr := jsonrepair.RepairJSON(cleaned)
		if repairErr != nil {
			return nil, &ingesterror.MalformedResponseError{
				Reason:  "response is not valid JSON",
				Snippet: snippet(cleaned),
				Err:     err,
			}
		}
		env = wireEnvelope{}
		if err := json.Unmarshal([]byte(repaired), &env); err != nil {
			return nil, &ingesterror.MalformedResponseError{
				Reason:  "response is not a JSON object",
				Snippet: snippet(cleaned),
				Err:     err,
			}
		}
	}

	if env.Expenses == nil {
		log.Debug("extraction response carried no expenses field")
		return []models.ParsedTransaction{}, nil
	}

	result := make([]models.ParsedTransaction, 0, len(*env.Expenses))
	for i, e := range *env.Expenses {
		tx, reason := validateExpense(e)
		if reason != "" {
			log.WithFields(
				logging.Field{Key: logging.FieldReason, Value: reason},
				logging.Field{Key: logging.FieldLineIndex, Value: e.LineIndex},
				logging.Field{Key: "element", Value: i},
			).Warn("dropping extracted element")
			continue
		}
		result = append(result, tx)
	}

	log.WithField(logging.FieldCount, len(result)).Debug("validated extraction result")
	return result, nil
}

func validateExpense(e wireExpense) (models.ParsedTransaction, string) {
	if e.Amount == nil {
		return models.ParsedTransaction{}, "missing amount"
	}
	if e.Currency == nil {
		return models.ParsedTransaction{}, "missing currency"
	}
	if e.OccurredOn == nil {
		return models.ParsedTransaction{}, "missing occurredOn"
	}

	currency, ok := currencyutils.NormalizeCurrencyCode(*e.Currency)
	if !ok {
		return models.ParsedTransaction{}, "invalid currency code"
	}

	return models.ParsedTransaction{
		Amount:        *e.Amount,
		Currency:      currency,
		OccurredOn:    strings.TrimSpace(*e.OccurredOn),
		Merchant:      e.Merchant,
		PaymentMethod: e.PaymentMethod,
		Note:          e.Note,
		Category:      e.Category,
		LineIndex:     e.LineIndex,
	}, ""
}

// stripFences removes a surrounding markdown code fence, which some models
// add even when asked for raw JSON.
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

func snippet(s string) string {
	const maxLen = 120
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
