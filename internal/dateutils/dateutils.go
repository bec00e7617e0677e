// Package dateutils provides the date operations used by the ingestion
// pipeline. The external model is instructed to emit ISO-8601 calendar dates;
// everything that crosses a trust boundary is re-validated here.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayoutISO is the only layout accepted from the extraction service.
const DateLayoutISO = "2006-01-02"

// ParseISODate parses an ISO-8601 calendar date (YYYY-MM-DD). Leading and
// trailing whitespace is tolerated; anything else is an error.
func ParseISODate(dateStr string) (time.Time, error) {
	cleaned := strings.TrimSpace(dateStr)
	t, err := time.Parse(DateLayoutISO, cleaned)
	if err != nil {
		return time.Time{}, fmt.Errorf("not an ISO-8601 calendar date: %q", dateStr)
	}
	return t, nil
}

// IsISODate reports whether dateStr is a valid ISO-8601 calendar date.
// time.Parse rejects impossible dates such as 2024-02-31, so this is a full
// calendar check, not just a shape check.
func IsISODate(dateStr string) bool {
	_, err := ParseISODate(dateStr)
	return err == nil
}
