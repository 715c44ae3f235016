// Package dateutils provides the date parsing and normalization helpers used
// by the platform adapters, the bank statement parser and the renderers.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date layout constants used throughout the application
const (
	LayoutISO    = "2006-01-02" // canonical storage format
	LayoutIndian = "02/01/2006" // DD/MM/YYYY, used in exports
	LayoutTally  = "20060102"   // accounting voucher dates
	LayoutMonth  = "2006-01"    // monthly aggregation keys
	LayoutPeriod = "012006"     // MMYYYY tax-return period
)

// CommonFormats is the list of layouts tried when parsing dates coming from
// marketplace exports. Day-first layouts come before month-first ones because
// Indian marketplace files are day-first.
var CommonFormats = []string{
	LayoutISO,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"02/01/06",
	"02-01-06",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"2006/01/02",
	"01/02/2006",
}

var (
	dmySepRe  = regexp.MustCompile(`^(\d{1,2})[\/\-](\d{1,2})[\/\-](\d{2,4})$`)
	dmyTextRe = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3})\s+(\d{2,4})$`)
	isoRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// monthAbbrevs maps 3-letter month abbreviations to their 2-digit form.
var monthAbbrevs = map[string]string{
	"JAN": "01", "FEB": "02", "MAR": "03", "APR": "04",
	"MAY": "05", "JUN": "06", "JUL": "07", "AUG": "08",
	"SEP": "09", "OCT": "10", "NOV": "11", "DEC": "12",
}

// TryParse parses a date string using the common layouts, reporting whether
// any layout matched.
func TryParse(dateStr string) (time.Time, bool) {
	cleaned := strings.TrimSpace(dateStr)
	if cleaned == "" {
		return time.Time{}, false
	}

	for _, layout := range CommonFormats {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}

	// Normalize and retry for bank-statement style dates (DD MMM YY etc.)
	if normalized := Normalize(cleaned); normalized != cleaned {
		if t, err := time.Parse(LayoutISO, normalized); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// ParseFlexible parses a date string using the common layouts. When nothing
// matches it falls back to now; a missing or garbled order date must never
// drop a row, per the adapter failure policy.
func ParseFlexible(dateStr string, now time.Time) time.Time {
	if t, ok := TryParse(dateStr); ok {
		return t
	}
	return now
}

// Normalize converts a date string into the canonical YYYY-MM-DD form.
// Already-normalized input is returned unchanged, so the operation is
// idempotent. Two-digit years are expanded to 20YY. Unrecognized input is
// returned as-is.
func Normalize(dateStr string) string {
	cleaned := strings.TrimSpace(dateStr)

	if isoRe.MatchString(cleaned) {
		return cleaned
	}

	if m := dmySepRe.FindStringSubmatch(cleaned); m != nil {
		return fmt.Sprintf("%s-%s-%s", expandYear(m[3]), pad2(m[2]), pad2(m[1]))
	}

	if m := dmyTextRe.FindStringSubmatch(cleaned); m != nil {
		month, ok := monthAbbrevs[strings.ToUpper(m[2])]
		if !ok {
			month = "01"
		}
		return fmt.Sprintf("%s-%s-%s", expandYear(m[3]), month, pad2(m[1]))
	}

	return cleaned
}

func expandYear(year string) string {
	if len(year) == 2 {
		return "20" + year
	}
	return year
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
