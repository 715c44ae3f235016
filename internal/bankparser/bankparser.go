// Package bankparser reconstructs structured bank transactions from the raw
// OCR text of scanned statements. Text extraction itself happens in an
// external collaborator; this package only sees the text.
//
// The parser never returns an error: the worst case is an empty transaction
// list alongside whatever statement metadata could be recovered.
package bankparser

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/Finempire/Ecommerce-GST-App/internal/logging"
	"github.com/Finempire/Ecommerce-GST-App/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows installing a configured logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

var (
	// A line is a transaction start iff it begins with a recognized date.
	dateStartRe = regexp.MustCompile(`^(\d{2}[\/\-]\d{2}[\/\-]\d{2,4}|\d{2}\s+[A-Za-z]{3}\s+\d{2,4})\b`)

	whitespaceRe = regexp.MustCompile(`\s+`)

	// Header and noise lines: column captions with no numeric content.
	headerTokensRe = regexp.MustCompile(`(?i)\b(narration|particulars|withdrawal|deposit|balance|chq|txn date|value date|description)\b`)
	digitRe        = regexp.MustCompile(`\d`)
)

// Parse reads OCR text from r and parses it into a bank statement.
func Parse(r io.Reader) (*models.BankStatement, error) {
	var sb strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ParseText(sb.String()), nil
}

// ParseText parses raw OCR text into statement metadata and an ordered list
// of transaction lines.
func ParseText(text string) *models.BankStatement {
	lines := normalizeLines(text)

	statement := extractMetadata(lines)

	merged := reconstructLines(filterHeaderLines(lines))
	for _, line := range merged {
		if tx, ok := parseLine(line); ok {
			statement.Lines = append(statement.Lines, tx)
		}
	}

	log.Info("Parsed bank statement text",
		logging.Field{Key: "bank", Value: statement.BankName},
		logging.Field{Key: logging.FieldCount, Value: len(statement.Lines)})

	return statement
}

// normalizeLines unifies line endings, collapses internal whitespace per
// physical line and drops blank lines.
func normalizeLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// filterHeaderLines discards column-caption noise so it cannot be merged
// into a reconstructed transaction.
func filterHeaderLines(lines []string) []string {
	var kept []string
	for _, line := range lines {
		if headerTokensRe.MatchString(line) && !digitRe.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

// reconstructLines merges multi-line OCR wraps: any line not starting with a
// date is appended (space-joined) to the preceding transaction-start line.
// Lines before the first dated line are left out; metadata extraction has
// already seen them.
func reconstructLines(lines []string) []string {
	var merged []string
	var current strings.Builder

	for _, line := range lines {
		if dateStartRe.MatchString(line) {
			if current.Len() > 0 {
				merged = append(merged, current.String())
				current.Reset()
			}
			current.WriteString(line)
		} else if current.Len() > 0 {
			current.WriteString(" ")
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		merged = append(merged, current.String())
	}
	return merged
}
