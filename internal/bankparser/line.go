package bankparser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Finempire/Ecommerce-GST-App/internal/currencyutils"
	"github.com/Finempire/Ecommerce-GST-App/internal/dateutils"
	"github.com/Finempire/Ecommerce-GST-App/internal/models"
)

// modePattern pairs an ordered keyword regex with the canonical payment mode
// label. First match wins.
type modePattern struct {
	re   *regexp.Regexp
	mode string
}

var modePatterns = []modePattern{
	{regexp.MustCompile(`(?i)\b(UPI|IMPS|NEFT|RTGS)\b`), "UPI/IMPS/NEFT"},
	{regexp.MustCompile(`(?i)\b(ATM|CASH|CDM)\b`), "ATM/Cash"},
	{regexp.MustCompile(`(?i)\b(CHEQUE|CHQ)\b`), "Cheque"},
	{regexp.MustCompile(`(?i)\b(POS|SWIPE|CARD)\b`), "Card"},
	{regexp.MustCompile(`(?i)NET\s*BANKING|INTERNET`), "Net Banking"},
	{regexp.MustCompile(`(?i)AUTO\s*DEBIT|MANDATE|\bEMI\b`), "Auto Debit"},
}

var (
	amountTokenRe = regexp.MustCompile(`^\d[\d,]*\.?\d*$`)
	refMarkerRe   = regexp.MustCompile(`(?i)\b(?:UTR|REF|RRN|CHQ)\b\s*[:#/\-]\s*([A-Za-z0-9]+)`)
	refTokenRe    = regexp.MustCompile(`^[A-Za-z0-9]{10,}$`)
	letterRe      = regexp.MustCompile(`[A-Za-z]`)
	refDigitRe    = regexp.MustCompile(`\d`)

	debitKeywordRe  = regexp.MustCompile(`(?i)\b(DR|DEBIT|PAID|WITHDRAWN)\b|(?i)TRANSFER\s*TO`)
	creditKeywordRe = regexp.MustCompile(`(?i)\b(CR|CREDIT|RECEIVED|DEPOSITED)\b|(?i)TRANSFER\s*FROM`)
	drcrMarkerRe    = regexp.MustCompile(`(?i)\b(DR|CR)\b`)
)

// parseLine turns one reconstructed statement line into a BankLine. A line
// with a date but no extractable amounts yields no transaction.
func parseLine(line string) (models.BankLine, bool) {
	dateMatch := dateStartRe.FindString(line)
	if dateMatch == "" {
		return models.BankLine{}, false
	}
	rest := strings.TrimSpace(line[len(dateMatch):])

	amounts, amountTokens := extractAmounts(rest)
	if len(amounts) == 0 {
		return models.BankLine{}, false
	}

	reference := extractReference(rest, amountTokens)
	mode := classifyMode(rest)
	description := buildDescription(rest, amountTokens, reference)

	tx := models.BankLine{
		Date:        dateutils.Normalize(dateMatch),
		Description: description,
		Reference:   reference,
		Mode:        mode,
	}
	classifyAmounts(&tx, rest, amounts)

	return tx, true
}

// extractAmounts collects the standalone amount-like tokens on a line,
// commas removed. Tokens fused into alphanumeric strings (references) are
// not amounts.
func extractAmounts(rest string) ([]decimal.Decimal, map[string]bool) {
	var amounts []decimal.Decimal
	tokens := make(map[string]bool)

	for _, token := range strings.Fields(rest) {
		trimmed := strings.Trim(token, "()")
		if !amountTokenRe.MatchString(trimmed) {
			continue
		}
		amount := currencyutils.ParseAmount(trimmed)
		if amount.IsPositive() {
			amounts = append(amounts, amount)
			tokens[token] = true
		}
	}
	return amounts, tokens
}

// classifyMode returns the payment mode for a line, or "" when no keyword
// matches.
func classifyMode(rest string) string {
	for _, mp := range modePatterns {
		if mp.re.MatchString(rest) {
			return mp.mode
		}
	}
	return ""
}

// extractReference prefers a token following an explicit marker (UTR:, REF/,
// CHQ-, RRN#), falling back to the first long token mixing letters and
// digits. Amount tokens are excluded from the fallback.
func extractReference(rest string, amountTokens map[string]bool) string {
	if m := refMarkerRe.FindStringSubmatch(rest); m != nil {
		return m[1]
	}

	for _, token := range strings.Fields(rest) {
		if amountTokens[token] {
			continue
		}
		if refTokenRe.MatchString(token) && letterRe.MatchString(token) && refDigitRe.MatchString(token) {
			return token
		}
	}
	return ""
}

// buildDescription removes the amount tokens, the reference and DR/CR
// markers from the line remainder and trims stray punctuation.
func buildDescription(rest string, amountTokens map[string]bool, reference string) string {
	var kept []string
	for _, token := range strings.Fields(rest) {
		if amountTokens[token] || token == reference {
			continue
		}
		if drcrMarkerRe.MatchString(token) && len(token) <= 3 {
			continue
		}
		kept = append(kept, token)
	}

	description := strings.Join(kept, " ")
	description = strings.Trim(description, " -:;,./")
	if len(description) > 100 {
		description = description[:100]
	}
	return description
}

// classifyAmounts assigns the debit, credit and balance columns. Keyword
// signals take precedence; without them the positional heuristics over the
// amount list apply and the classification is marked low-confidence. The
// three-or-more-amounts fallback (first two amounts read as debit/credit
// columns) is layout-dependent and kept as a documented best-effort default.
func classifyAmounts(tx *models.BankLine, rest string, amounts []decimal.Decimal) {
	isDebit := debitKeywordRe.MatchString(rest)
	isCredit := creditKeywordRe.MatchString(rest)

	keyworded := isDebit != isCredit
	if keyworded {
		tx.Confidence = models.ConfidenceHigh
	} else {
		tx.Confidence = models.ConfidenceLow
	}

	switch {
	case len(amounts) == 1:
		if isCredit && !isDebit {
			tx.Credit = amounts[0]
		} else {
			tx.Debit = amounts[0]
		}

	case len(amounts) == 2:
		tx.Balance = amounts[1]
		if isCredit && !isDebit {
			tx.Credit = amounts[0]
		} else {
			tx.Debit = amounts[0]
		}

	default: // three or more
		tx.Balance = amounts[len(amounts)-1]
		switch {
		case isDebit:
			// Debit keywords take precedence when both signals appear.
			tx.Debit = amounts[0]
		case isCredit:
			tx.Credit = amounts[0]
		default:
			tx.Debit = amounts[0]
			tx.Credit = amounts[1]
		}
	}
}
