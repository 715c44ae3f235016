package bankparser

import (
	"regexp"
	"strings"

	"github.com/Finempire/Ecommerce-GST-App/internal/currencyutils"
	"github.com/Finempire/Ecommerce-GST-App/internal/models"
)

// bankPattern pairs a detection regex with the canonical bank name.
type bankPattern struct {
	re   *regexp.Regexp
	name string
}

var bankPatterns = []bankPattern{
	{regexp.MustCompile(`(?i)HDFC`), "HDFC Bank"},
	{regexp.MustCompile(`(?i)ICICI`), "ICICI Bank"},
	{regexp.MustCompile(`(?i)SBI|STATE BANK`), "State Bank of India"},
	{regexp.MustCompile(`(?i)AXIS`), "Axis Bank"},
	{regexp.MustCompile(`(?i)KOTAK`), "Kotak Mahindra Bank"},
	{regexp.MustCompile(`(?i)YES BANK`), "Yes Bank"},
	{regexp.MustCompile(`(?i)PUNJAB NATIONAL|PNB`), "Punjab National Bank"},
	{regexp.MustCompile(`(?i)BANK OF BARODA|\bBOB\b`), "Bank of Baroda"},
	{regexp.MustCompile(`(?i)CANARA BANK`), "Canara Bank"},
	{regexp.MustCompile(`(?i)UNION BANK`), "Union Bank of India"},
	{regexp.MustCompile(`(?i)INDUSIND`), "IndusInd Bank"},
	{regexp.MustCompile(`(?i)IDBI`), "IDBI Bank"},
}

var accountNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Account\s*(?:No|Number|#)?[:\s]*([0-9]{9,18})`),
	regexp.MustCompile(`(?i)A\/C\s*(?:No)?[:.\s]*([0-9]{9,18})`),
	regexp.MustCompile(`(?i)([0-9]{9,18})\s*(?:Savings|Current)`),
}

var holderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Account Holder|Customer|Name)[:\s]+([A-Z][A-Z\s]+)`),
	regexp.MustCompile(`(?i)(?:Mr\.|Mrs\.|Ms\.|M\/S)\s+([A-Z][A-Z\s]+)`),
}

var (
	openingBalanceRe = regexp.MustCompile(`(?i)Opening\s*Balance[:\s]*([\d,]+\.?\d*)`)
	closingBalanceRe = regexp.MustCompile(`(?i)Closing\s*Balance[:\s]*([\d,]+\.?\d*)`)
)

// extractMetadata makes a single pass over all normalized lines; the first
// match wins for each metadata field.
func extractMetadata(lines []string) *models.BankStatement {
	statement := &models.BankStatement{}

	for _, line := range lines {
		if statement.BankName == "" {
			for _, bp := range bankPatterns {
				if bp.re.MatchString(line) {
					statement.BankName = bp.name
					break
				}
			}
		}

		if statement.AccountNumber == "" {
			for _, re := range accountNumberPatterns {
				if m := re.FindStringSubmatch(line); m != nil {
					statement.AccountNumber = m[1]
					break
				}
			}
		}

		if statement.AccountHolder == "" {
			for _, re := range holderPatterns {
				if m := re.FindStringSubmatch(line); m != nil {
					if name := strings.TrimSpace(m[1]); isPlausibleHolderName(name) {
						statement.AccountHolder = name
						break
					}
				}
			}
		}

		if statement.OpeningBalance.IsZero() {
			if m := openingBalanceRe.FindStringSubmatch(line); m != nil {
				statement.OpeningBalance = currencyutils.ParseAmount(m[1])
			}
		}
		if statement.ClosingBalance.IsZero() {
			if m := closingBalanceRe.FindStringSubmatch(line); m != nil {
				statement.ClosingBalance = currencyutils.ParseAmount(m[1])
			}
		}
	}

	return statement
}

// isPlausibleHolderName rejects the obvious false positives the label-anchored
// regexes pick up from statement boilerplate.
func isPlausibleHolderName(name string) bool {
	upper := strings.ToUpper(name)
	for _, reject := range []string{"BANK", "STATEMENT", "BRANCH", "ACCOUNT"} {
		if strings.Contains(upper, reject) {
			return false
		}
	}
	return len(name) >= 3
}
