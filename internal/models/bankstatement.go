package models

import "github.com/shopspring/decimal"

// Confidence grades the debit/credit classification of a bank statement
// line. Keyword-based classification is High; purely positional heuristics
// over the amount columns are Low, because the column order is
// statement-layout-dependent and not recoverable from text alone.
type Confidence string

const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
)

// BankLine is a single reconstructed transaction line from an OCR'd bank
// statement. It is ephemeral: the pipeline converts it straight into a
// canonical Transaction and never persists it.
type BankLine struct {
	Date        string // YYYY-MM-DD
	Description string
	Reference   string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Balance     decimal.Decimal
	Mode        string
	Confidence  Confidence
}

// Amount returns the transaction amount regardless of direction.
func (l *BankLine) Amount() decimal.Decimal {
	if l.Credit.IsPositive() {
		return l.Credit
	}
	return l.Debit
}

// IsCredit reports whether money moved into the account.
func (l *BankLine) IsCredit() bool {
	return l.Credit.IsPositive()
}

// BankStatement holds the metadata and transaction lines recovered from the
// raw OCR text of a statement.
type BankStatement struct {
	BankName       string
	AccountNumber  string
	AccountHolder  string
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	Lines          []BankLine
}
