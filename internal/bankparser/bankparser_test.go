package bankparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Finempire/Ecommerce-GST-App/internal/models"
	"github.com/shopspring/decimal"
)

func amountFromString(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

const sampleStatement = `HDFC BANK LTD
Statement of Account
Account Holder: Mr. RAHUL SHARMA
Account Number: 50100123456789
Txn Date    Narration                        Withdrawal    Deposit    Balance
Opening Balance: 5,000.00
01/04/2025 UPI-AMAZON Payment 500.00 DR
REF123456789 Balance 4500.00
02/04/2025 NEFT SALARY CREDIT ACME CORP 25000.00 CR 29500.00
03/04/2025 ATM CASH WITHDRAWAL 2000.00 DR 27500.00
Closing Balance: 27,500.00
`

func TestParseText_Metadata(t *testing.T) {
	statement := ParseText(sampleStatement)

	assert.Equal(t, "HDFC Bank", statement.BankName)
	assert.Equal(t, "50100123456789", statement.AccountNumber)
	assert.Equal(t, "RAHUL SHARMA", statement.AccountHolder)
	assert.True(t, statement.OpeningBalance.Equal(amountFromString("5000.00")))
	assert.True(t, statement.ClosingBalance.Equal(amountFromString("27500.00")))
}

func TestParseText_LineReconstruction(t *testing.T) {
	// The first transaction is split across two physical lines; the
	// continuation must be merged into the date-anchored line above it.
	statement := ParseText(sampleStatement)
	require.Len(t, statement.Lines, 3)

	first := statement.Lines[0]
	assert.Equal(t, "2025-04-01", first.Date)
	assert.True(t, first.Debit.Equal(amountFromString("500.00")), "debit = %s", first.Debit)
	assert.True(t, first.Credit.IsZero())
	assert.True(t, first.Balance.Equal(amountFromString("4500.00")), "balance = %s", first.Balance)
	assert.Equal(t, "REF123456789", first.Reference)
	assert.Equal(t, "UPI/IMPS/NEFT", first.Mode)
	assert.Equal(t, models.ConfidenceHigh, first.Confidence)
}

func TestParseText_MergedLineWithoutKeywords(t *testing.T) {
	// No DR/CR keyword anywhere, so the two amounts classify positionally:
	// first is the transaction (booked as debit), last is the balance.
	text := "15/01/2024 UPI PAYMENT TO\nJOHN DOE REF123456789 500.00 4500.00\n"
	statement := ParseText(text)
	require.Len(t, statement.Lines, 1)

	tx := statement.Lines[0]
	assert.Equal(t, "2024-01-15", tx.Date)
	assert.Contains(t, tx.Description, "UPI PAYMENT TO JOHN DOE")
	assert.Equal(t, "REF123456789", tx.Reference)
	assert.True(t, tx.Debit.Equal(amountFromString("500.00")))
	assert.True(t, tx.Balance.Equal(amountFromString("4500.00")))
	assert.Equal(t, "UPI/IMPS/NEFT", tx.Mode)
	assert.Equal(t, models.ConfidenceLow, tx.Confidence)
}

func TestParseText_CreditClassification(t *testing.T) {
	statement := ParseText(sampleStatement)
	require.Len(t, statement.Lines, 3)

	salary := statement.Lines[1]
	assert.Equal(t, "2025-04-02", salary.Date)
	assert.True(t, salary.Credit.Equal(amountFromString("25000.00")))
	assert.True(t, salary.Debit.IsZero())
	assert.True(t, salary.Balance.Equal(amountFromString("29500.00")))
	assert.Equal(t, models.ConfidenceHigh, salary.Confidence)

	atm := statement.Lines[2]
	assert.True(t, atm.Debit.Equal(amountFromString("2000.00")))
	assert.Equal(t, "ATM/Cash", atm.Mode)
}

func TestParseText_HeaderLinesDropped(t *testing.T) {
	statement := ParseText(sampleStatement)
	for _, line := range statement.Lines {
		assert.NotContains(t, strings.ToLower(line.Description), "narration")
		assert.NotContains(t, strings.ToLower(line.Description), "withdrawal")
	}
}

func TestParseText_Empty(t *testing.T) {
	statement := ParseText("")
	assert.Empty(t, statement.Lines)
	assert.Empty(t, statement.BankName)
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		ok         bool
		debit      string
		credit     string
		balance    string
		mode       string
		confidence models.Confidence
	}{
		{
			name: "keyword debit with balance",
			line: "01/04/2025 POS PURCHASE BIG BAZAAR 1,250.00 DR 8750.00",
			ok:   true, debit: "1250.00", credit: "0", balance: "8750.00",
			mode: "Card", confidence: models.ConfidenceHigh,
		},
		{
			name: "keyword credit single amount",
			line: "05/04/2025 IMPS RECEIVED FROM CUSTOMER 3000.00 CR",
			ok:   true, debit: "0", credit: "3000.00", balance: "0",
			mode: "UPI/IMPS/NEFT", confidence: models.ConfidenceHigh,
		},
		{
			name: "no keywords falls back to positional debit",
			line: "06/04/2025 CHEQUE PAYMENT TO VENDOR 1500.00 7250.00",
			ok:   true, debit: "1500.00", credit: "0", balance: "7250.00",
			mode: "Cheque", confidence: models.ConfidenceLow,
		},
		{
			name: "conflicting keywords resolve debit first",
			line: "08/04/2025 CREDIT CARD BILL PAID 1200.00 300.00 8000.00",
			ok:   true, debit: "1200.00", credit: "0", balance: "8000.00",
			mode: "Card", confidence: models.ConfidenceLow,
		},
		{
			name: "date but no amounts yields nothing",
			line: "07/04/2025 INTEREST STATEMENT FOLLOWS",
			ok:   false,
		},
		{
			name: "no date yields nothing",
			line: "SOME RANDOM TEXT 500.00",
			ok:   false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			line, ok := parseLine(tc.line)
			assert.Equal(t, tc.ok, ok)
			if !tc.ok {
				return
			}
			assert.True(t, line.Debit.Equal(amountFromString(tc.debit)), "debit = %s", line.Debit)
			assert.True(t, line.Credit.Equal(amountFromString(tc.credit)), "credit = %s", line.Credit)
			assert.True(t, line.Balance.Equal(amountFromString(tc.balance)), "balance = %s", line.Balance)
			assert.Equal(t, tc.mode, line.Mode)
			assert.Equal(t, tc.confidence, line.Confidence)
		})
	}
}

func TestExtractReference(t *testing.T) {
	tests := []struct {
		name     string
		rest     string
		expected string
	}{
		{"marker with colon", "NEFT UTR: AXISN12345678901 PAYMENT", "AXISN12345678901"},
		{"marker with slash", "CHQ/000451 CLEARING", "000451"},
		{"fused long token", "UPI-PAYMENT REF123456789 DONE", "REF123456789"},
		{"no reference", "ATM WITHDRAWAL CASH", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, extractReference(tc.rest, nil))
		})
	}
}
