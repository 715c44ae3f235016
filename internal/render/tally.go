// Package render produces the downstream export formats: Tally import XML,
// GSTR-1 return JSON and the flat CSV/JSON summaries.
package render

import (
	"encoding/xml"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Finempire/Ecommerce-GST-App/internal/dateutils"
	"github.com/Finempire/Ecommerce-GST-App/internal/logging"
	"github.com/Finempire/Ecommerce-GST-App/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger for the render package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Ledger names the Tally import books sales under.
const (
	salesLedger       = "Sales - E-commerce"
	igstLedger        = "Output IGST"
	cgstLedger        = "Output CGST"
	sgstLedger        = "Output SGST"
	defaultPartyName  = "E-commerce Sales"
	defaultTallyOwner = "Your Company Name"
)

type tallyEnvelope struct {
	XMLName xml.Name    `xml:"ENVELOPE"`
	Header  tallyHeader `xml:"HEADER"`
	Body    tallyBody   `xml:"BODY"`
}

type tallyHeader struct {
	TallyRequest string `xml:"TALLYREQUEST"`
}

type tallyBody struct {
	ImportData tallyImportData `xml:"IMPORTDATA"`
}

type tallyImportData struct {
	RequestDesc tallyRequestDesc `xml:"REQUESTDESC"`
	RequestData tallyRequestData `xml:"REQUESTDATA"`
}

type tallyRequestDesc struct {
	ReportName      string                `xml:"REPORTNAME"`
	StaticVariables *tallyStaticVariables `xml:"STATICVARIABLES,omitempty"`
}

type tallyStaticVariables struct {
	CurrentCompany string `xml:"SVCURRENTCOMPANY"`
}

type tallyRequestData struct {
	Messages []tallyMessage `xml:"TALLYMESSAGE"`
}

type tallyMessage struct {
	Voucher *tallyVoucher `xml:"VOUCHER,omitempty"`
	Ledger  *tallyLedger  `xml:"LEDGER,omitempty"`
}

type tallyVoucher struct {
	VchType             string             `xml:"VCHTYPE,attr"`
	Action              string             `xml:"ACTION,attr"`
	Date                string             `xml:"DATE"`
	VoucherTypeName     string             `xml:"VOUCHERTYPENAME"`
	VoucherNumber       string             `xml:"VOUCHERNUMBER"`
	Reference           string             `xml:"REFERENCE"`
	PartyLedgerName     string             `xml:"PARTYLEDGERNAME"`
	Narration           string             `xml:"NARRATION"`
	LedgerEntries       []tallyLedgerEntry `xml:"ALLLEDGERENTRIES.LIST"`
	InventoryEntry      tallyInventory     `xml:"ALLINVENTORYENTRIES.LIST"`
	GSTRegistrationType string             `xml:"GSTREGISTRATIONTYPE"`
	PlaceOfSupply       string             `xml:"PLACEOFSUPPLY"`
	HSNSummary          tallyHSNSummary    `xml:"HSNSUMMARIES.LIST"`
}

type tallyLedgerEntry struct {
	LedgerName       string `xml:"LEDGERNAME"`
	IsDeemedPositive string `xml:"ISDEEMEDPOSITIVE"`
	Amount           string `xml:"AMOUNT"`
}

type tallyInventory struct {
	StockItemName    string `xml:"STOCKITEMNAME"`
	IsDeemedPositive string `xml:"ISDEEMEDPOSITIVE"`
	Rate             string `xml:"RATE"`
	Amount           string `xml:"AMOUNT"`
	ActualQty        string `xml:"ACTUALQTY"`
	BilledQty        string `xml:"BILLEDQTY"`
}

type tallyHSNSummary struct {
	HSNCode       string `xml:"HSNCODE"`
	TaxableAmount string `xml:"TAXABLEAMOUNT"`
	IGSTAmount    string `xml:"IGSTAMOUNT"`
	CGSTAmount    string `xml:"CGSTAMOUNT"`
	SGSTAmount    string `xml:"SGSTAMOUNT"`
}

type tallyLedger struct {
	Name                string `xml:"NAME,attr"`
	Action              string `xml:"ACTION,attr"`
	Parent              string `xml:"PARENT"`
	IsBillWiseOn        string `xml:"ISBILLWISEON"`
	AffectsStock        string `xml:"AFFECTSSTOCK"`
	OpeningBalance      string `xml:"OPENINGBALANCE"`
	CountryName         string `xml:"COUNTRYNAME"`
	GSTRegistrationType string `xml:"GSTREGISTRATIONTYPE"`
}

// TallyXML renders transactions as a Tally "Import Data" voucher envelope.
// One Sales voucher is emitted per transaction with party, sales and output
// tax ledger entries; zero tax legs are omitted.
func TallyXML(txs []models.Transaction, companyName string) ([]byte, error) {
	if companyName == "" {
		companyName = defaultTallyOwner
	}

	messages := make([]tallyMessage, 0, len(txs))
	for i, tx := range txs {
		messages = append(messages, tallyMessage{Voucher: buildVoucher(tx, i+1)})
	}

	envelope := tallyEnvelope{
		Header: tallyHeader{TallyRequest: "Import Data"},
		Body: tallyBody{
			ImportData: tallyImportData{
				RequestDesc: tallyRequestDesc{
					ReportName:      "Vouchers",
					StaticVariables: &tallyStaticVariables{CurrentCompany: companyName},
				},
				RequestData: tallyRequestData{Messages: messages},
			},
		},
	}

	log.Info("Rendered Tally vouchers",
		logging.Field{Key: logging.FieldCount, Value: len(messages)})
	return marshalEnvelope(envelope)
}

func buildVoucher(tx models.Transaction, sequence int) *tallyVoucher {
	occurredAt := tx.OccurredAt()

	partyLedger := defaultPartyName
	narrationSource := "E-commerce"
	if tx.Platform != "" {
		partyLedger = tx.Platform + " Sales"
		narrationSource = tx.Platform
	}

	entries := []tallyLedgerEntry{
		{LedgerName: partyLedger, IsDeemedPositive: "Yes", Amount: tx.GrossAmount.Neg().StringFixed(2)},
		{LedgerName: salesLedger, IsDeemedPositive: "No", Amount: tx.TaxableValue.StringFixed(2)},
	}
	if tx.IGST.IsPositive() {
		entries = append(entries, tallyLedgerEntry{LedgerName: igstLedger, IsDeemedPositive: "No", Amount: tx.IGST.StringFixed(2)})
	}
	if tx.CGST.IsPositive() {
		entries = append(entries, tallyLedgerEntry{LedgerName: cgstLedger, IsDeemedPositive: "No", Amount: tx.CGST.StringFixed(2)})
	}
	if tx.SGST.IsPositive() {
		entries = append(entries, tallyLedgerEntry{LedgerName: sgstLedger, IsDeemedPositive: "No", Amount: tx.SGST.StringFixed(2)})
	}

	quantity := tx.Quantity
	if quantity < 1 {
		quantity = 1
	}
	stockItem := tx.ProductName
	if stockItem == "" {
		stockItem = tx.Description
	}

	return &tallyVoucher{
		VchType:         "Sales",
		Action:          "Create",
		Date:            occurredAt.Format(dateutils.LayoutTally),
		VoucherTypeName: "Sales",
		VoucherNumber:   fmt.Sprintf("ECOM/%d/%05d", occurredAt.Year(), sequence),
		Reference:       tx.OrderReference,
		PartyLedgerName: partyLedger,
		Narration:       fmt.Sprintf("%s Sale - Order: %s - %s", narrationSource, tx.OrderReference, tx.Description),
		LedgerEntries:   entries,
		InventoryEntry: tallyInventory{
			StockItemName:    stockItem,
			IsDeemedPositive: "No",
			Rate:             fmt.Sprintf("%s/Nos", tx.GrossAmount.DivRound(decimal.NewFromInt(int64(quantity)), 2).StringFixed(2)),
			Amount:           tx.TaxableValue.StringFixed(2),
			ActualQty:        fmt.Sprintf("%d Nos", quantity),
			BilledQty:        fmt.Sprintf("%d Nos", quantity),
		},
		GSTRegistrationType: "Regular",
		PlaceOfSupply:       tx.StateCode,
		HSNSummary: tallyHSNSummary{
			HSNCode:       tx.HSNCode,
			TaxableAmount: tx.TaxableValue.StringFixed(2),
			IGSTAmount:    tx.IGST.StringFixed(2),
			CGSTAmount:    tx.CGST.StringFixed(2),
			SGSTAmount:    tx.SGST.StringFixed(2),
		},
	}
}

// LedgerMastersXML renders "All Masters" ledger definitions so a fresh
// Tally company accepts the voucher import. One Sundry Debtors ledger is
// created per marketplace.
func LedgerMastersXML(platforms []string) ([]byte, error) {
	messages := make([]tallyMessage, 0, len(platforms))
	for _, platform := range platforms {
		messages = append(messages, tallyMessage{Ledger: &tallyLedger{
			Name:                platform + " Sales",
			Action:              "Create",
			Parent:              "Sundry Debtors",
			IsBillWiseOn:        "Yes",
			AffectsStock:        "No",
			OpeningBalance:      "0",
			CountryName:         "India",
			GSTRegistrationType: "Consumer",
		}})
	}

	envelope := tallyEnvelope{
		Header: tallyHeader{TallyRequest: "Import Data"},
		Body: tallyBody{
			ImportData: tallyImportData{
				RequestDesc: tallyRequestDesc{ReportName: "All Masters"},
				RequestData: tallyRequestData{Messages: messages},
			},
		},
	}
	return marshalEnvelope(envelope)
}

func marshalEnvelope(envelope tallyEnvelope) ([]byte, error) {
	body, err := xml.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error marshaling Tally envelope: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
