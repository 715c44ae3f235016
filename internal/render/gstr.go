package render

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Finempire/Ecommerce-GST-App/internal/gst"
	"github.com/Finempire/Ecommerce-GST-App/internal/logging"
	"github.com/Finempire/Ecommerce-GST-App/internal/models"
)

// GSTR1Data is the GSTR-1 return payload in the GSTN schema field names.
type GSTR1Data struct {
	GSTIN         string       `json:"gstin"`
	Period        string       `json:"fp"`
	GrossTurnover json.Number  `json:"gt"`
	CurrentGT     json.Number  `json:"cur_gt"`
	B2B           []B2BInvoice `json:"b2b"`
	B2CS          []B2CSummary `json:"b2cs"`
	HSN           HSNSummary   `json:"hsn"`
	Docs          DocSummary   `json:"docs"`
}

// B2BInvoice groups invoices under a registered recipient's GSTIN.
type B2BInvoice struct {
	CTIN     string       `json:"ctin"`
	Invoices []B2BInvLine `json:"inv"`
}

type B2BInvLine struct {
	Number        string      `json:"inum"`
	Date          string      `json:"idt"`
	Value         json.Number `json:"val"`
	PlaceOfSupply string      `json:"pos"`
	ReverseCharge string      `json:"rchrg"`
	InvoiceType   string      `json:"inv_typ"`
	Items         []B2BItem   `json:"itms"`
}

type B2BItem struct {
	Number int        `json:"num"`
	Detail B2BItemDet `json:"itm_det"`
}

type B2BItemDet struct {
	Rate    json.Number `json:"rt"`
	Taxable json.Number `json:"txval"`
	IGST    json.Number `json:"iamt"`
	CGST    json.Number `json:"camt"`
	SGST    json.Number `json:"samt"`
	Cess    json.Number `json:"csamt"`
}

// B2CSummary is one state-and-rate bucket of unregistered consumer sales.
type B2CSummary struct {
	PlaceOfSupply string      `json:"pos"`
	SupplyType    string      `json:"sply_ty"`
	Rate          json.Number `json:"rt"`
	Type          string      `json:"typ"`
	Taxable       json.Number `json:"txval"`
	IGST          json.Number `json:"iamt"`
	CGST          json.Number `json:"camt"`
	SGST          json.Number `json:"samt"`
	Cess          json.Number `json:"csamt"`
}

// HSNSummary carries the HSN-wise aggregation table.
type HSNSummary struct {
	Data []HSNItem `json:"data"`
}

type HSNItem struct {
	Number      int         `json:"num"`
	HSNCode     string      `json:"hsn_sc"`
	Description string      `json:"desc"`
	UQC         string      `json:"uqc"`
	Quantity    int         `json:"qty"`
	Value       json.Number `json:"val"`
	Taxable     json.Number `json:"txval"`
	IGST        json.Number `json:"iamt"`
	CGST        json.Number `json:"camt"`
	SGST        json.Number `json:"samt"`
	Cess        json.Number `json:"csamt"`
}

// DocSummary lists the issued document series for the period.
type DocSummary struct {
	Details []DocDetail `json:"doc_det"`
}

type DocDetail struct {
	Number int        `json:"doc_num"`
	Type   string     `json:"doc_typ"`
	Docs   []DocRange `json:"docs"`
}

type DocRange struct {
	Number    int    `json:"num"`
	From      string `json:"from"`
	To        string `json:"to"`
	Total     int    `json:"totnum"`
	Cancelled int    `json:"cancel"`
	NetIssued int    `json:"net_issue"`
}

// Table14Entry reports one sale made through an e-commerce operator with
// the operator's TCS identification.
type Table14Entry struct {
	OperatorGSTIN string      `json:"etin"`
	DiffPercent   json.Number `json:"diff_percent"`
	Invoice       Table14Inv  `json:"inv"`
}

type Table14Inv struct {
	Number  string      `json:"inum"`
	Date    string      `json:"idt"`
	Value   json.Number `json:"val"`
	Taxable json.Number `json:"txval"`
	IGST    json.Number `json:"iamt"`
	CGST    json.Number `json:"camt"`
	SGST    json.Number `json:"samt"`
}

// Table14 is the e-commerce supplies annexure.
type Table14 struct {
	Ecom []Table14Entry `json:"ecom"`
}

func amount(d decimal.Decimal) json.Number {
	return json.Number(d.Round(2).StringFixed(2))
}

func rateNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// GSTR1 renders the monthly GSTR-1 JSON for the given transactions. B2C
// sales are bucketed by place of supply and rate, registered buyers with a
// GSTIN land in the B2B section, and the HSN and document tables cover the
// whole set. The filing period comes from now.
func GSTR1(txs []models.Transaction, gstin string, now time.Time) ([]byte, error) {
	if gstin == "" {
		gstin = "YOUR_GSTIN_HERE"
	}

	gross := decimal.Zero
	for _, tx := range txs {
		gross = gross.Add(tx.GrossAmount)
	}

	data := GSTR1Data{
		GSTIN:         gstin,
		Period:        gst.FinancialPeriod(now),
		GrossTurnover: amount(gross),
		CurrentGT:     amount(gross),
		B2B:           buildB2B(txs),
		B2CS:          buildB2CS(txs),
		HSN:           buildHSNSummary(txs),
		Docs:          buildDocSummary(txs, now),
	}

	log.Info("Rendered GSTR-1",
		logging.Field{Key: "period", Value: data.Period},
		logging.Field{Key: logging.FieldCount, Value: len(txs)})
	return json.MarshalIndent(data, "", "  ")
}

// buildB2CS buckets unregistered sales by state code and rate, preserving
// first-seen order.
func buildB2CS(txs []models.Transaction) []B2CSummary {
	type bucket struct {
		pos        string
		interState bool
		rate       decimal.Decimal
		taxable    decimal.Decimal
		igst       decimal.Decimal
		cgst       decimal.Decimal
		sgst       decimal.Decimal
		cess       decimal.Decimal
	}

	index := make(map[string]int)
	var buckets []*bucket

	for _, tx := range txs {
		if tx.CustomerTaxID != "" {
			continue
		}
		pos := tx.StateCode
		if pos == "" {
			pos = "27"
		}
		key := pos + "_" + tx.GSTRate.String()

		i, seen := index[key]
		if !seen {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, &bucket{
				pos:        pos,
				interState: tx.IsInterState(),
				rate:       tx.GSTRate,
			})
		}
		buckets[i].taxable = buckets[i].taxable.Add(tx.TaxableValue)
		buckets[i].igst = buckets[i].igst.Add(tx.IGST)
		buckets[i].cgst = buckets[i].cgst.Add(tx.CGST)
		buckets[i].sgst = buckets[i].sgst.Add(tx.SGST)
		buckets[i].cess = buckets[i].cess.Add(tx.Cess)
	}

	summaries := make([]B2CSummary, 0, len(buckets))
	for _, b := range buckets {
		supplyType := "INTRA"
		if b.interState {
			supplyType = "INTER"
		}
		summaries = append(summaries, B2CSummary{
			PlaceOfSupply: b.pos,
			SupplyType:    supplyType,
			Rate:          rateNumber(b.rate),
			Type:          "OE",
			Taxable:       amount(b.taxable),
			IGST:          amount(b.igst),
			CGST:          amount(b.cgst),
			SGST:          amount(b.sgst),
			Cess:          amount(b.cess),
		})
	}
	return summaries
}

// buildB2B groups transactions carrying a customer GSTIN into per-recipient
// invoice lists.
func buildB2B(txs []models.Transaction) []B2BInvoice {
	index := make(map[string]int)
	invoices := make([]B2BInvoice, 0)

	for _, tx := range txs {
		if tx.CustomerTaxID == "" {
			continue
		}

		i, seen := index[tx.CustomerTaxID]
		if !seen {
			i = len(invoices)
			index[tx.CustomerTaxID] = i
			invoices = append(invoices, B2BInvoice{CTIN: tx.CustomerTaxID})
		}

		number := tx.InvoiceNumber
		if number == "" {
			number = tx.OrderReference
		}
		invoices[i].Invoices = append(invoices[i].Invoices, B2BInvLine{
			Number:        number,
			Date:          formatGSTRDate(tx.OccurredAt()),
			Value:         amount(tx.GrossAmount),
			PlaceOfSupply: tx.StateCode,
			ReverseCharge: "N",
			InvoiceType:   "R",
			Items: []B2BItem{{
				Number: 1,
				Detail: B2BItemDet{
					Rate:    rateNumber(tx.GSTRate),
					Taxable: amount(tx.TaxableValue),
					IGST:    amount(tx.IGST),
					CGST:    amount(tx.CGST),
					SGST:    amount(tx.SGST),
					Cess:    amount(tx.Cess),
				},
			}},
		})
	}
	return invoices
}

// buildHSNSummary aggregates quantity, value and taxes per HSN code in
// first-seen order.
func buildHSNSummary(txs []models.Transaction) HSNSummary {
	type bucket struct {
		hsn     string
		desc    string
		qty     int
		value   decimal.Decimal
		taxable decimal.Decimal
		igst    decimal.Decimal
		cgst    decimal.Decimal
		sgst    decimal.Decimal
		cess    decimal.Decimal
	}

	index := make(map[string]int)
	var buckets []*bucket

	for _, tx := range txs {
		hsn := tx.HSNCode
		if hsn == "" {
			hsn = "UNKNOWN"
		}

		i, seen := index[hsn]
		if !seen {
			i = len(buckets)
			index[hsn] = i
			desc := tx.Description
			if desc == "" {
				desc = tx.ProductName
			}
			if len(desc) > 30 {
				desc = desc[:30]
			}
			buckets = append(buckets, &bucket{hsn: hsn, desc: desc})
		}
		buckets[i].qty += tx.Quantity
		buckets[i].value = buckets[i].value.Add(tx.GrossAmount)
		buckets[i].taxable = buckets[i].taxable.Add(tx.TaxableValue)
		buckets[i].igst = buckets[i].igst.Add(tx.IGST)
		buckets[i].cgst = buckets[i].cgst.Add(tx.CGST)
		buckets[i].sgst = buckets[i].sgst.Add(tx.SGST)
		buckets[i].cess = buckets[i].cess.Add(tx.Cess)
	}

	items := make([]HSNItem, 0, len(buckets))
	for i, b := range buckets {
		items = append(items, HSNItem{
			Number:      i + 1,
			HSNCode:     b.hsn,
			Description: b.desc,
			UQC:         "NOS-NUMBERS",
			Quantity:    b.qty,
			Value:       amount(b.value),
			Taxable:     amount(b.taxable),
			IGST:        amount(b.igst),
			CGST:        amount(b.cgst),
			SGST:        amount(b.sgst),
			Cess:        amount(b.cess),
		})
	}
	return HSNSummary{Data: items}
}

// buildDocSummary reports the outward supply invoice series as one
// contiguous range matching the Tally voucher numbering.
func buildDocSummary(txs []models.Transaction, now time.Time) DocSummary {
	year := now.Year()
	if len(txs) > 0 {
		year = txs[0].OccurredAt().Year()
	}

	return DocSummary{
		Details: []DocDetail{{
			Number: 1,
			Type:   "Invoices for outward supply",
			Docs: []DocRange{{
				Number:    1,
				From:      fmt.Sprintf("ECOM/%d/00001", year),
				To:        fmt.Sprintf("ECOM/%d/%05d", year, len(txs)),
				Total:     len(txs),
				Cancelled: 0,
				NetIssued: len(txs),
			}},
		}},
	}
}

// GSTRTable14 renders the e-commerce operator annexure. Every sale is
// reported against the operator's GSTIN with the 0.1 percent TCS marker.
func GSTRTable14(txs []models.Transaction, operatorGSTIN string) ([]byte, error) {
	entries := make([]Table14Entry, 0, len(txs))
	for _, tx := range txs {
		entries = append(entries, Table14Entry{
			OperatorGSTIN: operatorGSTIN,
			DiffPercent:   json.Number("0.1"),
			Invoice: Table14Inv{
				Number:  tx.OrderReference,
				Date:    formatGSTRDate(tx.OccurredAt()),
				Value:   amount(tx.GrossAmount),
				Taxable: amount(tx.TaxableValue),
				IGST:    amount(tx.IGST),
				CGST:    amount(tx.CGST),
				SGST:    amount(tx.SGST),
			},
		})
	}
	return json.MarshalIndent(Table14{Ecom: entries}, "", "  ")
}

func formatGSTRDate(t time.Time) string {
	return t.Format("02-01-2006")
}
