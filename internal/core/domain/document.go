package domain

import "github.com/shopspring/decimal"

// DocumentType distinguishes the two committable document kinds sharing the
// approval workflow shape.
type DocumentType string

const (
	DocTypePurchaseOrder DocumentType = "PURCHASE_ORDER"
	DocTypeInvoice       DocumentType = "INVOICE"
)

// DocumentItem is one line of a purchase order or invoice. Amounts are derived
// from quantity, unit price and tax rates; the taxable base (quantity x unit
// price) is the figure that drives budget commitments, never the VAT- or
// IRPF-adjusted total.
type DocumentItem struct {
	ItemID       string          `json:"itemID"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	VATRate      decimal.Decimal `json:"vatRate"`  // percentage, e.g. 21
	IRPFRate     decimal.Decimal `json:"irpfRate"` // percentage withholding, e.g. 15
	BaseAmount   decimal.Decimal `json:"baseAmount"`
	VATAmount    decimal.Decimal `json:"vatAmount"`
	IRPFAmount   decimal.Decimal `json:"irpfAmount"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	SubaccountID string          `json:"subaccountID"` // target budget subaccount
}

var oneHundred = decimal.NewFromInt(100)

// ComputeAmounts derives base, VAT, IRPF and total from the raw inputs.
// total = base + VAT - IRPF (IRPF is withheld, not paid to the supplier).
func (i *DocumentItem) ComputeAmounts() {
	i.BaseAmount = i.Quantity.Mul(i.UnitPrice)
	i.VATAmount = i.BaseAmount.Mul(i.VATRate).Div(oneHundred)
	i.IRPFAmount = i.BaseAmount.Mul(i.IRPFRate).Div(oneHundred)
	i.TotalAmount = i.BaseAmount.Add(i.VATAmount).Sub(i.IRPFAmount)
}

// DocumentTotals aggregates item amounts for a whole document.
type DocumentTotals struct {
	Base  decimal.Decimal `json:"base"`
	VAT   decimal.Decimal `json:"vat"`
	IRPF  decimal.Decimal `json:"irpf"`
	Total decimal.Decimal `json:"total"`
}

// SumItems computes document totals over a set of items (amounts must already
// be derived via ComputeAmounts).
func SumItems(items []DocumentItem) DocumentTotals {
	t := DocumentTotals{
		Base:  decimal.Zero,
		VAT:   decimal.Zero,
		IRPF:  decimal.Zero,
		Total: decimal.Zero,
	}
	for _, it := range items {
		t.Base = t.Base.Add(it.BaseAmount)
		t.VAT = t.VAT.Add(it.VATAmount)
		t.IRPF = t.IRPF.Add(it.IRPFAmount)
		t.Total = t.Total.Add(it.TotalAmount)
	}
	return t
}

// BaseAmountsBySubaccount groups item base amounts by target subaccount.
// This is the shape the ledger commit/release operations consume.
func BaseAmountsBySubaccount(items []DocumentItem) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(items))
	for _, it := range items {
		if cur, ok := out[it.SubaccountID]; ok {
			out[it.SubaccountID] = cur.Add(it.BaseAmount)
		} else {
			out[it.SubaccountID] = it.BaseAmount
		}
	}
	return out
}
