package domain

import "github.com/shopspring/decimal"

// InvoiceStatus is the lifecycle state of an invoice. The workflow portion is
// identical to purchase orders; the post-approval phase tracks payment instead
// of budget commitment (invoices never commit budget).
type InvoiceStatus string

const (
	InvoiceStatusDraft           InvoiceStatus = "DRAFT"
	InvoiceStatusPendingApproval InvoiceStatus = "PENDING_APPROVAL"
	InvoiceStatusPending         InvoiceStatus = "PENDING" // approved, awaiting payment
	InvoiceStatusPaid            InvoiceStatus = "PAID"
	InvoiceStatusRejected        InvoiceStatus = "REJECTED"
	InvoiceStatusCancelled       InvoiceStatus = "CANCELLED"
)

// InvoiceApprovalStatus records the workflow outcome separately from the
// payment status.
type InvoiceApprovalStatus string

const (
	InvoiceApprovalPending  InvoiceApprovalStatus = "PENDING"
	InvoiceApprovalApproved InvoiceApprovalStatus = "APPROVED"
	InvoiceApprovalRejected InvoiceApprovalStatus = "REJECTED"
)

// Invoice is a supplier invoice, optionally linked to a purchase order.
type Invoice struct {
	InvoiceID       string                `json:"invoiceID"`
	ProjectID       string                `json:"projectID"`
	Number          string                `json:"number"`
	Supplier        string                `json:"supplier"`
	Department      string                `json:"department"`
	Description     string                `json:"description"`
	Status          InvoiceStatus         `json:"status"`
	ApprovalStatus  InvoiceApprovalStatus `json:"approvalStatus"`
	Items           []DocumentItem        `json:"items"`
	ApprovalSteps   []ApprovalStep        `json:"approvalSteps"`
	CurrentStep     int                   `json:"currentApprovalStep"`
	AutoApproved    bool                  `json:"autoApproved"`
	Version         int                   `json:"version"`
	History         []ModificationRecord  `json:"modificationHistory"`
	PurchaseOrderID string                `json:"purchaseOrderID,omitempty"` // optional link

	// IsOverInvoiced flags that this invoice, together with the other
	// non-cancelled invoices linked to the same purchase order, exceeds the
	// order's total. Advisory only, never a hard block.
	IsOverInvoiced bool `json:"isOverInvoiced"`

	TotalBase   decimal.Decimal `json:"totalBase"`
	TotalVAT    decimal.Decimal `json:"totalVAT"`
	TotalIRPF   decimal.Decimal `json:"totalIRPF"`
	TotalAmount decimal.Decimal `json:"totalAmount"`

	CancellationReason string `json:"cancellationReason,omitempty"`

	Revision int64 `json:"-"`
	AuditFields
}

// RecomputeTotals refreshes the aggregate amounts from the invoice items.
func (inv *Invoice) RecomputeTotals() {
	t := SumItems(inv.Items)
	inv.TotalBase = t.Base
	inv.TotalVAT = t.VAT
	inv.TotalIRPF = t.IRPF
	inv.TotalAmount = t.Total
}
