package domain

import "github.com/shopspring/decimal"

// PurchaseOrderStatus is the lifecycle state of a purchase order.
type PurchaseOrderStatus string

const (
	POStatusDraft     PurchaseOrderStatus = "DRAFT"
	POStatusPending   PurchaseOrderStatus = "PENDING"
	POStatusApproved  PurchaseOrderStatus = "APPROVED"
	POStatusRejected  PurchaseOrderStatus = "REJECTED"
	POStatusClosed    PurchaseOrderStatus = "CLOSED"
	POStatusCancelled PurchaseOrderStatus = "CANCELLED"
)

// PurchaseOrder is a purchase commitment gated behind the approval workflow.
// Version counts document revisions (modification after approval); Revision is
// the optimistic-concurrency counter bumped on every persisted write.
type PurchaseOrder struct {
	PurchaseOrderID string               `json:"purchaseOrderID"`
	ProjectID       string               `json:"projectID"`
	Number          string               `json:"number"`
	Supplier        string               `json:"supplier"`
	Department      string               `json:"department"`
	Description     string               `json:"description"`
	Status          PurchaseOrderStatus  `json:"status"`
	Items           []DocumentItem       `json:"items"`
	ApprovalSteps   []ApprovalStep       `json:"approvalSteps"`
	CurrentStep     int                  `json:"currentApprovalStep"`
	AutoApproved    bool                 `json:"autoApproved"`
	Version         int                  `json:"version"`
	History         []ModificationRecord `json:"modificationHistory"`

	TotalBase   decimal.Decimal `json:"totalBase"`
	TotalVAT    decimal.Decimal `json:"totalVAT"`
	TotalIRPF   decimal.Decimal `json:"totalIRPF"`
	TotalAmount decimal.Decimal `json:"totalAmount"`

	CommittedAmount decimal.Decimal `json:"committedAmount"`
	InvoicedAmount  decimal.Decimal `json:"invoicedAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`

	// PriorCommitments is the per-subaccount breakdown of the commitment made
	// by the previously approved version. Set when an approved order is
	// modified back to draft; released when the new version is approved or the
	// order is cancelled, then cleared. Empty for first-version orders.
	PriorCommitments map[string]decimal.Decimal `json:"priorCommitments,omitempty"`

	CancellationReason string `json:"cancellationReason,omitempty"`

	Revision int64 `json:"-"`
	AuditFields
}

// RecomputeTotals refreshes the aggregate amounts and the invoiced remainder.
func (po *PurchaseOrder) RecomputeTotals() {
	t := SumItems(po.Items)
	po.TotalBase = t.Base
	po.TotalVAT = t.VAT
	po.TotalIRPF = t.IRPF
	po.TotalAmount = t.Total
	po.RemainingAmount = po.TotalAmount.Sub(po.InvoicedAmount)
}
