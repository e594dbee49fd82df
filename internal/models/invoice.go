package models

import "github.com/shopspring/decimal"

// Invoice is the db shape of an invoice header.
type Invoice struct {
	InvoiceID          string               `db:"invoice_id"`
	ProjectID          string               `db:"project_id"`
	Number             string               `db:"number"`
	Supplier           string               `db:"supplier"`
	Department         string               `db:"department"`
	Description        string               `db:"description"`
	Status             string               `db:"status"`
	ApprovalStatus     string               `db:"approval_status"`
	AutoApproved       bool                 `db:"auto_approved"`
	CurrentStep        int                  `db:"current_step"`
	ApprovalSteps      []ApprovalStep       `db:"approval_steps"`
	Version            int                  `db:"version"`
	History            []ModificationRecord `db:"modification_history"`
	PurchaseOrderID    *string              `db:"purchase_order_id"`
	IsOverInvoiced     bool                 `db:"is_over_invoiced"`
	TotalBase          decimal.Decimal      `db:"total_base"`
	TotalVAT           decimal.Decimal      `db:"total_vat"`
	TotalIRPF          decimal.Decimal      `db:"total_irpf"`
	TotalAmount        decimal.Decimal      `db:"total_amount"`
	CancellationReason string               `db:"cancellation_reason"`
	Revision           int64                `db:"revision"`
	AuditFields
}
