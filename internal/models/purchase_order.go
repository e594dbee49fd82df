package models

import "github.com/shopspring/decimal"

// PurchaseOrder is the db shape of a purchase order header. Approval steps,
// modification history and prior commitments are JSONB columns; items live in
// their own table.
type PurchaseOrder struct {
	PurchaseOrderID    string                     `db:"purchase_order_id"`
	ProjectID          string                     `db:"project_id"`
	Number             string                     `db:"number"`
	Supplier           string                     `db:"supplier"`
	Department         string                     `db:"department"`
	Description        string                     `db:"description"`
	Status             string                     `db:"status"`
	AutoApproved       bool                       `db:"auto_approved"`
	CurrentStep        int                        `db:"current_step"`
	ApprovalSteps      []ApprovalStep             `db:"approval_steps"`
	Version            int                        `db:"version"`
	History            []ModificationRecord       `db:"modification_history"`
	PriorCommitments   map[string]decimal.Decimal `db:"prior_commitments"`
	TotalBase          decimal.Decimal            `db:"total_base"`
	TotalVAT           decimal.Decimal            `db:"total_vat"`
	TotalIRPF          decimal.Decimal            `db:"total_irpf"`
	TotalAmount        decimal.Decimal            `db:"total_amount"`
	CommittedAmount    decimal.Decimal            `db:"committed_amount"`
	InvoicedAmount     decimal.Decimal            `db:"invoiced_amount"`
	RemainingAmount    decimal.Decimal            `db:"remaining_amount"`
	CancellationReason string                     `db:"cancellation_reason"`
	Revision           int64                      `db:"revision"`
	AuditFields
}
