package services

import (
	"context"

	"github.com/prodledger/production_budget_app/internal/core/domain"
	"github.com/prodledger/production_budget_app/internal/dto"
)

// InvoiceSvcFacade is the invoice side of the commitment orchestrator.
// Invoices share the purchase order workflow shape but never commit budget;
// full approval flips them to a payment-pending state instead.
type InvoiceSvcFacade interface {
	// CreateInvoice creates a draft or submits directly. When linked to a
	// purchase order it computes the over-invoiced advisory flag; an
	// over-the-limit total is surfaced, never a hard block.
	CreateInvoice(ctx context.Context, projectID string, req dto.CreateInvoiceRequest, actor domain.Identity) (*domain.Invoice, error)

	GetInvoice(ctx context.Context, projectID, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Invoice, *string, error)

	UpdateDraft(ctx context.Context, projectID, invoiceID string, req dto.UpdateInvoiceRequest, actor domain.Identity) (*domain.Invoice, error)
	DeleteDraft(ctx context.Context, projectID, invoiceID string, actor domain.Identity) error

	// Submit resolves approval steps against the current roster and moves the
	// invoice to PENDING_APPROVAL (or directly to PENDING when auto-approved).
	Submit(ctx context.Context, projectID, invoiceID string, actor domain.Identity) (*domain.Invoice, error)

	// Act applies an approve/reject action to the current step.
	Act(ctx context.Context, projectID, invoiceID string, req dto.ApprovalActionRequest, actor domain.Identity) (*domain.Invoice, error)

	// Cancel cancels a not-yet-paid invoice, restoring the linked purchase
	// order's invoiced amount. Reason is mandatory.
	Cancel(ctx context.Context, projectID, invoiceID string, req dto.CancelRequest, actor domain.Identity) (*domain.Invoice, error)

	// MarkPaid records payment of an approved invoice: subaccount actuals are
	// increased by each item's base amount and, for purchase-order-linked
	// invoices, the matching commitment is released in the same transaction.
	MarkPaid(ctx context.Context, projectID, invoiceID string, req dto.MarkInvoicePaidRequest, actor domain.Identity) (*domain.Invoice, error)
}
