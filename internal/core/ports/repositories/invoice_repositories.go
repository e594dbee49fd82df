package repositories

import (
	"context"

	"github.com/prodledger/production_budget_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceReader defines read operations for invoice data.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its items and approval steps.
	FindInvoiceByID(ctx context.Context, projectID, invoiceID string) (*domain.Invoice, error)

	// ListInvoicesByProject retrieves a paginated list of invoices for a project.
	ListInvoicesByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Invoice, *string, error)

	// SumActiveInvoiceTotalsForPurchaseOrder sums the totals of every
	// non-cancelled invoice linked to the purchase order, excluding the given
	// invoice id so an invoice being created or edited is never counted against
	// its own stored row.
	SumActiveInvoiceTotalsForPurchaseOrder(ctx context.Context, purchaseOrderID, excludeInvoiceID string) (decimal.Decimal, error)
}

// InvoiceWriter defines write operations for invoice data. When an invoice is
// linked to a purchase order, creation and cancellation adjust the order's
// invoiced/remaining amounts within the same transaction.
type InvoiceWriter interface {
	// CreateInvoice persists a new invoice with its items, adjusting the linked
	// purchase order's invoiced amount if a link is present.
	CreateInvoice(ctx context.Context, inv domain.Invoice) error

	// UpdateInvoice persists header, items and approval state under an
	// optimistic revision check. purchaseOrderDelta is the change in the
	// invoice's total since it was loaded; when the invoice is linked and the
	// delta is non-zero (a draft edit changed the total) the linked order's
	// invoiced/remaining amounts move by the delta in the same transaction.
	UpdateInvoice(ctx context.Context, inv domain.Invoice, expectedRevision int64, purchaseOrderDelta decimal.Decimal) error

	// CancelInvoice flips the invoice to CANCELLED and restores the linked
	// purchase order's invoiced amount, atomically.
	CancelInvoice(ctx context.Context, inv domain.Invoice, expectedRevision int64) error

	// MarkPaid flips the invoice to PAID, adds the given actual amounts to the
	// target subaccounts and releases the matching commitments from a linked
	// purchase order's subaccounts, all within one transaction.
	MarkPaid(ctx context.Context, inv domain.Invoice, expectedRevision int64, actuals map[string]decimal.Decimal, releases map[string]decimal.Decimal) error

	// DeleteInvoice removes a draft invoice and its items, restoring a linked
	// purchase order's invoiced amount in the same transaction.
	DeleteInvoice(ctx context.Context, inv domain.Invoice, expectedRevision int64) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
