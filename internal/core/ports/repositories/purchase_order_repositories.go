package repositories

import (
	"context"

	"github.com/prodledger/production_budget_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PurchaseOrderReader defines read operations for purchase order data.
type PurchaseOrderReader interface {
	// FindPurchaseOrderByID retrieves a purchase order with its items and approval steps.
	FindPurchaseOrderByID(ctx context.Context, projectID, purchaseOrderID string) (*domain.PurchaseOrder, error)

	// ListPurchaseOrdersByProject retrieves a paginated list of purchase orders
	// for a project using token-based pagination.
	ListPurchaseOrdersByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.PurchaseOrder, *string, error)
}

// PurchaseOrderWriter defines write operations for purchase order data. Every
// write that follows a read takes the expected revision and must fail with
// apperrors.ErrConflict when the stored revision differs, so concurrent
// approvals on the same step can never silently lose an actor's entry.
type PurchaseOrderWriter interface {
	// CreatePurchaseOrder persists a new purchase order with its items. When
	// commitments is non-empty (auto-approved submission) the same transaction
	// applies the committed increments to the target subaccounts.
	CreatePurchaseOrder(ctx context.Context, po domain.PurchaseOrder, commitments map[string]decimal.Decimal) error

	// UpdatePurchaseOrder persists header, items and approval state under an
	// optimistic revision check. No ledger effect.
	UpdatePurchaseOrder(ctx context.Context, po domain.PurchaseOrder, expectedRevision int64) error

	// FinalizeApproval flips the order to APPROVED, applies the committed
	// increments per subaccount and releases any prior-version commitments,
	// all within one transaction.
	FinalizeApproval(ctx context.Context, po domain.PurchaseOrder, expectedRevision int64, commitments map[string]decimal.Decimal, releases map[string]decimal.Decimal) error

	// CancelWithRelease flips the order to CANCELLED and releases the given
	// amounts from the target subaccounts (floored at zero), atomically.
	CancelWithRelease(ctx context.Context, po domain.PurchaseOrder, expectedRevision int64, releases map[string]decimal.Decimal) error

	// DeletePurchaseOrder removes a draft order and its items.
	DeletePurchaseOrder(ctx context.Context, projectID, purchaseOrderID string, expectedRevision int64) error
}

// PurchaseOrderRepositoryFacade combines all purchase order repository interfaces.
type PurchaseOrderRepositoryFacade interface {
	PurchaseOrderReader
	PurchaseOrderWriter
}
