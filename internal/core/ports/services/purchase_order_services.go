package services

import (
	"context"

	"github.com/prodledger/production_budget_app/internal/core/domain"
	"github.com/prodledger/production_budget_app/internal/dto"
)

// PurchaseOrderSvcFacade is the purchase order side of the commitment
// orchestrator: every mutating use-case is a single logical transaction
// against the persisted document plus zero or more ledger calls.
type PurchaseOrderSvcFacade interface {
	// CreatePurchaseOrder creates a draft, or submits directly when requested.
	CreatePurchaseOrder(ctx context.Context, projectID string, req dto.CreatePurchaseOrderRequest, actor domain.Identity) (*domain.PurchaseOrder, error)

	GetPurchaseOrder(ctx context.Context, projectID, purchaseOrderID string) (*domain.PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.PurchaseOrder, *string, error)

	// UpdateDraft edits a draft order's header and items.
	UpdateDraft(ctx context.Context, projectID, purchaseOrderID string, req dto.UpdatePurchaseOrderRequest, actor domain.Identity) (*domain.PurchaseOrder, error)

	// DeleteDraft removes a draft order that never entered the workflow.
	DeleteDraft(ctx context.Context, projectID, purchaseOrderID string, actor domain.Identity) error

	// Submit resolves the approval steps against the current roster and moves
	// the order to PENDING, or straight to APPROVED (committing budget) when
	// the workflow auto-approves. Rejected orders are resubmitted as a new version.
	Submit(ctx context.Context, projectID, purchaseOrderID string, actor domain.Identity) (*domain.PurchaseOrder, error)

	// Act applies an approve/reject action to the current step. Full approval
	// commits each item's base amount to its target subaccount atomically.
	Act(ctx context.Context, projectID, purchaseOrderID string, req dto.ApprovalActionRequest, actor domain.Identity) (*domain.PurchaseOrder, error)

	// Cancel cancels a draft order, or an approved order with no invoices,
	// releasing its commitments. Reason is mandatory.
	Cancel(ctx context.Context, projectID, purchaseOrderID string, req dto.CancelRequest, actor domain.Identity) (*domain.PurchaseOrder, error)

	// Modify produces a new draft version of an approved order, clearing all
	// approval state. The prior commitment stays on the books.
	Modify(ctx context.Context, projectID, purchaseOrderID string, req dto.ModifyPurchaseOrderRequest, actor domain.Identity) (*domain.PurchaseOrder, error)

	// Close closes an approved order without any ledger effect. An uninvoiced
	// remainder must be acknowledged explicitly by the caller.
	Close(ctx context.Context, projectID, purchaseOrderID string, req dto.ClosePurchaseOrderRequest, actor domain.Identity) (*domain.PurchaseOrder, error)
}
