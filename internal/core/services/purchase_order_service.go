package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prodledger/production_budget_app/internal/apperrors"
	"github.com/prodledger/production_budget_app/internal/core/approval"
	"github.com/prodledger/production_budget_app/internal/core/domain"
	portsrepo "github.com/prodledger/production_budget_app/internal/core/ports/repositories"
	portssvc "github.com/prodledger/production_budget_app/internal/core/ports/services"
	"github.com/prodledger/production_budget_app/internal/dto"
	"github.com/prodledger/production_budget_app/internal/middleware"
)

var (
	ErrUninvoicedBalance = errors.New("purchase order has an uninvoiced balance; closing must be acknowledged explicitly")
	ErrOrderHasInvoices  = errors.New("purchase order has linked invoices and cannot be cancelled")
)

// purchaseOrderService is the purchase order side of the commitment
// orchestrator: it sequences approval state machine transitions with budget
// ledger operations and persists the results atomically.
type purchaseOrderService struct {
	poRepo     portsrepo.PurchaseOrderRepositoryFacade
	budgetRepo portsrepo.BudgetReader
	rosterRepo portsrepo.RosterProvider
	configRepo portsrepo.ApprovalConfigProvider
}

// NewPurchaseOrderService creates a new purchase order service.
func NewPurchaseOrderService(
	poRepo portsrepo.PurchaseOrderRepositoryFacade,
	budgetRepo portsrepo.BudgetReader,
	rosterRepo portsrepo.RosterProvider,
	configRepo portsrepo.ApprovalConfigProvider,
) portssvc.PurchaseOrderSvcFacade {
	return &purchaseOrderService{
		poRepo:     poRepo,
		budgetRepo: budgetRepo,
		rosterRepo: rosterRepo,
		configRepo: configRepo,
	}
}

var _ portssvc.PurchaseOrderSvcFacade = (*purchaseOrderService)(nil)

// buildItems validates raw item requests and derives their amounts. Every
// target subaccount must exist within the project; validation failures happen
// before any persistence.
func buildItems(ctx context.Context, budgetRepo portsrepo.BudgetReader, projectID string, reqs []dto.DocumentItemRequest) ([]domain.DocumentItem, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: document requires at least one item", apperrors.ErrValidation)
	}

	items := make([]domain.DocumentItem, 0, len(reqs))
	subaccountIDs := make([]string, 0, len(reqs))
	for i, r := range reqs {
		if r.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: item %d quantity must be positive", apperrors.ErrValidation, i+1)
		}
		if r.UnitPrice.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: item %d unit price must be positive", apperrors.ErrValidation, i+1)
		}
		if r.VATRate.IsNegative() || r.IRPFRate.IsNegative() {
			return nil, fmt.Errorf("%w: item %d tax rates must not be negative", apperrors.ErrValidation, i+1)
		}
		item := domain.DocumentItem{
			ItemID:       uuid.NewString(),
			Description:  r.Description,
			Quantity:     r.Quantity,
			UnitPrice:    r.UnitPrice,
			VATRate:      r.VATRate,
			IRPFRate:     r.IRPFRate,
			SubaccountID: r.SubaccountID,
		}
		item.ComputeAmounts()
		items = append(items, item)
		subaccountIDs = append(subaccountIDs, r.SubaccountID)
	}

	// Rejects with ErrNotFound when any target subaccount is missing.
	if _, err := budgetRepo.FindSubaccountsByIDs(ctx, projectID, subaccountIDs); err != nil {
		return nil, err
	}
	return items, nil
}

// resolveWorkflow fetches the current roster and step templates and builds the
// frozen per-document steps.
func (s *purchaseOrderService) resolveWorkflow(ctx context.Context, projectID, department string) ([]domain.ApprovalStep, bool, error) {
	roster, err := s.rosterRepo.ListProjectMembers(ctx, projectID)
	if err != nil {
		return nil, false, err
	}
	configs, err := s.configRepo.GetApprovalStepConfigs(ctx, projectID, domain.DocTypePurchaseOrder)
	if err != nil {
		return nil, false, err
	}
	steps, auto := approval.BuildSteps(configs, department, roster)
	return steps, auto, nil
}

func (s *purchaseOrderService) CreatePurchaseOrder(ctx context.Context, projectID string, req dto.CreatePurchaseOrderRequest, actor domain.Identity) (*domain.PurchaseOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	items, err := buildItems(ctx, s.budgetRepo, projectID, req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	po := domain.PurchaseOrder{
		PurchaseOrderID: uuid.NewString(),
		ProjectID:       projectID,
		Number:          req.Number,
		Supplier:        req.Supplier,
		Department:      req.Department,
		Description:     req.Description,
		Status:          domain.POStatusDraft,
		Items:           items,
		Version:         1,
		CommittedAmount: decimal.Zero,
		InvoicedAmount:  decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	po.RecomputeTotals()

	var commitments map[string]decimal.Decimal
	if req.Submit {
		steps, auto, err := s.resolveWorkflow(ctx, projectID, po.Department)
		if err != nil {
			return nil, err
		}
		if auto {
			po.Status = domain.POStatusApproved
			po.AutoApproved = true
			po.CommittedAmount = po.TotalBase
			commitments = domain.BaseAmountsBySubaccount(po.Items)
		} else {
			po.Status = domain.POStatusPending
			po.ApprovalSteps = steps
			po.CurrentStep = 0
		}
	}

	if err := s.poRepo.CreatePurchaseOrder(ctx, po, commitments); err != nil {
		return nil, err
	}

	logger.Info("Purchase order created",
		slog.String("purchase_order_id", po.PurchaseOrderID),
		slog.String("status", string(po.Status)),
		slog.Bool("auto_approved", po.AutoApproved),
	)
	return &po, nil
}

func (s *purchaseOrderService) GetPurchaseOrder(ctx context.Context, projectID, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	return s.poRepo.FindPurchaseOrderByID(ctx, projectID, purchaseOrderID)
}

func (s *purchaseOrderService) ListPurchaseOrders(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.PurchaseOrder, *string, error) {
	return s.poRepo.ListPurchaseOrdersByProject(ctx, projectID, limit, nextToken)
}

func (s *purchaseOrderService) UpdateDraft(ctx context.Context, projectID, purchaseOrderID string, req dto.UpdatePurchaseOrderRequest, actor domain.Identity) (*domain.PurchaseOrder, error) {
	po, err := s.poRepo.FindPurchaseOrderByID(ctx, projectID, purchaseOrderID)
	if err != nil {
		return nil, err
	}
	if po.Status != domain.POStatusDraft {
		return nil, fmt.Errorf("%w: only draft purchase orders can be edited", apperrors.ErrIllegalTransition)
	}

	if req.Supplier != "" {
		po.Supplier = req.Supplier
	}
	if req.Department != "" {
		po.Department = req.Department
	}
	if req.Description != "" {
		po.Description = req.Description
	}
	if len(req.Items) > 0 {
		items, err := buildItems(ctx, s.budgetRepo, projectID, req.Items)
		if err != nil {
			return nil, err
		}
		po.Items = items
	}
	po.RecomputeTotals()
	po.LastUpdatedAt = time.Now().UTC()
	po.LastUpdatedBy = actor.UserID

	if err := s.poRepo.UpdatePurchaseOrder(ctx, *po, po.Revision); err != nil {
		return nil, err
	}
	return po, nil
}

func (s *purchaseOrderService) DeleteDraft(ctx context.Context, projectID, purchaseOrderID string, actor domain.Identity) error {
	po, err := s.poRepo.FindPurchaseOrderByID(ctx, projectID, purchaseOrderID)
	if err != nil {
		return err
	}
	if po.Status != domain.POStatusDraft {
		return fmt.Errorf("%w: only draft purchase orders can be deleted", apperrors.ErrIllegalTransition)
	}
	if len(po.PriorCommitments) > 0 {
		// A modified order still carries its prior version's commitment on the
		// books; it must be cancelled, not deleted.
		return fmt.Errorf("%w: modified purchase order carries a commitment; cancel it instead", apperrors.ErrIllegalTransition)
	}
	return s.poRepo.DeletePurchaseOrder(ctx, projectID, purchaseOrderID, po.Revision)
}

// Submit moves a draft (or a rejected order, as a new version) into the
// approval workflow, resolving approvers against the current roster. When the
// workflow auto-approves, the budget commitment happens here.
func (s *purchaseOrderService) Submit(ctx context.Context, projectID, purchaseOrderID string, actor domain.Identity) (*domain.PurchaseOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	po, err := s.poRepo.FindPurchaseOrderByID(ctx, projectID, purchaseOrderID)
	if err != nil {
		return nil, err
	}

	switch po.Status {
	case domain.POStatusDraft:
		// proceed
	case domain.POStatusRejected:
		// Resubmission after rejection produces a new version.
		po.History = append(po.History, domain.ModificationRecord{
			Date:            time.Now().UTC(),
			UserID:          actor.UserID,
			Reason:          "Resubmitted after rejection",
			PreviousVersion: po.Version,
		})
		po.Version++
	default:
		return nil, fmt.Errorf("%w: cannot submit a %s purchase order", apperrors.ErrIllegalTransition, po.Status)
	}

	steps, auto, err := s.resolveWorkflow(ctx, projectID, po.Department)
	if err != nil {
		return nil, err
	}

	po.ApprovalSteps = steps
	po.CurrentStep = 0
	po.AutoApproved = auto
	po.LastUpdatedAt = time.Now().UTC()
	po.LastUpdatedBy = actor.UserID

	if auto {
		po.Status = domain.POStatusApproved
		po.CommittedAmount = po.TotalBase
		commitments := domain.BaseAmountsBySubaccount(po.Items)
		releases := po.PriorCommitments
		po.PriorCommitments = nil
		if err := s.poRepo.FinalizeApproval(ctx, *po, po.Revision, commitments, releases); err != nil {
			return nil, err
		}
		logger.Info("Purchase order auto-approved on submission", slog.String("purchase_order_id", po.PurchaseOrderID))
		return po, nil
	}

	po.Status = domain.POStatusPending
	if err := s.poRepo.UpdatePurchaseOrder(ctx, *po, po.Revision); err != nil {
		return nil, err
	}
	logger.Info("Purchase order submitted for approval",
		slog.String("purchase_order_id", po.PurchaseOrderID),
		slog.Int("steps", len(po.ApprovalSteps)),
	)
	return po, nil
}

// Act applies an approve/reject action to the current step. Full approval
// commits each item's taxable base to its target subaccount in the same
// transaction that flips the order to APPROVED, so a concurrent retry can
// never commit twice: the loser of the revision check gets ErrConflict.
func (s *purchaseOrderService) Act(ctx context.Context, projectID, purchaseOrderID string, req dto.ApprovalActionRequest, actor domain.Identity) (*domain.PurchaseOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	po, err := s.poRepo.FindPurchaseOrderByID(ctx, projectID, purchaseOrderID)
	if err != nil {
		return nil, err
	}
	if po.Status != domain.POStatusPending {
		return nil, fmt.Errorf("%w: purchase order is %s, not pending approval", apperrors.ErrIllegalTransition, po.Status)
	}

	action := approval.Action{
		UserID: actor.UserID,
		Type:   approval.ActionType(req.Action),
		Reason: req.Reason,
	}
	outcome, err := approval.Apply(po.ApprovalSteps, po.CurrentStep, action)
	if err != nil {
		return nil, err
	}

	po.LastUpdatedAt = time.Now().UTC()
	po.LastUpdatedBy = actor.UserID

	switch {
	case outcome.Rejected:
		po.Status = domain.POStatusRejected
		if err := s.poRepo.UpdatePurchaseOrder(ctx, *po, po.Revision); err != nil {
			return nil, err
		}
		logger.Info("Purchase order rejected",
			slog.String("purchase_order_id", po.PurchaseOrderID),
			slog.String("rejected_by", actor.UserID),
		)

	case outcome.Finalized:
		po.Status = domain.POStatusApproved
		po.CommittedAmount = po.TotalBase
		commitments := domain.BaseAmountsBySubaccount(po.Items)
		releases := po.PriorCommitments
		po.PriorCommitments = nil
		if err := s.poRepo.FinalizeApproval(ctx, *po, po.Revision, commitments, releases); err != nil {
			return nil, err
		}
		logger.Info("Purchase order fully approved, budget committed",
			slog.String("purchase_order_id", po.PurchaseOrderID),
			slog.String("committed_amount", po.CommittedAmount.String()),
		)

	default:
		po.CurrentStep = outcome.NextStep
		if err := s.poRepo.UpdatePurchaseOrder(ctx, *po, po.Revision); err != nil {
			return nil, err
		}
	}

	return po, nil
}

// Cancel cancels a draft or an approved, uninvoiced purchase order. For
// approved orders (and modified drafts still carrying a prior commitment) the
// original per-item base amounts are released, floored at zero.
func (s *purchaseOrderService) Cancel(ctx context.Context, projectID, purchaseOrderID string, req dto.CancelRequest, actor domain.Identity) (*domain.PurchaseOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	po, err := s.poRepo.FindPurchaseOrderByID(ctx, projectID, purchaseOrderID)
	if err != nil {
		return nil, err
	}
	if po.Status != domain.POStatusDraft && po.Status != domain.POStatusApproved {
		return nil, fmt.Errorf("%w: cannot cancel a %s purchase order", apperrors.ErrIllegalTransition, po.Status)
	}
	if !po.InvoicedAmount.IsZero() {
		return nil, ErrOrderHasInvoices
	}

	var releases map[string]decimal.Decimal
	switch {
	case po.Status == domain.POStatusApproved:
		releases = domain.BaseAmountsBySubaccount(po.Items)
		for id, amt := range po.PriorCommitments {
			if cur, ok := releases[id]; ok {
				releases[id] = cur.Add(amt)
			} else {
				releases[id] = amt
			}
		}
	case len(po.PriorCommitments) > 0:
		releases = po.PriorCommitments
	}

	po.Status = domain.POStatusCancelled
	po.CancellationReason = req.Reason
	po.CommittedAmount = decimal.Zero
	po.PriorCommitments = nil
	po.LastUpdatedAt = time.Now().UTC()
	po.LastUpdatedBy = actor.UserID

	if len(releases) > 0 {
		if err := s.poRepo.CancelWithRelease(ctx, *po, po.Revision, releases); err != nil {
			return nil, err
		}
	} else {
		if err := s.poRepo.UpdatePurchaseOrder(ctx, *po, po.Revision); err != nil {
			return nil, err
		}
	}

	logger.Info("Purchase order cancelled",
		slog.String("purchase_order_id", po.PurchaseOrderID),
		slog.String("reason", req.Reason),
	)
	return po, nil
}

// Modify produces a new draft version of an approved order. The ledger is
// untouched here: the prior commitment stays on the books (carried in
// PriorCommitments) until the new version is approved or the order cancelled.
func (s *purchaseOrderService) Modify(ctx context.Context, projectID, purchaseOrderID string, req dto.ModifyPurchaseOrderRequest, actor domain.Identity) (*domain.PurchaseOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	po, err := s.poRepo.FindPurchaseOrderByID(ctx, projectID, purchaseOrderID)
	if err != nil {
		return nil, err
	}
	if po.Status != domain.POStatusApproved {
		return nil, fmt.Errorf("%w: only approved purchase orders can be modified", apperrors.ErrIllegalTransition)
	}

	po.History = append(po.History, domain.ModificationRecord{
		Date:            time.Now().UTC(),
		UserID:          actor.UserID,
		Reason:          req.Reason,
		PreviousVersion: po.Version,
	})
	po.Version++
	po.PriorCommitments = domain.BaseAmountsBySubaccount(po.Items)

	if req.Supplier != "" {
		po.Supplier = req.Supplier
	}
	if req.Department != "" {
		po.Department = req.Department
	}
	if req.Description != "" {
		po.Description = req.Description
	}
	if len(req.Items) > 0 {
		items, err := buildItems(ctx, s.budgetRepo, projectID, req.Items)
		if err != nil {
			return nil, err
		}
		po.Items = items
	}

	// Clear all approval state; re-approval re-resolves against the roster
	// current at resubmission time.
	po.Status = domain.POStatusDraft
	po.ApprovalSteps = nil
	po.CurrentStep = 0
	po.AutoApproved = false
	po.RecomputeTotals()
	po.LastUpdatedAt = time.Now().UTC()
	po.LastUpdatedBy = actor.UserID

	if err := s.poRepo.UpdatePurchaseOrder(ctx, *po, po.Revision); err != nil {
		return nil, err
	}

	logger.Info("Purchase order modified to new draft version",
		slog.String("purchase_order_id", po.PurchaseOrderID),
		slog.Int("version", po.Version),
	)
	return po, nil
}

// Close closes an approved order. No ledger effect: an uninvoiced remainder
// keeps its commitment on the books and the caller must acknowledge it.
func (s *purchaseOrderService) Close(ctx context.Context, projectID, purchaseOrderID string, req dto.ClosePurchaseOrderRequest, actor domain.Identity) (*domain.PurchaseOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	po, err := s.poRepo.FindPurchaseOrderByID(ctx, projectID, purchaseOrderID)
	if err != nil {
		return nil, err
	}
	if po.Status != domain.POStatusApproved {
		return nil, fmt.Errorf("%w: only approved purchase orders can be closed", apperrors.ErrIllegalTransition)
	}
	if po.RemainingAmount.GreaterThan(decimal.Zero) && !req.AcknowledgeUninvoiced {
		return nil, ErrUninvoicedBalance
	}

	po.Status = domain.POStatusClosed
	po.LastUpdatedAt = time.Now().UTC()
	po.LastUpdatedBy = actor.UserID

	if err := s.poRepo.UpdatePurchaseOrder(ctx, *po, po.Revision); err != nil {
		return nil, err
	}

	logger.Info("Purchase order closed",
		slog.String("purchase_order_id", po.PurchaseOrderID),
		slog.String("uninvoiced_remainder", po.RemainingAmount.String()),
	)
	return po, nil
}
