package services

import (
	"context"
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

// invoiceService is the invoice side of the commitment orchestrator. Invoices
// share the approval workflow shape with purchase orders but never commit
// budget; approval flips them to a payment-pending state and payment realizes
// the actual amounts.
type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	poRepo      portsrepo.PurchaseOrderReader
	budgetRepo  portsrepo.BudgetReader
	rosterRepo  portsrepo.RosterProvider
	configRepo  portsrepo.ApprovalConfigProvider
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	poRepo portsrepo.PurchaseOrderReader,
	budgetRepo portsrepo.BudgetReader,
	rosterRepo portsrepo.RosterProvider,
	configRepo portsrepo.ApprovalConfigProvider,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		poRepo:      poRepo,
		budgetRepo:  budgetRepo,
		rosterRepo:  rosterRepo,
		configRepo:  configRepo,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) resolveWorkflow(ctx context.Context, projectID, department string) ([]domain.ApprovalStep, bool, error) {
	roster, err := s.rosterRepo.ListProjectMembers(ctx, projectID)
	if err != nil {
		return nil, false, err
	}
	configs, err := s.configRepo.GetApprovalStepConfigs(ctx, projectID, domain.DocTypeInvoice)
	if err != nil {
		return nil, false, err
	}
	steps, auto := approval.BuildSteps(configs, department, roster)
	return steps, auto, nil
}

// checkOverInvoiced computes the advisory over-invoicing flag: the sum of the
// other non-cancelled invoices linked to the purchase order plus this
// invoice's total, compared against the order's total amount. Advisory only.
func (s *invoiceService) checkOverInvoiced(ctx context.Context, po *domain.PurchaseOrder, invoiceID string, invoiceTotal decimal.Decimal) (bool, error) {
	linked, err := s.invoiceRepo.SumActiveInvoiceTotalsForPurchaseOrder(ctx, po.PurchaseOrderID, invoiceID)
	if err != nil {
		return false, err
	}
	return linked.Add(invoiceTotal).GreaterThan(po.TotalAmount), nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, projectID string, req dto.CreateInvoiceRequest, actor domain.Identity) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	items, err := buildItems(ctx, s.budgetRepo, projectID, req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	inv := domain.Invoice{
		InvoiceID:       uuid.NewString(),
		ProjectID:       projectID,
		Number:          req.Number,
		Supplier:        req.Supplier,
		Department:      req.Department,
		Description:     req.Description,
		Status:          domain.InvoiceStatusDraft,
		ApprovalStatus:  domain.InvoiceApprovalPending,
		Items:           items,
		Version:         1,
		PurchaseOrderID: req.PurchaseOrderID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	inv.RecomputeTotals()

	if req.PurchaseOrderID != "" {
		po, err := s.poRepo.FindPurchaseOrderByID(ctx, projectID, req.PurchaseOrderID)
		if err != nil {
			return nil, err
		}
		if po.Status != domain.POStatusApproved {
			return nil, fmt.Errorf("%w: invoices can only be linked to approved purchase orders", apperrors.ErrIllegalTransition)
		}
		over, err := s.checkOverInvoiced(ctx, po, inv.InvoiceID, inv.TotalAmount)
		if err != nil {
			return nil, err
		}
		inv.IsOverInvoiced = over
		if over {
			logger.Warn("Invoice exceeds linked purchase order total",
				slog.String("purchase_order_id", po.PurchaseOrderID),
				slog.String("invoice_total", inv.TotalAmount.String()),
			)
		}
	}

	if req.Submit {
		steps, auto, err := s.resolveWorkflow(ctx, projectID, inv.Department)
		if err != nil {
			return nil, err
		}
		if auto {
			inv.Status = domain.InvoiceStatusPending
			inv.ApprovalStatus = domain.InvoiceApprovalApproved
			inv.AutoApproved = true
		} else {
			inv.Status = domain.InvoiceStatusPendingApproval
			inv.ApprovalSteps = steps
			inv.CurrentStep = 0
		}
	}

	if err := s.invoiceRepo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	logger.Info("Invoice created",
		slog.String("invoice_id", inv.InvoiceID),
		slog.String("status", string(inv.Status)),
		slog.Bool("over_invoiced", inv.IsOverInvoiced),
	)
	return &inv, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, projectID, invoiceID string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, projectID, invoiceID)
}

func (s *invoiceService) ListInvoices(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	return s.invoiceRepo.ListInvoicesByProject(ctx, projectID, limit, nextToken)
}

func (s *invoiceService) UpdateDraft(ctx context.Context, projectID, invoiceID string, req dto.UpdateInvoiceRequest, actor domain.Identity) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, projectID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status != domain.InvoiceStatusDraft {
		return nil, fmt.Errorf("%w: only draft invoices can be edited", apperrors.ErrIllegalTransition)
	}

	previousTotal := inv.TotalAmount

	if req.Supplier != "" {
		inv.Supplier = req.Supplier
	}
	if req.Department != "" {
		inv.Department = req.Department
	}
	if req.Description != "" {
		inv.Description = req.Description
	}
	if len(req.Items) > 0 {
		items, err := buildItems(ctx, s.budgetRepo, projectID, req.Items)
		if err != nil {
			return nil, err
		}
		inv.Items = items
	}
	inv.RecomputeTotals()

	if inv.PurchaseOrderID != "" {
		po, err := s.poRepo.FindPurchaseOrderByID(ctx, projectID, inv.PurchaseOrderID)
		if err != nil {
			return nil, err
		}
		// The sum excludes this invoice's stored row, so the new total is
		// counted exactly once in the advisory comparison.
		over, err := s.checkOverInvoiced(ctx, po, inv.InvoiceID, inv.TotalAmount)
		if err != nil {
			return nil, err
		}
		inv.IsOverInvoiced = over
	}

	inv.LastUpdatedAt = time.Now().UTC()
	inv.LastUpdatedBy = actor.UserID

	// A changed total moves the linked order's invoiced figures by the delta,
	// inside the update transaction.
	if err := s.invoiceRepo.UpdateInvoice(ctx, *inv, inv.Revision, inv.TotalAmount.Sub(previousTotal)); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) DeleteDraft(ctx context.Context, projectID, invoiceID string, actor domain.Identity) error {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, projectID, invoiceID)
	if err != nil {
		return err
	}
	if inv.Status != domain.InvoiceStatusDraft {
		return fmt.Errorf("%w: only draft invoices can be deleted", apperrors.ErrIllegalTransition)
	}
	inv.LastUpdatedAt = time.Now().UTC()
	inv.LastUpdatedBy = actor.UserID
	return s.invoiceRepo.DeleteInvoice(ctx, *inv, inv.Revision)
}

func (s *invoiceService) Submit(ctx context.Context, projectID, invoiceID string, actor domain.Identity) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, projectID, invoiceID)
	if err != nil {
		return nil, err
	}

	switch inv.Status {
	case domain.InvoiceStatusDraft:
		// proceed
	case domain.InvoiceStatusRejected:
		inv.History = append(inv.History, domain.ModificationRecord{
			Date:            time.Now().UTC(),
			UserID:          actor.UserID,
			Reason:          "Resubmitted after rejection",
			PreviousVersion: inv.Version,
		})
		inv.Version++
	default:
		return nil, fmt.Errorf("%w: cannot submit a %s invoice", apperrors.ErrIllegalTransition, inv.Status)
	}

	steps, auto, err := s.resolveWorkflow(ctx, projectID, inv.Department)
	if err != nil {
		return nil, err
	}

	inv.ApprovalSteps = steps
	inv.CurrentStep = 0
	inv.AutoApproved = auto
	inv.LastUpdatedAt = time.Now().UTC()
	inv.LastUpdatedBy = actor.UserID

	if auto {
		inv.Status = domain.InvoiceStatusPending
		inv.ApprovalStatus = domain.InvoiceApprovalApproved
	} else {
		inv.Status = domain.InvoiceStatusPendingApproval
		inv.ApprovalStatus = domain.InvoiceApprovalPending
	}

	if err := s.invoiceRepo.UpdateInvoice(ctx, *inv, inv.Revision, decimal.Zero); err != nil {
		return nil, err
	}
	logger.Info("Invoice submitted",
		slog.String("invoice_id", inv.InvoiceID),
		slog.Bool("auto_approved", auto),
	)
	return inv, nil
}

// Act applies an approve/reject action to the current step. Full approval
// flips the invoice to the payment-pending state; invoices never commit budget.
func (s *invoiceService) Act(ctx context.Context, projectID, invoiceID string, req dto.ApprovalActionRequest, actor domain.Identity) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, projectID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status != domain.InvoiceStatusPendingApproval {
		return nil, fmt.Errorf("%w: invoice is %s, not pending approval", apperrors.ErrIllegalTransition, inv.Status)
	}

	action := approval.Action{
		UserID: actor.UserID,
		Type:   approval.ActionType(req.Action),
		Reason: req.Reason,
	}
	outcome, err := approval.Apply(inv.ApprovalSteps, inv.CurrentStep, action)
	if err != nil {
		return nil, err
	}

	inv.LastUpdatedAt = time.Now().UTC()
	inv.LastUpdatedBy = actor.UserID

	switch {
	case outcome.Rejected:
		inv.Status = domain.InvoiceStatusRejected
		inv.ApprovalStatus = domain.InvoiceApprovalRejected
	case outcome.Finalized:
		inv.Status = domain.InvoiceStatusPending
		inv.ApprovalStatus = domain.InvoiceApprovalApproved
	default:
		inv.CurrentStep = outcome.NextStep
	}

	if err := s.invoiceRepo.UpdateInvoice(ctx, *inv, inv.Revision, decimal.Zero); err != nil {
		return nil, err
	}

	if outcome.Finalized {
		logger.Info("Invoice approved, awaiting payment", slog.String("invoice_id", inv.InvoiceID))
	}
	return inv, nil
}

func (s *invoiceService) Cancel(ctx context.Context, projectID, invoiceID string, req dto.CancelRequest, actor domain.Identity) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, projectID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status == domain.InvoiceStatusPaid || inv.Status == domain.InvoiceStatusCancelled {
		return nil, fmt.Errorf("%w: cannot cancel a %s invoice", apperrors.ErrIllegalTransition, inv.Status)
	}

	inv.Status = domain.InvoiceStatusCancelled
	inv.CancellationReason = req.Reason
	inv.LastUpdatedAt = time.Now().UTC()
	inv.LastUpdatedBy = actor.UserID

	if err := s.invoiceRepo.CancelInvoice(ctx, *inv, inv.Revision); err != nil {
		return nil, err
	}
	logger.Info("Invoice cancelled", slog.String("invoice_id", inv.InvoiceID), slog.String("reason", req.Reason))
	return inv, nil
}

// MarkPaid realizes an approved invoice: each item's taxable base is added to
// its subaccount's actual figure and, for purchase-order-linked invoices, the
// matching commitment is released in the same transaction so the funds are not
// counted twice in the available derivation.
func (s *invoiceService) MarkPaid(ctx context.Context, projectID, invoiceID string, req dto.MarkInvoicePaidRequest, actor domain.Identity) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, projectID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status != domain.InvoiceStatusPending {
		return nil, fmt.Errorf("%w: invoice is %s, not awaiting payment", apperrors.ErrIllegalTransition, inv.Status)
	}

	actuals := domain.BaseAmountsBySubaccount(inv.Items)
	var releases map[string]decimal.Decimal
	if inv.PurchaseOrderID != "" {
		releases = actuals
	}

	inv.Status = domain.InvoiceStatusPaid
	inv.LastUpdatedAt = time.Now().UTC()
	inv.LastUpdatedBy = actor.UserID

	if err := s.invoiceRepo.MarkPaid(ctx, *inv, inv.Revision, actuals, releases); err != nil {
		return nil, err
	}
	logger.Info("Invoice marked paid",
		slog.String("invoice_id", inv.InvoiceID),
		slog.String("total", inv.TotalAmount.String()),
	)
	return inv, nil
}
