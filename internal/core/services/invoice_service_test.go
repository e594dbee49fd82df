package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/prodledger/production_budget_app/internal/apperrors"
	"github.com/prodledger/production_budget_app/internal/core/domain"
	portssvc "github.com/prodledger/production_budget_app/internal/core/ports/services"
	"github.com/prodledger/production_budget_app/internal/core/services"
	"github.com/prodledger/production_budget_app/internal/dto"
)

// --- Test Suite Setup ---
type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockPORepo      *MockPurchaseOrderRepository
	mockBudgetRepo  *MockBudgetRepository
	mockRosterRepo  *MockRosterRepository
	mockConfigRepo  *MockApprovalConfigRepository
	service         portssvc.InvoiceSvcFacade

	projectID    string
	subaccountID string
	actor        domain.Identity
	subaccounts  map[string]domain.BudgetSubaccount
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockPORepo = new(MockPurchaseOrderRepository)
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockRosterRepo = new(MockRosterRepository)
	suite.mockConfigRepo = new(MockApprovalConfigRepository)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockPORepo, suite.mockBudgetRepo, suite.mockRosterRepo, suite.mockConfigRepo)

	suite.projectID = uuid.NewString()
	suite.subaccountID = uuid.NewString()
	suite.actor = domain.Identity{UserID: uuid.NewString(), DisplayName: "Jordan Vale"}
	suite.subaccounts = map[string]domain.BudgetSubaccount{
		suite.subaccountID: {SubaccountID: suite.subaccountID, ProjectID: suite.projectID, Code: "4400-01"},
	}
}

// itemRequest is a single line of 2 x 500 with 21% VAT and 15% IRPF:
// base 1000, VAT 210, IRPF 150, total 1060.
func (suite *InvoiceServiceTestSuite) itemRequest() dto.DocumentItemRequest {
	return dto.DocumentItemRequest{
		Description:  "Lighting crew week 3",
		Quantity:     decimal.NewFromInt(2),
		UnitPrice:    decimal.NewFromInt(500),
		VATRate:      decimal.NewFromInt(21),
		IRPFRate:     decimal.NewFromInt(15),
		SubaccountID: suite.subaccountID,
	}
}

func (suite *InvoiceServiceTestSuite) documentItem() domain.DocumentItem {
	item := domain.DocumentItem{
		ItemID:       uuid.NewString(),
		Description:  "Lighting crew week 3",
		Quantity:     decimal.NewFromInt(2),
		UnitPrice:    decimal.NewFromInt(500),
		VATRate:      decimal.NewFromInt(21),
		IRPFRate:     decimal.NewFromInt(15),
		SubaccountID: suite.subaccountID,
	}
	item.ComputeAmounts()
	return item
}

func (suite *InvoiceServiceTestSuite) draftInvoice() *domain.Invoice {
	inv := &domain.Invoice{
		InvoiceID:      uuid.NewString(),
		ProjectID:      suite.projectID,
		Number:         "INV-2026-017",
		Supplier:       "Lens & Light SL",
		Department:     "CAMERA",
		Status:         domain.InvoiceStatusDraft,
		ApprovalStatus: domain.InvoiceApprovalPending,
		Items:          []domain.DocumentItem{suite.documentItem()},
		Version:        1,
		Revision:       2,
	}
	inv.RecomputeTotals()
	return inv
}

func (suite *InvoiceServiceTestSuite) pendingApprovalInvoice(approvers ...string) *domain.Invoice {
	inv := suite.draftInvoice()
	inv.Status = domain.InvoiceStatusPendingApproval
	inv.CurrentStep = 0
	inv.ApprovalSteps = []domain.ApprovalStep{
		{
			Order:           1,
			ApproverType:    domain.ApproverFixed,
			ConfigApprovers: approvers,
			Approvers:       approvers,
			Status:          domain.StepPending,
		},
	}
	return inv
}

func (suite *InvoiceServiceTestSuite) approvedPO() *domain.PurchaseOrder {
	po := &domain.PurchaseOrder{
		PurchaseOrderID: uuid.NewString(),
		ProjectID:       suite.projectID,
		Number:          "PO-0042",
		Supplier:        "Lens & Light SL",
		Department:      "CAMERA",
		Status:          domain.POStatusApproved,
		Items: []domain.DocumentItem{
			{
				ItemID:       uuid.NewString(),
				Quantity:     decimal.NewFromInt(1),
				UnitPrice:    decimal.NewFromInt(2000),
				SubaccountID: suite.subaccountID,
			},
		},
		Version:  1,
		Revision: 5,
	}
	po.Items[0].ComputeAmounts()
	po.RecomputeTotals()
	po.CommittedAmount = po.TotalBase
	return po
}

// --- Create ---

func (suite *InvoiceServiceTestSuite) TestCreateUnlinkedDraft() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		Number:     "INV-2026-001",
		Supplier:   "Lens & Light SL",
		Department: "CAMERA",
		Items:      []dto.DocumentItemRequest{suite.itemRequest()},
	}

	suite.mockBudgetRepo.On("FindSubaccountsByIDs", ctx, suite.projectID, []string{suite.subaccountID}).Return(suite.subaccounts, nil).Once()
	suite.mockInvoiceRepo.On("CreateInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	inv, err := suite.service.CreateInvoice(ctx, suite.projectID, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(inv)
	suite.Equal(domain.InvoiceStatusDraft, inv.Status)
	suite.Equal(domain.InvoiceApprovalPending, inv.ApprovalStatus)
	suite.Empty(inv.PurchaseOrderID)
	suite.False(inv.IsOverInvoiced)
	suite.True(inv.TotalAmount.Equal(decimal.NewFromInt(1060)))
	suite.Equal(suite.actor.UserID, inv.CreatedBy)

	suite.mockPORepo.AssertNotCalled(suite.T(), "FindPurchaseOrderByID", mock.Anything, mock.Anything, mock.Anything)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateLinkedToUnapprovedOrderFails() {
	ctx := context.Background()
	po := suite.approvedPO()
	po.Status = domain.POStatusDraft
	req := dto.CreateInvoiceRequest{
		Number:          "INV-2026-002",
		Supplier:        "Lens & Light SL",
		Department:      "CAMERA",
		Items:           []dto.DocumentItemRequest{suite.itemRequest()},
		PurchaseOrderID: po.PurchaseOrderID,
	}

	suite.mockBudgetRepo.On("FindSubaccountsByIDs", ctx, suite.projectID, []string{suite.subaccountID}).Return(suite.subaccounts, nil).Once()
	suite.mockPORepo.On("FindPurchaseOrderByID", ctx, suite.projectID, po.PurchaseOrderID).Return(po, nil).Once()

	_, err := suite.service.CreateInvoice(ctx, suite.projectID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIllegalTransition)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "CreateInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateLinkedSetsOverInvoicedAdvisory() {
	ctx := context.Background()
	po := suite.approvedPO() // total 2000
	req := dto.CreateInvoiceRequest{
		Number:          "INV-2026-003",
		Supplier:        "Lens & Light SL",
		Department:      "CAMERA",
		Items:           []dto.DocumentItemRequest{suite.itemRequest()}, // total 1060
		PurchaseOrderID: po.PurchaseOrderID,
	}

	suite.mockBudgetRepo.On("FindSubaccountsByIDs", ctx, suite.projectID, []string{suite.subaccountID}).Return(suite.subaccounts, nil).Once()
	suite.mockPORepo.On("FindPurchaseOrderByID", ctx, suite.projectID, po.PurchaseOrderID).Return(po, nil).Once()
	// 1500 already invoiced elsewhere; 1500 + 1060 exceeds the order's 2000.
	suite.mockInvoiceRepo.On("SumActiveInvoiceTotalsForPurchaseOrder", ctx, po.PurchaseOrderID, mock.AnythingOfType("string")).Return(decimal.NewFromInt(1500), nil).Once()
	suite.mockInvoiceRepo.On("CreateInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	inv, err := suite.service.CreateInvoice(ctx, suite.projectID, req, suite.actor)

	// Advisory only: the flag is set but creation goes through.
	suite.Require().NoError(err)
	suite.True(inv.IsOverInvoiced)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateLinkedWithinOrderTotal() {
	ctx := context.Background()
	po := suite.approvedPO()
	req := dto.CreateInvoiceRequest{
		Number:          "INV-2026-004",
		Supplier:        "Lens & Light SL",
		Department:      "CAMERA",
		Items:           []dto.DocumentItemRequest{suite.itemRequest()},
		PurchaseOrderID: po.PurchaseOrderID,
	}

	suite.mockBudgetRepo.On("FindSubaccountsByIDs", ctx, suite.projectID, []string{suite.subaccountID}).Return(suite.subaccounts, nil).Once()
	suite.mockPORepo.On("FindPurchaseOrderByID", ctx, suite.projectID, po.PurchaseOrderID).Return(po, nil).Once()
	suite.mockInvoiceRepo.On("SumActiveInvoiceTotalsForPurchaseOrder", ctx, po.PurchaseOrderID, mock.AnythingOfType("string")).Return(decimal.Zero, nil).Once()
	suite.mockInvoiceRepo.On("CreateInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	inv, err := suite.service.CreateInvoice(ctx, suite.projectID, req, suite.actor)

	suite.Require().NoError(err)
	suite.False(inv.IsOverInvoiced)
	suite.Equal(po.PurchaseOrderID, inv.PurchaseOrderID)
}

func (suite *InvoiceServiceTestSuite) TestCreateAndSubmitAutoApproves() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		Number:     "INV-2026-005",
		Supplier:   "Lens & Light SL",
		Department: "CAMERA",
		Items:      []dto.DocumentItemRequest{suite.itemRequest()},
		Submit:     true,
	}

	suite.mockBudgetRepo.On("FindSubaccountsByIDs", ctx, suite.projectID, []string{suite.subaccountID}).Return(suite.subaccounts, nil).Once()
	suite.mockRosterRepo.On("ListProjectMembers", ctx, suite.projectID).Return([]domain.ProjectMember{}, nil).Once()
	suite.mockConfigRepo.On("GetApprovalStepConfigs", ctx, suite.projectID, domain.DocTypeInvoice).Return([]domain.ApprovalStepConfig{}, nil).Once()
	suite.mockInvoiceRepo.On("CreateInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	inv, err := suite.service.CreateInvoice(ctx, suite.projectID, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceStatusPending, inv.Status)
	suite.Equal(domain.InvoiceApprovalApproved, inv.ApprovalStatus)
	suite.True(inv.AutoApproved)
}

// --- Submit ---

func (suite *InvoiceServiceTestSuite) TestSubmitEntersWorkflow() {
	ctx := context.Background()
	inv := suite.draftInvoice()
	hodID := uuid.NewString()
	roster := []domain.ProjectMember{
		{UserID: hodID, UserName: "Sam Ruiz", ProjectID: suite.projectID, Department: "CAMERA", Position: domain.PositionHOD},
	}
	configs := []domain.ApprovalStepConfig{{Order: 1, ApproverType: domain.ApproverHOD}}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.projectID, inv.InvoiceID).Return(inv, nil).Once()
	suite.mockRosterRepo.On("ListProjectMembers", ctx, suite.projectID).Return(roster, nil).Once()
	suite.mockConfigRepo.On("GetApprovalStepConfigs", ctx, suite.projectID, domain.DocTypeInvoice).Return(configs, nil).Once()

	var gotDelta decimal.Decimal
	suite.mockInvoiceRepo.On("UpdateInvoice", ctx, mock.AnythingOfType("domain.Invoice"), int64(2), mock.AnythingOfType("decimal.Decimal")).
		Run(func(args mock.Arguments) {
			gotDelta = args.Get(3).(decimal.Decimal)
		}).
		Return(nil).Once()

	updated, err := suite.service.Submit(ctx, suite.projectID, inv.InvoiceID, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceStatusPendingApproval, updated.Status)
	suite.Equal(domain.InvoiceApprovalPending, updated.ApprovalStatus)
	suite.Require().Len(updated.ApprovalSteps, 1)
	suite.Equal([]string{hodID}, updated.ApprovalSteps[0].Approvers)
	// Submission never changes the totals, so the order adjustment is zero.
	suite.True(gotDelta.IsZero())

	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestSubmitPaidInvoiceFails() {
	ctx := context.Background()
	inv := suite.draftInvoice()
	inv.Status = domain.InvoiceStatusPaid

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.projectID, inv.InvoiceID).Return(inv, nil).Once()

	_, err := suite.service.Submit(ctx, suite.projectID, inv.InvoiceID, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIllegalTransition)
}

// --- Act ---

func (suite *InvoiceServiceTestSuite) TestActApproveFlipsToAwaitingPayment() {
	ctx := context.Background()
	approverID := uuid.NewString()
	inv := suite.pendingApprovalInvoice(approverID)
	actor := domain.Identity{UserID: approverID}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.projectID, inv.InvoiceID).Return(inv, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoice", ctx, mock.AnythingOfType("domain.Invoice"), int64(2), decimal.Zero).Return(nil).Once()

	updated, err := suite.service.Act(ctx, suite.projectID, inv.InvoiceID, dto.ApprovalActionRequest{Action: "APPROVE"}, actor)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceStatusPending, updated.Status)
	suite.Equal(domain.InvoiceApprovalApproved, updated.ApprovalStatus)
	// Invoice approval never commits budget.
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestActRejectTerminatesDocument() {
	ctx := context.Background()
	approverID := uuid.NewString()
	inv := suite.pendingApprovalInvoice(approverID)
	actor := domain.Identity{UserID: approverID}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.projectID, inv.InvoiceID).Return(inv, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoice", ctx, mock.AnythingOfType("domain.Invoice"), int64(2), decimal.Zero).Return(nil).Once()

	updated, err := suite.service.Act(ctx, suite.projectID, inv.InvoiceID, dto.ApprovalActionRequest{Action: "REJECT", Reason: "Amount mismatch"}, actor)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceStatusRejected, updated.Status)
	suite.Equal(domain.InvoiceApprovalRejected, updated.ApprovalStatus)
}

func (suite *InvoiceServiceTestSuite) TestActOnDraftFails() {
	ctx := context.Background()
	inv := suite.draftInvoice()

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.projectID, inv.InvoiceID).Return(inv, nil).Once()

	_, err := suite.service.Act(ctx, suite.projectID, inv.InvoiceID, dto.ApprovalActionRequest{Action: "APPROVE"}, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIllegalTransition)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Cancel ---

func (suite *InvoiceServiceTestSuite) TestCancelDraft() {
	ctx := context.Background()
	inv := suite.draftInvoice()

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.projectID, inv.InvoiceID).Return(inv, nil).Once()
	suite.mockInvoiceRepo.On("CancelInvoice", ctx, mock.AnythingOfType("domain.Invoice"), int64(2)).Return(nil).Once()

	updated, err := suite.service.Cancel(ctx, suite.projectID, inv.InvoiceID, dto.CancelRequest{Reason: "Issued in error"}, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceStatusCancelled, updated.Status)
	suite.Equal("Issued in error", updated.CancellationReason)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCancelPaidInvoiceFails() {
	ctx := context.Background()
	inv := suite.draftInvoice()
	inv.Status = domain.InvoiceStatusPaid

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.projectID, inv.InvoiceID).Return(inv, nil).Once()

	_, err := suite.service.Cancel(ctx, suite.projectID, inv.InvoiceID, dto.CancelRequest{Reason: "Issued in error"}, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIllegalTransition)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "CancelInvoice", mock.Anything, mock.Anything, mock.Anything)
}

// --- MarkPaid ---

func (suite *InvoiceServiceTestSuite) TestMarkPaidLinkedRealizesAndReleases() {
	ctx := context.Background()
	inv := suite.draftInvoice()
	inv.Status = domain.InvoiceStatusPending
	inv.ApprovalStatus = domain.InvoiceApprovalApproved
	inv.PurchaseOrderID = uuid.NewString()

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.projectID, inv.InvoiceID).Return(inv, nil).Once()

	var gotActuals, gotReleases map[string]decimal.Decimal
	suite.mockInvoiceRepo.On("MarkPaid", ctx, mock.AnythingOfType("domain.Invoice"), int64(2), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotActuals, _ = args.Get(3).(map[string]decimal.Decimal)
			gotReleases, _ = args.Get(4).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	updated, err := suite.service.MarkPaid(ctx, suite.projectID, inv.InvoiceID, dto.MarkInvoicePaidRequest{}, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceStatusPaid, updated.Status)
	suite.Require().NotNil(gotActuals)
	suite.True(gotActuals[suite.subaccountID].Equal(decimal.NewFromInt(1000)))
	// Linked invoice: the matching commitment is released alongside realization.
	suite.Require().NotNil(gotReleases)
	suite.True(gotReleases[suite.subaccountID].Equal(decimal.NewFromInt(1000)))

	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestMarkPaidUnlinkedSkipsRelease() {
	ctx := context.Background()
	inv := suite.draftInvoice()
	inv.Status = domain.InvoiceStatusPending
	inv.ApprovalStatus = domain.InvoiceApprovalApproved

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.projectID, inv.InvoiceID).Return(inv, nil).Once()

	var gotReleases map[string]decimal.Decimal
	suite.mockInvoiceRepo.On("MarkPaid", ctx, mock.AnythingOfType("domain.Invoice"), int64(2), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotReleases, _ = args.Get(4).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	updated, err := suite.service.MarkPaid(ctx, suite.projectID, inv.InvoiceID, dto.MarkInvoicePaidRequest{}, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceStatusPaid, updated.Status)
	suite.Nil(gotReleases)
}

func (suite *InvoiceServiceTestSuite) TestMarkPaidRequiresApprovedInvoice() {
	ctx := context.Background()
	inv := suite.draftInvoice()

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.projectID, inv.InvoiceID).Return(inv, nil).Once()

	_, err := suite.service.MarkPaid(ctx, suite.projectID, inv.InvoiceID, dto.MarkInvoicePaidRequest{}, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIllegalTransition)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestMarkPaidPropagatesConflict() {
	ctx := context.Background()
	inv := suite.draftInvoice()
	inv.Status = domain.InvoiceStatusPending

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.projectID, inv.InvoiceID).Return(inv, nil).Once()
	suite.mockInvoiceRepo.On("MarkPaid", ctx, mock.AnythingOfType("domain.Invoice"), int64(2), mock.Anything, mock.Anything).Return(apperrors.ErrConflict).Once()

	_, err := suite.service.MarkPaid(ctx, suite.projectID, inv.InvoiceID, dto.MarkInvoicePaidRequest{}, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- Draft update / delete ---

func (suite *InvoiceServiceTestSuite) TestUpdateDraftRefreshesOverInvoicedAdvisory() {
	ctx := context.Background()
	po := suite.approvedPO() // total 2000
	inv := suite.draftInvoice()
	inv.PurchaseOrderID = po.PurchaseOrderID

	newItem := suite.itemRequest()
	newItem.Quantity = decimal.NewFromInt(4) // base 2000, total 2120

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.projectID, inv.InvoiceID).Return(inv, nil).Once()
	suite.mockBudgetRepo.On("FindSubaccountsByIDs", ctx, suite.projectID, []string{suite.subaccountID}).Return(suite.subaccounts, nil).Once()
	suite.mockPORepo.On("FindPurchaseOrderByID", ctx, suite.projectID, po.PurchaseOrderID).Return(po, nil).Once()
	suite.mockInvoiceRepo.On("SumActiveInvoiceTotalsForPurchaseOrder", ctx, po.PurchaseOrderID, inv.InvoiceID).Return(decimal.Zero, nil).Once()

	var gotDelta decimal.Decimal
	suite.mockInvoiceRepo.On("UpdateInvoice", ctx, mock.AnythingOfType("domain.Invoice"), int64(2), mock.AnythingOfType("decimal.Decimal")).
		Run(func(args mock.Arguments) {
			gotDelta = args.Get(3).(decimal.Decimal)
		}).
		Return(nil).Once()

	updated, err := suite.service.UpdateDraft(ctx, suite.projectID, inv.InvoiceID, dto.UpdateInvoiceRequest{Items: []dto.DocumentItemRequest{newItem}}, suite.actor)

	suite.Require().NoError(err)
	suite.True(updated.TotalBase.Equal(decimal.NewFromInt(2000)))
	suite.True(updated.IsOverInvoiced)
	// The order's invoiced figures move by the total change: 2120 - 1060.
	suite.True(gotDelta.Equal(decimal.NewFromInt(1060)))
}

func (suite *InvoiceServiceTestSuite) TestUpdateDraftAdvisoryExcludesOwnStoredTotal() {
	ctx := context.Background()
	po := suite.approvedPO() // total 2000
	inv := suite.draftInvoice()
	inv.PurchaseOrderID = po.PurchaseOrderID

	// A sibling invoice accounts for 800; this draft's own stored 1060 must not
	// be counted a second time. 800 + 1060 stays within the order's 2000.
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.projectID, inv.InvoiceID).Return(inv, nil).Once()
	suite.mockPORepo.On("FindPurchaseOrderByID", ctx, suite.projectID, po.PurchaseOrderID).Return(po, nil).Once()
	suite.mockInvoiceRepo.On("SumActiveInvoiceTotalsForPurchaseOrder", ctx, po.PurchaseOrderID, inv.InvoiceID).Return(decimal.NewFromInt(800), nil).Once()

	var gotDelta decimal.Decimal
	suite.mockInvoiceRepo.On("UpdateInvoice", ctx, mock.AnythingOfType("domain.Invoice"), int64(2), mock.AnythingOfType("decimal.Decimal")).
		Run(func(args mock.Arguments) {
			gotDelta = args.Get(3).(decimal.Decimal)
		}).
		Return(nil).Once()

	updated, err := suite.service.UpdateDraft(ctx, suite.projectID, inv.InvoiceID, dto.UpdateInvoiceRequest{Description: "Reissued with corrected line text"}, suite.actor)

	suite.Require().NoError(err)
	suite.False(updated.IsOverInvoiced)
	// Description-only edit: totals unchanged, no order adjustment.
	suite.True(gotDelta.IsZero())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestDeleteDraft() {
	ctx := context.Background()
	inv := suite.draftInvoice()

	var gotInv domain.Invoice
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.projectID, inv.InvoiceID).Return(inv, nil).Once()
	suite.mockInvoiceRepo.On("DeleteInvoice", ctx, mock.AnythingOfType("domain.Invoice"), int64(2)).
		Run(func(args mock.Arguments) {
			gotInv = args.Get(1).(domain.Invoice)
		}).
		Return(nil).Once()

	err := suite.service.DeleteDraft(ctx, suite.projectID, inv.InvoiceID, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(inv.InvoiceID, gotInv.InvoiceID)
	suite.Equal(suite.actor.UserID, gotInv.LastUpdatedBy)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestDeleteLinkedDraftCarriesOrderLink() {
	ctx := context.Background()
	po := suite.approvedPO()
	inv := suite.draftInvoice()
	inv.PurchaseOrderID = po.PurchaseOrderID

	var gotInv domain.Invoice
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.projectID, inv.InvoiceID).Return(inv, nil).Once()
	suite.mockInvoiceRepo.On("DeleteInvoice", ctx, mock.AnythingOfType("domain.Invoice"), int64(2)).
		Run(func(args mock.Arguments) {
			gotInv = args.Get(1).(domain.Invoice)
		}).
		Return(nil).Once()

	err := suite.service.DeleteDraft(ctx, suite.projectID, inv.InvoiceID, suite.actor)

	// The repository restores the order's invoiced figures from the link and
	// total carried on the deleted invoice.
	suite.Require().NoError(err)
	suite.Equal(po.PurchaseOrderID, gotInv.PurchaseOrderID)
	suite.True(gotInv.TotalAmount.Equal(decimal.NewFromInt(1060)))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestDeleteNonDraftFails() {
	ctx := context.Background()
	inv := suite.draftInvoice()
	inv.Status = domain.InvoiceStatusPending

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.projectID, inv.InvoiceID).Return(inv, nil).Once()

	err := suite.service.DeleteDraft(ctx, suite.projectID, inv.InvoiceID, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIllegalTransition)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "DeleteInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
