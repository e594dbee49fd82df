package services_test

import (
	"context"

	"github.com/prodledger/production_budget_app/internal/core/domain"
	portsrepo "github.com/prodledger/production_budget_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock PurchaseOrderRepository ---

type MockPurchaseOrderRepository struct {
	mock.Mock
}

var _ portsrepo.PurchaseOrderRepositoryFacade = (*MockPurchaseOrderRepository)(nil)

func (m *MockPurchaseOrderRepository) FindPurchaseOrderByID(ctx context.Context, projectID, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, projectID, purchaseOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) ListPurchaseOrdersByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.PurchaseOrder, *string, error) {
	args := m.Called(ctx, projectID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.PurchaseOrder), returnedNextToken, args.Error(2)
}

func (m *MockPurchaseOrderRepository) CreatePurchaseOrder(ctx context.Context, po domain.PurchaseOrder, commitments map[string]decimal.Decimal) error {
	args := m.Called(ctx, po, commitments)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) UpdatePurchaseOrder(ctx context.Context, po domain.PurchaseOrder, expectedRevision int64) error {
	args := m.Called(ctx, po, expectedRevision)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) FinalizeApproval(ctx context.Context, po domain.PurchaseOrder, expectedRevision int64, commitments map[string]decimal.Decimal, releases map[string]decimal.Decimal) error {
	args := m.Called(ctx, po, expectedRevision, commitments, releases)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) CancelWithRelease(ctx context.Context, po domain.PurchaseOrder, expectedRevision int64, releases map[string]decimal.Decimal) error {
	args := m.Called(ctx, po, expectedRevision, releases)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) DeletePurchaseOrder(ctx context.Context, projectID, purchaseOrderID string, expectedRevision int64) error {
	args := m.Called(ctx, projectID, purchaseOrderID, expectedRevision)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---

type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, projectID, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, projectID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, projectID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Invoice), returnedNextToken, args.Error(2)
}

func (m *MockInvoiceRepository) SumActiveInvoiceTotalsForPurchaseOrder(ctx context.Context, purchaseOrderID, excludeInvoiceID string) (decimal.Decimal, error) {
	args := m.Called(ctx, purchaseOrderID, excludeInvoiceID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInvoiceRepository) CreateInvoice(ctx context.Context, inv domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, inv domain.Invoice, expectedRevision int64, purchaseOrderDelta decimal.Decimal) error {
	args := m.Called(ctx, inv, expectedRevision, purchaseOrderDelta)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CancelInvoice(ctx context.Context, inv domain.Invoice, expectedRevision int64) error {
	args := m.Called(ctx, inv, expectedRevision)
	return args.Error(0)
}

func (m *MockInvoiceRepository) MarkPaid(ctx context.Context, inv domain.Invoice, expectedRevision int64, actuals map[string]decimal.Decimal, releases map[string]decimal.Decimal) error {
	args := m.Called(ctx, inv, expectedRevision, actuals, releases)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, inv domain.Invoice, expectedRevision int64) error {
	args := m.Called(ctx, inv, expectedRevision)
	return args.Error(0)
}

// --- Mock BudgetRepository ---

type MockBudgetRepository struct {
	mock.Mock
}

var _ portsrepo.BudgetRepositoryFacade = (*MockBudgetRepository)(nil)

func (m *MockBudgetRepository) FindAccountByID(ctx context.Context, projectID, accountID string) (*domain.BudgetAccount, error) {
	args := m.Called(ctx, projectID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetAccount), args.Error(1)
}

func (m *MockBudgetRepository) ListAccountsByProject(ctx context.Context, projectID string) ([]domain.BudgetAccount, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetAccount), args.Error(1)
}

func (m *MockBudgetRepository) FindSubaccountByID(ctx context.Context, projectID, subaccountID string) (*domain.BudgetSubaccount, error) {
	args := m.Called(ctx, projectID, subaccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetSubaccount), args.Error(1)
}

func (m *MockBudgetRepository) FindSubaccountsByIDs(ctx context.Context, projectID string, subaccountIDs []string) (map[string]domain.BudgetSubaccount, error) {
	args := m.Called(ctx, projectID, subaccountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.BudgetSubaccount), args.Error(1)
}

func (m *MockBudgetRepository) ListSubaccountsByAccount(ctx context.Context, projectID, accountID string) ([]domain.BudgetSubaccount, error) {
	args := m.Called(ctx, projectID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetSubaccount), args.Error(1)
}

func (m *MockBudgetRepository) ListSubaccountsByProject(ctx context.Context, projectID string) ([]domain.BudgetSubaccount, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetSubaccount), args.Error(1)
}

func (m *MockBudgetRepository) CreateAccount(ctx context.Context, account domain.BudgetAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBudgetRepository) CreateSubaccount(ctx context.Context, subaccount domain.BudgetSubaccount) error {
	args := m.Called(ctx, subaccount)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateSubaccountBudgeted(ctx context.Context, projectID, subaccountID string, budgeted decimal.Decimal, updatedBy string) error {
	args := m.Called(ctx, projectID, subaccountID, budgeted, updatedBy)
	return args.Error(0)
}

// --- Mock RosterProvider ---

type MockRosterRepository struct {
	mock.Mock
}

var _ portsrepo.RosterProvider = (*MockRosterRepository)(nil)

func (m *MockRosterRepository) ListProjectMembers(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProjectMember), args.Error(1)
}

// --- Mock ApprovalConfigProvider ---

type MockApprovalConfigRepository struct {
	mock.Mock
}

var _ portsrepo.ApprovalConfigProvider = (*MockApprovalConfigRepository)(nil)

func (m *MockApprovalConfigRepository) GetApprovalStepConfigs(ctx context.Context, projectID string, docType domain.DocumentType) ([]domain.ApprovalStepConfig, error) {
	args := m.Called(ctx, projectID, docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalStepConfig), args.Error(1)
}
