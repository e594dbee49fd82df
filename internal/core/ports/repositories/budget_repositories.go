package repositories

import (
	"context"

	"github.com/prodledger/production_budget_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetReader defines read operations on budget accounts and subaccounts.
type BudgetReader interface {
	FindAccountByID(ctx context.Context, projectID, accountID string) (*domain.BudgetAccount, error)
	ListAccountsByProject(ctx context.Context, projectID string) ([]domain.BudgetAccount, error)
	FindSubaccountByID(ctx context.Context, projectID, subaccountID string) (*domain.BudgetSubaccount, error)

	// FindSubaccountsByIDs retrieves several subaccounts at once, keyed by id.
	// Missing ids are reported as apperrors.ErrNotFound.
	FindSubaccountsByIDs(ctx context.Context, projectID string, subaccountIDs []string) (map[string]domain.BudgetSubaccount, error)

	ListSubaccountsByAccount(ctx context.Context, projectID, accountID string) ([]domain.BudgetSubaccount, error)
	ListSubaccountsByProject(ctx context.Context, projectID string) ([]domain.BudgetSubaccount, error)
}

// BudgetWriter defines write operations on budget structure. Committed and
// actual figures are never written through these methods; they move only via
// the atomic ledger increments owned by the document repositories.
type BudgetWriter interface {
	CreateAccount(ctx context.Context, account domain.BudgetAccount) error
	CreateSubaccount(ctx context.Context, subaccount domain.BudgetSubaccount) error
	UpdateSubaccountBudgeted(ctx context.Context, projectID, subaccountID string, budgeted decimal.Decimal, updatedBy string) error
}

// BudgetRepositoryFacade combines budget reader and writer interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
