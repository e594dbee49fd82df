package services

import (
	"context"

	"github.com/prodledger/production_budget_app/internal/core/domain"
	"github.com/prodledger/production_budget_app/internal/dto"
)

// BudgetSvcFacade manages the budget structure and exposes live figures.
type BudgetSvcFacade interface {
	CreateAccount(ctx context.Context, projectID string, req dto.CreateBudgetAccountRequest, actor domain.Identity) (*domain.BudgetAccount, error)
	ListAccounts(ctx context.Context, projectID string) ([]domain.BudgetAccount, error)

	CreateSubaccount(ctx context.Context, projectID string, req dto.CreateSubaccountRequest, actor domain.Identity) (*domain.BudgetSubaccount, error)
	UpdateSubaccountBudget(ctx context.Context, projectID, subaccountID string, req dto.UpdateSubaccountBudgetRequest, actor domain.Identity) (*domain.BudgetSubaccount, error)

	// GetSubaccount returns one subaccount with its derived available figure.
	GetSubaccount(ctx context.Context, projectID, subaccountID string) (*dto.SubaccountSummary, error)

	// GetBudgetSummary returns every subaccount of the project with available
	// figures derived live (budgeted - committed - actual).
	GetBudgetSummary(ctx context.Context, projectID string) ([]dto.SubaccountSummary, error)
}
