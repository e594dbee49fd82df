package dto

import (
	"github.com/prodledger/production_budget_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetAccountRequest creates a top-level budget account.
type CreateBudgetAccountRequest struct {
	Code        string `json:"code" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// CreateSubaccountRequest creates a subaccount under a budget account.
type CreateSubaccountRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Code        string          `json:"code" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Budgeted    decimal.Decimal `json:"budgeted"`
}

// UpdateSubaccountBudgetRequest changes a subaccount's allocated ceiling.
type UpdateSubaccountBudgetRequest struct {
	Budgeted decimal.Decimal `json:"budgeted"`
}

// SubaccountSummary is a subaccount with its derived available figure.
type SubaccountSummary struct {
	domain.BudgetSubaccount
	Available decimal.Decimal `json:"available"`
}

// NewSubaccountSummary derives the available figure for presentation.
func NewSubaccountSummary(sub domain.BudgetSubaccount) SubaccountSummary {
	return SubaccountSummary{BudgetSubaccount: sub, Available: sub.Available()}
}
