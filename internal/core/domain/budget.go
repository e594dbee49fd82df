package domain

import "github.com/shopspring/decimal"

// BudgetAccount is a top-level budget chapter within a project (e.g. "02 - Art Department").
type BudgetAccount struct {
	AccountID   string `json:"accountID"` // Primary Key (UUID)
	ProjectID   string `json:"projectID"`
	Code        string `json:"code"`
	Description string `json:"description"`
	AuditFields
}

// BudgetSubaccount is the unit of budget control. Purchase orders commit against
// subaccounts and paid invoices realize against them. Figures are mutated only
// through ledger operations (atomic increments in the repository layer).
type BudgetSubaccount struct {
	SubaccountID string          `json:"subaccountID"` // Primary Key (UUID)
	AccountID    string          `json:"accountID"`    // FK -> BudgetAccount
	ProjectID    string          `json:"projectID"`
	Code         string          `json:"code"`
	Description  string          `json:"description"`
	Budgeted     decimal.Decimal `json:"budgeted"`  // allocated ceiling
	Committed    decimal.Decimal `json:"committed"` // approved, unpaid commitments; never negative
	Actual       decimal.Decimal `json:"actual"`    // realized/paid amount
	AuditFields
}

// Available derives the live remaining budget: budgeted - committed - actual.
func (s BudgetSubaccount) Available() decimal.Decimal {
	return s.Budgeted.Sub(s.Committed).Sub(s.Actual)
}
