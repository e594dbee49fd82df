package models

import "github.com/shopspring/decimal"

// BudgetAccount is the db shape of a top-level budget account.
type BudgetAccount struct {
	AccountID   string `db:"account_id"`
	ProjectID   string `db:"project_id"`
	Code        string `db:"code"`
	Description string `db:"description"`
	AuditFields
}

// BudgetSubaccount is the db shape of a budget subaccount. The committed and
// actual columns are only ever mutated by atomic increments inside document
// transactions.
type BudgetSubaccount struct {
	SubaccountID string          `db:"subaccount_id"`
	AccountID    string          `db:"account_id"`
	ProjectID    string          `db:"project_id"`
	Code         string          `db:"code"`
	Description  string          `db:"description"`
	Budgeted     decimal.Decimal `db:"budgeted"`
	Committed    decimal.Decimal `db:"committed"`
	Actual       decimal.Decimal `db:"actual"`
	AuditFields
}
