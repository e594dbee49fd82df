package mapping

import (
	"github.com/prodledger/production_budget_app/internal/core/domain"
	"github.com/prodledger/production_budget_app/internal/models"
)

// AccountToModel converts a domain budget account to its db model.
func AccountToModel(a domain.BudgetAccount) models.BudgetAccount {
	return models.BudgetAccount{
		AccountID:   a.AccountID,
		ProjectID:   a.ProjectID,
		Code:        a.Code,
		Description: a.Description,
		AuditFields: auditToModel(a.AuditFields),
	}
}

// AccountToDomain converts a db budget account to the domain shape.
func AccountToDomain(m models.BudgetAccount) domain.BudgetAccount {
	return domain.BudgetAccount{
		AccountID:   m.AccountID,
		ProjectID:   m.ProjectID,
		Code:        m.Code,
		Description: m.Description,
		AuditFields: auditToDomain(m.AuditFields),
	}
}

// SubaccountToModel converts a domain subaccount to its db model.
func SubaccountToModel(s domain.BudgetSubaccount) models.BudgetSubaccount {
	return models.BudgetSubaccount{
		SubaccountID: s.SubaccountID,
		AccountID:    s.AccountID,
		ProjectID:    s.ProjectID,
		Code:         s.Code,
		Description:  s.Description,
		Budgeted:     s.Budgeted,
		Committed:    s.Committed,
		Actual:       s.Actual,
		AuditFields:  auditToModel(s.AuditFields),
	}
}

// SubaccountToDomain converts a db subaccount to the domain shape.
func SubaccountToDomain(m models.BudgetSubaccount) domain.BudgetSubaccount {
	return domain.BudgetSubaccount{
		SubaccountID: m.SubaccountID,
		AccountID:    m.AccountID,
		ProjectID:    m.ProjectID,
		Code:         m.Code,
		Description:  m.Description,
		Budgeted:     m.Budgeted,
		Committed:    m.Committed,
		Actual:       m.Actual,
		AuditFields:  auditToDomain(m.AuditFields),
	}
}
