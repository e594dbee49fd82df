package mapping

import (
	"github.com/prodledger/production_budget_app/internal/core/domain"
	"github.com/prodledger/production_budget_app/internal/models"
)

// InvoiceToModel converts a domain invoice to its db header model.
func InvoiceToModel(inv domain.Invoice) models.Invoice {
	m := models.Invoice{
		InvoiceID:          inv.InvoiceID,
		ProjectID:          inv.ProjectID,
		Number:             inv.Number,
		Supplier:           inv.Supplier,
		Department:         inv.Department,
		Description:        inv.Description,
		Status:             string(inv.Status),
		ApprovalStatus:     string(inv.ApprovalStatus),
		AutoApproved:       inv.AutoApproved,
		CurrentStep:        inv.CurrentStep,
		ApprovalSteps:      StepsToModel(inv.ApprovalSteps),
		Version:            inv.Version,
		History:            HistoryToModel(inv.History),
		IsOverInvoiced:     inv.IsOverInvoiced,
		TotalBase:          inv.TotalBase,
		TotalVAT:           inv.TotalVAT,
		TotalIRPF:          inv.TotalIRPF,
		TotalAmount:        inv.TotalAmount,
		CancellationReason: inv.CancellationReason,
		Revision:           inv.Revision,
		AuditFields:        auditToModel(inv.AuditFields),
	}
	if inv.PurchaseOrderID != "" {
		poID := inv.PurchaseOrderID
		m.PurchaseOrderID = &poID
	}
	return m
}

// InvoiceToDomain converts a db header plus its lines to the domain shape.
func InvoiceToDomain(m models.Invoice, items []models.DocumentItem) domain.Invoice {
	inv := domain.Invoice{
		InvoiceID:          m.InvoiceID,
		ProjectID:          m.ProjectID,
		Number:             m.Number,
		Supplier:           m.Supplier,
		Department:         m.Department,
		Description:        m.Description,
		Status:             domain.InvoiceStatus(m.Status),
		ApprovalStatus:     domain.InvoiceApprovalStatus(m.ApprovalStatus),
		Items:              ItemsToDomain(items),
		ApprovalSteps:      StepsToDomain(m.ApprovalSteps),
		CurrentStep:        m.CurrentStep,
		AutoApproved:       m.AutoApproved,
		Version:            m.Version,
		History:            HistoryToDomain(m.History),
		IsOverInvoiced:     m.IsOverInvoiced,
		TotalBase:          m.TotalBase,
		TotalVAT:           m.TotalVAT,
		TotalIRPF:          m.TotalIRPF,
		TotalAmount:        m.TotalAmount,
		CancellationReason: m.CancellationReason,
		Revision:           m.Revision,
		AuditFields:        auditToDomain(m.AuditFields),
	}
	if m.PurchaseOrderID != nil {
		inv.PurchaseOrderID = *m.PurchaseOrderID
	}
	return inv
}
