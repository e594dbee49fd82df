package mapping

import (
	"github.com/prodledger/production_budget_app/internal/core/domain"
	"github.com/prodledger/production_budget_app/internal/models"
)

// PurchaseOrderToModel converts a domain purchase order to its db header model.
// Items are persisted separately.
func PurchaseOrderToModel(po domain.PurchaseOrder) models.PurchaseOrder {
	return models.PurchaseOrder{
		PurchaseOrderID:    po.PurchaseOrderID,
		ProjectID:          po.ProjectID,
		Number:             po.Number,
		Supplier:           po.Supplier,
		Department:         po.Department,
		Description:        po.Description,
		Status:             string(po.Status),
		AutoApproved:       po.AutoApproved,
		CurrentStep:        po.CurrentStep,
		ApprovalSteps:      StepsToModel(po.ApprovalSteps),
		Version:            po.Version,
		History:            HistoryToModel(po.History),
		PriorCommitments:   po.PriorCommitments,
		TotalBase:          po.TotalBase,
		TotalVAT:           po.TotalVAT,
		TotalIRPF:          po.TotalIRPF,
		TotalAmount:        po.TotalAmount,
		CommittedAmount:    po.CommittedAmount,
		InvoicedAmount:     po.InvoicedAmount,
		RemainingAmount:    po.RemainingAmount,
		CancellationReason: po.CancellationReason,
		Revision:           po.Revision,
		AuditFields:        auditToModel(po.AuditFields),
	}
}

// PurchaseOrderToDomain converts a db header plus its lines to the domain shape.
func PurchaseOrderToDomain(m models.PurchaseOrder, items []models.DocumentItem) domain.PurchaseOrder {
	return domain.PurchaseOrder{
		PurchaseOrderID:    m.PurchaseOrderID,
		ProjectID:          m.ProjectID,
		Number:             m.Number,
		Supplier:           m.Supplier,
		Department:         m.Department,
		Description:        m.Description,
		Status:             domain.PurchaseOrderStatus(m.Status),
		Items:              ItemsToDomain(items),
		ApprovalSteps:      StepsToDomain(m.ApprovalSteps),
		CurrentStep:        m.CurrentStep,
		AutoApproved:       m.AutoApproved,
		Version:            m.Version,
		History:            HistoryToDomain(m.History),
		PriorCommitments:   m.PriorCommitments,
		TotalBase:          m.TotalBase,
		TotalVAT:           m.TotalVAT,
		TotalIRPF:          m.TotalIRPF,
		TotalAmount:        m.TotalAmount,
		CommittedAmount:    m.CommittedAmount,
		InvoicedAmount:     m.InvoicedAmount,
		RemainingAmount:    m.RemainingAmount,
		CancellationReason: m.CancellationReason,
		Revision:           m.Revision,
		AuditFields:        auditToDomain(m.AuditFields),
	}
}
