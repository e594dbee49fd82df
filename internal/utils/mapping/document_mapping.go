package mapping

import (
	"github.com/prodledger/production_budget_app/internal/core/domain"
	"github.com/prodledger/production_budget_app/internal/models"
)

// ItemToModel converts a domain document line to its db model.
func ItemToModel(documentID string, lineNo int, item domain.DocumentItem) models.DocumentItem {
	return models.DocumentItem{
		ItemID:       item.ItemID,
		DocumentID:   documentID,
		LineNo:       lineNo,
		Description:  item.Description,
		Quantity:     item.Quantity,
		UnitPrice:    item.UnitPrice,
		VATRate:      item.VATRate,
		IRPFRate:     item.IRPFRate,
		BaseAmount:   item.BaseAmount,
		VATAmount:    item.VATAmount,
		IRPFAmount:   item.IRPFAmount,
		TotalAmount:  item.TotalAmount,
		SubaccountID: item.SubaccountID,
	}
}

// ItemToDomain converts a db document line to the domain shape.
func ItemToDomain(m models.DocumentItem) domain.DocumentItem {
	return domain.DocumentItem{
		ItemID:       m.ItemID,
		Description:  m.Description,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		VATRate:      m.VATRate,
		IRPFRate:     m.IRPFRate,
		BaseAmount:   m.BaseAmount,
		VATAmount:    m.VATAmount,
		IRPFAmount:   m.IRPFAmount,
		TotalAmount:  m.TotalAmount,
		SubaccountID: m.SubaccountID,
	}
}

// ItemsToDomain converts a slice of db lines preserving line order.
func ItemsToDomain(ms []models.DocumentItem) []domain.DocumentItem {
	out := make([]domain.DocumentItem, 0, len(ms))
	for _, m := range ms {
		out = append(out, ItemToDomain(m))
	}
	return out
}

// StepsToModel converts workflow steps to their JSONB payload form.
func StepsToModel(steps []domain.ApprovalStep) []models.ApprovalStep {
	out := make([]models.ApprovalStep, 0, len(steps))
	for _, s := range steps {
		out = append(out, models.ApprovalStep{
			Order:           s.Order,
			ApproverType:    string(s.ApproverType),
			ConfigApprovers: s.ConfigApprovers,
			Roles:           s.Roles,
			Department:      s.Department,
			RequireAll:      s.RequireAll,
			Approvers:       s.Approvers,
			ApprovedBy:      s.ApprovedBy,
			RejectedBy:      s.RejectedBy,
			Status:          string(s.Status),
			RejectionReason: s.RejectionReason,
		})
	}
	return out
}

// StepsToDomain converts persisted JSONB workflow steps back to domain steps.
func StepsToDomain(ms []models.ApprovalStep) []domain.ApprovalStep {
	out := make([]domain.ApprovalStep, 0, len(ms))
	for _, m := range ms {
		out = append(out, domain.ApprovalStep{
			Order:           m.Order,
			ApproverType:    domain.ApproverType(m.ApproverType),
			ConfigApprovers: m.ConfigApprovers,
			Roles:           m.Roles,
			Department:      m.Department,
			RequireAll:      m.RequireAll,
			Approvers:       m.Approvers,
			ApprovedBy:      m.ApprovedBy,
			RejectedBy:      m.RejectedBy,
			Status:          domain.StepStatus(m.Status),
			RejectionReason: m.RejectionReason,
		})
	}
	return out
}

// HistoryToModel converts modification history entries to the JSONB payload form.
func HistoryToModel(history []domain.ModificationRecord) []models.ModificationRecord {
	out := make([]models.ModificationRecord, 0, len(history))
	for _, h := range history {
		out = append(out, models.ModificationRecord{
			Date:            h.Date,
			UserID:          h.UserID,
			Reason:          h.Reason,
			PreviousVersion: h.PreviousVersion,
		})
	}
	return out
}

// HistoryToDomain converts persisted modification history back to domain records.
func HistoryToDomain(ms []models.ModificationRecord) []domain.ModificationRecord {
	out := make([]domain.ModificationRecord, 0, len(ms))
	for _, m := range ms {
		out = append(out, domain.ModificationRecord{
			Date:            m.Date,
			UserID:          m.UserID,
			Reason:          m.Reason,
			PreviousVersion: m.PreviousVersion,
		})
	}
	return out
}

func auditToModel(a domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func auditToDomain(a models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}
