package mapping

import (
	"github.com/prodledger/production_budget_app/internal/core/domain"
	"github.com/prodledger/production_budget_app/internal/models"
)

// MemberToDomain converts a db roster entry to the domain shape.
func MemberToDomain(m models.ProjectMember) domain.ProjectMember {
	return domain.ProjectMember{
		UserID:     m.UserID,
		UserName:   m.UserName,
		ProjectID:  m.ProjectID,
		Role:       m.Role,
		Department: m.Department,
		Position:   domain.MemberPosition(m.Position),
	}
}

// StepConfigToDomain converts a db workflow step template to the domain shape.
func StepConfigToDomain(m models.ApprovalStepConfig) domain.ApprovalStepConfig {
	return domain.ApprovalStepConfig{
		Order:        m.StepOrder,
		ApproverType: domain.ApproverType(m.ApproverType),
		Approvers:    m.Approvers,
		Roles:        m.Roles,
		Department:   m.Department,
		RequireAll:   m.RequireAll,
	}
}
