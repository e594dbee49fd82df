package repositories

import (
	"context"

	"github.com/prodledger/production_budget_app/internal/core/domain"
)

// RosterProvider returns the current member roster for a project. Approver
// resolution consumes a snapshot of this at submission time.
type RosterProvider interface {
	ListProjectMembers(ctx context.Context, projectID string) ([]domain.ProjectMember, error)
}

// ApprovalConfigProvider returns the ordered approval step templates configured
// for a project, independently per document type.
type ApprovalConfigProvider interface {
	GetApprovalStepConfigs(ctx context.Context, projectID string, docType domain.DocumentType) ([]domain.ApprovalStepConfig, error)
}
