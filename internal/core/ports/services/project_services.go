package services

import (
	"context"

	"github.com/prodledger/production_budget_app/internal/core/domain"
	"github.com/prodledger/production_budget_app/internal/dto"
)

// ProjectConfigSvcFacade exposes read access to the roster and the approval
// workflow configuration, plus the pre-submission workflow preview.
type ProjectConfigSvcFacade interface {
	ListMembers(ctx context.Context, projectID string) ([]domain.ProjectMember, error)
	GetApprovalConfig(ctx context.Context, projectID string, docType domain.DocumentType) ([]domain.ApprovalStepConfig, error)

	// PreviewWorkflow resolves the configured steps against the current roster
	// without persisting anything, so callers can show the would-be workflow
	// before submission.
	PreviewWorkflow(ctx context.Context, projectID string, req dto.ApprovalPreviewRequest) (*dto.ApprovalPreviewResponse, error)
}
