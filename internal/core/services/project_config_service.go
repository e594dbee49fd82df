package services

import (
	"context"

	"github.com/prodledger/production_budget_app/internal/core/approval"
	"github.com/prodledger/production_budget_app/internal/core/domain"
	portsrepo "github.com/prodledger/production_budget_app/internal/core/ports/repositories"
	portssvc "github.com/prodledger/production_budget_app/internal/core/ports/services"
	"github.com/prodledger/production_budget_app/internal/dto"
)

// projectConfigService exposes the roster and approval configuration, and the
// pre-submission workflow preview.
type projectConfigService struct {
	rosterRepo portsrepo.RosterProvider
	configRepo portsrepo.ApprovalConfigProvider
}

// NewProjectConfigService creates a new project configuration service.
func NewProjectConfigService(rosterRepo portsrepo.RosterProvider, configRepo portsrepo.ApprovalConfigProvider) portssvc.ProjectConfigSvcFacade {
	return &projectConfigService{rosterRepo: rosterRepo, configRepo: configRepo}
}

var _ portssvc.ProjectConfigSvcFacade = (*projectConfigService)(nil)

func (s *projectConfigService) ListMembers(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	return s.rosterRepo.ListProjectMembers(ctx, projectID)
}

func (s *projectConfigService) GetApprovalConfig(ctx context.Context, projectID string, docType domain.DocumentType) ([]domain.ApprovalStepConfig, error) {
	return s.configRepo.GetApprovalStepConfigs(ctx, projectID, docType)
}

// PreviewWorkflow resolves the configured steps against the current roster
// without persisting anything.
func (s *projectConfigService) PreviewWorkflow(ctx context.Context, projectID string, req dto.ApprovalPreviewRequest) (*dto.ApprovalPreviewResponse, error) {
	roster, err := s.rosterRepo.ListProjectMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	configs, err := s.configRepo.GetApprovalStepConfigs(ctx, projectID, req.DocumentType)
	if err != nil {
		return nil, err
	}

	steps, auto := approval.BuildSteps(configs, req.Department, roster)
	resp := &dto.ApprovalPreviewResponse{AutoApprove: auto}
	for _, st := range steps {
		resp.Steps = append(resp.Steps, dto.ApprovalPreviewStep{
			Order:        st.Order,
			ApproverType: st.ApproverType,
			Approvers:    st.Approvers,
			RequireAll:   st.RequireAll,
		})
	}
	return resp, nil
}
