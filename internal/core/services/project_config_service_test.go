package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/prodledger/production_budget_app/internal/core/domain"
	portssvc "github.com/prodledger/production_budget_app/internal/core/ports/services"
	"github.com/prodledger/production_budget_app/internal/core/services"
	"github.com/prodledger/production_budget_app/internal/dto"
)

type ProjectConfigServiceTestSuite struct {
	suite.Suite
	mockRosterRepo *MockRosterRepository
	mockConfigRepo *MockApprovalConfigRepository
	service        portssvc.ProjectConfigSvcFacade

	projectID string
}

func (suite *ProjectConfigServiceTestSuite) SetupTest() {
	suite.mockRosterRepo = new(MockRosterRepository)
	suite.mockConfigRepo = new(MockApprovalConfigRepository)
	suite.service = services.NewProjectConfigService(suite.mockRosterRepo, suite.mockConfigRepo)

	suite.projectID = uuid.NewString()
}

func (suite *ProjectConfigServiceTestSuite) TestPreviewWorkflowResolvesApprovers() {
	ctx := context.Background()
	hodID := uuid.NewString()
	pmID := uuid.NewString()
	roster := []domain.ProjectMember{
		{UserID: hodID, UserName: "Sam Ruiz", ProjectID: suite.projectID, Department: "CAMERA", Position: domain.PositionHOD},
		{UserID: pmID, UserName: "Alex Petit", ProjectID: suite.projectID, Role: "PM", Department: "PRODUCTION", Position: domain.PositionCrew},
	}
	configs := []domain.ApprovalStepConfig{
		{Order: 1, ApproverType: domain.ApproverHOD},
		{Order: 2, ApproverType: domain.ApproverRole, Roles: []string{"PM"}},
	}

	suite.mockRosterRepo.On("ListProjectMembers", ctx, suite.projectID).Return(roster, nil).Once()
	suite.mockConfigRepo.On("GetApprovalStepConfigs", ctx, suite.projectID, domain.DocTypePurchaseOrder).Return(configs, nil).Once()

	resp, err := suite.service.PreviewWorkflow(ctx, suite.projectID, dto.ApprovalPreviewRequest{
		DocumentType: domain.DocTypePurchaseOrder,
		Department:   "CAMERA",
	})

	suite.Require().NoError(err)
	suite.False(resp.AutoApprove)
	suite.Require().Len(resp.Steps, 2)
	suite.Equal([]string{hodID}, resp.Steps[0].Approvers)
	suite.Equal([]string{pmID}, resp.Steps[1].Approvers)
}

func (suite *ProjectConfigServiceTestSuite) TestPreviewWorkflowAutoApprovesWithoutConfig() {
	ctx := context.Background()

	suite.mockRosterRepo.On("ListProjectMembers", ctx, suite.projectID).Return([]domain.ProjectMember{}, nil).Once()
	suite.mockConfigRepo.On("GetApprovalStepConfigs", ctx, suite.projectID, domain.DocTypeInvoice).Return([]domain.ApprovalStepConfig{}, nil).Once()

	resp, err := suite.service.PreviewWorkflow(ctx, suite.projectID, dto.ApprovalPreviewRequest{
		DocumentType: domain.DocTypeInvoice,
		Department:   "CAMERA",
	})

	suite.Require().NoError(err)
	suite.True(resp.AutoApprove)
	suite.Empty(resp.Steps)
}

func (suite *ProjectConfigServiceTestSuite) TestListMembers() {
	ctx := context.Background()
	roster := []domain.ProjectMember{
		{UserID: uuid.NewString(), UserName: "Sam Ruiz", ProjectID: suite.projectID, Department: "CAMERA", Position: domain.PositionHOD},
	}

	suite.mockRosterRepo.On("ListProjectMembers", ctx, suite.projectID).Return(roster, nil).Once()

	members, err := suite.service.ListMembers(ctx, suite.projectID)

	suite.Require().NoError(err)
	suite.Equal(roster, members)
}

func TestProjectConfigService(t *testing.T) {
	suite.Run(t, new(ProjectConfigServiceTestSuite))
}
