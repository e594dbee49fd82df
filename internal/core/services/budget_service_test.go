package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/prodledger/production_budget_app/internal/apperrors"
	"github.com/prodledger/production_budget_app/internal/core/domain"
	portssvc "github.com/prodledger/production_budget_app/internal/core/ports/services"
	"github.com/prodledger/production_budget_app/internal/core/services"
	"github.com/prodledger/production_budget_app/internal/dto"
)

type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo *MockBudgetRepository
	service        portssvc.BudgetSvcFacade

	projectID string
	actor     domain.Identity
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.service = services.NewBudgetService(suite.mockBudgetRepo)

	suite.projectID = uuid.NewString()
	suite.actor = domain.Identity{UserID: uuid.NewString(), DisplayName: "Jordan Vale"}
}

func (suite *BudgetServiceTestSuite) TestCreateAccount() {
	ctx := context.Background()
	req := dto.CreateBudgetAccountRequest{Code: "44", Description: "Camera Department"}

	suite.mockBudgetRepo.On("CreateAccount", ctx, mock.AnythingOfType("domain.BudgetAccount")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.projectID, req, suite.actor)

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.Equal("44", account.Code)
	suite.Equal(suite.projectID, account.ProjectID)
	suite.Equal(suite.actor.UserID, account.CreatedBy)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateSubaccountStartsAtZero() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateSubaccountRequest{
		AccountID:   accountID,
		Code:        "4400-01",
		Description: "Camera rentals",
		Budgeted:    decimal.NewFromInt(25000),
	}

	suite.mockBudgetRepo.On("FindAccountByID", ctx, suite.projectID, accountID).Return(&domain.BudgetAccount{AccountID: accountID, ProjectID: suite.projectID}, nil).Once()
	suite.mockBudgetRepo.On("CreateSubaccount", ctx, mock.AnythingOfType("domain.BudgetSubaccount")).Return(nil).Once()

	sub, err := suite.service.CreateSubaccount(ctx, suite.projectID, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(accountID, sub.AccountID)
	suite.True(sub.Budgeted.Equal(decimal.NewFromInt(25000)))
	suite.True(sub.Committed.IsZero())
	suite.True(sub.Actual.IsZero())
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateSubaccountNegativeBudgetFails() {
	ctx := context.Background()
	req := dto.CreateSubaccountRequest{
		AccountID:   uuid.NewString(),
		Code:        "4400-01",
		Description: "Camera rentals",
		Budgeted:    decimal.NewFromInt(-1),
	}

	_, err := suite.service.CreateSubaccount(ctx, suite.projectID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "CreateSubaccount", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestCreateSubaccountUnknownAccountFails() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateSubaccountRequest{
		AccountID:   accountID,
		Code:        "4400-01",
		Description: "Camera rentals",
		Budgeted:    decimal.NewFromInt(25000),
	}

	suite.mockBudgetRepo.On("FindAccountByID", ctx, suite.projectID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateSubaccount(ctx, suite.projectID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "CreateSubaccount", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestUpdateSubaccountBudget() {
	ctx := context.Background()
	subaccountID := uuid.NewString()
	req := dto.UpdateSubaccountBudgetRequest{Budgeted: decimal.NewFromInt(30000)}
	refreshed := &domain.BudgetSubaccount{
		SubaccountID: subaccountID,
		ProjectID:    suite.projectID,
		Budgeted:     decimal.NewFromInt(30000),
	}

	suite.mockBudgetRepo.On("UpdateSubaccountBudgeted", ctx, suite.projectID, subaccountID, req.Budgeted, suite.actor.UserID).Return(nil).Once()
	suite.mockBudgetRepo.On("FindSubaccountByID", ctx, suite.projectID, subaccountID).Return(refreshed, nil).Once()

	sub, err := suite.service.UpdateSubaccountBudget(ctx, suite.projectID, subaccountID, req, suite.actor)

	suite.Require().NoError(err)
	suite.True(sub.Budgeted.Equal(decimal.NewFromInt(30000)))
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestUpdateSubaccountBudgetNegativeFails() {
	ctx := context.Background()
	req := dto.UpdateSubaccountBudgetRequest{Budgeted: decimal.NewFromInt(-500)}

	_, err := suite.service.UpdateSubaccountBudget(ctx, suite.projectID, uuid.NewString(), req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "UpdateSubaccountBudgeted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestGetBudgetSummaryDerivesAvailable() {
	ctx := context.Background()
	subs := []domain.BudgetSubaccount{
		{
			SubaccountID: uuid.NewString(),
			ProjectID:    suite.projectID,
			Code:         "4400-01",
			Budgeted:     decimal.NewFromInt(25000),
			Committed:    decimal.NewFromInt(8000),
			Actual:       decimal.NewFromInt(5000),
		},
	}

	suite.mockBudgetRepo.On("ListSubaccountsByProject", ctx, suite.projectID).Return(subs, nil).Once()

	summaries, err := suite.service.GetBudgetSummary(ctx, suite.projectID)

	suite.Require().NoError(err)
	suite.Require().Len(summaries, 1)
	suite.True(summaries[0].Available.Equal(decimal.NewFromInt(12000)))
}

func TestBudgetService(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
