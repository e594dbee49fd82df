package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prodledger/production_budget_app/internal/apperrors"
	"github.com/prodledger/production_budget_app/internal/core/domain"
	portsrepo "github.com/prodledger/production_budget_app/internal/core/ports/repositories"
	portssvc "github.com/prodledger/production_budget_app/internal/core/ports/services"
	"github.com/prodledger/production_budget_app/internal/dto"
)

// budgetService manages the project budget structure. Committed and actual
// figures are read-only here: they move exclusively through the atomic ledger
// increments performed inside the document repositories.
type budgetService struct {
	budgetRepo portsrepo.BudgetRepositoryFacade
}

// NewBudgetService creates a new budget service.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade) portssvc.BudgetSvcFacade {
	return &budgetService{budgetRepo: budgetRepo}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) CreateAccount(ctx context.Context, projectID string, req dto.CreateBudgetAccountRequest, actor domain.Identity) (*domain.BudgetAccount, error) {
	now := time.Now().UTC()
	account := domain.BudgetAccount{
		AccountID:   uuid.NewString(),
		ProjectID:   projectID,
		Code:        req.Code,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if err := s.budgetRepo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *budgetService) ListAccounts(ctx context.Context, projectID string) ([]domain.BudgetAccount, error) {
	return s.budgetRepo.ListAccountsByProject(ctx, projectID)
}

func (s *budgetService) CreateSubaccount(ctx context.Context, projectID string, req dto.CreateSubaccountRequest, actor domain.Identity) (*domain.BudgetSubaccount, error) {
	if req.Budgeted.IsNegative() {
		return nil, fmt.Errorf("%w: budgeted amount must not be negative", apperrors.ErrValidation)
	}
	if _, err := s.budgetRepo.FindAccountByID(ctx, projectID, req.AccountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sub := domain.BudgetSubaccount{
		SubaccountID: uuid.NewString(),
		AccountID:    req.AccountID,
		ProjectID:    projectID,
		Code:         req.Code,
		Description:  req.Description,
		Budgeted:     req.Budgeted,
		Committed:    decimal.Zero,
		Actual:       decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if err := s.budgetRepo.CreateSubaccount(ctx, sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *budgetService) UpdateSubaccountBudget(ctx context.Context, projectID, subaccountID string, req dto.UpdateSubaccountBudgetRequest, actor domain.Identity) (*domain.BudgetSubaccount, error) {
	if req.Budgeted.IsNegative() {
		return nil, fmt.Errorf("%w: budgeted amount must not be negative", apperrors.ErrValidation)
	}
	if err := s.budgetRepo.UpdateSubaccountBudgeted(ctx, projectID, subaccountID, req.Budgeted, actor.UserID); err != nil {
		return nil, err
	}
	return s.budgetRepo.FindSubaccountByID(ctx, projectID, subaccountID)
}

func (s *budgetService) GetSubaccount(ctx context.Context, projectID, subaccountID string) (*dto.SubaccountSummary, error) {
	sub, err := s.budgetRepo.FindSubaccountByID(ctx, projectID, subaccountID)
	if err != nil {
		return nil, err
	}
	summary := dto.NewSubaccountSummary(*sub)
	return &summary, nil
}

func (s *budgetService) GetBudgetSummary(ctx context.Context, projectID string) ([]dto.SubaccountSummary, error) {
	subs, err := s.budgetRepo.ListSubaccountsByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.SubaccountSummary, len(subs))
	for i, sub := range subs {
		summaries[i] = dto.NewSubaccountSummary(sub)
	}
	return summaries, nil
}
