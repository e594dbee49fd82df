package services

import (
	portsrepo "github.com/prodledger/production_budget_app/internal/core/ports/repositories"
	portssvc "github.com/prodledger/production_budget_app/internal/core/ports/services"
)

// NewServiceContainer wires the service layer from the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Budget = NewBudgetService(repos.BudgetRepo)
	container.ProjectConfig = NewProjectConfigService(repos.RosterRepo, repos.ApprovalConfigRepo)
	container.PurchaseOrder = NewPurchaseOrderService(
		repos.PurchaseOrderRepo,
		repos.BudgetRepo,
		repos.RosterRepo,
		repos.ApprovalConfigRepo,
	)
	container.Invoice = NewInvoiceService(
		repos.InvoiceRepo,
		repos.PurchaseOrderRepo,
		repos.BudgetRepo,
		repos.RosterRepo,
		repos.ApprovalConfigRepo,
	)

	return container
}
