package repositories

// RepositoryProvider bundles every repository the service layer needs.
type RepositoryProvider struct {
	PurchaseOrderRepo  PurchaseOrderRepositoryFacade
	InvoiceRepo        InvoiceRepositoryFacade
	BudgetRepo         BudgetRepositoryFacade
	RosterRepo         RosterProvider
	ApprovalConfigRepo ApprovalConfigProvider
}
