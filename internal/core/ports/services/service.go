package services

// ServiceContainer bundles every service facade for route registration.
type ServiceContainer struct {
	PurchaseOrder PurchaseOrderSvcFacade
	Invoice       InvoiceSvcFacade
	Budget        BudgetSvcFacade
	ProjectConfig ProjectConfigSvcFacade
}
