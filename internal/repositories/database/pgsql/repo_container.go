package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/prodledger/production_budget_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PurchaseOrderRepo:  newPgxPurchaseOrderRepository(dbPool),
		InvoiceRepo:        newPgxInvoiceRepository(dbPool),
		BudgetRepo:         newPgxBudgetRepository(dbPool),
		RosterRepo:         newPgxRosterRepository(dbPool),
		ApprovalConfigRepo: newPgxApprovalConfigRepository(dbPool),
	}
}
