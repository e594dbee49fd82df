package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prodledger/production_budget_app/internal/apperrors"
	"github.com/prodledger/production_budget_app/internal/core/domain"
	portsrepo "github.com/prodledger/production_budget_app/internal/core/ports/repositories"
	"github.com/prodledger/production_budget_app/internal/models"
	"github.com/prodledger/production_budget_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const subaccountColumns = `
	subaccount_id, account_id, project_id, code, description,
	budgeted, committed, actual,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

// CreateAccount persists a new budget account.
func (r *PgxBudgetRepository) CreateAccount(ctx context.Context, account domain.BudgetAccount) error {
	m := mapping.AccountToModel(account)
	query := `
		INSERT INTO budget_accounts (
			account_id, project_id, code, description,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.ProjectID, m.Code, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert budget account "+m.AccountID, err)
	}
	return nil
}

// CreateSubaccount persists a new budget subaccount with zero committed/actual.
func (r *PgxBudgetRepository) CreateSubaccount(ctx context.Context, subaccount domain.BudgetSubaccount) error {
	m := mapping.SubaccountToModel(subaccount)
	query := `
		INSERT INTO budget_subaccounts (` + subaccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SubaccountID, m.AccountID, m.ProjectID, m.Code, m.Description,
		m.Budgeted, m.Committed, m.Actual,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert budget subaccount "+m.SubaccountID, err)
	}
	return nil
}

// UpdateSubaccountBudgeted reallocates a subaccount's ceiling. Committed and
// actual stay untouched; only the document repositories move those.
func (r *PgxBudgetRepository) UpdateSubaccountBudgeted(ctx context.Context, projectID, subaccountID string, budgeted decimal.Decimal, updatedBy string) error {
	query := `
		UPDATE budget_subaccounts
		SET budgeted = $3, last_updated_at = $4, last_updated_by = $5
		WHERE project_id = $1 AND subaccount_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, projectID, subaccountID, budgeted, time.Now().UTC(), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update budgeted amount for subaccount "+subaccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountByID retrieves a budget account.
func (r *PgxBudgetRepository) FindAccountByID(ctx context.Context, projectID, accountID string) (*domain.BudgetAccount, error) {
	query := `
		SELECT account_id, project_id, code, description,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM budget_accounts
		WHERE project_id = $1 AND account_id = $2;
	`
	var m models.BudgetAccount
	err := r.Pool.QueryRow(ctx, query, projectID, accountID).Scan(
		&m.AccountID, &m.ProjectID, &m.Code, &m.Description,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find budget account "+accountID, err)
	}
	account := mapping.AccountToDomain(m)
	return &account, nil
}

// ListAccountsByProject retrieves all budget accounts of a project in code order.
func (r *PgxBudgetRepository) ListAccountsByProject(ctx context.Context, projectID string) ([]domain.BudgetAccount, error) {
	query := `
		SELECT account_id, project_id, code, description,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM budget_accounts
		WHERE project_id = $1
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query budget accounts for project "+projectID, err)
	}
	defer rows.Close()

	accounts := []domain.BudgetAccount{}
	for rows.Next() {
		var m models.BudgetAccount
		if err := rows.Scan(
			&m.AccountID, &m.ProjectID, &m.Code, &m.Description,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan budget account row for project "+projectID, err)
		}
		accounts = append(accounts, mapping.AccountToDomain(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating budget account rows for project "+projectID, err)
	}
	return accounts, nil
}

// FindSubaccountByID retrieves a budget subaccount.
func (r *PgxBudgetRepository) FindSubaccountByID(ctx context.Context, projectID, subaccountID string) (*domain.BudgetSubaccount, error) {
	query := `
		SELECT ` + subaccountColumns + `
		FROM budget_subaccounts
		WHERE project_id = $1 AND subaccount_id = $2;
	`
	m, err := scanSubaccount(r.Pool.QueryRow(ctx, query, projectID, subaccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find budget subaccount "+subaccountID, err)
	}
	sub := mapping.SubaccountToDomain(m)
	return &sub, nil
}

// FindSubaccountsByIDs retrieves several subaccounts at once, keyed by id.
// Any missing id fails the whole lookup with ErrNotFound so document
// validation never proceeds on a partial set.
func (r *PgxBudgetRepository) FindSubaccountsByIDs(ctx context.Context, projectID string, subaccountIDs []string) (map[string]domain.BudgetSubaccount, error) {
	if len(subaccountIDs) == 0 {
		return map[string]domain.BudgetSubaccount{}, nil
	}
	query := `
		SELECT ` + subaccountColumns + `
		FROM budget_subaccounts
		WHERE project_id = $1 AND subaccount_id = ANY($2);
	`
	rows, err := r.Pool.Query(ctx, query, projectID, subaccountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to batch query budget subaccounts", err)
	}
	defer rows.Close()

	out := make(map[string]domain.BudgetSubaccount, len(subaccountIDs))
	for rows.Next() {
		m, scanErr := scanSubaccount(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan budget subaccount row during batch fetch", scanErr)
		}
		out[m.SubaccountID] = mapping.SubaccountToDomain(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating budget subaccount rows during batch fetch", err)
	}

	for _, id := range subaccountIDs {
		if _, ok := out[id]; !ok {
			return nil, apperrors.ErrNotFound
		}
	}
	return out, nil
}

// ListSubaccountsByAccount retrieves the subaccounts under one account in code order.
func (r *PgxBudgetRepository) ListSubaccountsByAccount(ctx context.Context, projectID, accountID string) ([]domain.BudgetSubaccount, error) {
	query := `
		SELECT ` + subaccountColumns + `
		FROM budget_subaccounts
		WHERE project_id = $1 AND account_id = $2
		ORDER BY code;
	`
	return r.listSubaccounts(ctx, query, projectID, accountID)
}

// ListSubaccountsByProject retrieves all subaccounts of a project in code order.
func (r *PgxBudgetRepository) ListSubaccountsByProject(ctx context.Context, projectID string) ([]domain.BudgetSubaccount, error) {
	query := `
		SELECT ` + subaccountColumns + `
		FROM budget_subaccounts
		WHERE project_id = $1
		ORDER BY code;
	`
	return r.listSubaccounts(ctx, query, projectID)
}

func (r *PgxBudgetRepository) listSubaccounts(ctx context.Context, query string, args ...interface{}) ([]domain.BudgetSubaccount, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query budget subaccounts", err)
	}
	defer rows.Close()

	subs := []domain.BudgetSubaccount{}
	for rows.Next() {
		m, scanErr := scanSubaccount(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan budget subaccount row", scanErr)
		}
		subs = append(subs, mapping.SubaccountToDomain(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating budget subaccount rows", err)
	}
	return subs, nil
}

func scanSubaccount(row pgx.Row) (models.BudgetSubaccount, error) {
	var m models.BudgetSubaccount
	err := row.Scan(
		&m.SubaccountID, &m.AccountID, &m.ProjectID, &m.Code, &m.Description,
		&m.Budgeted, &m.Committed, &m.Actual,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}
