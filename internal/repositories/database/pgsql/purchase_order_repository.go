package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prodledger/production_budget_app/internal/apperrors"
	"github.com/prodledger/production_budget_app/internal/core/domain"
	portsrepo "github.com/prodledger/production_budget_app/internal/core/ports/repositories"
	"github.com/prodledger/production_budget_app/internal/models"
	"github.com/prodledger/production_budget_app/internal/utils/mapping"
	"github.com/prodledger/production_budget_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const purchaseOrderColumns = `
	purchase_order_id, project_id, number, supplier, department, description,
	status, auto_approved, current_step, approval_steps, version,
	modification_history, prior_commitments,
	total_base, total_vat, total_irpf, total_amount,
	committed_amount, invoiced_amount, remaining_amount,
	cancellation_reason, revision,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPurchaseOrderRepository struct {
	BaseRepository
}

func newPgxPurchaseOrderRepository(pool *pgxpool.Pool) portsrepo.PurchaseOrderRepositoryFacade {
	return &PgxPurchaseOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PurchaseOrderRepositoryFacade = (*PgxPurchaseOrderRepository)(nil)

// CreatePurchaseOrder persists a new order with its items. For auto-approved
// submissions the commitment increments ride in the same transaction, so the
// order can never exist as APPROVED without its budget effect.
func (r *PgxPurchaseOrderRepository) CreatePurchaseOrder(ctx context.Context, po domain.PurchaseOrder, commitments map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.PurchaseOrderToModel(po)
	query := `
		INSERT INTO purchase_orders (` + purchaseOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26);
	`
	_, err = tx.Exec(ctx, query,
		m.PurchaseOrderID, m.ProjectID, m.Number, m.Supplier, m.Department, m.Description,
		m.Status, m.AutoApproved, m.CurrentStep, m.ApprovalSteps, m.Version,
		m.History, m.PriorCommitments,
		m.TotalBase, m.TotalVAT, m.TotalIRPF, m.TotalAmount,
		m.CommittedAmount, m.InvoicedAmount, m.RemainingAmount,
		m.CancellationReason, m.Revision,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert purchase order "+m.PurchaseOrderID, err)
	}

	if err := insertItemsInTx(ctx, tx, purchaseOrderItemsTable, po.PurchaseOrderID, po.Items); err != nil {
		return err
	}

	if len(commitments) > 0 {
		if err := commitInTx(ctx, tx, po.ProjectID, commitments, po.CreatedBy, po.CreatedAt); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// UpdatePurchaseOrder persists header, items and approval state under an
// optimistic revision check. Zero rows updated means another writer got there
// first and the caller must reload.
func (r *PgxPurchaseOrderRepository) UpdatePurchaseOrder(ctx context.Context, po domain.PurchaseOrder, expectedRevision int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.updateHeaderInTx(ctx, tx, po, expectedRevision); err != nil {
		return err
	}
	if err := replaceItemsInTx(ctx, tx, purchaseOrderItemsTable, po.PurchaseOrderID, po.Items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FinalizeApproval flips the order to APPROVED and applies the budget effect:
// new commitments in, prior-version commitments out, atomically.
func (r *PgxPurchaseOrderRepository) FinalizeApproval(ctx context.Context, po domain.PurchaseOrder, expectedRevision int64, commitments map[string]decimal.Decimal, releases map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.updateHeaderInTx(ctx, tx, po, expectedRevision); err != nil {
		return err
	}
	if err := replaceItemsInTx(ctx, tx, purchaseOrderItemsTable, po.PurchaseOrderID, po.Items); err != nil {
		return err
	}
	if err := commitInTx(ctx, tx, po.ProjectID, commitments, po.LastUpdatedBy, po.LastUpdatedAt); err != nil {
		return err
	}
	if len(releases) > 0 {
		if err := releaseInTx(ctx, tx, po.ProjectID, releases, po.LastUpdatedBy, po.LastUpdatedAt); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// CancelWithRelease flips the order to CANCELLED and gives back the committed
// amounts in the same transaction.
func (r *PgxPurchaseOrderRepository) CancelWithRelease(ctx context.Context, po domain.PurchaseOrder, expectedRevision int64, releases map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.updateHeaderInTx(ctx, tx, po, expectedRevision); err != nil {
		return err
	}
	if len(releases) > 0 {
		if err := releaseInTx(ctx, tx, po.ProjectID, releases, po.LastUpdatedBy, po.LastUpdatedAt); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// DeletePurchaseOrder removes a draft order and its items.
func (r *PgxPurchaseOrderRepository) DeletePurchaseOrder(ctx context.Context, projectID, purchaseOrderID string, expectedRevision int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM purchase_order_items WHERE document_id = $1;`, purchaseOrderID); err != nil {
		return apperrors.NewAppError(500, "failed to delete items for purchase order "+purchaseOrderID, err)
	}

	cmdTag, err := tx.Exec(ctx,
		`DELETE FROM purchase_orders WHERE project_id = $1 AND purchase_order_id = $2 AND revision = $3;`,
		projectID, purchaseOrderID, expectedRevision,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete purchase order "+purchaseOrderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	return r.Commit(ctx, tx)
}

// FindPurchaseOrderByID retrieves an order with its items.
func (r *PgxPurchaseOrderRepository) FindPurchaseOrderByID(ctx context.Context, projectID, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	query := `
		SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders
		WHERE project_id = $1 AND purchase_order_id = $2;
	`
	m, err := scanPurchaseOrder(r.Pool.QueryRow(ctx, query, projectID, purchaseOrderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find purchase order "+purchaseOrderID, err)
	}

	items, err := findItemsByDocumentID(ctx, r.Pool, purchaseOrderItemsTable, purchaseOrderID)
	if err != nil {
		return nil, err
	}

	po := mapping.PurchaseOrderToDomain(m, items)
	return &po, nil
}

// ListPurchaseOrdersByProject retrieves a page of orders, newest first, using
// a keyset cursor over (created_at, purchase_order_id).
func (r *PgxPurchaseOrderRepository) ListPurchaseOrdersByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.PurchaseOrder, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders
		WHERE project_id = $1
	`
	orderByClause := `ORDER BY created_at DESC, purchase_order_id DESC`

	args := []interface{}{projectID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (created_at, purchase_order_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query purchase orders for project "+projectID, err)
	}
	defer rows.Close()

	headers := make([]models.PurchaseOrder, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanPurchaseOrder(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan purchase order row for project "+projectID, scanErr)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating purchase order rows for project "+projectID, err)
	}

	var nextTokenVal *string
	if len(headers) > limit {
		last := headers[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.PurchaseOrderID)
		nextTokenVal = &token
		headers = headers[:limit]
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.PurchaseOrderID
	}
	itemsByID, err := findItemsByDocumentIDs(ctx, r.Pool, purchaseOrderItemsTable, ids)
	if err != nil {
		return nil, nil, err
	}

	orders := make([]domain.PurchaseOrder, len(headers))
	for i, h := range headers {
		orders[i] = mapping.PurchaseOrderToDomain(h, itemsByID[h.PurchaseOrderID])
	}
	return orders, nextTokenVal, nil
}

// updateHeaderInTx writes the full header with a revision guard. The stored
// revision is bumped on success; zero rows affected is a concurrency conflict.
func (r *PgxPurchaseOrderRepository) updateHeaderInTx(ctx context.Context, tx pgx.Tx, po domain.PurchaseOrder, expectedRevision int64) error {
	m := mapping.PurchaseOrderToModel(po)
	query := `
		UPDATE purchase_orders
		SET number = $3, supplier = $4, department = $5, description = $6,
		    status = $7, auto_approved = $8, current_step = $9, approval_steps = $10,
		    version = $11, modification_history = $12, prior_commitments = $13,
		    total_base = $14, total_vat = $15, total_irpf = $16, total_amount = $17,
		    committed_amount = $18, invoiced_amount = $19, remaining_amount = $20,
		    cancellation_reason = $21,
		    revision = revision + 1,
		    last_updated_at = $22, last_updated_by = $23
		WHERE project_id = $1 AND purchase_order_id = $2 AND revision = $24;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.ProjectID, m.PurchaseOrderID, m.Number, m.Supplier, m.Department, m.Description,
		m.Status, m.AutoApproved, m.CurrentStep, m.ApprovalSteps,
		m.Version, m.History, m.PriorCommitments,
		m.TotalBase, m.TotalVAT, m.TotalIRPF, m.TotalAmount,
		m.CommittedAmount, m.InvoicedAmount, m.RemainingAmount,
		m.CancellationReason,
		m.LastUpdatedAt, m.LastUpdatedBy,
		expectedRevision,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update purchase order "+m.PurchaseOrderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

func scanPurchaseOrder(row pgx.Row) (models.PurchaseOrder, error) {
	var m models.PurchaseOrder
	err := row.Scan(
		&m.PurchaseOrderID, &m.ProjectID, &m.Number, &m.Supplier, &m.Department, &m.Description,
		&m.Status, &m.AutoApproved, &m.CurrentStep, &m.ApprovalSteps, &m.Version,
		&m.History, &m.PriorCommitments,
		&m.TotalBase, &m.TotalVAT, &m.TotalIRPF, &m.TotalAmount,
		&m.CommittedAmount, &m.InvoicedAmount, &m.RemainingAmount,
		&m.CancellationReason, &m.Revision,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}
