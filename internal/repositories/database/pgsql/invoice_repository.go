package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

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

const invoiceColumns = `
	invoice_id, project_id, number, supplier, department, description,
	status, approval_status, auto_approved, current_step, approval_steps, version,
	modification_history, purchase_order_id, is_over_invoiced,
	total_base, total_vat, total_irpf, total_amount,
	cancellation_reason, revision,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

// CreateInvoice persists a new invoice with its items. A linked purchase
// order's invoiced and remaining amounts move in the same transaction.
func (r *PgxInvoiceRepository) CreateInvoice(ctx context.Context, inv domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.InvoiceToModel(inv)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25);
	`
	_, err = tx.Exec(ctx, query,
		m.InvoiceID, m.ProjectID, m.Number, m.Supplier, m.Department, m.Description,
		m.Status, m.ApprovalStatus, m.AutoApproved, m.CurrentStep, m.ApprovalSteps, m.Version,
		m.History, m.PurchaseOrderID, m.IsOverInvoiced,
		m.TotalBase, m.TotalVAT, m.TotalIRPF, m.TotalAmount,
		m.CancellationReason, m.Revision,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}

	if err := insertItemsInTx(ctx, tx, invoiceItemsTable, inv.InvoiceID, inv.Items); err != nil {
		return err
	}

	if inv.PurchaseOrderID != "" {
		if err := adjustPurchaseOrderInvoicedInTx(ctx, tx, inv.ProjectID, inv.PurchaseOrderID, inv.TotalAmount, inv.CreatedBy, inv.CreatedAt); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// UpdateInvoice persists header, items and approval state under an optimistic
// revision check. A draft edit that changed the total of a linked invoice
// moves the purchase order's invoiced/remaining figures by the delta in the
// same transaction, keeping them in step with what CreateInvoice added.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, inv domain.Invoice, expectedRevision int64, purchaseOrderDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.updateHeaderInTx(ctx, tx, inv, expectedRevision); err != nil {
		return err
	}
	if err := replaceItemsInTx(ctx, tx, invoiceItemsTable, inv.InvoiceID, inv.Items); err != nil {
		return err
	}
	if inv.PurchaseOrderID != "" && !purchaseOrderDelta.IsZero() {
		if err := adjustPurchaseOrderInvoicedInTx(ctx, tx, inv.ProjectID, inv.PurchaseOrderID, purchaseOrderDelta, inv.LastUpdatedBy, inv.LastUpdatedAt); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// CancelInvoice flips the invoice to CANCELLED and gives the invoiced amount
// back to a linked purchase order atomically.
func (r *PgxInvoiceRepository) CancelInvoice(ctx context.Context, inv domain.Invoice, expectedRevision int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.updateHeaderInTx(ctx, tx, inv, expectedRevision); err != nil {
		return err
	}
	if inv.PurchaseOrderID != "" {
		if err := adjustPurchaseOrderInvoicedInTx(ctx, tx, inv.ProjectID, inv.PurchaseOrderID, inv.TotalAmount.Neg(), inv.LastUpdatedBy, inv.LastUpdatedAt); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// MarkPaid flips the invoice to PAID, realizes the actual amounts and, when a
// purchase order is linked, releases the matching commitments. One transaction.
func (r *PgxInvoiceRepository) MarkPaid(ctx context.Context, inv domain.Invoice, expectedRevision int64, actuals map[string]decimal.Decimal, releases map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.updateHeaderInTx(ctx, tx, inv, expectedRevision); err != nil {
		return err
	}
	if err := realizeInTx(ctx, tx, inv.ProjectID, actuals, inv.LastUpdatedBy, inv.LastUpdatedAt); err != nil {
		return err
	}
	if len(releases) > 0 {
		if err := releaseInTx(ctx, tx, inv.ProjectID, releases, inv.LastUpdatedBy, inv.LastUpdatedAt); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// DeleteInvoice removes a draft invoice and its items. A linked purchase
// order gets back the invoiced amount CreateInvoice added, in the same
// transaction, mirroring CancelInvoice.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, inv domain.Invoice, expectedRevision int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE document_id = $1;`, inv.InvoiceID); err != nil {
		return apperrors.NewAppError(500, "failed to delete items for invoice "+inv.InvoiceID, err)
	}

	cmdTag, err := tx.Exec(ctx,
		`DELETE FROM invoices WHERE project_id = $1 AND invoice_id = $2 AND revision = $3;`,
		inv.ProjectID, inv.InvoiceID, expectedRevision,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete invoice "+inv.InvoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	if inv.PurchaseOrderID != "" {
		if err := adjustPurchaseOrderInvoicedInTx(ctx, tx, inv.ProjectID, inv.PurchaseOrderID, inv.TotalAmount.Neg(), inv.LastUpdatedBy, inv.LastUpdatedAt); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// FindInvoiceByID retrieves an invoice with its items.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, projectID, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE project_id = $1 AND invoice_id = $2;
	`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, projectID, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice "+invoiceID, err)
	}

	items, err := findItemsByDocumentID(ctx, r.Pool, invoiceItemsTable, invoiceID)
	if err != nil {
		return nil, err
	}

	inv := mapping.InvoiceToDomain(m, items)
	return &inv, nil
}

// ListInvoicesByProject retrieves a page of invoices, newest first, using a
// keyset cursor over (created_at, invoice_id).
func (r *PgxInvoiceRepository) ListInvoicesByProject(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE project_id = $1
	`
	orderByClause := `ORDER BY created_at DESC, invoice_id DESC`

	args := []interface{}{projectID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (created_at, invoice_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query invoices for project "+projectID, err)
	}
	defer rows.Close()

	headers := make([]models.Invoice, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanInvoice(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan invoice row for project "+projectID, scanErr)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating invoice rows for project "+projectID, err)
	}

	var nextTokenVal *string
	if len(headers) > limit {
		last := headers[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.InvoiceID)
		nextTokenVal = &token
		headers = headers[:limit]
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.InvoiceID
	}
	itemsByID, err := findItemsByDocumentIDs(ctx, r.Pool, invoiceItemsTable, ids)
	if err != nil {
		return nil, nil, err
	}

	invoices := make([]domain.Invoice, len(headers))
	for i, h := range headers {
		invoices[i] = mapping.InvoiceToDomain(h, itemsByID[h.InvoiceID])
	}
	return invoices, nextTokenVal, nil
}

// SumActiveInvoiceTotalsForPurchaseOrder sums the totals of every non-cancelled
// invoice linked to the purchase order. Feeds the over-invoice advisory check;
// the exclusion keeps an invoice being edited from counting its own stored row.
func (r *PgxInvoiceRepository) SumActiveInvoiceTotalsForPurchaseOrder(ctx context.Context, purchaseOrderID, excludeInvoiceID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM invoices
		WHERE purchase_order_id = $1 AND invoice_id <> $2 AND status != 'CANCELLED';
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, purchaseOrderID, excludeInvoiceID).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum invoice totals for purchase order "+purchaseOrderID, err)
	}
	return total, nil
}

func (r *PgxInvoiceRepository) updateHeaderInTx(ctx context.Context, tx pgx.Tx, inv domain.Invoice, expectedRevision int64) error {
	m := mapping.InvoiceToModel(inv)
	query := `
		UPDATE invoices
		SET number = $3, supplier = $4, department = $5, description = $6,
		    status = $7, approval_status = $8, auto_approved = $9, current_step = $10,
		    approval_steps = $11, version = $12, modification_history = $13,
		    purchase_order_id = $14, is_over_invoiced = $15,
		    total_base = $16, total_vat = $17, total_irpf = $18, total_amount = $19,
		    cancellation_reason = $20,
		    revision = revision + 1,
		    last_updated_at = $21, last_updated_by = $22
		WHERE project_id = $1 AND invoice_id = $2 AND revision = $23;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.ProjectID, m.InvoiceID, m.Number, m.Supplier, m.Department, m.Description,
		m.Status, m.ApprovalStatus, m.AutoApproved, m.CurrentStep,
		m.ApprovalSteps, m.Version, m.History,
		m.PurchaseOrderID, m.IsOverInvoiced,
		m.TotalBase, m.TotalVAT, m.TotalIRPF, m.TotalAmount,
		m.CancellationReason,
		m.LastUpdatedAt, m.LastUpdatedBy,
		expectedRevision,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+m.InvoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// adjustPurchaseOrderInvoicedInTx moves a linked order's invoiced/remaining
// figures by delta: positive on invoice creation, the total change on a draft
// edit, negative on cancellation or deletion.
func adjustPurchaseOrderInvoicedInTx(ctx context.Context, tx pgx.Tx, projectID, purchaseOrderID string, delta decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE purchase_orders
		SET invoiced_amount = invoiced_amount + $3,
		    remaining_amount = remaining_amount - $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE project_id = $1 AND purchase_order_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query, projectID, purchaseOrderID, delta, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to adjust invoiced amount for purchase order "+purchaseOrderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID, &m.ProjectID, &m.Number, &m.Supplier, &m.Department, &m.Description,
		&m.Status, &m.ApprovalStatus, &m.AutoApproved, &m.CurrentStep, &m.ApprovalSteps, &m.Version,
		&m.History, &m.PurchaseOrderID, &m.IsOverInvoiced,
		&m.TotalBase, &m.TotalVAT, &m.TotalIRPF, &m.TotalAmount,
		&m.CancellationReason, &m.Revision,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}
