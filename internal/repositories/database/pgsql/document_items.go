package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prodledger/production_budget_app/internal/apperrors"
	"github.com/prodledger/production_budget_app/internal/core/domain"
	"github.com/prodledger/production_budget_app/internal/models"
	"github.com/prodledger/production_budget_app/internal/utils/mapping"
)

// Purchase order and invoice lines share one shape; only the table differs.
// Table names come from the two constants below, never from caller input.
const (
	purchaseOrderItemsTable = "purchase_order_items"
	invoiceItemsTable       = "invoice_items"
)

func insertItemsInTx(ctx context.Context, tx pgx.Tx, table, documentID string, items []domain.DocumentItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO ` + table + ` (
			item_id, document_id, line_no, description, quantity, unit_price,
			vat_rate, irpf_rate, base_amount, vat_amount, irpf_amount, total_amount, subaccount_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	batch := &pgx.Batch{}
	for i, item := range items {
		m := mapping.ItemToModel(documentID, i+1, item)
		batch.Queue(query,
			m.ItemID,
			m.DocumentID,
			m.LineNo,
			m.Description,
			m.Quantity,
			m.UnitPrice,
			m.VATRate,
			m.IRPFRate,
			m.BaseAmount,
			m.VATAmount,
			m.IRPFAmount,
			m.TotalAmount,
			m.SubaccountID,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert document items for "+documentID, err)
	}
	return nil
}

// replaceItemsInTx swaps a document's full line set. Item ids are regenerated
// by the service on every draft edit, so delete-and-reinsert is the simplest
// correct move.
func replaceItemsInTx(ctx context.Context, tx pgx.Tx, table, documentID string, items []domain.DocumentItem) error {
	if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE document_id = $1;`, documentID); err != nil {
		return apperrors.NewAppError(500, "failed to clear document items for "+documentID, err)
	}
	return insertItemsInTx(ctx, tx, table, documentID, items)
}

func findItemsByDocumentID(ctx context.Context, pool *pgxpool.Pool, table, documentID string) ([]models.DocumentItem, error) {
	query := `
		SELECT item_id, document_id, line_no, description, quantity, unit_price,
		       vat_rate, irpf_rate, base_amount, vat_amount, irpf_amount, total_amount, subaccount_id
		FROM ` + table + `
		WHERE document_id = $1
		ORDER BY line_no;
	`
	rows, err := pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query document items for "+documentID, err)
	}
	defer rows.Close()

	items := []models.DocumentItem{}
	for rows.Next() {
		var m models.DocumentItem
		if err := rows.Scan(
			&m.ItemID,
			&m.DocumentID,
			&m.LineNo,
			&m.Description,
			&m.Quantity,
			&m.UnitPrice,
			&m.VATRate,
			&m.IRPFRate,
			&m.BaseAmount,
			&m.VATAmount,
			&m.IRPFAmount,
			&m.TotalAmount,
			&m.SubaccountID,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document item row for "+documentID, err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating document item rows for "+documentID, err)
	}
	return items, nil
}

// findItemsByDocumentIDs batch-loads lines for a page of documents, keyed by
// document id. Documents without lines get an empty slice.
func findItemsByDocumentIDs(ctx context.Context, pool *pgxpool.Pool, table string, documentIDs []string) (map[string][]models.DocumentItem, error) {
	out := make(map[string][]models.DocumentItem, len(documentIDs))
	for _, id := range documentIDs {
		out[id] = []models.DocumentItem{}
	}
	if len(documentIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT item_id, document_id, line_no, description, quantity, unit_price,
		       vat_rate, irpf_rate, base_amount, vat_amount, irpf_amount, total_amount, subaccount_id
		FROM ` + table + `
		WHERE document_id = ANY($1)
		ORDER BY document_id, line_no;
	`
	rows, err := pool.Query(ctx, query, documentIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to batch query document items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.DocumentItem
		if err := rows.Scan(
			&m.ItemID,
			&m.DocumentID,
			&m.LineNo,
			&m.Description,
			&m.Quantity,
			&m.UnitPrice,
			&m.VATRate,
			&m.IRPFRate,
			&m.BaseAmount,
			&m.VATAmount,
			&m.IRPFAmount,
			&m.TotalAmount,
			&m.SubaccountID,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document item row during batch fetch", err)
		}
		out[m.DocumentID] = append(out[m.DocumentID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating document item rows during batch fetch", err)
	}
	return out, nil
}
