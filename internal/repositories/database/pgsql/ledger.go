package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/prodledger/production_budget_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// The three ledger mutations below are the only writers of the committed and
// actual columns. Each runs inside a caller-owned transaction so that a
// document state change and its ledger effect land together or not at all.
// A target row that is missing or not updated aborts the whole transaction
// with ErrLedgerInconsistency.

func commitInTx(ctx context.Context, tx pgx.Tx, projectID string, amounts map[string]decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE budget_subaccounts
		SET committed = committed + $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE project_id = $1 AND subaccount_id = $2;
	`
	for subaccountID, amount := range amounts {
		if amount.IsZero() {
			continue
		}
		cmdTag, err := tx.Exec(ctx, query, projectID, subaccountID, amount, now, userID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to commit budget for subaccount "+subaccountID, err)
		}
		if cmdTag.RowsAffected() != 1 {
			return apperrors.ErrLedgerInconsistency
		}
	}
	return nil
}

// releaseInTx lowers committed figures, floored at zero so a release can never
// drive a subaccount's commitment negative.
func releaseInTx(ctx context.Context, tx pgx.Tx, projectID string, amounts map[string]decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE budget_subaccounts
		SET committed = GREATEST(0, committed - $3),
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE project_id = $1 AND subaccount_id = $2;
	`
	for subaccountID, amount := range amounts {
		if amount.IsZero() {
			continue
		}
		cmdTag, err := tx.Exec(ctx, query, projectID, subaccountID, amount, now, userID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to release budget for subaccount "+subaccountID, err)
		}
		if cmdTag.RowsAffected() != 1 {
			return apperrors.ErrLedgerInconsistency
		}
	}
	return nil
}

func realizeInTx(ctx context.Context, tx pgx.Tx, projectID string, amounts map[string]decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE budget_subaccounts
		SET actual = actual + $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE project_id = $1 AND subaccount_id = $2;
	`
	for subaccountID, amount := range amounts {
		if amount.IsZero() {
			continue
		}
		cmdTag, err := tx.Exec(ctx, query, projectID, subaccountID, amount, now, userID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to realize actuals for subaccount "+subaccountID, err)
		}
		if cmdTag.RowsAffected() != 1 {
			return apperrors.ErrLedgerInconsistency
		}
	}
	return nil
}
