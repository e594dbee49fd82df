package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prodledger/production_budget_app/internal/apperrors"
	"github.com/prodledger/production_budget_app/internal/core/domain"
	portsrepo "github.com/prodledger/production_budget_app/internal/core/ports/repositories"
	"github.com/prodledger/production_budget_app/internal/models"
	"github.com/prodledger/production_budget_app/internal/utils/mapping"
)

type PgxApprovalConfigRepository struct {
	BaseRepository
}

func newPgxApprovalConfigRepository(pool *pgxpool.Pool) portsrepo.ApprovalConfigProvider {
	return &PgxApprovalConfigRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ApprovalConfigProvider = (*PgxApprovalConfigRepository)(nil)

// GetApprovalStepConfigs returns the ordered workflow templates of a project
// for one document type. No rows is a valid configuration: it means documents
// of that type auto-approve on submission.
func (r *PgxApprovalConfigRepository) GetApprovalStepConfigs(ctx context.Context, projectID string, docType domain.DocumentType) ([]domain.ApprovalStepConfig, error) {
	query := `
		SELECT project_id, document_type, step_order, approver_type,
		       approvers, roles, department, require_all
		FROM approval_step_configs
		WHERE project_id = $1 AND document_type = $2
		ORDER BY step_order;
	`
	rows, err := r.Pool.Query(ctx, query, projectID, string(docType))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query approval step configs for project "+projectID, err)
	}
	defer rows.Close()

	configs := []domain.ApprovalStepConfig{}
	for rows.Next() {
		var m models.ApprovalStepConfig
		if err := rows.Scan(
			&m.ProjectID, &m.DocumentType, &m.StepOrder, &m.ApproverType,
			&m.Approvers, &m.Roles, &m.Department, &m.RequireAll,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan approval step config row for project "+projectID, err)
		}
		configs = append(configs, mapping.StepConfigToDomain(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating approval step config rows for project "+projectID, err)
	}
	return configs, nil
}
