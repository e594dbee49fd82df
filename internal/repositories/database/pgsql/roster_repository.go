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

type PgxRosterRepository struct {
	BaseRepository
}

func newPgxRosterRepository(pool *pgxpool.Pool) portsrepo.RosterProvider {
	return &PgxRosterRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RosterProvider = (*PgxRosterRepository)(nil)

// ListProjectMembers returns the full roster of a project. Workflow submission
// resolves approvers against this snapshot and freezes the result on the
// document, so the read needs no locking.
func (r *PgxRosterRepository) ListProjectMembers(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	query := `
		SELECT user_id, user_name, project_id, role, department, position
		FROM project_members
		WHERE project_id = $1
		ORDER BY user_name;
	`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query roster for project "+projectID, err)
	}
	defer rows.Close()

	members := []domain.ProjectMember{}
	for rows.Next() {
		var m models.ProjectMember
		if err := rows.Scan(&m.UserID, &m.UserName, &m.ProjectID, &m.Role, &m.Department, &m.Position); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan roster row for project "+projectID, err)
		}
		members = append(members, mapping.MemberToDomain(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating roster rows for project "+projectID, err)
	}
	return members, nil
}
