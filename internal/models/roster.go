package models

// ProjectMember is the db shape of one roster entry.
type ProjectMember struct {
	UserID     string `db:"user_id"`
	UserName   string `db:"user_name"`
	ProjectID  string `db:"project_id"`
	Role       string `db:"role"`
	Department string `db:"department"`
	Position   string `db:"position"`
}

// ApprovalStepConfig is the db shape of one workflow step template. The
// approvers and roles lists are stored as JSONB.
type ApprovalStepConfig struct {
	ProjectID    string   `db:"project_id"`
	DocumentType string   `db:"document_type"`
	StepOrder    int      `db:"step_order"`
	ApproverType string   `db:"approver_type"`
	Approvers    []string `db:"approvers"`
	Roles        []string `db:"roles"`
	Department   string   `db:"department"`
	RequireAll   bool     `db:"require_all"`
}
