package approval

import (
	"fmt"
	"sort"

	"github.com/prodledger/production_budget_app/internal/apperrors"
	"github.com/prodledger/production_budget_app/internal/core/domain"
)

// ActionType is the verb an approver applies to the current step.
type ActionType string

const (
	ActionApprove ActionType = "APPROVE"
	ActionReject  ActionType = "REJECT"
)

// Action is one approve/reject attempt by a user on the current step.
type Action struct {
	UserID string
	Type   ActionType
	Reason string // mandatory for rejections
}

// Outcome describes what a successfully applied action did to the workflow.
type Outcome struct {
	StepCompleted bool // the current step reached its completion rule
	Finalized     bool // the last step completed; the document is fully approved
	Rejected      bool // the whole document is rejected
	NextStep      int  // index of the new current step (unchanged unless advanced)
}

// BuildSteps produces the per-document step snapshots from the configured step
// templates and a roster snapshot. It returns autoApproved=true when the
// configuration is empty or every step resolves to an empty approver set; in
// that case the step machinery is skipped entirely and the caller marks the
// document approved immediately.
func BuildSteps(configs []domain.ApprovalStepConfig, documentDepartment string, roster []domain.ProjectMember) ([]domain.ApprovalStep, bool) {
	if len(configs) == 0 {
		return nil, true
	}

	ordered := make([]domain.ApprovalStepConfig, len(configs))
	copy(ordered, configs)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	steps := make([]domain.ApprovalStep, 0, len(ordered))
	anyApprover := false
	for _, cfg := range ordered {
		resolved := Resolve(cfg, documentDepartment, roster)
		if len(resolved) > 0 {
			anyApprover = true
		}
		// Snapshot deduplicated lists: a duplicated id or role name in the
		// configuration must not inflate the requireAll completion count past
		// what the eligible users can ever reach.
		steps = append(steps, domain.ApprovalStep{
			Order:           cfg.Order,
			ApproverType:    cfg.ApproverType,
			ConfigApprovers: dedupe(cfg.Approvers),
			Roles:           dedupe(cfg.Roles),
			Department:      cfg.Department,
			RequireAll:      cfg.RequireAll,
			Approvers:       resolved,
			Status:          domain.StepPending,
		})
	}

	if !anyApprover {
		return nil, true
	}
	return steps, false
}

// Apply records an approve/reject action against the current step, mutating
// the steps slice in place. The caller persists the updated steps together
// with the document-level consequences described by the returned Outcome.
func Apply(steps []domain.ApprovalStep, current int, action Action) (Outcome, error) {
	out := Outcome{NextStep: current}

	if current < 0 || current >= len(steps) {
		return out, fmt.Errorf("%w: no current approval step", apperrors.ErrIllegalTransition)
	}
	step := &steps[current]
	if step.Status != domain.StepPending {
		return out, fmt.Errorf("%w: current step is %s, not pending", apperrors.ErrIllegalTransition, step.Status)
	}
	if !step.IsEligible(action.UserID) {
		return out, fmt.Errorf("%w: user %s is not an eligible approver for this step", apperrors.ErrIllegalTransition, action.UserID)
	}
	if step.HasActed(action.UserID) {
		return out, fmt.Errorf("%w: user %s already acted on this step", apperrors.ErrIllegalTransition, action.UserID)
	}

	switch action.Type {
	case ActionReject:
		if action.Reason == "" {
			return out, fmt.Errorf("%w: a rejection reason is required", apperrors.ErrValidation)
		}
		// Rejection terminates the whole document, not just the step.
		step.RejectedBy = append(step.RejectedBy, action.UserID)
		step.Status = domain.StepRejected
		step.RejectionReason = action.Reason
		out.Rejected = true
		return out, nil

	case ActionApprove:
		step.ApprovedBy = append(step.ApprovedBy, action.UserID)
		if len(step.ApprovedBy) < requiredApprovals(*step) {
			return out, nil
		}
		step.Status = domain.StepApproved
		out.StepCompleted = true
		if current == len(steps)-1 {
			out.Finalized = true
		} else {
			out.NextStep = current + 1
		}
		return out, nil

	default:
		return out, fmt.Errorf("%w: unknown action type %q", apperrors.ErrValidation, action.Type)
	}
}

// requiredApprovals returns how many distinct approvals complete the step.
//
// With requireAll, FIXED counts the distinct configured approvers and HOD/
// COORDINATOR count one. ROLE counts the number of distinct role names, not
// the number of resolved users: a step requiring roles [PM, EP] completes once
// one holder of each has approved, even if three people hold PM. This mirrors
// the historical behaviour of the workflow configuration and is relied upon by
// existing projects; do not change it without sign-off from production accounting.
func requiredApprovals(step domain.ApprovalStep) int {
	if !step.RequireAll {
		return 1
	}
	switch step.ApproverType {
	case domain.ApproverFixed:
		return len(step.ConfigApprovers)
	case domain.ApproverRole:
		return len(step.Roles)
	case domain.ApproverHOD, domain.ApproverCoordinator:
		return 1
	default:
		return 1
	}
}
