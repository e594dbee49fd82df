// Package approval implements approver resolution and the sequential approval
// state machine shared by purchase orders and invoices. It is pure domain
// logic: callers supply a roster snapshot and persist the resulting step state.
package approval

import "github.com/prodledger/production_budget_app/internal/core/domain"

// Resolve computes the concrete set of user ids eligible to act on a step,
// given the step configuration, the document's department and a roster
// snapshot. Resolution happens once, at submission (or resubmission) time; the
// result is frozen on the step so later roster changes never alter who may act
// on an in-flight document.
//
// An unknown approver type resolves to the empty set.
func Resolve(cfg domain.ApprovalStepConfig, documentDepartment string, roster []domain.ProjectMember) []string {
	switch cfg.ApproverType {
	case domain.ApproverFixed:
		return dedupe(cfg.Approvers)
	case domain.ApproverRole:
		roleSet := make(map[string]bool, len(cfg.Roles))
		for _, r := range cfg.Roles {
			roleSet[r] = true
		}
		var out []string
		for _, m := range roster {
			if m.Role != "" && roleSet[m.Role] {
				out = append(out, m.UserID)
			}
		}
		return dedupe(out)
	case domain.ApproverHOD:
		return byPosition(domain.PositionHOD, cfg, documentDepartment, roster)
	case domain.ApproverCoordinator:
		return byPosition(domain.PositionCoordinator, cfg, documentDepartment, roster)
	default:
		return nil
	}
}

// byPosition returns roster members holding the given position in the step's
// department override if present, else the document's department.
func byPosition(pos domain.MemberPosition, cfg domain.ApprovalStepConfig, documentDepartment string, roster []domain.ProjectMember) []string {
	department := cfg.Department
	if department == "" {
		department = documentDepartment
	}
	var out []string
	for _, m := range roster {
		if m.Position == pos && m.Department == department {
			out = append(out, m.UserID)
		}
	}
	return dedupe(out)
}

// dedupe removes duplicate user ids, preserving first-seen order.
func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
