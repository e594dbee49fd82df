package domain

import "time"

// ApproverType selects how a step's eligible approvers are resolved.
type ApproverType string

const (
	ApproverFixed       ApproverType = "FIXED"       // explicit user-id list
	ApproverRole        ApproverType = "ROLE"        // members holding one of the configured project roles
	ApproverHOD         ApproverType = "HOD"         // heads of the relevant department
	ApproverCoordinator ApproverType = "COORDINATOR" // coordinators of the relevant department
)

// ApprovalStepConfig is a workflow step template, part of project configuration.
type ApprovalStepConfig struct {
	Order        int          `json:"order"` // 1-based sequence position
	ApproverType ApproverType `json:"approverType"`
	Approvers    []string     `json:"approvers"`  // used when FIXED
	Roles        []string     `json:"roles"`      // used when ROLE
	Department   string       `json:"department"` // override; empty means use the document's department
	RequireAll   bool         `json:"requireAll"` // every required approver must act vs. any single one
}

// StepStatus is the state of a single approval step on a document.
type StepStatus string

const (
	StepPending  StepStatus = "PENDING"
	StepApproved StepStatus = "APPROVED"
	StepRejected StepStatus = "REJECTED"
)

// ApprovalStep is the per-document snapshot of a step: the config it was built
// from plus the approver set resolved against the roster at submission time,
// frozen for the lifetime of this document version.
type ApprovalStep struct {
	Order           int          `json:"order"`
	ApproverType    ApproverType `json:"approverType"`
	ConfigApprovers []string     `json:"configApprovers"` // FIXED list as configured
	Roles           []string     `json:"roles"`
	Department      string       `json:"department"`
	RequireAll      bool         `json:"requireAll"`
	Approvers       []string     `json:"approvers"` // resolved user ids, frozen at submission
	ApprovedBy      []string     `json:"approvedBy"`
	RejectedBy      []string     `json:"rejectedBy"`
	Status          StepStatus   `json:"status"`
	RejectionReason string       `json:"rejectionReason,omitempty"`
}

// HasActed reports whether the user already approved or rejected this step.
func (s ApprovalStep) HasActed(userID string) bool {
	for _, id := range s.ApprovedBy {
		if id == userID {
			return true
		}
	}
	for _, id := range s.RejectedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// IsEligible reports whether the user belongs to the step's resolved approver set.
func (s ApprovalStep) IsEligible(userID string) bool {
	for _, id := range s.Approvers {
		if id == userID {
			return true
		}
	}
	return false
}

// ModificationRecord is one entry of a document's modification history.
type ModificationRecord struct {
	Date            time.Time `json:"date"`
	UserID          string    `json:"userID"`
	Reason          string    `json:"reason"`
	PreviousVersion int       `json:"previousVersion"`
}
