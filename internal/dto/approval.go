package dto

import "github.com/prodledger/production_budget_app/internal/core/domain"

// ApprovalPreviewRequest asks what the approval workflow would look like for a
// document draft, before submission.
type ApprovalPreviewRequest struct {
	DocumentType domain.DocumentType `json:"documentType" binding:"required,oneof=PURCHASE_ORDER INVOICE"`
	Department   string              `json:"department" binding:"required"`
}

// ApprovalPreviewStep is one would-be step of the previewed workflow.
type ApprovalPreviewStep struct {
	Order        int                 `json:"order"`
	ApproverType domain.ApproverType `json:"approverType"`
	Approvers    []string            `json:"approvers"`
	RequireAll   bool                `json:"requireAll"`
}

// ApprovalPreviewResponse reports the would-be workflow for a document draft.
type ApprovalPreviewResponse struct {
	AutoApprove bool                  `json:"autoApprove"`
	Steps       []ApprovalPreviewStep `json:"steps"`
}
