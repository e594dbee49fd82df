package dto

import "github.com/shopspring/decimal"

// DocumentItemRequest is one purchase order or invoice line as submitted by the caller.
type DocumentItemRequest struct {
	Description  string          `json:"description" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	VATRate      decimal.Decimal `json:"vatRate"`
	IRPFRate     decimal.Decimal `json:"irpfRate"`
	SubaccountID string          `json:"subaccountID" binding:"required"`
}

// CreatePurchaseOrderRequest creates a purchase order, optionally submitting it
// for approval in the same call.
type CreatePurchaseOrderRequest struct {
	Number      string                `json:"number" binding:"required"`
	Supplier    string                `json:"supplier" binding:"required"`
	Department  string                `json:"department" binding:"required"`
	Description string                `json:"description"`
	Items       []DocumentItemRequest `json:"items" binding:"required,min=1,dive"`
	Submit      bool                  `json:"submit"`
}

// UpdatePurchaseOrderRequest edits a draft purchase order.
type UpdatePurchaseOrderRequest struct {
	Supplier    string                `json:"supplier"`
	Department  string                `json:"department"`
	Description string                `json:"description"`
	Items       []DocumentItemRequest `json:"items" binding:"omitempty,min=1,dive"`
}

// ApprovalActionRequest applies an approve or reject action to the current step.
type ApprovalActionRequest struct {
	Action string `json:"action" binding:"required,oneof=APPROVE REJECT"`
	Reason string `json:"reason"`
}

// CancelRequest cancels a document with a mandatory reason.
type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ModifyPurchaseOrderRequest revises an approved purchase order, producing a
// new draft version. Reason is mandatory and recorded in the modification history.
type ModifyPurchaseOrderRequest struct {
	Reason      string                `json:"reason" binding:"required"`
	Supplier    string                `json:"supplier"`
	Department  string                `json:"department"`
	Description string                `json:"description"`
	Items       []DocumentItemRequest `json:"items" binding:"omitempty,min=1,dive"`
}

// ClosePurchaseOrderRequest closes an approved purchase order. When the order
// still carries an uninvoiced balance the caller must acknowledge it explicitly.
type ClosePurchaseOrderRequest struct {
	AcknowledgeUninvoiced bool `json:"acknowledgeUninvoiced"`
}
