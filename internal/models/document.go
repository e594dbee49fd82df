package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalStep is the JSONB payload persisted per document for one workflow step.
type ApprovalStep struct {
	Order           int      `json:"order"`
	ApproverType    string   `json:"approverType"`
	ConfigApprovers []string `json:"configApprovers"`
	Roles           []string `json:"roles"`
	Department      string   `json:"department"`
	RequireAll      bool     `json:"requireAll"`
	Approvers       []string `json:"approvers"`
	ApprovedBy      []string `json:"approvedBy"`
	RejectedBy      []string `json:"rejectedBy"`
	Status          string   `json:"status"`
	RejectionReason string   `json:"rejectionReason,omitempty"`
}

// ModificationRecord is the JSONB payload of one modification history entry.
type ModificationRecord struct {
	Date            time.Time `json:"date"`
	UserID          string    `json:"userId"`
	Reason          string    `json:"reason"`
	PreviousVersion int       `json:"previousVersion"`
}

// DocumentItem is the db shape of one purchase order or invoice line.
type DocumentItem struct {
	ItemID       string          `db:"item_id"`
	DocumentID   string          `db:"document_id"`
	LineNo       int             `db:"line_no"`
	Description  string          `db:"description"`
	Quantity     decimal.Decimal `db:"quantity"`
	UnitPrice    decimal.Decimal `db:"unit_price"`
	VATRate      decimal.Decimal `db:"vat_rate"`
	IRPFRate     decimal.Decimal `db:"irpf_rate"`
	BaseAmount   decimal.Decimal `db:"base_amount"`
	VATAmount    decimal.Decimal `db:"vat_amount"`
	IRPFAmount   decimal.Decimal `db:"irpf_amount"`
	TotalAmount  decimal.Decimal `db:"total_amount"`
	SubaccountID string          `db:"subaccount_id"`
}
