package dto

// CreateInvoiceRequest creates an invoice, optionally linked to a purchase
// order and optionally submitted for approval in the same call.
type CreateInvoiceRequest struct {
	Number          string                `json:"number" binding:"required"`
	Supplier        string                `json:"supplier" binding:"required"`
	Department      string                `json:"department" binding:"required"`
	Description     string                `json:"description"`
	Items           []DocumentItemRequest `json:"items" binding:"required,min=1,dive"`
	PurchaseOrderID string                `json:"purchaseOrderID"`
	Submit          bool                  `json:"submit"`
}

// UpdateInvoiceRequest edits a draft invoice.
type UpdateInvoiceRequest struct {
	Supplier    string                `json:"supplier"`
	Department  string                `json:"department"`
	Description string                `json:"description"`
	Items       []DocumentItemRequest `json:"items" binding:"omitempty,min=1,dive"`
}

// MarkInvoicePaidRequest records the payment of an approved invoice.
type MarkInvoicePaidRequest struct {
	PaymentReference string `json:"paymentReference"`
}
