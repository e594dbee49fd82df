package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/prodledger/production_budget_app/internal/core/ports/services"
	"github.com/prodledger/production_budget_app/internal/dto"
	"github.com/prodledger/production_budget_app/internal/middleware"
)

// invoiceHandler handles HTTP requests for invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(invoiceService portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: invoiceService}
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Creates a draft invoice, optionally linked to an approved purchase order; submits directly when submit is true
// @Tags invoices
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param invoice body dto.CreateInvoiceRequest true "Invoice"
// @Success 201 {object} domain.Invoice
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 422 {object} map[string]string "Linked purchase order not approved"
// @Router /projects/{projectID}/invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	inv, err := h.invoiceService.CreateInvoice(c.Request.Context(), projectID, req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "createInvoice")
		return
	}

	logger.Info("Invoice created", slog.String("invoice_id", inv.InvoiceID), slog.String("status", string(inv.Status)))
	c.JSON(http.StatusCreated, inv)
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param projectID path string true "Project ID"
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} domain.Invoice
// @Failure 404 {object} map[string]string "Not found"
// @Router /projects/{projectID}/invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	inv, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("projectID"), c.Param("invoiceID"))
	if err != nil {
		respondServiceError(c, logger, err, "getInvoice")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// listInvoices godoc
// @Summary List invoices of a project
// @Tags invoices
// @Produce json
// @Param projectID path string true "Project ID"
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} map[string]interface{} "invoices and optional nextToken"
// @Router /projects/{projectID}/invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, nextToken := listParams(c)

	invoices, newToken, err := h.invoiceService.ListInvoices(c.Request.Context(), c.Param("projectID"), limit, nextToken)
	if err != nil {
		respondServiceError(c, logger, err, "listInvoices")
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices, "nextToken": newToken})
}

// updateInvoice godoc
// @Summary Edit a draft invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param invoiceID path string true "Invoice ID"
// @Param invoice body dto.UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} domain.Invoice
// @Failure 422 {object} map[string]string "Not a draft"
// @Router /projects/{projectID}/invoices/{invoiceID} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	inv, err := h.invoiceService.UpdateDraft(c.Request.Context(), c.Param("projectID"), c.Param("invoiceID"), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "updateInvoice")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// deleteInvoice godoc
// @Summary Delete a draft invoice
// @Tags invoices
// @Param projectID path string true "Project ID"
// @Param invoiceID path string true "Invoice ID"
// @Success 204 "Deleted"
// @Router /projects/{projectID}/invoices/{invoiceID} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.invoiceService.DeleteDraft(c.Request.Context(), c.Param("projectID"), c.Param("invoiceID"), actor); err != nil {
		respondServiceError(c, logger, err, "deleteInvoice")
		return
	}
	c.Status(http.StatusNoContent)
}

// submitInvoice godoc
// @Summary Submit an invoice for approval
// @Tags invoices
// @Produce json
// @Param projectID path string true "Project ID"
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} domain.Invoice
// @Failure 422 {object} map[string]string "Not submittable"
// @Router /projects/{projectID}/invoices/{invoiceID}/submit [post]
func (h *invoiceHandler) submitInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	inv, err := h.invoiceService.Submit(c.Request.Context(), c.Param("projectID"), c.Param("invoiceID"), actor)
	if err != nil {
		respondServiceError(c, logger, err, "submitInvoice")
		return
	}

	logger.Info("Invoice submitted", slog.String("invoice_id", inv.InvoiceID), slog.String("status", string(inv.Status)))
	c.JSON(http.StatusOK, inv)
}

// actOnInvoice godoc
// @Summary Approve or reject the current approval step
// @Tags invoices
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param invoiceID path string true "Invoice ID"
// @Param action body dto.ApprovalActionRequest true "Approval action"
// @Success 200 {object} domain.Invoice
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 422 {object} map[string]string "Actor not eligible or step not pending"
// @Router /projects/{projectID}/invoices/{invoiceID}/action [post]
func (h *invoiceHandler) actOnInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ApprovalActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for actOnInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	inv, err := h.invoiceService.Act(c.Request.Context(), c.Param("projectID"), c.Param("invoiceID"), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "actOnInvoice")
		return
	}

	logger.Info("Approval action applied to invoice",
		slog.String("invoice_id", inv.InvoiceID),
		slog.String("action", req.Action),
		slog.String("status", string(inv.Status)))
	c.JSON(http.StatusOK, inv)
}

// cancelInvoice godoc
// @Summary Cancel an invoice
// @Description Cancels a not-yet-paid invoice; a purchase order link gets its invoiced amount restored
// @Tags invoices
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param invoiceID path string true "Invoice ID"
// @Param cancellation body dto.CancelRequest true "Cancellation reason"
// @Success 200 {object} domain.Invoice
// @Failure 422 {object} map[string]string "Invoice already paid or cancelled"
// @Router /projects/{projectID}/invoices/{invoiceID}/cancel [post]
func (h *invoiceHandler) cancelInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for cancelInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	inv, err := h.invoiceService.Cancel(c.Request.Context(), c.Param("projectID"), c.Param("invoiceID"), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "cancelInvoice")
		return
	}

	logger.Info("Invoice cancelled", slog.String("invoice_id", inv.InvoiceID))
	c.JSON(http.StatusOK, inv)
}

// payInvoice godoc
// @Summary Mark an approved invoice as paid
// @Description Realizes the invoice against the budget: actuals increase and any linked purchase order commitment is released, atomically
// @Tags invoices
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param invoiceID path string true "Invoice ID"
// @Param payment body dto.MarkInvoicePaidRequest true "Payment details"
// @Success 200 {object} domain.Invoice
// @Failure 422 {object} map[string]string "Invoice not awaiting payment"
// @Router /projects/{projectID}/invoices/{invoiceID}/pay [post]
func (h *invoiceHandler) payInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.MarkInvoicePaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for payInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	inv, err := h.invoiceService.MarkPaid(c.Request.Context(), c.Param("projectID"), c.Param("invoiceID"), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "payInvoice")
		return
	}

	logger.Info("Invoice marked paid", slog.String("invoice_id", inv.InvoiceID))
	c.JSON(http.StatusOK, inv)
}

// registerInvoiceRoutes registers invoice routes on a project group.
func registerInvoiceRoutes(project *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := project.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.PUT("/:invoiceID", h.updateInvoice)
		invoices.DELETE("/:invoiceID", h.deleteInvoice)
		invoices.POST("/:invoiceID/submit", h.submitInvoice)
		invoices.POST("/:invoiceID/action", h.actOnInvoice)
		invoices.POST("/:invoiceID/cancel", h.cancelInvoice)
		invoices.POST("/:invoiceID/pay", h.payInvoice)
	}
}
