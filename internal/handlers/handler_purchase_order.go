package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/prodledger/production_budget_app/internal/core/ports/services"
	"github.com/prodledger/production_budget_app/internal/dto"
	"github.com/prodledger/production_budget_app/internal/middleware"
)

// purchaseOrderHandler handles HTTP requests for purchase orders.
type purchaseOrderHandler struct {
	poService portssvc.PurchaseOrderSvcFacade
}

func newPurchaseOrderHandler(poService portssvc.PurchaseOrderSvcFacade) *purchaseOrderHandler {
	return &purchaseOrderHandler{poService: poService}
}

// createPurchaseOrder godoc
// @Summary Create a purchase order
// @Description Creates a draft purchase order, or submits it for approval directly when submit is true
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param order body dto.CreatePurchaseOrderRequest true "Purchase order"
// @Success 201 {object} domain.PurchaseOrder
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /projects/{projectID}/purchase-orders [post]
func (h *purchaseOrderHandler) createPurchaseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	var req dto.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPurchaseOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	po, err := h.poService.CreatePurchaseOrder(c.Request.Context(), projectID, req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "createPurchaseOrder")
		return
	}

	logger.Info("Purchase order created", slog.String("purchase_order_id", po.PurchaseOrderID), slog.String("status", string(po.Status)))
	c.JSON(http.StatusCreated, po)
}

// getPurchaseOrder godoc
// @Summary Get a purchase order
// @Tags purchase-orders
// @Produce json
// @Param projectID path string true "Project ID"
// @Param purchaseOrderID path string true "Purchase order ID"
// @Success 200 {object} domain.PurchaseOrder
// @Failure 404 {object} map[string]string "Not found"
// @Router /projects/{projectID}/purchase-orders/{purchaseOrderID} [get]
func (h *purchaseOrderHandler) getPurchaseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	po, err := h.poService.GetPurchaseOrder(c.Request.Context(), c.Param("projectID"), c.Param("purchaseOrderID"))
	if err != nil {
		respondServiceError(c, logger, err, "getPurchaseOrder")
		return
	}
	c.JSON(http.StatusOK, po)
}

// listPurchaseOrders godoc
// @Summary List purchase orders of a project
// @Tags purchase-orders
// @Produce json
// @Param projectID path string true "Project ID"
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} map[string]interface{} "orders and optional nextToken"
// @Router /projects/{projectID}/purchase-orders [get]
func (h *purchaseOrderHandler) listPurchaseOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, nextToken := listParams(c)

	orders, newToken, err := h.poService.ListPurchaseOrders(c.Request.Context(), c.Param("projectID"), limit, nextToken)
	if err != nil {
		respondServiceError(c, logger, err, "listPurchaseOrders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchaseOrders": orders, "nextToken": newToken})
}

// updatePurchaseOrder godoc
// @Summary Edit a draft purchase order
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param purchaseOrderID path string true "Purchase order ID"
// @Param order body dto.UpdatePurchaseOrderRequest true "Fields to update"
// @Success 200 {object} domain.PurchaseOrder
// @Failure 422 {object} map[string]string "Not a draft"
// @Router /projects/{projectID}/purchase-orders/{purchaseOrderID} [put]
func (h *purchaseOrderHandler) updatePurchaseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updatePurchaseOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	po, err := h.poService.UpdateDraft(c.Request.Context(), c.Param("projectID"), c.Param("purchaseOrderID"), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "updatePurchaseOrder")
		return
	}
	c.JSON(http.StatusOK, po)
}

// deletePurchaseOrder godoc
// @Summary Delete a draft purchase order
// @Tags purchase-orders
// @Param projectID path string true "Project ID"
// @Param purchaseOrderID path string true "Purchase order ID"
// @Success 204 "Deleted"
// @Failure 422 {object} map[string]string "Not a deletable draft"
// @Router /projects/{projectID}/purchase-orders/{purchaseOrderID} [delete]
func (h *purchaseOrderHandler) deletePurchaseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.poService.DeleteDraft(c.Request.Context(), c.Param("projectID"), c.Param("purchaseOrderID"), actor); err != nil {
		respondServiceError(c, logger, err, "deletePurchaseOrder")
		return
	}
	c.Status(http.StatusNoContent)
}

// submitPurchaseOrder godoc
// @Summary Submit a purchase order for approval
// @Description Resolves the approval workflow against the current roster; auto-approves and commits budget when no steps apply
// @Tags purchase-orders
// @Produce json
// @Param projectID path string true "Project ID"
// @Param purchaseOrderID path string true "Purchase order ID"
// @Success 200 {object} domain.PurchaseOrder
// @Failure 422 {object} map[string]string "Not submittable"
// @Router /projects/{projectID}/purchase-orders/{purchaseOrderID}/submit [post]
func (h *purchaseOrderHandler) submitPurchaseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	po, err := h.poService.Submit(c.Request.Context(), c.Param("projectID"), c.Param("purchaseOrderID"), actor)
	if err != nil {
		respondServiceError(c, logger, err, "submitPurchaseOrder")
		return
	}

	logger.Info("Purchase order submitted", slog.String("purchase_order_id", po.PurchaseOrderID), slog.String("status", string(po.Status)))
	c.JSON(http.StatusOK, po)
}

// actOnPurchaseOrder godoc
// @Summary Approve or reject the current approval step
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param purchaseOrderID path string true "Purchase order ID"
// @Param action body dto.ApprovalActionRequest true "Approval action"
// @Success 200 {object} domain.PurchaseOrder
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 422 {object} map[string]string "Actor not eligible or step not pending"
// @Router /projects/{projectID}/purchase-orders/{purchaseOrderID}/action [post]
func (h *purchaseOrderHandler) actOnPurchaseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ApprovalActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for actOnPurchaseOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	po, err := h.poService.Act(c.Request.Context(), c.Param("projectID"), c.Param("purchaseOrderID"), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "actOnPurchaseOrder")
		return
	}

	logger.Info("Approval action applied to purchase order",
		slog.String("purchase_order_id", po.PurchaseOrderID),
		slog.String("action", req.Action),
		slog.String("status", string(po.Status)))
	c.JSON(http.StatusOK, po)
}

// cancelPurchaseOrder godoc
// @Summary Cancel a purchase order
// @Description Cancels a draft, or an approved order with no linked invoices, releasing its budget commitment
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param purchaseOrderID path string true "Purchase order ID"
// @Param cancellation body dto.CancelRequest true "Cancellation reason"
// @Success 200 {object} domain.PurchaseOrder
// @Failure 409 {object} map[string]string "Order has linked invoices"
// @Router /projects/{projectID}/purchase-orders/{purchaseOrderID}/cancel [post]
func (h *purchaseOrderHandler) cancelPurchaseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for cancelPurchaseOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	po, err := h.poService.Cancel(c.Request.Context(), c.Param("projectID"), c.Param("purchaseOrderID"), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "cancelPurchaseOrder")
		return
	}

	logger.Info("Purchase order cancelled", slog.String("purchase_order_id", po.PurchaseOrderID))
	c.JSON(http.StatusOK, po)
}

// modifyPurchaseOrder godoc
// @Summary Modify an approved purchase order
// @Description Produces a new draft version; the prior commitment stays on the books until the new version is approved or the order is cancelled
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param purchaseOrderID path string true "Purchase order ID"
// @Param modification body dto.ModifyPurchaseOrderRequest true "Modification"
// @Success 200 {object} domain.PurchaseOrder
// @Failure 422 {object} map[string]string "Order not approved"
// @Router /projects/{projectID}/purchase-orders/{purchaseOrderID}/modify [post]
func (h *purchaseOrderHandler) modifyPurchaseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ModifyPurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for modifyPurchaseOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	po, err := h.poService.Modify(c.Request.Context(), c.Param("projectID"), c.Param("purchaseOrderID"), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "modifyPurchaseOrder")
		return
	}

	logger.Info("Purchase order modified", slog.String("purchase_order_id", po.PurchaseOrderID), slog.Int("version", po.Version))
	c.JSON(http.StatusOK, po)
}

// closePurchaseOrder godoc
// @Summary Close an approved purchase order
// @Description Closing keeps the budget commitment; an uninvoiced remainder must be acknowledged explicitly
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param purchaseOrderID path string true "Purchase order ID"
// @Param closing body dto.ClosePurchaseOrderRequest true "Closing acknowledgement"
// @Success 200 {object} domain.PurchaseOrder
// @Failure 409 {object} map[string]string "Uninvoiced balance not acknowledged"
// @Router /projects/{projectID}/purchase-orders/{purchaseOrderID}/close [post]
func (h *purchaseOrderHandler) closePurchaseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ClosePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for closePurchaseOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	po, err := h.poService.Close(c.Request.Context(), c.Param("projectID"), c.Param("purchaseOrderID"), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "closePurchaseOrder")
		return
	}

	logger.Info("Purchase order closed", slog.String("purchase_order_id", po.PurchaseOrderID))
	c.JSON(http.StatusOK, po)
}

// registerPurchaseOrderRoutes registers purchase order routes on a project group.
func registerPurchaseOrderRoutes(project *gin.RouterGroup, poService portssvc.PurchaseOrderSvcFacade) {
	h := newPurchaseOrderHandler(poService)

	orders := project.Group("/purchase-orders")
	{
		orders.POST("", h.createPurchaseOrder)
		orders.GET("", h.listPurchaseOrders)
		orders.GET("/:purchaseOrderID", h.getPurchaseOrder)
		orders.PUT("/:purchaseOrderID", h.updatePurchaseOrder)
		orders.DELETE("/:purchaseOrderID", h.deletePurchaseOrder)
		orders.POST("/:purchaseOrderID/submit", h.submitPurchaseOrder)
		orders.POST("/:purchaseOrderID/action", h.actOnPurchaseOrder)
		orders.POST("/:purchaseOrderID/cancel", h.cancelPurchaseOrder)
		orders.POST("/:purchaseOrderID/modify", h.modifyPurchaseOrder)
		orders.POST("/:purchaseOrderID/close", h.closePurchaseOrder)
	}
}
