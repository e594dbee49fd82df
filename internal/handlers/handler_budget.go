package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/prodledger/production_budget_app/internal/core/ports/services"
	"github.com/prodledger/production_budget_app/internal/dto"
	"github.com/prodledger/production_budget_app/internal/middleware"
)

// budgetHandler handles HTTP requests for the budget structure and figures.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(budgetService portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: budgetService}
}

// createAccount godoc
// @Summary Create a budget account
// @Tags budget
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param account body dto.CreateBudgetAccountRequest true "Budget account"
// @Success 201 {object} domain.BudgetAccount
// @Router /projects/{projectID}/budget/accounts [post]
func (h *budgetHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBudgetAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.budgetService.CreateAccount(c.Request.Context(), c.Param("projectID"), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "createAccount")
		return
	}

	logger.Info("Budget account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, account)
}

// listAccounts godoc
// @Summary List budget accounts of a project
// @Tags budget
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {array} domain.BudgetAccount
// @Router /projects/{projectID}/budget/accounts [get]
func (h *budgetHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.budgetService.ListAccounts(c.Request.Context(), c.Param("projectID"))
	if err != nil {
		respondServiceError(c, logger, err, "listAccounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// createSubaccount godoc
// @Summary Create a budget subaccount
// @Tags budget
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param subaccount body dto.CreateSubaccountRequest true "Budget subaccount"
// @Success 201 {object} domain.BudgetSubaccount
// @Failure 404 {object} map[string]string "Parent account not found"
// @Router /projects/{projectID}/budget/subaccounts [post]
func (h *budgetHandler) createSubaccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSubaccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createSubaccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sub, err := h.budgetService.CreateSubaccount(c.Request.Context(), c.Param("projectID"), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "createSubaccount")
		return
	}

	logger.Info("Budget subaccount created", slog.String("subaccount_id", sub.SubaccountID))
	c.JSON(http.StatusCreated, sub)
}

// getSubaccount godoc
// @Summary Get a budget subaccount with its live available figure
// @Tags budget
// @Produce json
// @Param projectID path string true "Project ID"
// @Param subaccountID path string true "Subaccount ID"
// @Success 200 {object} dto.SubaccountSummary
// @Failure 404 {object} map[string]string "Not found"
// @Router /projects/{projectID}/budget/subaccounts/{subaccountID} [get]
func (h *budgetHandler) getSubaccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.budgetService.GetSubaccount(c.Request.Context(), c.Param("projectID"), c.Param("subaccountID"))
	if err != nil {
		respondServiceError(c, logger, err, "getSubaccount")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// updateSubaccountBudget godoc
// @Summary Change a subaccount's allocated ceiling
// @Description Reallocates the budgeted figure; committed and actual stay untouched
// @Tags budget
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param subaccountID path string true "Subaccount ID"
// @Param budget body dto.UpdateSubaccountBudgetRequest true "New budgeted amount"
// @Success 200 {object} domain.BudgetSubaccount
// @Router /projects/{projectID}/budget/subaccounts/{subaccountID}/budget [put]
func (h *budgetHandler) updateSubaccountBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateSubaccountBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateSubaccountBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sub, err := h.budgetService.UpdateSubaccountBudget(c.Request.Context(), c.Param("projectID"), c.Param("subaccountID"), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "updateSubaccountBudget")
		return
	}
	c.JSON(http.StatusOK, sub)
}

// getBudgetSummary godoc
// @Summary Get the live budget summary of a project
// @Description Every subaccount with budgeted, committed, actual and derived available figures
// @Tags budget
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {array} dto.SubaccountSummary
// @Router /projects/{projectID}/budget/summary [get]
func (h *budgetHandler) getBudgetSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.budgetService.GetBudgetSummary(c.Request.Context(), c.Param("projectID"))
	if err != nil {
		respondServiceError(c, logger, err, "getBudgetSummary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// registerBudgetRoutes registers budget routes on a project group.
func registerBudgetRoutes(project *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budget := project.Group("/budget")
	{
		budget.POST("/accounts", h.createAccount)
		budget.GET("/accounts", h.listAccounts)
		budget.POST("/subaccounts", h.createSubaccount)
		budget.GET("/subaccounts/:subaccountID", h.getSubaccount)
		budget.PUT("/subaccounts/:subaccountID/budget", h.updateSubaccountBudget)
		budget.GET("/summary", h.getBudgetSummary)
	}
}
