package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prodledger/production_budget_app/internal/core/domain"
	portssvc "github.com/prodledger/production_budget_app/internal/core/ports/services"
	"github.com/prodledger/production_budget_app/internal/dto"
	"github.com/prodledger/production_budget_app/internal/middleware"
)

// projectConfigHandler exposes the roster and approval workflow configuration.
type projectConfigHandler struct {
	configService portssvc.ProjectConfigSvcFacade
}

func newProjectConfigHandler(configService portssvc.ProjectConfigSvcFacade) *projectConfigHandler {
	return &projectConfigHandler{configService: configService}
}

// listMembers godoc
// @Summary List the project roster
// @Tags project-config
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {array} domain.ProjectMember
// @Router /projects/{projectID}/members [get]
func (h *projectConfigHandler) listMembers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	members, err := h.configService.ListMembers(c.Request.Context(), c.Param("projectID"))
	if err != nil {
		respondServiceError(c, logger, err, "listMembers")
		return
	}
	c.JSON(http.StatusOK, members)
}

// getApprovalConfig godoc
// @Summary Get the approval workflow configuration for a document type
// @Tags project-config
// @Produce json
// @Param projectID path string true "Project ID"
// @Param documentType query string true "PURCHASE_ORDER or INVOICE"
// @Success 200 {array} domain.ApprovalStepConfig
// @Failure 400 {object} map[string]string "Unknown document type"
// @Router /projects/{projectID}/approval-config [get]
func (h *projectConfigHandler) getApprovalConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	docType := domain.DocumentType(c.Query("documentType"))
	if docType != domain.DocTypePurchaseOrder && docType != domain.DocTypeInvoice {
		c.JSON(http.StatusBadRequest, gin.H{"error": "documentType must be PURCHASE_ORDER or INVOICE"})
		return
	}

	configs, err := h.configService.GetApprovalConfig(c.Request.Context(), c.Param("projectID"), docType)
	if err != nil {
		respondServiceError(c, logger, err, "getApprovalConfig")
		return
	}
	c.JSON(http.StatusOK, configs)
}

// previewWorkflow godoc
// @Summary Preview the approval workflow for a would-be document
// @Description Resolves the configured steps against the current roster without persisting anything
// @Tags project-config
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param preview body dto.ApprovalPreviewRequest true "Preview request"
// @Success 200 {object} dto.ApprovalPreviewResponse
// @Router /projects/{projectID}/approval-preview [post]
func (h *projectConfigHandler) previewWorkflow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ApprovalPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for previewWorkflow", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	preview, err := h.configService.PreviewWorkflow(c.Request.Context(), c.Param("projectID"), req)
	if err != nil {
		respondServiceError(c, logger, err, "previewWorkflow")
		return
	}
	c.JSON(http.StatusOK, preview)
}

// registerProjectConfigRoutes registers roster/configuration routes on a project group.
func registerProjectConfigRoutes(project *gin.RouterGroup, configService portssvc.ProjectConfigSvcFacade) {
	h := newProjectConfigHandler(configService)

	project.GET("/members", h.listMembers)
	project.GET("/approval-config", h.getApprovalConfig)
	project.POST("/approval-preview", h.previewWorkflow)
}
