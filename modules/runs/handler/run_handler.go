package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpPlatform "github.com/yamada-labo/prospectline/internal/platform/http"
	"github.com/yamada-labo/prospectline/modules/runs/ports"
	"github.com/yamada-labo/prospectline/modules/runs/service"
)

// RunHandler exposes the read-only run audit log.
type RunHandler struct {
	service *service.RunService
}

// NewRunHandler creates a new run handler.
func NewRunHandler(svc *service.RunService) *RunHandler {
	return &RunHandler{service: svc}
}

// List godoc
// @Summary List past pipeline runs
// @Description Paginated, newest-finished-first audit log of every completed or failed search run
// @Tags runs
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Page offset (default 0)"
// @Success 200 {object} httpPlatform.PaginatedResponse
// @Failure 400 {object} httpPlatform.ErrorResponse
// @Router /runs [get]
func (h *RunHandler) List(c *gin.Context) {
	params, err := httpPlatform.ParsePaginationParams(c)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pagination parameters")
		return
	}

	runs, total, err := h.service.List(c.Request.Context(), &ports.ListOptions{
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list runs")
		return
	}

	httpPlatform.RespondWithPagination(c, http.StatusOK, runs, params.Limit, params.Offset, total)
}

// RegisterRoutes registers run routes. Read-only, no auth — internal/ops use.
func (h *RunHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/runs", h.List)
}
