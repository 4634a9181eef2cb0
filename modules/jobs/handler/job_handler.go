package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yamada-labo/prospectline/internal/platform/auth"
	httpPlatform "github.com/yamada-labo/prospectline/internal/platform/http"
	"github.com/yamada-labo/prospectline/modules/jobs/model"
	"github.com/yamada-labo/prospectline/modules/jobs/ports"
	"github.com/yamada-labo/prospectline/modules/jobs/service"
)

// JobHandler handles job HTTP requests.
type JobHandler struct {
	service       *service.JobService
	tokenMgr      *auth.JobTokenManager
	runner        ports.Runner
	missingConfig string
}

// NewJobHandler creates a new job handler. missingConfig names the first
// required external credential absent at startup (e.g. "SERPER_API_KEY");
// an empty string means every genuinely required external is configured.
func NewJobHandler(svc *service.JobService, tokenMgr *auth.JobTokenManager, runner ports.Runner, missingConfig string) *JobHandler {
	return &JobHandler{service: svc, tokenMgr: tokenMgr, runner: runner, missingConfig: missingConfig}
}

// Search godoc
// @Summary Start a prospect search
// @Description Accept a keyword and target record count, start the pipeline asynchronously, and return a job id plus an access token
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body model.SearchRequest true "Search request"
// @Success 202 {object} model.SearchJobResponse
// @Failure 400 {object} httpPlatform.ErrorResponse
// @Failure 500 {object} httpPlatform.ErrorResponse
// @Router /search [post]
func (h *JobHandler) Search(c *gin.Context) {
	if h.missingConfig != "" {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError,
			string(model.CodeConfigurationMissing),
			"Service is not configured: "+h.missingConfig+" is required")
		return
	}

	var req model.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request payload")
		return
	}

	job, err := h.service.Create(c.Request.Context(), req.Keyword, req.TargetCount)
	if err != nil {
		errorCode := model.GetErrorCode(err)
		statusCode := http.StatusInternalServerError
		if errorCode == model.CodeInvalidTargetCount {
			statusCode = http.StatusBadRequest
		}
		httpPlatform.RespondWithError(c, statusCode, string(errorCode), model.GetErrorMessage(err))
		return
	}

	token, err := h.tokenMgr.Generate(job.ID)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to mint access token")
		return
	}

	// The pipeline runs detached from the request's context: a client
	// closing the HTTP connection must not cancel the search in progress.
	go h.runner.Run(context.Background(), job)

	httpPlatform.RespondWithData(c, http.StatusAccepted, &model.SearchJobResponse{
		JobID:       job.ID,
		AccessToken: token,
		Status:      job.Status,
	})
}

// Status godoc
// @Summary Get job status
// @Description Poll the current status and progress of a job
// @Tags jobs
// @Security BearerAuth
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} model.StatusView
// @Failure 401 {object} httpPlatform.ErrorResponse
// @Failure 403 {object} httpPlatform.ErrorResponse
// @Failure 404 {object} httpPlatform.ErrorResponse "Job not found"
// @Router /jobs/{id} [get]
func (h *JobHandler) Status(c *gin.Context) {
	jobID := c.Param("id")

	job, err := h.service.Get(c.Request.Context(), jobID)
	if err != nil {
		h.respondJobError(c, err)
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, job.ToStatusView())
}

// Result godoc
// @Summary Get job result
// @Description Retrieve the spreadsheet URL and record count for a completed job
// @Tags jobs
// @Security BearerAuth
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} model.ResultView
// @Failure 401 {object} httpPlatform.ErrorResponse
// @Failure 403 {object} httpPlatform.ErrorResponse
// @Failure 404 {object} httpPlatform.ErrorResponse "Job not found"
// @Failure 409 {object} httpPlatform.ErrorResponse "Job has not completed"
// @Router /jobs/{id}/result [get]
func (h *JobHandler) Result(c *gin.Context) {
	jobID := c.Param("id")

	job, err := h.service.Get(c.Request.Context(), jobID)
	if err != nil {
		h.respondJobError(c, err)
		return
	}

	if job.Status != model.StatusCompleted {
		httpPlatform.RespondWithError(c, http.StatusConflict, "JOB_NOT_COMPLETE", "Job has not completed")
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, job.ToResultView())
}

func (h *JobHandler) respondJobError(c *gin.Context, err error) {
	errorCode := model.GetErrorCode(err)
	statusCode := http.StatusInternalServerError
	if errorCode == model.CodeJobNotFound {
		statusCode = http.StatusNotFound
	}
	httpPlatform.RespondWithError(c, statusCode, string(errorCode), model.GetErrorMessage(err))
}

// RegisterRoutes registers job routes. Search is unauthenticated (it is
// the entrypoint that mints the access token); status/result polling
// requires the per-job bearer token minted at creation time.
func (h *JobHandler) RegisterRoutes(router *gin.RouterGroup, jobTokenMiddleware gin.HandlerFunc) {
	router.POST("/search", h.Search)

	jobs := router.Group("/jobs")
	jobs.Use(jobTokenMiddleware)
	{
		jobs.GET("/:id", h.Status)
		jobs.GET("/:id/result", h.Result)
	}
}
