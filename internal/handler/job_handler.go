package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
	"github.com/tutorhubbd/tutorhub-api/internal/service"
	appErrors "github.com/tutorhubbd/tutorhub-api/pkg/errors"
	"github.com/tutorhubbd/tutorhub-api/pkg/response"
)

type jobBoardService interface {
	Create(ctx context.Context, guardianID string, req models.CreateJobRequest) (*models.Job, error)
	BrowseOpen(ctx context.Context, filter models.JobFilter) ([]models.Job, int, error)
	MyJobs(ctx context.Context, guardianID string) ([]models.Job, error)
	Cancel(ctx context.Context, guardianID, jobID string) error
}

type hiringService interface {
	ConfirmHiring(ctx context.Context, guardianID, jobID, teacherID string) (*models.Job, error)
	ViewApplicants(ctx context.Context, guardianID, jobID string) ([]models.ApplicantDetail, error)
}

// JobHandler wires HTTP endpoints to the job board and hiring services.
type JobHandler struct {
	jobs    jobBoardService
	hiring  hiringService
	metrics *service.MetricsService
}

// NewJobHandler creates a new handler.
func NewJobHandler(jobs jobBoardService, hiring hiringService, metrics *service.MetricsService) *JobHandler {
	return &JobHandler{jobs: jobs, hiring: hiring, metrics: metrics}
}

// Create godoc
// @Summary Post a job
// @Description Create an open tuition posting owned by the caller
// @Tags Jobs
// @Accept json
// @Produce json
// @Param payload body models.CreateJobRequest true "Job payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid job payload"))
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, job)
}

// Browse godoc
// @Summary Browse open jobs
// @Description List open tuition postings, filterable by city and subject
// @Tags Jobs
// @Produce json
// @Param city query string false "Filter by city"
// @Param subject query string false "Filter by subject"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /jobs [get]
func (h *JobHandler) Browse(c *gin.Context) {
	filter := models.JobFilter{
		City:    c.Query("city"),
		Subject: c.Query("subject"),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	jobs, total, err := h.jobs.BrowseOpen(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, jobs, &models.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
	})
}

// Mine godoc
// @Summary List my jobs
// @Description List every posting owned by the caller, any status
// @Tags Jobs
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /jobs/mine [get]
func (h *JobHandler) Mine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	jobs, err := h.jobs.MyJobs(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, jobs, nil)
}

// Cancel godoc
// @Summary Cancel a job
// @Description Withdraw an open posting owned by the caller
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 204 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /jobs/{id} [delete]
func (h *JobHandler) Cancel(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.jobs.Cancel(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Applicants godoc
// @Summary List applicants
// @Description List applications for a posting owned by the caller
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /jobs/{id}/applicants [get]
func (h *JobHandler) Applicants(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	applicants, err := h.hiring.ViewApplicants(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, applicants, nil)
}

// Hire godoc
// @Summary Confirm hiring
// @Description Fill an open posting with one of its applicants
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body models.ConfirmHiringRequest true "Hiring payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /jobs/{id}/hire [post]
func (h *JobHandler) Hire(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.ConfirmHiringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid hiring payload"))
		return
	}

	job, err := h.hiring.ConfirmHiring(c.Request.Context(), claims.UserID, c.Param("id"), req.TeacherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordJobFilled()

	response.JSON(c, http.StatusOK, job, nil)
}
