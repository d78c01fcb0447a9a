package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
	"github.com/tutorhubbd/tutorhub-api/internal/service"
	appErrors "github.com/tutorhubbd/tutorhub-api/pkg/errors"
	"github.com/tutorhubbd/tutorhub-api/pkg/response"
)

// ApplicationHandler wires HTTP endpoints to the application service.
type ApplicationHandler struct {
	applications *service.ApplicationService
	metrics      *service.MetricsService
}

// NewApplicationHandler creates a new handler.
func NewApplicationHandler(applications *service.ApplicationService, metrics *service.MetricsService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, metrics: metrics}
}

// Apply godoc
// @Summary Apply to a job
// @Description Submit an application to an open posting
// @Tags Applications
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body models.SubmitApplicationRequest true "Application payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /jobs/{id}/apply [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid application payload"))
		return
	}

	application, err := h.applications.Submit(c.Request.Context(), claims.UserID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordApplicationSubmitted()

	response.Created(c, application)
}

// Mine godoc
// @Summary List my applications
// @Description List every application submitted by the caller
// @Tags Applications
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /applications/mine [get]
func (h *ApplicationHandler) Mine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	applications, err := h.applications.MyApplications(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, applications, nil)
}
