package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
	"github.com/tutorhubbd/tutorhub-api/internal/service"
	appErrors "github.com/tutorhubbd/tutorhub-api/pkg/errors"
	"github.com/tutorhubbd/tutorhub-api/pkg/response"
)

// RecommendHandler wires the tutor recommendation endpoint.
type RecommendHandler struct {
	recommend *service.RecommendService
}

// NewRecommendHandler creates a new handler.
func NewRecommendHandler(recommend *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{recommend: recommend}
}

// Recommend godoc
// @Summary Recommend tutors
// @Description Acknowledge a recommendation prompt; the engine is not live yet
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param payload body models.RecommendRequest true "Prompt payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /recommend [post]
func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req models.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid recommendation payload"))
		return
	}

	res, err := h.recommend.Recommend(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}
