package handlers

import (
	"net/http"

	"kitarchive/internal/models"
	"kitarchive/internal/services"

	"github.com/gin-gonic/gin"
)

type EstimationHandler struct {
	estimationService *services.EstimationService
}

func NewEstimationHandler(estimationService *services.EstimationService) *EstimationHandler {
	return &EstimationHandler{
		estimationService: estimationService,
	}
}

// Estimate prices a jersey from its attribute set. Always succeeds for any
// syntactically valid body: estimates are advisory.
// POST /api/estimate
func (h *EstimationHandler) Estimate(c *gin.Context) {
	var req models.EstimationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.estimationService.Estimate(req))
}
