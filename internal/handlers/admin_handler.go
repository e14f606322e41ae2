package handlers

import (
	"net/http"

	"kitarchive/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// GetStats returns platform-wide counters
// GET /api/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	var kits, versions, users, reviews, pendingSubs, pendingReports int64

	h.db.Model(&models.MasterKit{}).Count(&kits)
	h.db.Model(&models.Version{}).Count(&versions)
	h.db.Model(&models.User{}).Count(&users)
	h.db.Model(&models.Review{}).Count(&reviews)
	h.db.Model(&models.Submission{}).Where("status = ?", models.ProposalStatusPending).Count(&pendingSubs)
	h.db.Model(&models.Report{}).Where("status = ?", models.ProposalStatusPending).Count(&pendingReports)

	c.JSON(http.StatusOK, gin.H{
		"master_kits":         kits,
		"versions":            versions,
		"users":               users,
		"reviews":             reviews,
		"pending_submissions": pendingSubs,
		"pending_reports":     pendingReports,
	})
}
