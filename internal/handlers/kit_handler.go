package handlers

import (
	"net/http"
	"strconv"

	"kitarchive/internal/auth"
	"kitarchive/internal/models"
	"kitarchive/internal/services"

	"github.com/gin-gonic/gin"
)

type KitHandler struct {
	kitService    *services.KitService
	reviewService *services.ReviewService
}

func NewKitHandler(kitService *services.KitService, reviewService *services.ReviewService) *KitHandler {
	return &KitHandler{
		kitService:    kitService,
		reviewService: reviewService,
	}
}

// ListKits returns master kits matching the query filters
// GET /api/kits
func (h *KitHandler) ListKits(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	filter := services.KitFilter{
		Club:    c.Query("club"),
		Season:  c.Query("season"),
		KitType: c.Query("kit_type"),
		Brand:   c.Query("brand"),
		League:  c.Query("league"),
		Gender:  c.Query("gender"),
		Search:  c.Query("search"),
		Skip:    skip,
		Limit:   limit,
	}

	kits, err := h.kitService.ListKits(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, kits)
}

// GetKit returns one master kit with its versions
// GET /api/kits/:id
func (h *KitHandler) GetKit(c *gin.Context) {
	kit, versions, err := h.kitService.GetKit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"kit":           kit,
		"versions":      versions,
		"version_count": len(versions),
	})
}

// CreateKit creates a master kit directly (trusted path)
// POST /api/kits
func (h *KitHandler) CreateKit(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.MasterKitCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kit, err := h.kitService.CreateKit(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, kit)
}

// GetVersion returns one version with its parent kit and rating
// GET /api/versions/:id
func (h *KitHandler) GetVersion(c *gin.Context) {
	version, kit, err := h.kitService.GetVersion(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	avg, count, err := h.reviewService.AverageRating(c.Request.Context(), version.VersionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"version":      version,
		"master_kit":   kit,
		"avg_rating":   avg,
		"review_count": count,
	})
}

// ListVersions returns versions, optionally scoped to one kit
// GET /api/versions?kit_id=...
func (h *KitHandler) ListVersions(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	versions, err := h.kitService.ListVersions(c.Request.Context(), c.Query("kit_id"), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, versions)
}

// CreateVersion creates a version directly under an existing kit
// POST /api/versions
func (h *KitHandler) CreateVersion(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.VersionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	version, err := h.kitService.CreateVersion(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, version)
}
