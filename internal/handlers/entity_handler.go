package handlers

import (
	"net/http"
	"strconv"

	"kitarchive/internal/models"
	"kitarchive/internal/services"

	"github.com/gin-gonic/gin"
)

type EntityHandler struct {
	entityService *services.EntityService
}

func NewEntityHandler(entityService *services.EntityService) *EntityHandler {
	return &EntityHandler{
		entityService: entityService,
	}
}

func pagination(c *gin.Context) (int, int) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	return skip, limit
}

// ListTeams returns teams
// GET /api/teams
func (h *EntityHandler) ListTeams(c *gin.Context) {
	skip, limit := pagination(c)
	teams, err := h.entityService.ListTeams(c.Request.Context(), c.Query("search"), c.Query("country"), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// GetTeam returns one team by ID or slug, with its kit count
// GET /api/teams/:id
func (h *EntityHandler) GetTeam(c *gin.Context) {
	team, err := h.entityService.GetTeam(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	kitCount, err := h.entityService.CountKitsByTeam(c.Request.Context(), team.TeamID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"team":      team,
		"kit_count": kitCount,
	})
}

// CreateTeam creates a team (trusted path)
// POST /api/teams
func (h *EntityHandler) CreateTeam(c *gin.Context) {
	var team models.Team
	if err := c.ShouldBindJSON(&team); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if team.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	created, err := h.entityService.CreateTeam(c.Request.Context(), &team)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// CreateTeamPending is the idempotent create used from submission drafts
// POST /api/teams/pending
func (h *EntityHandler) CreateTeamPending(c *gin.Context) {
	var team models.Team
	if err := c.ShouldBindJSON(&team); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if team.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	created, err := h.entityService.CreateTeamPending(c.Request.Context(), &team)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// UpdateTeam applies a partial update
// PUT /api/teams/:id
func (h *EntityHandler) UpdateTeam(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.entityService.UpdateTeam(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// ListLeagues returns leagues
// GET /api/leagues
func (h *EntityHandler) ListLeagues(c *gin.Context) {
	skip, limit := pagination(c)
	leagues, err := h.entityService.ListLeagues(
		c.Request.Context(),
		c.Query("search"),
		c.Query("country_or_region"),
		c.Query("level"),
		skip, limit,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, leagues)
}

// GetLeague returns one league by ID or slug
// GET /api/leagues/:id
func (h *EntityHandler) GetLeague(c *gin.Context) {
	league, err := h.entityService.GetLeague(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, league)
}

// CreateLeague creates a league (trusted path)
// POST /api/leagues
func (h *EntityHandler) CreateLeague(c *gin.Context) {
	var league models.League
	if err := c.ShouldBindJSON(&league); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if league.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	created, err := h.entityService.CreateLeague(c.Request.Context(), &league)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateLeague applies a partial update
// PUT /api/leagues/:id
func (h *EntityHandler) UpdateLeague(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	league, err := h.entityService.UpdateLeague(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, league)
}

// ListBrands returns brands
// GET /api/brands
func (h *EntityHandler) ListBrands(c *gin.Context) {
	skip, limit := pagination(c)
	brands, err := h.entityService.ListBrands(c.Request.Context(), c.Query("search"), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, brands)
}

// GetBrand returns one brand by ID or slug
// GET /api/brands/:id
func (h *EntityHandler) GetBrand(c *gin.Context) {
	brand, err := h.entityService.GetBrand(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, brand)
}

// CreateBrand creates a brand (trusted path)
// POST /api/brands
func (h *EntityHandler) CreateBrand(c *gin.Context) {
	var brand models.Brand
	if err := c.ShouldBindJSON(&brand); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if brand.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	created, err := h.entityService.CreateBrand(c.Request.Context(), &brand)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateBrand applies a partial update
// PUT /api/brands/:id
func (h *EntityHandler) UpdateBrand(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brand, err := h.entityService.UpdateBrand(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, brand)
}

// ListPlayers returns players
// GET /api/players
func (h *EntityHandler) ListPlayers(c *gin.Context) {
	skip, limit := pagination(c)
	players, err := h.entityService.ListPlayers(c.Request.Context(), c.Query("search"), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, players)
}

// GetPlayer returns one player by ID or slug
// GET /api/players/:id
func (h *EntityHandler) GetPlayer(c *gin.Context) {
	player, err := h.entityService.GetPlayer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, player)
}

// CreatePlayer creates a player (trusted path)
// POST /api/players
func (h *EntityHandler) CreatePlayer(c *gin.Context) {
	var player models.Player
	if err := c.ShouldBindJSON(&player); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if player.FullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "full_name is required"})
		return
	}

	created, err := h.entityService.CreatePlayer(c.Request.Context(), &player)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdatePlayer applies a partial update
// PUT /api/players/:id
func (h *EntityHandler) UpdatePlayer(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := h.entityService.UpdatePlayer(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, player)
}
