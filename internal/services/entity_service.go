package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kitarchive/internal/models"
	"kitarchive/internal/utils"

	"gorm.io/gorm"
)

// EntityService is the trusted path for teams, leagues, brands and players.
// It applies the same slug rules as the mutation applier so entities created
// directly and entities created through approved submissions are
// indistinguishable.
type EntityService struct {
	db *gorm.DB
}

func NewEntityService(db *gorm.DB) *EntityService {
	return &EntityService{db: db}
}

// CreateTeam creates a team, rejecting duplicates by slug.
func (s *EntityService) CreateTeam(ctx context.Context, team *models.Team) (*models.Team, error) {
	team.Slug = utils.Slugify(team.Name)
	exists, err := slugExists(s.db.WithContext(ctx), &models.Team{}, team.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: team %q", ErrAlreadyExists, team.Name)
	}

	team.TeamID = utils.NewID("team")
	now := time.Now().UTC()
	team.CreatedAt = now
	team.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(team).Error; err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

// CreateTeamPending is the idempotent create used while drafting kit
// submissions: an existing slug returns the existing record instead of
// failing, a new one is inserted flagged for review.
func (s *EntityService) CreateTeamPending(ctx context.Context, team *models.Team) (*models.Team, error) {
	team.Slug = utils.Slugify(team.Name)
	var existing models.Team
	err := s.db.WithContext(ctx).Where("slug = ?", team.Slug).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	team.TeamID = utils.NewID("team")
	team.Status = "for_review"
	now := time.Now().UTC()
	team.CreatedAt = now
	team.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(team).Error; err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

// UpdateTeam applies a partial update, regenerating the slug when renamed.
func (s *EntityService) UpdateTeam(ctx context.Context, teamID string, fields map[string]interface{}) (*models.Team, error) {
	var team models.Team
	if err := s.db.WithContext(ctx).Where("team_id = ?", teamID).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if name, ok := fields["name"].(string); ok {
		fields["slug"] = utils.Slugify(name)
	}
	fields["updated_at"] = time.Now().UTC()
	if err := s.db.WithContext(ctx).Model(&team).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	return &team, nil
}

// GetTeam resolves a team by ID or slug.
func (s *EntityService) GetTeam(ctx context.Context, idOrSlug string) (*models.Team, error) {
	var team models.Team
	err := s.db.WithContext(ctx).Where("team_id = ? OR slug = ?", idOrSlug, idOrSlug).First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// ListTeams returns teams sorted by name.
func (s *EntityService) ListTeams(ctx context.Context, search, country string, skip, limit int) ([]models.Team, error) {
	q := s.db.WithContext(ctx).Model(&models.Team{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR aka LIKE ?", like, like)
	}
	if country != "" {
		q = q.Where("country LIKE ?", "%"+country+"%")
	}
	if limit <= 0 {
		limit = 100
	}
	var teams []models.Team
	err := q.Order("name ASC").Offset(skip).Limit(limit).Find(&teams).Error
	return teams, err
}

// CreateLeague creates a league, rejecting duplicates by slug.
func (s *EntityService) CreateLeague(ctx context.Context, league *models.League) (*models.League, error) {
	league.Slug = utils.Slugify(league.Name)
	exists, err := slugExists(s.db.WithContext(ctx), &models.League{}, league.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: league %q", ErrAlreadyExists, league.Name)
	}

	league.LeagueID = utils.NewID("league")
	if league.Level == "" {
		league.Level = "domestic"
	}
	now := time.Now().UTC()
	league.CreatedAt = now
	league.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(league).Error; err != nil {
		return nil, fmt.Errorf("failed to create league: %w", err)
	}
	return league, nil
}

// GetLeague resolves a league by ID or slug.
func (s *EntityService) GetLeague(ctx context.Context, idOrSlug string) (*models.League, error) {
	var league models.League
	err := s.db.WithContext(ctx).Where("league_id = ? OR slug = ?", idOrSlug, idOrSlug).First(&league).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &league, nil
}

// ListLeagues returns leagues sorted by name.
func (s *EntityService) ListLeagues(ctx context.Context, search, region, level string, skip, limit int) ([]models.League, error) {
	q := s.db.WithContext(ctx).Model(&models.League{})
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	if region != "" {
		q = q.Where("country_or_region LIKE ?", "%"+region+"%")
	}
	if level != "" {
		q = q.Where("level = ?", level)
	}
	if limit <= 0 {
		limit = 100
	}
	var leagues []models.League
	err := q.Order("name ASC").Offset(skip).Limit(limit).Find(&leagues).Error
	return leagues, err
}

// UpdateLeague applies a partial update, regenerating the slug when renamed.
func (s *EntityService) UpdateLeague(ctx context.Context, leagueID string, fields map[string]interface{}) (*models.League, error) {
	var league models.League
	if err := s.db.WithContext(ctx).Where("league_id = ?", leagueID).First(&league).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if name, ok := fields["name"].(string); ok {
		fields["slug"] = utils.Slugify(name)
	}
	fields["updated_at"] = time.Now().UTC()
	if err := s.db.WithContext(ctx).Model(&league).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update league: %w", err)
	}
	return &league, nil
}

// CreateBrand creates a brand, rejecting duplicates by slug.
func (s *EntityService) CreateBrand(ctx context.Context, brand *models.Brand) (*models.Brand, error) {
	brand.Slug = utils.Slugify(brand.Name)
	exists, err := slugExists(s.db.WithContext(ctx), &models.Brand{}, brand.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: brand %q", ErrAlreadyExists, brand.Name)
	}

	brand.BrandID = utils.NewID("brand")
	now := time.Now().UTC()
	brand.CreatedAt = now
	brand.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(brand).Error; err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}
	return brand, nil
}

// GetBrand resolves a brand by ID or slug.
func (s *EntityService) GetBrand(ctx context.Context, idOrSlug string) (*models.Brand, error) {
	var brand models.Brand
	err := s.db.WithContext(ctx).Where("brand_id = ? OR slug = ?", idOrSlug, idOrSlug).First(&brand).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

// ListBrands returns brands sorted by name.
func (s *EntityService) ListBrands(ctx context.Context, search string, skip, limit int) ([]models.Brand, error) {
	q := s.db.WithContext(ctx).Model(&models.Brand{})
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	if limit <= 0 {
		limit = 100
	}
	var brands []models.Brand
	err := q.Order("name ASC").Offset(skip).Limit(limit).Find(&brands).Error
	return brands, err
}

// UpdateBrand applies a partial update, regenerating the slug when renamed.
func (s *EntityService) UpdateBrand(ctx context.Context, brandID string, fields map[string]interface{}) (*models.Brand, error) {
	var brand models.Brand
	if err := s.db.WithContext(ctx).Where("brand_id = ?", brandID).First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if name, ok := fields["name"].(string); ok {
		fields["slug"] = utils.Slugify(name)
	}
	fields["updated_at"] = time.Now().UTC()
	if err := s.db.WithContext(ctx).Model(&brand).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}
	return &brand, nil
}

// CreatePlayer creates a player. Player names are not unique, so instead of
// the idempotent no-op the slug gets a numeric suffix.
func (s *EntityService) CreatePlayer(ctx context.Context, player *models.Player) (*models.Player, error) {
	slug, err := uniquePlayerSlug(s.db.WithContext(ctx), utils.Slugify(player.FullName))
	if err != nil {
		return nil, err
	}
	player.Slug = slug
	player.PlayerID = utils.NewID("player")
	now := time.Now().UTC()
	player.CreatedAt = now
	player.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(player).Error; err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

// GetPlayer resolves a player by ID or slug.
func (s *EntityService) GetPlayer(ctx context.Context, idOrSlug string) (*models.Player, error) {
	var player models.Player
	err := s.db.WithContext(ctx).Where("player_id = ? OR slug = ?", idOrSlug, idOrSlug).First(&player).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// ListPlayers returns players sorted by name.
func (s *EntityService) ListPlayers(ctx context.Context, search string, skip, limit int) ([]models.Player, error) {
	q := s.db.WithContext(ctx).Model(&models.Player{})
	if search != "" {
		q = q.Where("full_name LIKE ?", "%"+search+"%")
	}
	if limit <= 0 {
		limit = 100
	}
	var players []models.Player
	err := q.Order("full_name ASC").Offset(skip).Limit(limit).Find(&players).Error
	return players, err
}

// UpdatePlayer applies a partial update, regenerating the slug when renamed.
func (s *EntityService) UpdatePlayer(ctx context.Context, playerID string, fields map[string]interface{}) (*models.Player, error) {
	var player models.Player
	if err := s.db.WithContext(ctx).Where("player_id = ?", playerID).First(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if name, ok := fields["full_name"].(string); ok {
		fields["slug"] = utils.Slugify(name)
	}
	fields["updated_at"] = time.Now().UTC()
	if err := s.db.WithContext(ctx).Model(&player).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	return &player, nil
}

// CountKitsByTeam returns how many kits reference a team.
func (s *EntityService) CountKitsByTeam(ctx context.Context, teamID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.MasterKit{}).Where("team_id = ?", teamID).Count(&count).Error
	return count, err
}
