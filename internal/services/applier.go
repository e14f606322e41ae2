package services

import (
	"fmt"
	"time"

	"kitarchive/internal/models"
	"kitarchive/internal/utils"

	"gorm.io/gorm"
)

// Catalog mutation applier: translates an approved proposal into catalog
// writes. Always runs inside the transaction that also flips the proposal
// status, so a failed mutation leaves the proposal pending.

// applySubmission dispatches on the submission's target kind and mode.
func applySubmission(tx *gorm.DB, sub *models.Submission) error {
	switch sub.SubmissionType {
	case models.TargetMasterKit:
		return applyKitSubmission(tx, sub)
	case models.TargetVersion:
		return applyVersionSubmission(tx, sub)
	case models.TargetTeam, models.TargetLeague, models.TargetBrand, models.TargetPlayer:
		if sub.Mode == models.SubmissionModeEdit {
			return applyEntityEdit(tx, sub)
		}
		return applyEntityCreate(tx, sub)
	default:
		return fmt.Errorf("%w: unknown submission type %q", ErrInvalidInput, sub.SubmissionType)
	}
}

func applyKitSubmission(tx *gorm.DB, sub *models.Submission) error {
	data := sub.Data
	kit := models.MasterKit{
		KitID:      utils.NewID("kit"),
		Club:       payloadString(data, "club"),
		Season:     payloadString(data, "season"),
		KitType:    payloadString(data, "kit_type"),
		Brand:      payloadString(data, "brand"),
		FrontPhoto: payloadString(data, "front_photo"),
		League:     payloadString(data, "league"),
		Design:     payloadString(data, "design"),
		Sponsor:    payloadString(data, "sponsor"),
		Gender:     payloadString(data, "gender"),
		TeamID:     payloadString(data, "team_id"),
		LeagueID:   payloadString(data, "league_id"),
		BrandID:    payloadString(data, "brand_id"),
		CreatedBy:  sub.SubmittedBy,
		CreatedAt:  time.Now().UTC(),
	}
	if err := tx.Create(&kit).Error; err != nil {
		return fmt.Errorf("failed to create master kit: %w", err)
	}
	// Every master kit must have at least one version
	return createDefaultVersion(tx, &kit)
}

// createDefaultVersion spawns the placeholder version that accompanies every
// new master kit, whether created directly or through an approved submission.
func createDefaultVersion(tx *gorm.DB, kit *models.MasterKit) error {
	version := models.Version{
		VersionID:   utils.NewID("ver"),
		KitID:       kit.KitID,
		Competition: models.DefaultVersionCompetition,
		Model:       models.DefaultVersionModel,
		SkuCode:     "",
		EanCode:     "",
		FrontPhoto:  kit.FrontPhoto,
		BackPhoto:   "",
		CreatedBy:   kit.CreatedBy,
		CreatedAt:   time.Now().UTC(),
	}
	if err := tx.Create(&version).Error; err != nil {
		return fmt.Errorf("failed to create default version: %w", err)
	}
	return nil
}

func applyVersionSubmission(tx *gorm.DB, sub *models.Submission) error {
	data := sub.Data
	version := models.Version{
		VersionID:    utils.NewID("ver"),
		KitID:        payloadString(data, "kit_id"),
		Competition:  payloadString(data, "competition"),
		Model:        payloadString(data, "model"),
		SkuCode:      payloadString(data, "sku_code"),
		EanCode:      payloadString(data, "ean_code"),
		FrontPhoto:   payloadString(data, "front_photo"),
		BackPhoto:    payloadString(data, "back_photo"),
		MainPlayerID: payloadString(data, "main_player_id"),
		CreatedBy:    sub.SubmittedBy,
		CreatedAt:    time.Now().UTC(),
	}
	if err := tx.Create(&version).Error; err != nil {
		return fmt.Errorf("failed to create version: %w", err)
	}
	return nil
}

// applyEntityCreate creates a team/league/brand/player from an approved
// submission. Creation is slug-idempotent: if the slug already exists the
// approval is a silent no-op (players instead get a numbered slug, they can
// legitimately share names).
func applyEntityCreate(tx *gorm.DB, sub *models.Submission) error {
	data := sub.Data
	now := time.Now().UTC()

	switch sub.SubmissionType {
	case models.TargetTeam:
		slug := utils.Slugify(payloadString(data, "name"))
		if exists, err := slugExists(tx, &models.Team{}, slug); err != nil || exists {
			return err
		}
		team := models.Team{
			TeamID:         utils.NewID("team"),
			Name:           payloadString(data, "name"),
			Slug:           slug,
			Country:        payloadString(data, "country"),
			City:           payloadString(data, "city"),
			Founded:        payloadInt(data, "founded"),
			PrimaryColor:   payloadString(data, "primary_color"),
			SecondaryColor: payloadString(data, "secondary_color"),
			CrestURL:       payloadString(data, "crest_url"),
			Aka:            payloadStringList(data, "aka"),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return tx.Create(&team).Error

	case models.TargetLeague:
		slug := utils.Slugify(payloadString(data, "name"))
		if exists, err := slugExists(tx, &models.League{}, slug); err != nil || exists {
			return err
		}
		level := payloadString(data, "level")
		if level == "" {
			level = "domestic"
		}
		league := models.League{
			LeagueID:        utils.NewID("league"),
			Name:            payloadString(data, "name"),
			Slug:            slug,
			CountryOrRegion: payloadString(data, "country_or_region"),
			Level:           level,
			Organizer:       payloadString(data, "organizer"),
			LogoURL:         payloadString(data, "logo_url"),
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		return tx.Create(&league).Error

	case models.TargetBrand:
		slug := utils.Slugify(payloadString(data, "name"))
		if exists, err := slugExists(tx, &models.Brand{}, slug); err != nil || exists {
			return err
		}
		brand := models.Brand{
			BrandID:   utils.NewID("brand"),
			Name:      payloadString(data, "name"),
			Slug:      slug,
			Country:   payloadString(data, "country"),
			Founded:   payloadInt(data, "founded"),
			LogoURL:   payloadString(data, "logo_url"),
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.Create(&brand).Error

	case models.TargetPlayer:
		slug, err := uniquePlayerSlug(tx, utils.Slugify(payloadString(data, "full_name")))
		if err != nil {
			return err
		}
		player := models.Player{
			PlayerID:        utils.NewID("player"),
			FullName:        payloadString(data, "full_name"),
			Slug:            slug,
			Nationality:     payloadString(data, "nationality"),
			BirthYear:       payloadInt(data, "birth_year"),
			Positions:       payloadStringList(data, "positions"),
			PreferredNumber: payloadInt(data, "preferred_number"),
			PhotoURL:        payloadString(data, "photo_url"),
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		return tx.Create(&player).Error
	}

	return fmt.Errorf("%w: unknown entity type %q", ErrInvalidInput, sub.SubmissionType)
}

// applyEntityEdit applies an approved edit submission as a partial update,
// regenerating the slug when the display name changed.
func applyEntityEdit(tx *gorm.DB, sub *models.Submission) error {
	if sub.EntityID == "" {
		return nil
	}
	fields := editableFields(sub.Data)
	fields["updated_at"] = time.Now().UTC()

	switch sub.SubmissionType {
	case models.TargetTeam:
		if name, ok := fields["name"].(string); ok {
			fields["slug"] = utils.Slugify(name)
		}
		return tx.Model(&models.Team{}).Where("team_id = ?", sub.EntityID).Updates(fields).Error
	case models.TargetLeague:
		if name, ok := fields["name"].(string); ok {
			fields["slug"] = utils.Slugify(name)
		}
		return tx.Model(&models.League{}).Where("league_id = ?", sub.EntityID).Updates(fields).Error
	case models.TargetBrand:
		if name, ok := fields["name"].(string); ok {
			fields["slug"] = utils.Slugify(name)
		}
		return tx.Model(&models.Brand{}).Where("brand_id = ?", sub.EntityID).Updates(fields).Error
	case models.TargetPlayer:
		if name, ok := fields["full_name"].(string); ok {
			fields["slug"] = utils.Slugify(name)
		}
		return tx.Model(&models.Player{}).Where("player_id = ?", sub.EntityID).Updates(fields).Error
	}

	return fmt.Errorf("%w: unknown entity type %q", ErrInvalidInput, sub.SubmissionType)
}

// Correctable columns per report target. Identifier keys are tolerated on the
// wire but never written; anything else unknown is rejected at report creation
// so an approval can never die on a missing column.
var (
	kitCorrectionColumns = map[string]bool{
		"club": true, "season": true, "kit_type": true, "brand": true,
		"front_photo": true, "league": true, "design": true, "sponsor": true,
		"gender": true, "team_id": true, "league_id": true, "brand_id": true,
	}
	versionCorrectionColumns = map[string]bool{
		"competition": true, "model": true, "sku_code": true, "ean_code": true,
		"front_photo": true, "back_photo": true, "main_player_id": true,
	}
)

func correctionColumns(targetType string) (map[string]bool, error) {
	switch targetType {
	case models.TargetMasterKit:
		return kitCorrectionColumns, nil
	case models.TargetVersion:
		return versionCorrectionColumns, nil
	}
	return nil, fmt.Errorf("%w: invalid target type %q", ErrInvalidInput, targetType)
}

// validateCorrections rejects corrections naming a column the target table
// does not have.
func validateCorrections(targetType string, corrections models.JSONMap) error {
	allowed, err := correctionColumns(targetType)
	if err != nil {
		return err
	}
	for k := range corrections {
		if k == "kit_id" || k == "version_id" || k == "_id" {
			continue
		}
		if !allowed[k] {
			return fmt.Errorf("%w: unknown correction field %q", ErrInvalidInput, k)
		}
	}
	return nil
}

// applyReport applies approved corrections as a partial update on the target,
// never letting the corrections overwrite the identifier.
func applyReport(tx *gorm.DB, report *models.Report) error {
	allowed, err := correctionColumns(report.TargetType)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{}
	for k, v := range report.Corrections {
		if !allowed[k] {
			continue
		}
		fields[k] = v
	}
	if len(fields) == 0 {
		return nil
	}

	switch report.TargetType {
	case models.TargetMasterKit:
		return tx.Model(&models.MasterKit{}).Where("kit_id = ?", report.TargetID).Updates(fields).Error
	default:
		return tx.Model(&models.Version{}).Where("version_id = ?", report.TargetID).Updates(fields).Error
	}
}

// slugExists reports whether an entity with the given slug is already in the
// catalog.
func slugExists(tx *gorm.DB, model interface{}, slug string) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// uniquePlayerSlug appends -1, -2, ... until the slug is free.
func uniquePlayerSlug(tx *gorm.DB, base string) (string, error) {
	slug := base
	for counter := 1; ; counter++ {
		exists, err := slugExists(tx, &models.Player{}, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

func editableFields(data models.JSONMap) map[string]interface{} {
	fields := map[string]interface{}{}
	for k, v := range data {
		if k == "mode" || k == "entity_id" || k == "entity_type" || v == nil {
			continue
		}
		fields[k] = v
	}
	return fields
}

func payloadString(data models.JSONMap, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func payloadInt(data models.JSONMap, key string) *int {
	// JSON numbers decode as float64
	if v, ok := data[key].(float64); ok {
		n := int(v)
		return &n
	}
	return nil
}

func payloadStringList(data models.JSONMap, key string) models.StringList {
	raw, ok := data[key].([]interface{})
	if !ok {
		return nil
	}
	out := make(models.StringList, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
