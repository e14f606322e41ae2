package models

import (
	"time"
)

// Team represents a football club
type Team struct {
	TeamID         string     `gorm:"primaryKey;size:40" json:"team_id"`
	Name           string     `gorm:"size:255;not null" json:"name"`
	Slug           string     `gorm:"size:255;uniqueIndex" json:"slug"`
	Country        string     `gorm:"size:100" json:"country"`
	City           string     `gorm:"size:100" json:"city"`
	Founded        *int       `json:"founded,omitempty"`
	PrimaryColor   string     `gorm:"size:20" json:"primary_color"`
	SecondaryColor string     `gorm:"size:20" json:"secondary_color"`
	CrestURL       string     `gorm:"size:500" json:"crest_url"`
	Aka            StringList `gorm:"type:text" json:"aka"`
	Status         string     `gorm:"size:20" json:"status,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}

// League represents a competition a kit can belong to
type League struct {
	LeagueID        string    `gorm:"primaryKey;size:40" json:"league_id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Slug            string    `gorm:"size:255;uniqueIndex" json:"slug"`
	CountryOrRegion string    `gorm:"size:100" json:"country_or_region"`
	Level           string    `gorm:"size:50;default:domestic" json:"level"`
	Organizer       string    `gorm:"size:100" json:"organizer"`
	LogoURL         string    `gorm:"size:500" json:"logo_url"`
	Status          string    `gorm:"size:20" json:"status,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (League) TableName() string {
	return "leagues"
}

// Brand represents a kit manufacturer
type Brand struct {
	BrandID   string    `gorm:"primaryKey;size:40" json:"brand_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Slug      string    `gorm:"size:255;uniqueIndex" json:"slug"`
	Country   string    `gorm:"size:100" json:"country"`
	Founded   *int      `json:"founded,omitempty"`
	LogoURL   string    `gorm:"size:500" json:"logo_url"`
	Status    string    `gorm:"size:20" json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Brand) TableName() string {
	return "brands"
}

// Player represents a footballer a version can be flocked for
type Player struct {
	PlayerID        string     `gorm:"primaryKey;size:40" json:"player_id"`
	FullName        string     `gorm:"size:255;not null" json:"full_name"`
	Slug            string     `gorm:"size:255;uniqueIndex" json:"slug"`
	Nationality     string     `gorm:"size:100" json:"nationality"`
	BirthYear       *int       `json:"birth_year,omitempty"`
	Positions       StringList `gorm:"type:text" json:"positions"`
	PreferredNumber *int       `json:"preferred_number,omitempty"`
	PhotoURL        string     `gorm:"size:500" json:"photo_url"`
	Status          string     `gorm:"size:20" json:"status,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Player) TableName() string {
	return "players"
}
