package models

import (
	"time"
)

// Report is a community-proposed correction to an existing master kit or
// version. OriginalData is snapshotted at creation time so reviewers can diff
// the proposed corrections against what the record looked like.
type Report struct {
	ReportID     string     `gorm:"primaryKey;size:40" json:"report_id"`
	TargetType   string     `gorm:"size:20;not null;index" json:"target_type"`
	TargetID     string     `gorm:"size:40;not null;index" json:"target_id"`
	OriginalData JSONMap    `gorm:"type:text" json:"original_data"`
	Corrections  JSONMap    `gorm:"type:text" json:"corrections"`
	Notes        string     `gorm:"type:text" json:"notes"`
	ReportType   string     `gorm:"size:20;default:error" json:"report_type"`
	ReportedBy   string     `gorm:"size:40;not null;index" json:"reported_by"`
	ReporterName string     `gorm:"size:255" json:"reporter_name"`
	Status       string     `gorm:"size:20;default:pending;index" json:"status"`
	VotesUp      int        `gorm:"default:0" json:"votes_up"`
	VotesDown    int        `gorm:"default:0" json:"votes_down"`
	Voters       StringList `gorm:"type:text" json:"voters"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TableName specifies the table name for Report model
func (Report) TableName() string {
	return "reports"
}

// ReportCreateRequest is the payload for POST /api/reports
type ReportCreateRequest struct {
	TargetType  string  `json:"target_type" binding:"required"`
	TargetID    string  `json:"target_id" binding:"required"`
	Corrections JSONMap `json:"corrections"`
	Notes       string  `json:"notes"`
	ReportType  string  `json:"report_type"`
}
