package models

import (
	"time"
)

const (
	ReportStatusPending   = "pending"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// Valid report reasons. Anything else is rejected before insert.
var ReportReasons = []string{"spam", "fake", "offensive", "personal_info", "wrong_property", "other"}

// Report is an append-only abuse flag. A user may file several reports on the
// same review; only an administrator moves status past pending.
type Report struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReviewID   uint      `gorm:"not null;index" json:"review_id"`
	Review     Review    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"review"`
	ReportedBy uint      `gorm:"not null;index" json:"reported_by"`
	Reporter   User      `gorm:"foreignKey:ReportedBy;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"reporter"`
	Reason     string    `gorm:"size:30;not null" json:"reason"`
	Details    string    `gorm:"type:text" json:"details"`
	Status     string    `gorm:"size:20;default:'pending';not null;index" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ValidReportReason(reason string) bool {
	for _, r := range ReportReasons {
		if r == reason {
			return true
		}
	}
	return false
}
