package models

import (
	"time"
)

const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// Tag vocabulary. Reviews carry a closed set of optional booleans instead of
// an open map; nil means the reviewer did not answer.
const (
	TagDepositReturned   = "depositReturned"
	TagContractRespected = "contractRespected"
	TagMaintenanceTimely = "maintenanceTimely"
	TagResponsive        = "responsive"
	TagClean             = "clean"
	TagQuiet             = "quiet"
)

type Review struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	PropertyID uint     `gorm:"not null;index" json:"property_id"`
	Property   Property `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"property"`
	UserID     uint     `gorm:"not null;index" json:"user_id"`
	User       User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	OverallRating       int  `gorm:"not null" json:"overall_rating"` // 1-5
	MaintenanceRating   *int `json:"maintenance_rating"`
	CommunicationRating *int `json:"communication_rating"`
	ValueRating         *int `json:"value_rating"`

	Text        string     `gorm:"type:text;not null" json:"text"`
	RentalStart *time.Time `json:"rental_start"`
	RentalEnd   *time.Time `json:"rental_end"`
	MonthlyRent *int       `json:"monthly_rent"`

	DepositReturned   *bool `json:"deposit_returned"`
	ContractRespected *bool `json:"contract_respected"`
	MaintenanceTimely *bool `json:"maintenance_timely"`
	Responsive        *bool `json:"responsive"`
	Clean             *bool `json:"clean"`
	Quiet             *bool `json:"quiet"`

	Status          string `gorm:"size:20;default:'pending';not null;index" json:"status"`
	ModerationNotes string `gorm:"type:text" json:"moderation_notes"`

	HelpfulCount    int `gorm:"default:0" json:"helpful_count"`
	NotHelpfulCount int `gorm:"default:0" json:"not_helpful_count"`
	ReportCount     int `gorm:"default:0" json:"report_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled at query time, not a database column.
	TextHTML string `gorm:"-" json:"text_html,omitempty"`
}
