package models

import (
	"time"
)

// Property is a physical rental unit. The five address fields form the
// natural key; the composite unique index keeps concurrent first submissions
// from creating two rows for the same unit.
type Property struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Street         string `gorm:"size:120;not null;uniqueIndex:idx_property_address" json:"street"`
	BuildingNumber string `gorm:"size:20;not null;uniqueIndex:idx_property_address" json:"building_number"`
	Floor          string `gorm:"size:20;uniqueIndex:idx_property_address" json:"floor"`
	Apartment      string `gorm:"size:20;uniqueIndex:idx_property_address" json:"apartment"`
	City           string `gorm:"size:80;not null;uniqueIndex:idx_property_address" json:"city"`
	Neighborhood   string `gorm:"size:80;index" json:"neighborhood"`

	// Aggregates, recomputed from approved reviews by the aggregates worker.
	OverallRating       *float64 `json:"overall_rating"`
	MaintenanceRating   *float64 `json:"maintenance_rating"`
	CommunicationRating *float64 `json:"communication_rating"`
	ValueRating         *float64 `json:"value_rating"`
	ReviewCount         int      `gorm:"default:0" json:"review_count"`

	DepositReturnedCount   int `gorm:"default:0" json:"deposit_returned_count"`
	ContractRespectedCount int `gorm:"default:0" json:"contract_respected_count"`
	MaintenanceTimelyCount int `gorm:"default:0" json:"maintenance_timely_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Address is the lookup key for the resolver.
type Address struct {
	Street         string `json:"street"`
	BuildingNumber string `json:"building_number"`
	Floor          string `json:"floor"`
	Apartment      string `json:"apartment"`
	City           string `json:"city"`
}
