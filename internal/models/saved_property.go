package models

import (
	"time"
)

// SavedProperty lets a user keep a shortlist of properties.
type SavedProperty struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_user_property" json:"user_id"`
	PropertyID uint      `gorm:"not null;index;uniqueIndex:idx_user_property" json:"property_id"`
	Property   Property  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"property"`
	CreatedAt  time.Time `json:"created_at"`
}
