package models

import (
	"time"
)

// HelpfulnessVote records one user's stance on one review. The composite
// unique index enforces at most one row per (review, user); a repeat vote
// updates the row in place.
type HelpfulnessVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ReviewID  uint      `gorm:"not null;index;uniqueIndex:idx_review_user_vote" json:"review_id"`
	Review    Review    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"review"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_review_user_vote" json:"user_id"`
	IsHelpful bool      `gorm:"not null" json:"is_helpful"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
