package services

import (
	"errors"

	"rentvoice/internal/models"

	"gorm.io/gorm"
)

type VoteService struct {
	db *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db}
}

func helpfulColumn(isHelpful bool) string {
	if isHelpful {
		return "helpful_count"
	}
	return "not_helpful_count"
}

// Vote records one user's helpfulness stance on a review. A first vote
// inserts the ledger row and bumps the matching counter; a changed vote
// updates the row and swaps the counters in the same transaction, so the
// denormalized counts never drift from the ledger. Voting the same way twice
// is a no-op.
func (s *VoteService) Vote(reviewID, userID uint, isHelpful bool) error {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var existing models.HelpfulnessVote
	err := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).First(&existing).Error
	switch {
	case err == nil:
		if existing.IsHelpful == isHelpful {
			tx.Rollback()
			return nil
		}
		if err := tx.Model(&existing).Update("is_helpful", isHelpful).Error; err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Model(&models.Review{}).Where("id = ?", reviewID).
			UpdateColumn(helpfulColumn(!isHelpful), gorm.Expr(helpfulColumn(!isHelpful)+" - ?", 1)).Error; err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Model(&models.Review{}).Where("id = ?", reviewID).
			UpdateColumn(helpfulColumn(isHelpful), gorm.Expr(helpfulColumn(isHelpful)+" + ?", 1)).Error; err != nil {
			tx.Rollback()
			return err
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		vote := models.HelpfulnessVote{
			ReviewID:  reviewID,
			UserID:    userID,
			IsHelpful: isHelpful,
		}
		if err := tx.Create(&vote).Error; err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Model(&models.Review{}).Where("id = ?", reviewID).
			UpdateColumn(helpfulColumn(isHelpful), gorm.Expr(helpfulColumn(isHelpful)+" + ?", 1)).Error; err != nil {
			tx.Rollback()
			return err
		}

	default:
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// Counts reads the helpfulness counters straight from the ledger.
func (s *VoteService) Counts(reviewID uint) (helpful, notHelpful int64, err error) {
	if err = s.db.Model(&models.HelpfulnessVote{}).
		Where("review_id = ? AND is_helpful = ?", reviewID, true).
		Count(&helpful).Error; err != nil {
		return 0, 0, err
	}
	if err = s.db.Model(&models.HelpfulnessVote{}).
		Where("review_id = ? AND is_helpful = ?", reviewID, false).
		Count(&notHelpful).Error; err != nil {
		return 0, 0, err
	}
	return helpful, notHelpful, nil
}
