package services

import (
	"errors"
	"fmt"
	"log"

	"rentvoice/internal/models"

	"gorm.io/gorm"
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// Report files an abuse flag against a review. Reports are append-only; the
// same user may file several. The review's report_count is bumped in the same
// transaction as the insert, and the review's moderation status is never
// touched. Admins get a notification.
func (s *ReportService) Report(reviewID, userID uint, reason, details string) (*models.Report, error) {
	if !models.ValidReportReason(reason) {
		return nil, fmt.Errorf("%w: unknown report reason %q", ErrValidation, reason)
	}

	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	report := models.Report{
		ReviewID:   reviewID,
		ReportedBy: userID,
		Reason:     reason,
		Details:    details,
		Status:     models.ReportStatusPending,
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	if err := tx.Create(&report).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Model(&models.Review{}).Where("id = ?", reviewID).
		UpdateColumn("report_count", gorm.Expr("report_count + ?", 1)).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	// Notify every admin about the new report.
	go func(reporterID, reviewID uint, reason string) {
		var admins []models.User
		if err := s.db.Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
			log.Printf("report notification: loading admins failed: %v", err)
			return
		}
		for _, admin := range admins {
			notification := models.Notification{
				UserID:  admin.ID,
				ActorID: &reporterID,
				Type:    models.NotificationTypeReport,
				Reason:  fmt.Sprintf("Review %d was reported: %s", reviewID, reason),
			}
			s.db.Create(&notification)
		}
	}(userID, reviewID, reason)

	return &report, nil
}
