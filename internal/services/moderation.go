package services

import (
	"errors"
	"fmt"

	"rentvoice/internal/models"

	"gorm.io/gorm"
)

// ModerationService is the approve/reject gate. It performs no authorization
// itself; the admin-only route group is responsible for that.
type ModerationService struct {
	db         *gorm.DB
	aggregates *AggregatesService
}

func NewModerationService(db *gorm.DB, aggregates *AggregatesService) *ModerationService {
	return &ModerationService{db: db, aggregates: aggregates}
}

// Moderate sets a review to approved or rejected. Setting the same status
// twice is a plain update; concurrent decisions are last-writer-wins.
func (s *ModerationService) Moderate(reviewID uint, status, notes string) (*models.Review, error) {
	if status != models.ReviewStatusApproved && status != models.ReviewStatusRejected {
		return nil, fmt.Errorf("%w: moderation status must be approved or rejected", ErrValidation)
	}

	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	wasApproved := review.Status == models.ReviewStatusApproved

	err := s.db.Model(&review).Updates(map[string]interface{}{
		"status":           status,
		"moderation_notes": notes,
	}).Error
	if err != nil {
		return nil, err
	}
	review.Status = status
	review.ModerationNotes = notes

	// The public review set for the property changed in either direction.
	if s.aggregates != nil && (status == models.ReviewStatusApproved || wasApproved) {
		s.aggregates.ScheduleUpdate(review.PropertyID)
	}

	// Tell the author what happened.
	go func(review models.Review) {
		verdict := "approved"
		if review.Status == models.ReviewStatusRejected {
			verdict = "rejected"
		}
		reason := fmt.Sprintf("Your review %d was %s.", review.ID, verdict)
		if review.ModerationNotes != "" {
			reason += " Moderator notes: " + review.ModerationNotes
		}
		s.db.Create(&models.Notification{
			UserID: review.UserID,
			Type:   models.NotificationTypeModeration,
			Reason: reason,
		})
	}(review)

	return &review, nil
}

// ListPending returns the moderation queue: pending reviews with their
// property and author, newest first.
func (s *ModerationService) ListPending() ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.
		Preload("Property").
		Preload("User").
		Where("status = ?", models.ReviewStatusPending).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListReports returns the report queue for a status, joined with the reported
// review, its property and the reporter.
func (s *ModerationService) ListReports(status string) ([]models.Report, error) {
	if status == "" {
		status = models.ReportStatusPending
	}

	var reports []models.Report
	err := s.db.
		Preload("Review").
		Preload("Review.Property").
		Preload("Reporter").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// ResolveReport moves a report to resolved or dismissed.
func (s *ModerationService) ResolveReport(reportID uint, status string) (*models.Report, error) {
	if status != models.ReportStatusResolved && status != models.ReportStatusDismissed {
		return nil, fmt.Errorf("%w: report status must be resolved or dismissed", ErrValidation)
	}

	var report models.Report
	if err := s.db.First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&report).Update("status", status).Error; err != nil {
		return nil, err
	}
	report.Status = status
	return &report, nil
}
