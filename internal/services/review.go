package services

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"rentvoice/internal/models"
	"rentvoice/internal/utils"

	"gorm.io/gorm"
)

const minReviewTextLength = 20

type ReviewService struct {
	db         *gorm.DB
	properties *PropertyService
	aggregates *AggregatesService
}

func NewReviewService(db *gorm.DB, properties *PropertyService, aggregates *AggregatesService) *ReviewService {
	return &ReviewService{db: db, properties: properties, aggregates: aggregates}
}

type Ratings struct {
	Overall       int  `json:"overall"`
	Maintenance   *int `json:"maintenance"`
	Communication *int `json:"communication"`
	Value         *int `json:"value"`
}

type SubmitReviewInput struct {
	Address     models.Address   `json:"address"`
	Ratings     Ratings          `json:"ratings"`
	Text        string           `json:"text"`
	RentalStart *time.Time       `json:"rental_start"`
	RentalEnd   *time.Time       `json:"rental_end"`
	MonthlyRent *int             `json:"monthly_rent"`
	Tags        map[string]*bool `json:"tags"`
}

type UpdateReviewInput struct {
	Ratings Ratings          `json:"ratings"`
	Text    string           `json:"text"`
	Tags    map[string]*bool `json:"tags"`
}

func validateRatings(r Ratings) error {
	if r.Overall < 1 || r.Overall > 5 {
		return fmt.Errorf("%w: overall rating must be between 1 and 5", ErrValidation)
	}
	for name, v := range map[string]*int{
		"maintenance":   r.Maintenance,
		"communication": r.Communication,
		"value":         r.Value,
	} {
		if v != nil && (*v < 1 || *v > 5) {
			return fmt.Errorf("%w: %s rating must be between 1 and 5", ErrValidation, name)
		}
	}
	return nil
}

func validateText(text string) error {
	if utf8.RuneCountInString(text) < minReviewTextLength {
		return fmt.Errorf("%w: review text must be at least %d characters", ErrValidation, minReviewTextLength)
	}
	return nil
}

// applyTags validates tag names against the fixed vocabulary and writes them
// onto the review's named columns. Unknown names are rejected rather than
// silently dropped.
func applyTags(review *models.Review, tags map[string]*bool) error {
	for name, value := range tags {
		switch name {
		case models.TagDepositReturned:
			review.DepositReturned = value
		case models.TagContractRespected:
			review.ContractRespected = value
		case models.TagMaintenanceTimely:
			review.MaintenanceTimely = value
		case models.TagResponsive:
			review.Responsive = value
		case models.TagClean:
			review.Clean = value
		case models.TagQuiet:
			review.Quiet = value
		default:
			return fmt.Errorf("%w: unknown tag %q", ErrValidation, name)
		}
	}
	return nil
}

// Submit resolves the property, then persists the review. The review always
// starts out pending no matter what the caller sends; resolver failure aborts
// with no review row written.
func (s *ReviewService) Submit(userID uint, input SubmitReviewInput) (*models.Review, error) {
	if err := validateRatings(input.Ratings); err != nil {
		return nil, err
	}
	if err := validateText(input.Text); err != nil {
		return nil, err
	}

	review := models.Review{
		UserID:              userID,
		OverallRating:       input.Ratings.Overall,
		MaintenanceRating:   input.Ratings.Maintenance,
		CommunicationRating: input.Ratings.Communication,
		ValueRating:         input.Ratings.Value,
		Text:                input.Text,
		RentalStart:         input.RentalStart,
		RentalEnd:           input.RentalEnd,
		MonthlyRent:         input.MonthlyRent,
		Status:              models.ReviewStatusPending,
	}
	if err := applyTags(&review, input.Tags); err != nil {
		return nil, err
	}

	property, err := s.properties.Resolve(input.Address)
	if err != nil {
		return nil, err
	}
	review.PropertyID = property.ID

	if err := s.db.Create(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// Edit lets the owner change text, ratings and tags. Rejected reviews are
// immutable; everything else drops back to pending for re-review.
func (s *ReviewService) Edit(reviewID, userID uint, input UpdateReviewInput) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrForbidden
	}
	if review.Status == models.ReviewStatusRejected {
		return nil, ErrRejectedImmutable
	}

	if err := validateRatings(input.Ratings); err != nil {
		return nil, err
	}
	if err := validateText(input.Text); err != nil {
		return nil, err
	}

	wasApproved := review.Status == models.ReviewStatusApproved

	review.OverallRating = input.Ratings.Overall
	review.MaintenanceRating = input.Ratings.Maintenance
	review.CommunicationRating = input.Ratings.Communication
	review.ValueRating = input.Ratings.Value
	review.Text = input.Text
	if err := applyTags(&review, input.Tags); err != nil {
		return nil, err
	}
	review.Status = models.ReviewStatusPending
	review.ModerationNotes = ""

	if err := s.db.Save(&review).Error; err != nil {
		return nil, err
	}

	// The review left the public set; its property aggregates are stale.
	if wasApproved && s.aggregates != nil {
		s.aggregates.ScheduleUpdate(review.PropertyID)
	}
	return &review, nil
}

// Delete removes the owner's review at any status.
func (s *ReviewService) Delete(reviewID, userID uint) error {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if review.UserID != userID {
		return ErrForbidden
	}

	if err := s.db.Delete(&review).Error; err != nil {
		return err
	}
	if review.Status == models.ReviewStatusApproved && s.aggregates != nil {
		s.aggregates.ScheduleUpdate(review.PropertyID)
	}
	return nil
}

type ListOptions struct {
	Status    string
	SortBy    string
	Ascending bool
	Page      int
	PageSize  int
}

type ReviewPage struct {
	Data       []models.Review `json:"data"`
	Count      int64           `json:"count"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

var reviewSortColumns = map[string]bool{
	"created_at":     true,
	"overall_rating": true,
	"helpful_count":  true,
}

// ListForProperty returns a page of reviews for one property, approved only
// unless the caller asks otherwise. Bodies are rendered to sanitized HTML on
// the way out.
func (s *ReviewService) ListForProperty(propertyID uint, opts ListOptions) (*ReviewPage, error) {
	if opts.Status == "" {
		opts.Status = models.ReviewStatusApproved
	}
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 || opts.PageSize > 100 {
		opts.PageSize = 20
	}
	if !reviewSortColumns[opts.SortBy] {
		opts.SortBy = "created_at"
	}

	filtered := func() *gorm.DB {
		return s.db.Model(&models.Review{}).Where("property_id = ? AND status = ?", propertyID, opts.Status)
	}

	var count int64
	if err := filtered().Count(&count).Error; err != nil {
		return nil, err
	}

	direction := "DESC"
	if opts.Ascending {
		direction = "ASC"
	}

	var reviews []models.Review
	err := filtered().
		Preload("User").
		Order(fmt.Sprintf("%s %s", opts.SortBy, direction)).
		Offset((opts.Page - 1) * opts.PageSize).
		Limit(opts.PageSize).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	for i := range reviews {
		reviews[i].TextHTML = utils.RenderReviewText(reviews[i].Text)
	}

	return &ReviewPage{
		Data:       reviews,
		Count:      count,
		Page:       opts.Page,
		PageSize:   opts.PageSize,
		TotalPages: TotalPages(count, opts.PageSize),
	}, nil
}

// ListForUser returns all of a user's reviews with their properties, newest
// first, regardless of status.
func (s *ReviewService) ListForUser(userID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.
		Preload("Property").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
