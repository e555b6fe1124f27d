package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"rentvoice/internal/models"
	"rentvoice/internal/utils"

	"gorm.io/gorm"
)

// searchTimeout bounds the read path; write operations run without one.
const searchTimeout = 10 * time.Second

const searchCacheTTL = 2 * time.Minute

type PropertyService struct {
	db    *gorm.DB
	cache *utils.Cache
}

func NewPropertyService(db *gorm.DB, cache *utils.Cache) *PropertyService {
	return &PropertyService{db: db, cache: cache}
}

// Resolve finds the property for an address or creates it on miss. The
// address tuple carries a unique index, so a concurrent create loses with a
// duplicate-key error and we re-read the winner.
func (s *PropertyService) Resolve(addr models.Address) (*models.Property, error) {
	addr.Street = strings.TrimSpace(addr.Street)
	addr.BuildingNumber = strings.TrimSpace(addr.BuildingNumber)
	addr.Floor = strings.TrimSpace(addr.Floor)
	addr.Apartment = strings.TrimSpace(addr.Apartment)
	addr.City = strings.TrimSpace(addr.City)

	if len(addr.Street) < 3 {
		return nil, fmt.Errorf("%w: street is required", ErrValidation)
	}
	if addr.City == "" {
		return nil, fmt.Errorf("%w: city is required", ErrValidation)
	}

	var existing models.Property
	err := s.db.Where(
		"street = ? AND building_number = ? AND floor = ? AND apartment = ? AND city = ?",
		addr.Street, addr.BuildingNumber, addr.Floor, addr.Apartment, addr.City,
	).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	property := models.Property{
		Street:         addr.Street,
		BuildingNumber: addr.BuildingNumber,
		Floor:          addr.Floor,
		Apartment:      addr.Apartment,
		City:           addr.City,
	}
	if err := s.db.Create(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race; the row exists now.
			var winner models.Property
			if lookupErr := s.db.Where(
				"street = ? AND building_number = ? AND floor = ? AND apartment = ? AND city = ?",
				addr.Street, addr.BuildingNumber, addr.Floor, addr.Apartment, addr.City,
			).First(&winner).Error; lookupErr == nil {
				return &winner, nil
			}
		}
		return nil, err
	}
	return &property, nil
}

// Get returns a property by id.
func (s *PropertyService) Get(id uint) (*models.Property, error) {
	var property models.Property
	if err := s.db.First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &property, nil
}

type SearchOptions struct {
	MinRating    float64
	Neighborhood string
	MinReviews   int
	SortBy       string
	Ascending    bool
	Page         int
	PageSize     int
}

type PropertyPage struct {
	Data       []models.Property `json:"data"`
	Count      int64             `json:"count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// Sortable columns for search; anything else falls back to overall_rating.
var searchSortColumns = map[string]bool{
	"overall_rating": true,
	"review_count":   true,
	"created_at":     true,
}

// Search matches the street or city against the first comma-separated token
// of the query, applies the optional filters and paginates.
func (s *PropertyService) Search(query string, opts SearchOptions) (*PropertyPage, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 || opts.PageSize > 100 {
		opts.PageSize = 20
	}
	if !searchSortColumns[opts.SortBy] {
		opts.SortBy = "overall_rating"
	}

	cacheKey := fmt.Sprintf("property:search:%s:%+v", query, opts)
	if s.cache != nil {
		if cached := s.cache.Get(cacheKey); cached != nil {
			if page, ok := cached.(*PropertyPage); ok {
				return page, nil
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	// Build the filtered query fresh for each statement so the count cannot
	// leak clauses into the page select.
	filtered := func() *gorm.DB {
		dbQuery := s.db.WithContext(ctx).Model(&models.Property{})
		if query != "" {
			// Use the first part (street name) for searching.
			firstPart := strings.TrimSpace(strings.Split(query, ",")[0])
			if firstPart != "" {
				pattern := "%" + firstPart + "%"
				dbQuery = dbQuery.Where("street ILIKE ? OR city ILIKE ?", pattern, pattern)
			}
		}
		if opts.MinRating > 0 {
			dbQuery = dbQuery.Where("overall_rating >= ?", opts.MinRating)
		}
		if opts.Neighborhood != "" {
			dbQuery = dbQuery.Where("neighborhood = ?", opts.Neighborhood)
		}
		if opts.MinReviews > 0 {
			dbQuery = dbQuery.Where("review_count >= ?", opts.MinReviews)
		}
		return dbQuery
	}

	var count int64
	if err := filtered().Count(&count).Error; err != nil {
		return nil, err
	}

	direction := "DESC"
	if opts.Ascending {
		direction = "ASC"
	}

	var properties []models.Property
	err := filtered().
		Order(fmt.Sprintf("%s %s NULLS LAST", opts.SortBy, direction)).
		Offset((opts.Page - 1) * opts.PageSize).
		Limit(opts.PageSize).
		Find(&properties).Error
	if err != nil {
		return nil, err
	}

	page := &PropertyPage{
		Data:       properties,
		Count:      count,
		Page:       opts.Page,
		PageSize:   opts.PageSize,
		TotalPages: TotalPages(count, opts.PageSize),
	}
	if s.cache != nil {
		s.cache.Set(cacheKey, page, searchCacheTTL)
	}
	return page, nil
}

// TopRated lists the best rated properties that have at least 3 reviews.
func (s *PropertyService) TopRated(limit int) ([]models.Property, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	var properties []models.Property
	err := s.db.WithContext(ctx).
		Where("review_count >= ?", 3).
		Order("overall_rating DESC NULLS LAST").
		Limit(limit).
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

// Neighborhoods returns the distinct non-empty neighborhoods for the filter
// dropdown.
func (s *PropertyService) Neighborhoods() ([]string, error) {
	var names []string
	err := s.db.Model(&models.Property{}).
		Distinct("neighborhood").
		Where("neighborhood <> ''").
		Order("neighborhood").
		Pluck("neighborhood", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// TotalPages is the pagination math shared by the paged listings.
func TotalPages(count int64, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(count) / float64(pageSize)))
}
