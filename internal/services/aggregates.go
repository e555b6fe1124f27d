package services

import (
	"log"
	"sync"
	"time"

	"rentvoice/internal/models"

	"gorm.io/gorm"
)

// AggregatesService recomputes a property's denormalized rating fields from
// its approved reviews, asynchronously. Updates are queued, deduplicated and
// processed in batches by a background worker.
type AggregatesService struct {
	db      *gorm.DB
	queue   chan uint // property IDs awaiting recompute
	pending map[uint]bool
	mu      sync.Mutex
}

func NewAggregatesService(db *gorm.DB) *AggregatesService {
	s := &AggregatesService{
		db:      db,
		queue:   make(chan uint, 1000), // buffered so callers never block
		pending: make(map[uint]bool),
	}
	go s.worker()
	return s
}

// ScheduleUpdate queues a property for recompute. A property already in the
// queue is skipped.
func (s *AggregatesService) ScheduleUpdate(propertyID uint) {
	s.mu.Lock()
	if s.pending[propertyID] {
		s.mu.Unlock()
		return
	}
	s.pending[propertyID] = true
	s.mu.Unlock()

	select {
	case s.queue <- propertyID:
	default:
		// Queue full; drop the pending mark so a later call can retry.
		s.mu.Lock()
		delete(s.pending, propertyID)
		s.mu.Unlock()
		log.Printf("aggregates queue full, skipping property %d", propertyID)
	}
}

func (s *AggregatesService) worker() {
	batch := make([]uint, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case propertyID := <-s.queue:
			batch = append(batch, propertyID)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *AggregatesService) processBatch(propertyIDs []uint) {
	for _, propertyID := range propertyIDs {
		if err := s.Recompute(propertyID); err != nil {
			log.Printf("recomputing aggregates for property %d failed: %v", propertyID, err)
		}

		s.mu.Lock()
		delete(s.pending, propertyID)
		s.mu.Unlock()
	}
}

type aggregateRow struct {
	Overall       *float64
	Maintenance   *float64
	Communication *float64
	Value         *float64
	Total         int64
}

// Recompute rebuilds one property's averages, review count and positive-tag
// counters from its approved reviews. Synchronous; the worker calls it per
// queued property, tests call it directly.
func (s *AggregatesService) Recompute(propertyID uint) error {
	var row aggregateRow
	err := s.db.Model(&models.Review{}).
		Select("AVG(overall_rating) AS overall, AVG(maintenance_rating) AS maintenance, AVG(communication_rating) AS communication, AVG(value_rating) AS value, COUNT(*) AS total").
		Where("property_id = ? AND status = ?", propertyID, models.ReviewStatusApproved).
		Scan(&row).Error
	if err != nil {
		return err
	}

	tagCount := func(column string) (int64, error) {
		var n int64
		err := s.db.Model(&models.Review{}).
			Where("property_id = ? AND status = ? AND "+column+" = ?", propertyID, models.ReviewStatusApproved, true).
			Count(&n).Error
		return n, err
	}

	depositReturned, err := tagCount("deposit_returned")
	if err != nil {
		return err
	}
	contractRespected, err := tagCount("contract_respected")
	if err != nil {
		return err
	}
	maintenanceTimely, err := tagCount("maintenance_timely")
	if err != nil {
		return err
	}

	return s.db.Model(&models.Property{}).Where("id = ?", propertyID).
		UpdateColumns(map[string]interface{}{
			"overall_rating":           row.Overall,
			"maintenance_rating":       row.Maintenance,
			"communication_rating":     row.Communication,
			"value_rating":             row.Value,
			"review_count":             row.Total,
			"deposit_returned_count":   depositReturned,
			"contract_respected_count": contractRespected,
			"maintenance_timely_count": maintenanceTimely,
		}).Error
}
