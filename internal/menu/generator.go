package menu

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"menusync/internal/cache"
	"menusync/internal/models"

	"github.com/sirupsen/logrus"
)

const (
	featuredBoost   = 100
	freshnessBoost  = 20
	freshnessWindow = 7 * 24 * time.Hour
	defaultWeight   = 10
)

// categoryWeights drive the priority score; categories outside this table get
// the default weight.
var categoryWeights = map[string]int{
	"Bill Payments":    80,
	"Vouchers":         70,
	"Mobile Services":  60,
	"Banking Services": 50,
}

// categoryOrder is the fixed preferred sequence for emitted buckets.
// Categories not listed here are appended in discovery order.
var categoryOrder = []string{
	"Bill Payments",
	"Banking Services",
	"Vouchers",
	"Mobile Services",
	"VAS Services",
	models.CategoryOther,
}

// Service owns menu generation and the current snapshot. It is the sole
// producer of MenuStructure values; readers always see the latest fully
// generated snapshot.
type Service struct {
	mu             sync.RWMutex
	cache          *cache.Cache
	log            *logrus.Logger
	maxPerCategory int
	maxFeatured    int
	version        int64
	current        *models.MenuStructure
	now            func() time.Time
}

func NewService(c *cache.Cache, log *logrus.Logger, maxPerCategory, maxFeatured int) *Service {
	return &Service{
		cache:          c,
		log:            log,
		maxPerCategory: maxPerCategory,
		maxFeatured:    maxFeatured,
		now:            time.Now,
	}
}

// Generate reads the full cache snapshot and builds a new menu: priority
// scoring, availability derivation, category partitioning with per-bucket
// caps, fixed category ordering, and a capped Featured subset of available
// products. The version strictly increases on every call.
func (s *Service) Generate() (*models.MenuStructure, error) {
	products := s.cache.GetAll()
	now := s.now()

	// Score every product and re-derive availability. Encounter order is kept
	// so later stable sorts break ties deterministically.
	scored := make([]models.Product, len(products))
	priorities := make(map[string]int, len(products))
	for i, p := range products {
		p.Available = deriveAvailability(&p, now)
		scored[i] = p
		priorities[p.Key()] = priority(&p, now)
	}

	// Partition by category, remembering discovery order for categories
	// outside the preferred sequence.
	buckets := make(map[string][]models.Product)
	var discovered []string
	for _, p := range scored {
		if _, seen := buckets[p.Category]; !seen {
			discovered = append(discovered, p.Category)
		}
		buckets[p.Category] = append(buckets[p.Category], p)
	}

	var categories []models.CategoryBucket
	for _, name := range orderedCategories(discovered) {
		bucket := buckets[name]
		sort.SliceStable(bucket, func(i, j int) bool {
			return priorities[bucket[i].Key()] > priorities[bucket[j].Key()]
		})

		available := 0
		for _, p := range bucket {
			if p.Available {
				available++
			}
		}
		total := len(bucket)
		if len(bucket) > s.maxPerCategory {
			bucket = bucket[:s.maxPerCategory]
		}

		categories = append(categories, models.CategoryBucket{
			Name:           name,
			Products:       bucket,
			TotalCount:     total,
			AvailableCount: available,
		})
	}

	// Featured is computed over the full product set, independent of the
	// per-category truncation; overlap with category buckets is intended.
	featured := make([]models.Product, 0, len(scored))
	for _, p := range scored {
		if p.Available {
			featured = append(featured, p)
		}
	}
	sort.SliceStable(featured, func(i, j int) bool {
		return priorities[featured[i].Key()] > priorities[featured[j].Key()]
	})
	if len(featured) > s.maxFeatured {
		featured = featured[:s.maxFeatured]
	}

	stats := models.MenuStats{TotalCategories: len(categories)}
	for _, bucket := range categories {
		stats.TotalProducts += bucket.TotalCount
		stats.AvailableProducts += bucket.AvailableCount
	}

	s.mu.Lock()
	s.version++
	structure := &models.MenuStructure{
		Version:     s.version,
		GeneratedAt: now,
		Categories:  categories,
		Featured: models.CategoryBucket{
			Name:           "Featured",
			Products:       featured,
			TotalCount:     len(featured),
			AvailableCount: len(featured),
		},
		Stats: stats,
	}
	s.current = structure
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"version":    structure.Version,
		"products":   stats.TotalProducts,
		"categories": stats.TotalCategories,
	}).Debug("menu generated")

	return structure, nil
}

// Current returns the latest snapshot, generating one on first use.
func (s *Service) Current() (*models.MenuStructure, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current != nil {
		return current, nil
	}
	return s.Generate()
}

// ByCategory returns one category bucket from the current snapshot.
func (s *Service) ByCategory(name string) (*models.CategoryBucket, error) {
	current, err := s.Current()
	if err != nil {
		return nil, err
	}
	for i := range current.Categories {
		if current.Categories[i].Name == name {
			return &current.Categories[i], nil
		}
	}
	return nil, fmt.Errorf("category not found: %s", name)
}

// Featured returns the current featured products.
func (s *Service) Featured() ([]models.Product, error) {
	current, err := s.Current()
	if err != nil {
		return nil, err
	}
	return current.Featured.Products, nil
}

// Categories returns the current category names in emitted order.
func (s *Service) Categories() ([]string, error) {
	current, err := s.Current()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(current.Categories))
	for i, bucket := range current.Categories {
		out[i] = bucket.Name
	}
	return out, nil
}

// Stats returns the current snapshot's aggregate stats.
func (s *Service) Stats() (models.MenuStats, error) {
	current, err := s.Current()
	if err != nil {
		return models.MenuStats{}, err
	}
	return current.Stats, nil
}

// priority computes the ranking score: a flat boost for the "featured"
// feature tag, the category weight, and a freshness boost for products
// updated within the last seven days.
func priority(p *models.Product, now time.Time) int {
	score := 0
	if p.HasFeature("featured") {
		score += featuredBoost
	}
	if weight, ok := categoryWeights[p.Category]; ok {
		score += weight
	} else {
		score += defaultWeight
	}
	if now.Sub(p.UpdatedAt) <= freshnessWindow {
		score += freshnessBoost
	}
	return score
}

// deriveAvailability is false when the upstream flag is explicitly false or
// the metadata carries an expiry timestamp in the past.
func deriveAvailability(p *models.Product, now time.Time) bool {
	if !p.Available {
		return false
	}
	if expiry, ok := parseExpiry(p.Metadata["expires_at"]); ok && expiry.Before(now) {
		return false
	}
	return true
}

// parseExpiry accepts the expiry shapes providers actually send: RFC3339
// strings, plain dates, epoch milliseconds, or a time.Time placed there by
// an adapter.
func parseExpiry(v interface{}) (time.Time, bool) {
	switch value := v.(type) {
	case time.Time:
		return value, true
	case string:
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return t, true
		}
		if t, err := time.Parse("2006-01-02", value); err == nil {
			return t, true
		}
	case float64:
		return time.UnixMilli(int64(value)), true
	case int64:
		return time.UnixMilli(value), true
	}
	return time.Time{}, false
}

// orderedCategories arranges the discovered categories: the preferred
// sequence first, then anything else in discovery order.
func orderedCategories(discovered []string) []string {
	present := make(map[string]bool, len(discovered))
	for _, name := range discovered {
		present[name] = true
	}

	var out []string
	listed := make(map[string]bool, len(categoryOrder))
	for _, name := range categoryOrder {
		listed[name] = true
		if present[name] {
			out = append(out, name)
		}
	}
	for _, name := range discovered {
		if !listed[name] {
			out = append(out, name)
		}
	}
	return out
}
