package menu

import (
	"strings"

	"menusync/internal/models"
)

// Filters narrow a search. Zero values mean "no constraint"; MaxPrice is a
// pointer so a zero ceiling is expressible.
type Filters struct {
	Category      string
	Provider      string
	AvailableOnly bool
	MaxPrice      *float64
}

// Search runs a read-only query over the current menu's flattened product
// set (Featured plus every category bucket, de-duplicated by identity).
// The text query is a case-insensitive substring match on name, description
// and feature tags. Results keep the priority order they were encountered
// in; nothing is re-ranked.
func (s *Service) Search(query string, filters Filters) ([]models.Product, error) {
	current, err := s.Current()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))

	results := []models.Product{}
	seen := make(map[string]bool)
	consider := func(p models.Product) {
		if seen[p.Key()] {
			return
		}
		seen[p.Key()] = true
		if matches(&p, query, filters) {
			results = append(results, p)
		}
	}

	for _, p := range current.Featured.Products {
		consider(p)
	}
	for _, bucket := range current.Categories {
		for _, p := range bucket.Products {
			consider(p)
		}
	}

	return results, nil
}

func matches(p *models.Product, query string, filters Filters) bool {
	if filters.Category != "" && p.Category != filters.Category {
		return false
	}
	if filters.Provider != "" && p.ProviderID != filters.Provider {
		return false
	}
	if filters.AvailableOnly && !p.Available {
		return false
	}
	if filters.MaxPrice != nil && p.Price > *filters.MaxPrice {
		return false
	}
	if query == "" {
		return true
	}

	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, feature := range p.Features {
		if strings.Contains(strings.ToLower(feature), query) {
			return true
		}
	}
	return false
}
