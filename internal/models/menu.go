package models

import "time"

// MenuStructure is one generated snapshot of the full menu. Version strictly
// increases across generations; the previous snapshot is discarded once a new
// one is published.
type MenuStructure struct {
	Version     int64            `json:"version"`
	GeneratedAt time.Time        `json:"generated_at"`
	Categories  []CategoryBucket `json:"categories"`
	Featured    CategoryBucket   `json:"featured"`
	Stats       MenuStats        `json:"stats"`
}

// CategoryBucket groups products of one category, ordered by priority
// descending and capped. TotalCount and AvailableCount reflect the category
// before truncation.
type CategoryBucket struct {
	Name           string    `json:"name"`
	Products       []Product `json:"products"`
	TotalCount     int       `json:"total_count"`
	AvailableCount int       `json:"available_count"`
}

// MenuStats aggregates the category buckets of one menu snapshot. Featured is
// reported separately and never double-counted here.
type MenuStats struct {
	TotalProducts     int `json:"total_products"`
	TotalCategories   int `json:"total_categories"`
	AvailableProducts int `json:"available_products"`
}
