package models

import (
	"fmt"
	"time"
)

// Product is the canonical representation of one purchasable item after
// normalization from a provider's native schema. Identity is the composite
// (ProviderID, ExternalID); a provider sync replaces its products wholesale,
// individual products are never mutated in place.
type Product struct {
	ProviderID   string                 `json:"provider_id"`
	ExternalID   string                 `json:"external_id"`
	Name         string                 `json:"name"`
	Category     string                 `json:"category"`
	Price        float64                `json:"price"`
	Currency     string                 `json:"currency"`
	Available    bool                   `json:"available"`
	Description  string                 `json:"description"`
	Features     []string               `json:"features"`
	ProviderName string                 `json:"provider_name"`
	UpdatedAt    time.Time              `json:"updated_at"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// Key returns the composite identity used to de-duplicate products across
// menu views (a product may appear in both Featured and its category bucket).
func (p *Product) Key() string {
	return p.ProviderID + ":" + p.ExternalID
}

// HasFeature reports whether the product carries the given feature tag.
func (p *Product) HasFeature(tag string) bool {
	for _, f := range p.Features {
		if f == tag {
			return true
		}
	}
	return false
}

// CategoryOther is the fallback category for items a provider does not
// classify into its declared vocabulary.
const CategoryOther = "Other"

var currencySymbols = map[string]string{
	"ZAR": "R",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// FormatPrice renders a price for presentation. A zero amount renders as
// "Free"; positive amounts use the currency's symbol when known, otherwise
// the ISO code is appended.
func FormatPrice(amount float64, currency string) string {
	if amount == 0 {
		return "Free"
	}
	if symbol, ok := currencySymbols[currency]; ok {
		return fmt.Sprintf("%s%.2f", symbol, amount)
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

// ProviderStatus describes one provider's cache partition for operators.
type ProviderStatus struct {
	ProviderID   string    `json:"provider_id"`
	Name         string    `json:"name"`
	LastSync     time.Time `json:"last_sync"`
	ProductCount int       `json:"product_count"`
	Active       bool      `json:"active"`
}
