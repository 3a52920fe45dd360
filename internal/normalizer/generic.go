package normalizer

import (
	"time"

	"menusync/internal/models"
	"menusync/internal/registry"
)

// Generic is the best-effort adapter for providers without a dedicated
// mapping. It accepts an already-list-shaped payload (either a bare JSON
// array or a top-level "products" array) and passes common fields through,
// defaulting whatever is missing: category "Other", price 0, available true
// unless explicitly false.
type Generic struct {
	conn *registry.ProviderConnection
}

func NewGeneric(conn *registry.ProviderConnection) *Generic {
	return &Generic{conn: conn}
}

func (a *Generic) Normalize(raw interface{}) []models.Product {
	items, ok := asList(raw)
	if !ok {
		root, isMap := asMap(raw)
		if !isMap {
			return []models.Product{}
		}
		if items, ok = asList(root["products"]); !ok {
			return []models.Product{}
		}
	}

	providerID, providerName := "unknown", "Unknown"
	if a.conn != nil {
		providerID, providerName = a.conn.ID, a.conn.Name
	}

	products := make([]models.Product, 0, len(items))
	for _, entry := range items {
		item, ok := asMap(entry)
		if !ok {
			continue
		}

		id, _ := stringField(item, "id")
		name, _ := stringField(item, "name")
		if id == "" || name == "" {
			continue
		}

		price, ok := floatField(item, "price")
		if !ok {
			price = 0
		}
		if price < 0 {
			continue
		}
		category, ok := stringField(item, "category")
		if !ok || category == "" {
			category = models.CategoryOther
		}
		// Only validate against a vocabulary when the provider declares one;
		// otherwise the category passes through as-is.
		if a.conn != nil && len(a.conn.Categories) > 0 {
			category = categoryOrOther(a.conn, category)
		}
		currency, ok := stringField(item, "currency")
		if !ok {
			currency = "ZAR"
		}
		available, ok := boolField(item, "available")
		if !ok {
			available = true
		}
		description, _ := stringField(item, "description")

		products = append(products, models.Product{
			ProviderID:   providerID,
			ExternalID:   id,
			Name:         name,
			Category:     category,
			Price:        price,
			Currency:     currency,
			Available:    available,
			Description:  description,
			Features:     stringSliceField(item, "features"),
			ProviderName: providerName,
			UpdatedAt:    time.Now(),
			Metadata:     map[string]interface{}{},
		})
	}

	return products
}
