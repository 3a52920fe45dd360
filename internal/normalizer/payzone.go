package normalizer

import (
	"time"

	"menusync/internal/models"
	"menusync/internal/registry"
)

// PayZone maps the bill-payments aggregator's payload. The collection lives
// under a top-level "services" key:
//
//	{"services": [{"serviceId": "...", "serviceName": "...",
//	  "serviceCategory": "...", "amount": 49.99, "currency": "ZAR",
//	  "active": true, "details": "...", "tags": [...]}]}
type PayZone struct {
	conn *registry.ProviderConnection
}

func NewPayZone(conn *registry.ProviderConnection) *PayZone {
	return &PayZone{conn: conn}
}

func (a *PayZone) Normalize(raw interface{}) []models.Product {
	root, ok := asMap(raw)
	if !ok {
		return []models.Product{}
	}
	services, ok := asList(root["services"])
	if !ok {
		return []models.Product{}
	}

	products := make([]models.Product, 0, len(services))
	for _, entry := range services {
		item, ok := asMap(entry)
		if !ok {
			continue
		}

		id, ok := stringField(item, "serviceId")
		if !ok || id == "" {
			continue
		}
		name, ok := stringField(item, "serviceName")
		if !ok || name == "" {
			continue
		}
		amount, ok := floatField(item, "amount")
		if !ok || amount < 0 {
			continue
		}

		category, _ := stringField(item, "serviceCategory")
		currency, ok := stringField(item, "currency")
		if !ok {
			currency = "ZAR"
		}
		active, ok := boolField(item, "active")
		if !ok {
			active = true
		}
		description, _ := stringField(item, "details")

		metadata := map[string]interface{}{"raw_category": category}
		if expiry, ok := stringField(item, "validUntil"); ok {
			metadata["expires_at"] = expiry
		}

		products = append(products, models.Product{
			ProviderID:   a.conn.ID,
			ExternalID:   id,
			Name:         name,
			Category:     categoryOrOther(a.conn, category),
			Price:        amount,
			Currency:     currency,
			Available:    active,
			Description:  description,
			Features:     stringSliceField(item, "tags"),
			ProviderName: a.conn.Name,
			UpdatedAt:    time.Now(),
			Metadata:     metadata,
		})
	}

	return products
}
