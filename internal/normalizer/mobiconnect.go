package normalizer

import (
	"time"

	"menusync/internal/models"
	"menusync/internal/registry"
)

// MobiConnect maps the mobile-services gateway payload. The collection lives
// under "result.products" and field names follow the gateway's own scheme:
//
//	{"result": {"products": [{"code": "...", "label": "...", "group": "...",
//	  "cost": 29, "currencyCode": "ZAR", "enabled": true,
//	  "description": "...", "features": [...]}]}}
type MobiConnect struct {
	conn *registry.ProviderConnection
}

func NewMobiConnect(conn *registry.ProviderConnection) *MobiConnect {
	return &MobiConnect{conn: conn}
}

func (a *MobiConnect) Normalize(raw interface{}) []models.Product {
	root, ok := asMap(raw)
	if !ok {
		return []models.Product{}
	}
	result, ok := asMap(root["result"])
	if !ok {
		return []models.Product{}
	}
	items, ok := asList(result["products"])
	if !ok {
		return []models.Product{}
	}

	products := make([]models.Product, 0, len(items))
	for _, entry := range items {
		item, ok := asMap(entry)
		if !ok {
			continue
		}

		code, ok := stringField(item, "code")
		if !ok || code == "" {
			continue
		}
		label, ok := stringField(item, "label")
		if !ok || label == "" {
			continue
		}
		cost, ok := floatField(item, "cost")
		if !ok || cost < 0 {
			continue
		}

		group, _ := stringField(item, "group")
		currency, ok := stringField(item, "currencyCode")
		if !ok {
			currency = "ZAR"
		}
		enabled, ok := boolField(item, "enabled")
		if !ok {
			enabled = true
		}
		description, _ := stringField(item, "description")

		products = append(products, models.Product{
			ProviderID:   a.conn.ID,
			ExternalID:   code,
			Name:         label,
			Category:     categoryOrOther(a.conn, group),
			Price:        cost,
			Currency:     currency,
			Available:    enabled,
			Description:  description,
			Features:     stringSliceField(item, "features"),
			ProviderName: a.conn.Name,
			UpdatedAt:    time.Now(),
			Metadata:     map[string]interface{}{"group": group},
		})
	}

	return products
}
