package normalizer

import (
	"time"

	"menusync/internal/models"
	"menusync/internal/registry"
)

// EziVend maps the voucher vendor's payload. The collection is nested two
// levels down and prices are wrapped in their own object:
//
//	{"data": {"vouchers": [{"id": "...", "title": "...", "type": "...",
//	  "price": {"value": 100, "currency": "ZAR"}, "inStock": true,
//	  "desc": "...", "expiryDate": "...", "tags": [...]}]}}
type EziVend struct {
	conn *registry.ProviderConnection
}

func NewEziVend(conn *registry.ProviderConnection) *EziVend {
	return &EziVend{conn: conn}
}

func (a *EziVend) Normalize(raw interface{}) []models.Product {
	root, ok := asMap(raw)
	if !ok {
		return []models.Product{}
	}
	data, ok := asMap(root["data"])
	if !ok {
		return []models.Product{}
	}
	vouchers, ok := asList(data["vouchers"])
	if !ok {
		return []models.Product{}
	}

	products := make([]models.Product, 0, len(vouchers))
	for _, entry := range vouchers {
		item, ok := asMap(entry)
		if !ok {
			continue
		}

		id, ok := stringField(item, "id")
		if !ok || id == "" {
			continue
		}
		title, ok := stringField(item, "title")
		if !ok || title == "" {
			continue
		}
		priceObj, ok := asMap(item["price"])
		if !ok {
			continue
		}
		value, ok := floatField(priceObj, "value")
		if !ok || value < 0 {
			continue
		}

		currency, ok := stringField(priceObj, "currency")
		if !ok {
			currency = "ZAR"
		}
		inStock, ok := boolField(item, "inStock")
		if !ok {
			inStock = true
		}
		voucherType, _ := stringField(item, "type")
		description, _ := stringField(item, "desc")

		metadata := map[string]interface{}{"voucher_type": voucherType}
		if expiry, ok := stringField(item, "expiryDate"); ok {
			metadata["expires_at"] = expiry
		}

		products = append(products, models.Product{
			ProviderID:   a.conn.ID,
			ExternalID:   id,
			Name:         title,
			Category:     categoryOrOther(a.conn, "Vouchers"),
			Price:        value,
			Currency:     currency,
			Available:    inStock,
			Description:  description,
			Features:     stringSliceField(item, "tags"),
			ProviderName: a.conn.Name,
			UpdatedAt:    time.Now(),
			Metadata:     metadata,
		})
	}

	return products
}
