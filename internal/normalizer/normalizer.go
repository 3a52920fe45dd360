package normalizer

import (
	"menusync/internal/models"
	"menusync/internal/registry"
)

// Adapter converts one provider's raw catalog payload into canonical
// products. Adapters are best-effort: an entry that cannot be mapped is
// skipped, and a payload that cannot be interpreted at all yields an empty
// list. An adapter never fails a sync on bad data.
type Adapter interface {
	Normalize(raw interface{}) []models.Product
}

// Registry selects the adapter for a provider id. Providers without a
// dedicated adapter fall back to the generic one.
type Registry struct {
	adapters map[string]Adapter
	fallback func(conn *registry.ProviderConnection) Adapter
	registry *registry.Registry
}

// NewRegistry wires the dedicated adapters for the known provider variants.
func NewRegistry(providers *registry.Registry) *Registry {
	r := &Registry{
		adapters: make(map[string]Adapter),
		fallback: func(conn *registry.ProviderConnection) Adapter { return NewGeneric(conn) },
		registry: providers,
	}
	for _, conn := range providers.All() {
		switch conn.ID {
		case "payzone":
			r.adapters[conn.ID] = NewPayZone(conn)
		case "ezivend":
			r.adapters[conn.ID] = NewEziVend(conn)
		case "mobiconnect":
			r.adapters[conn.ID] = NewMobiConnect(conn)
		default:
			r.adapters[conn.ID] = NewGeneric(conn)
		}
	}
	return r
}

// Register installs or replaces the adapter for a provider id.
func (r *Registry) Register(providerID string, adapter Adapter) {
	r.adapters[providerID] = adapter
}

// For returns the adapter for a provider id. Unregistered ids get a generic
// adapter bound to the provider's connection when one exists, or an unbound
// generic adapter otherwise.
func (r *Registry) For(providerID string) Adapter {
	if adapter, ok := r.adapters[providerID]; ok {
		return adapter
	}
	if conn, err := r.registry.Get(providerID); err == nil {
		return r.fallback(conn)
	}
	return NewGeneric(nil)
}

// categoryOrOther validates a mapped category against the provider's declared
// vocabulary, falling back to "Other".
func categoryOrOther(conn *registry.ProviderConnection, category string) string {
	if conn != nil && conn.HasCategory(category) {
		return category
	}
	return models.CategoryOther
}
