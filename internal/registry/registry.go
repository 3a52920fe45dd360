package registry

import (
	"fmt"
	"time"
)

// ProviderConnection is the static configuration for one external catalog
// provider. Connections are created once at startup and never mutated or
// removed for the lifetime of the process.
type ProviderConnection struct {
	ID           string
	Name         string
	BaseURL      string
	APIKey       string
	APISecret    string
	ProductsPath string
	// PricingPath is configured for completeness; the sync engine only calls
	// the products endpoint.
	PricingPath  string
	Categories   []string
	SyncInterval time.Duration
	Timeout      time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
}

// HasCategory reports whether the provider declares the given category in
// its vocabulary.
func (pc *ProviderConnection) HasCategory(name string) bool {
	for _, c := range pc.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Registry is the immutable set of configured providers.
type Registry struct {
	providers map[string]*ProviderConnection
	order     []string
}

// New builds a registry from the configured connections. Declaration order is
// preserved for listing.
func New(connections []*ProviderConnection) *Registry {
	r := &Registry{
		providers: make(map[string]*ProviderConnection, len(connections)),
		order:     make([]string, 0, len(connections)),
	}
	for _, conn := range connections {
		r.providers[conn.ID] = conn
		r.order = append(r.order, conn.ID)
	}
	return r
}

// Get returns the connection for a provider id. An unknown id is a
// configuration error and fails loud at the call site.
func (r *Registry) Get(providerID string) (*ProviderConnection, error) {
	conn, ok := r.providers[providerID]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", providerID)
	}
	return conn, nil
}

// All returns every configured connection in declaration order.
func (r *Registry) All() []*ProviderConnection {
	out := make([]*ProviderConnection, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.providers[id])
	}
	return out
}

// IDs returns the configured provider ids in declaration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
