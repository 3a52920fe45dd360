package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"menusync/internal/registry"
	"menusync/internal/signer"
)

// Fetcher performs the outbound catalog request for one provider and returns
// the raw, provider-shaped payload. Network failures, timeouts and non-2xx
// responses all surface as errors for the orchestrator's retry path.
type Fetcher struct {
	signer *signer.Signer
	client *http.Client
}

func New(s *signer.Signer) *Fetcher {
	return &Fetcher{
		signer: s,
		client: &http.Client{},
	}
}

// FetchProducts calls GET <baseURL><productsPath> with signed headers and
// decodes the body as arbitrary JSON. The per-provider timeout is applied on
// top of the caller's context.
func (f *Fetcher) FetchProducts(ctx context.Context, conn *registry.ProviderConnection) (interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, conn.Timeout)
	defer cancel()

	url := conn.BaseURL + conn.ProductsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range f.signer.Headers(conn) {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", conn.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s catalog request failed: %d - %s", conn.ID, resp.StatusCode, string(body))
	}

	var payload interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", conn.ID, err)
	}

	return payload, nil
}
