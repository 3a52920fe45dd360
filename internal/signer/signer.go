package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"menusync/internal/registry"
)

// Signer builds the authenticated headers providers expect on every catalog
// call: a bearer API key, a millisecond timestamp, and an HMAC-SHA256
// signature over apiKey+timestamp keyed by the provider's shared secret.
// The clock is injectable so signatures are deterministic under test.
type Signer struct {
	now func() time.Time
}

func New() *Signer {
	return &Signer{now: time.Now}
}

// NewWithClock builds a signer with a fixed clock source.
func NewWithClock(now func() time.Time) *Signer {
	return &Signer{now: now}
}

// Headers returns the auth headers for one outbound call.
func (s *Signer) Headers(conn *registry.ProviderConnection) map[string]string {
	timestamp := fmt.Sprintf("%d", s.now().UnixMilli())
	return map[string]string{
		"Authorization": "Bearer " + conn.APIKey,
		"X-Timestamp":   timestamp,
		"X-Signature":   sign(conn.APIKey+timestamp, conn.APISecret),
	}
}

func sign(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
