package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUnknownProvider(t *testing.T) {
	r := New([]*ProviderConnection{{ID: "payzone", Name: "PayZone"}})

	conn, err := r.Get("payzone")
	require.NoError(t, err)
	assert.Equal(t, "PayZone", conn.Name)

	_, err = r.Get("ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestAllPreservesDeclarationOrder(t *testing.T) {
	r := New([]*ProviderConnection{
		{ID: "b", SyncInterval: time.Minute},
		{ID: "a", SyncInterval: time.Minute},
		{ID: "c", SyncInterval: time.Minute},
	})

	assert.Equal(t, []string{"b", "a", "c"}, r.IDs())

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, "b", all[0].ID)
}

func TestHasCategory(t *testing.T) {
	conn := &ProviderConnection{Categories: []string{"Vouchers", "VAS Services"}}
	assert.True(t, conn.HasCategory("Vouchers"))
	assert.False(t, conn.HasCategory("Gaming"))
}
