package processors

import (
	"testing"
	"time"

	"menusync/internal/events"
	"menusync/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessTallies(t *testing.T) {
	ep := NewEventProcessor(logger.New("error"))

	require.NoError(t, ep.Process(events.SyncEvent{
		Type: events.TypeSyncCompleted, ProviderID: "payzone", RunID: "r1",
		ProductCount: 5, Timestamp: time.Now(),
	}))
	require.NoError(t, ep.Process(events.SyncEvent{
		Type: events.TypeSyncFailed, ProviderID: "payzone", RunID: "r2",
		Error: "timeout", Timestamp: time.Now(),
	}))
	require.NoError(t, ep.Process(events.SyncEvent{
		Type: events.TypeSyncCompleted, ProviderID: "payzone", RunID: "r3",
		ProductCount: 6, Timestamp: time.Now(),
	}))

	completed, failed := ep.Counts("payzone")
	assert.Equal(t, 2, completed)
	assert.Equal(t, 1, failed)

	completed, failed = ep.Counts("ezivend")
	assert.Equal(t, 0, completed)
	assert.Equal(t, 0, failed)
}

func TestProcessUnknownType(t *testing.T) {
	ep := NewEventProcessor(logger.New("error"))
	err := ep.Process(events.SyncEvent{Type: "something.else", ProviderID: "payzone"})
	assert.Error(t, err)
}
