package processors

import (
	"fmt"
	"sync"

	"menusync/internal/events"

	"github.com/sirupsen/logrus"
)

// EventProcessor audits sync outcomes: it logs every event and keeps running
// per-provider tallies so operators can spot providers that fail repeatedly.
type EventProcessor struct {
	log *logrus.Logger

	mu        sync.Mutex
	completed map[string]int
	failed    map[string]int
}

func NewEventProcessor(log *logrus.Logger) *EventProcessor {
	return &EventProcessor{
		log:       log,
		completed: make(map[string]int),
		failed:    make(map[string]int),
	}
}

func (ep *EventProcessor) Process(event events.SyncEvent) error {
	ep.mu.Lock()
	defer ep.mu.Unlock()

	log := ep.log.WithFields(logrus.Fields{
		"provider": event.ProviderID,
		"run_id":   event.RunID,
	})

	switch event.Type {
	case events.TypeSyncCompleted:
		ep.completed[event.ProviderID]++
		log.WithField("products", event.ProductCount).Info("provider sync completed")
	case events.TypeSyncFailed:
		ep.failed[event.ProviderID]++
		log.WithFields(logrus.Fields{
			"error":    event.Error,
			"failures": ep.failed[event.ProviderID],
		}).Warn("provider sync failed")
	default:
		return fmt.Errorf("unknown event type: %s", event.Type)
	}

	return nil
}

// Counts returns the completed and failed tallies for one provider.
func (ep *EventProcessor) Counts(providerID string) (completed, failed int) {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	return ep.completed[providerID], ep.failed[providerID]
}
