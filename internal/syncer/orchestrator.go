package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"menusync/internal/cache"
	"menusync/internal/events"
	"menusync/internal/normalizer"
	"menusync/internal/registry"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Fetcher is what the orchestrator needs from the outbound side; the real
// implementation lives in internal/fetcher.
type Fetcher interface {
	FetchProducts(ctx context.Context, conn *registry.ProviderConnection) (interface{}, error)
}

// Orchestrator keeps every provider's cache partition fresh. Each provider
// runs on its own ticker, timers are not synchronized, and a failing sync
// never stalls or crashes the loop: after the retry policy is exhausted the
// previous partition stays in place until the next tick.
//
// Nothing guards against a provider's next tick firing while a run is still
// in flight; overlapping runs are last-writer-wins.
type Orchestrator struct {
	registry *registry.Registry
	fetcher  Fetcher
	adapters *normalizer.Registry
	cache    *cache.Cache
	events   events.Publisher
	log      *logrus.Logger

	sleep  func(time.Duration)
	onSync func(providerID string)

	stop chan struct{}
	wg   sync.WaitGroup
}

func New(providers *registry.Registry, f Fetcher, adapters *normalizer.Registry, c *cache.Cache, publisher events.Publisher, log *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		registry: providers,
		fetcher:  f,
		adapters: adapters,
		cache:    c,
		events:   publisher,
		log:      log,
		sleep:    time.Sleep,
		stop:     make(chan struct{}),
	}
}

// OnSync registers a hook invoked after every successful sync, e.g. to
// regenerate the menu.
func (o *Orchestrator) OnSync(fn func(providerID string)) {
	o.onSync = fn
}

// StartAll triggers an immediate sync for every provider, then arms one
// independent recurring timer per provider at its configured interval.
func (o *Orchestrator) StartAll(ctx context.Context) {
	for _, conn := range o.registry.All() {
		o.wg.Add(1)
		go o.runLoop(ctx, conn)
	}
}

// Stop halts the recurring timers and waits for the loops to exit. In-flight
// runs are not cancelled.
func (o *Orchestrator) Stop() {
	close(o.stop)
	o.wg.Wait()
}

func (o *Orchestrator) runLoop(ctx context.Context, conn *registry.ProviderConnection) {
	defer o.wg.Done()

	if err := o.RunSync(ctx, conn.ID); err != nil {
		o.log.WithField("provider", conn.ID).WithError(err).Error("initial sync failed")
	}

	ticker := time.NewTicker(conn.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := o.RunSync(ctx, conn.ID); err != nil {
				o.log.WithField("provider", conn.ID).WithError(err).Error("scheduled sync failed")
			}
		case <-o.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// RunSync fetches and normalizes one provider's catalog and atomically
// replaces its cache partition. Transport and payload failures are retried
// under the provider's policy; after exhaustion the previous partition is
// kept and the error is returned for logging. An unknown provider id is a
// configuration error and fails immediately, without retries.
func (o *Orchestrator) RunSync(ctx context.Context, providerID string) error {
	conn, err := o.registry.Get(providerID)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	log := o.log.WithFields(logrus.Fields{"provider": providerID, "run_id": runID})

	policy := RetryPolicy{MaxRetries: conn.MaxRetries, Delay: conn.RetryDelay}
	var count int
	err = policy.Run(o.sleep, func() error {
		raw, ferr := o.fetcher.FetchProducts(ctx, conn)
		if ferr != nil {
			log.WithError(ferr).Warn("catalog fetch failed")
			return ferr
		}

		products := o.adapters.For(providerID).Normalize(raw)
		o.cache.Replace(providerID, products)
		count = len(products)
		return nil
	})

	if err != nil {
		log.WithError(err).Error("sync exhausted retries, keeping last known good")
		o.publish(ctx, events.SyncEvent{
			Type:       events.TypeSyncFailed,
			ProviderID: providerID,
			RunID:      runID,
			Error:      err.Error(),
			Timestamp:  time.Now(),
		})
		return fmt.Errorf("sync %s: %w", providerID, err)
	}

	log.WithField("products", count).Info("catalog synced")
	o.publish(ctx, events.SyncEvent{
		Type:         events.TypeSyncCompleted,
		ProviderID:   providerID,
		RunID:        runID,
		ProductCount: count,
		Timestamp:    time.Now(),
	})

	if o.onSync != nil {
		o.onSync(providerID)
	}
	return nil
}

// ForceSync triggers an out-of-band run for one provider, identical to a
// scheduled one.
func (o *Orchestrator) ForceSync(ctx context.Context, providerID string) error {
	return o.RunSync(ctx, providerID)
}

// ForceSyncAll triggers an out-of-band run for every provider and reports
// the first error encountered.
func (o *Orchestrator) ForceSyncAll(ctx context.Context) error {
	var first error
	for _, conn := range o.registry.All() {
		if err := o.RunSync(ctx, conn.ID); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (o *Orchestrator) publish(ctx context.Context, event events.SyncEvent) {
	if err := o.events.Publish(ctx, event); err != nil {
		o.log.WithError(err).Warn("failed to publish sync event")
	}
}
