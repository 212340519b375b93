package board

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"

	"github.com/appetiteclub/comanda/pkg/event"
)

// SnapshotListener receives the freshly warmed ledger snapshot after each
// change notification.
type SnapshotListener func(ctx context.Context, orders []*Order)

// LedgerFeed keeps a station live. It subscribes to the ledger topic and on
// every event — regardless of which order changed — re-reads the full
// snapshot into the cache and fans it out to listeners. No diffing: the
// event payload is only a trigger, the store is the source of truth.
// Duplicate deliveries are harmless because listeners recompute from
// scratch.
type LedgerFeed struct {
	subscriber events.Subscriber
	cache      *BoardCache
	logger     apt.Logger

	mu        sync.RWMutex
	listeners []SnapshotListener
}

func NewLedgerFeed(subscriber events.Subscriber, cache *BoardCache, logger apt.Logger) *LedgerFeed {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &LedgerFeed{
		subscriber: subscriber,
		cache:      cache,
		logger:     logger,
	}
}

// OnSnapshot registers a listener. Register before Start; listeners run on
// the subscription callback.
func (f *LedgerFeed) OnSnapshot(fn SnapshotListener) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners = append(f.listeners, fn)
}

func (f *LedgerFeed) Start(ctx context.Context) error {
	if f.subscriber == nil {
		return fmt.Errorf("ledger feed not configured")
	}
	f.logger.Info("starting ledger feed", "topic", event.LedgerTopic)

	if err := f.cache.Warm(ctx); err != nil {
		// A cold cache is not fatal: the subscription will warm it on the
		// first event, and Refresh picks it up on demand.
		f.logger.Errorf("initial ledger warm failed: %v", err)
	}

	return f.subscriber.Subscribe(ctx, event.LedgerTopic, f.handleEvent)
}

// Refresh re-warms the cache outside the event path, used after stream
// reconnects when notifications may have been missed.
func (f *LedgerFeed) Refresh(ctx context.Context) {
	if err := f.cache.Warm(ctx); err != nil {
		f.logger.Errorf("ledger refresh failed: %v", err)
		return
	}
	f.fanOut(ctx)
}

func (f *LedgerFeed) handleEvent(ctx context.Context, msg []byte) error {
	var metadata event.OrderEventMetadata
	if err := json.Unmarshal(msg, &metadata); err != nil {
		f.logger.Info("invalid ledger event", "error", err)
		return nil
	}
	f.logger.Debug("ledger changed", "event_type", metadata.EventType, "order_id", metadata.OrderID)

	if err := f.cache.Warm(ctx); err != nil {
		f.logger.Errorf("ledger snapshot reload failed: %v", err)
		return nil
	}
	f.fanOut(ctx)
	return nil
}

func (f *LedgerFeed) fanOut(ctx context.Context) {
	snapshot := f.cache.Snapshot()
	f.mu.RLock()
	listeners := append([]SnapshotListener(nil), f.listeners...)
	f.mu.RUnlock()
	for _, fn := range listeners {
		fn(ctx, snapshot)
	}
}
