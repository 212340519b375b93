package board

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/appetiteclub/comanda/pkg/event"
)

func TestFeedWarmsOnStart(t *testing.T) {
	ctx := context.Background()
	repo := NewMockLedgerRepo()
	if err := repo.Create(ctx, newTestDelivery(t, 1)); err != nil {
		t.Fatal(err)
	}

	cache := NewBoardCache(repo, nil)
	sub := NewMockSubscriber()
	feed := NewLedgerFeed(sub, cache, nil)

	if err := feed.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if cache.Len() != 1 {
		t.Errorf("cache size = %d, want 1 after initial warm", cache.Len())
	}
	if _, ok := sub.Handlers[event.LedgerTopic]; !ok {
		t.Errorf("feed did not subscribe to %s", event.LedgerTopic)
	}
}

func TestFeedReloadsSnapshotOnEvent(t *testing.T) {
	ctx := context.Background()
	repo := NewMockLedgerRepo()
	cache := NewBoardCache(repo, nil)
	sub := NewMockSubscriber()
	feed := NewLedgerFeed(sub, cache, nil)

	var fanned [][]*Order
	feed.OnSnapshot(func(ctx context.Context, orders []*Order) {
		fanned = append(fanned, orders)
	})

	if err := feed.Start(ctx); err != nil {
		t.Fatal(err)
	}

	// A write lands elsewhere, then the notification arrives.
	o := newTestDelivery(t, 1)
	if err := repo.Create(ctx, o); err != nil {
		t.Fatal(err)
	}

	evt := event.OrderCreatedEvent{
		OrderEventMetadata: event.OrderEventMetadata{
			EventType: event.EventOrderCreated,
			OrderID:   o.ID.String(),
		},
	}
	msg, _ := json.Marshal(evt)
	if err := sub.Deliver(ctx, event.LedgerTopic, msg); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}

	if cache.Len() != 1 {
		t.Errorf("cache size = %d, want 1 after reload", cache.Len())
	}
	if len(fanned) != 1 || len(fanned[0]) != 1 {
		t.Errorf("fanned snapshots = %d, want one listener call with one order", len(fanned))
	}
}

func TestFeedSwallowsMalformedEvents(t *testing.T) {
	ctx := context.Background()
	repo := NewMockLedgerRepo()
	cache := NewBoardCache(repo, nil)
	sub := NewMockSubscriber()
	feed := NewLedgerFeed(sub, cache, nil)

	if err := feed.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := sub.Deliver(ctx, event.LedgerTopic, []byte("{not json")); err != nil {
		t.Errorf("malformed event should be dropped, got error %v", err)
	}
}

func TestFeedStartSurvivesColdStore(t *testing.T) {
	ctx := context.Background()
	repo := NewMockLedgerRepo()
	repo.ListFunc = func(ctx context.Context) ([]*Order, error) {
		return nil, errors.New("store down")
	}
	cache := NewBoardCache(repo, nil)
	sub := NewMockSubscriber()
	feed := NewLedgerFeed(sub, cache, nil)

	if err := feed.Start(ctx); err != nil {
		t.Errorf("Start() with cold store error = %v, want subscription anyway", err)
	}
	if _, ok := sub.Handlers[event.LedgerTopic]; !ok {
		t.Error("subscription should still be registered")
	}
}

func TestFeedRefresh(t *testing.T) {
	ctx := context.Background()
	repo := NewMockLedgerRepo()
	cache := NewBoardCache(repo, nil)
	feed := NewLedgerFeed(NewMockSubscriber(), cache, nil)

	var calls int
	feed.OnSnapshot(func(ctx context.Context, orders []*Order) { calls++ })

	if err := repo.Create(ctx, newTestDelivery(t, 1)); err != nil {
		t.Fatal(err)
	}
	feed.Refresh(ctx)

	if cache.Len() != 1 {
		t.Errorf("cache size = %d, want 1 after refresh", cache.Len())
	}
	if calls != 1 {
		t.Errorf("listener calls = %d, want 1", calls)
	}
}
