package board

import (
	"context"
	"fmt"
	"sync"

	"github.com/appetiteclub/apt"
)

// BoardCache holds the station's materialized copy of the full ledger
// snapshot. It is warmed from the ledger at boot, re-warmed on every change
// notification and after stream reconnects, and read by every projection.
// Between a local write and the next notification the cache may lag the
// store; stations tolerate that staleness by design.
type BoardCache struct {
	mu     sync.RWMutex
	orders []*Order
	repo   LedgerRepo
	logger apt.Logger
}

func NewBoardCache(repo LedgerRepo, logger apt.Logger) *BoardCache {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &BoardCache{
		repo:   repo,
		logger: logger,
	}
}

// Warm replaces the cached snapshot with a fresh full read of the ledger.
func (c *BoardCache) Warm(ctx context.Context) error {
	if c.repo == nil {
		return fmt.Errorf("board cache uninitialized")
	}
	orders, err := c.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ledger snapshot: %w", err)
	}
	c.Set(orders)
	return nil
}

// Snapshot returns a copy of the cached orders. Every order is cloned, not
// just the slice: callers sort, filter and mutate their copy freely while
// concurrent readers hold theirs. Local mutations are echoes only; the next
// warm replaces them with whatever the ledger says.
func (c *BoardCache) Snapshot() []*Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	orders := make([]*Order, len(c.orders))
	for i, o := range c.orders {
		orders[i] = o.Clone()
	}
	return orders
}

func (c *BoardCache) Set(orders []*Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orders = orders
}

func (c *BoardCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.orders)
}
