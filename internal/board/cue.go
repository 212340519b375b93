package board

import (
	"context"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Notifier fires the station's audio/visual cue. Playback itself is an
// external collaborator; the board only decides when it fires.
type Notifier interface {
	Notify(ctx context.Context) error
}

// LogNotifier is the default notifier for stations without a playback
// surface attached.
type LogNotifier struct {
	Logger apt.Logger
}

func (n LogNotifier) Notify(ctx context.Context) error {
	n.Logger.Info("new order cue")
	return nil
}

// CreatedCue consumes the one-shot just_created flag: on each snapshot it
// fires the notifier at most once per newly created today's-order, then
// patches the flag clear. The in-process seen set covers the window between
// firing and the clearing write landing, so replayed snapshot deliveries
// never re-fire; clearing an already clear flag is a no-op.
type CreatedCue struct {
	repo     LedgerRepo
	notifier Notifier
	logger   apt.Logger
	now      func() time.Time

	mu   sync.Mutex
	seen map[uuid.UUID]struct{}
}

func NewCreatedCue(repo LedgerRepo, notifier Notifier, logger apt.Logger) *CreatedCue {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	if notifier == nil {
		notifier = LogNotifier{Logger: logger}
	}
	return &CreatedCue{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		seen:     make(map[uuid.UUID]struct{}),
	}
}

// HandleSnapshot is a SnapshotListener; wire it into the ledger feed.
func (c *CreatedCue) HandleSnapshot(ctx context.Context, orders []*Order) {
	today := c.now().Format(BusinessDateLayout)
	for _, o := range orders {
		if !o.JustCreated || !o.IsToday(today) {
			continue
		}
		if !c.markSeen(o.ID) {
			continue
		}
		if err := c.notifier.Notify(ctx); err != nil {
			c.logger.Errorf("notifier failed for order %s: %v", o.ID, err)
		}
		patch := ClearCue(o)
		if len(patch) == 0 {
			continue
		}
		if err := c.repo.Patch(ctx, o.ID, patch); err != nil {
			// The seen set keeps this order silent locally; another
			// station's consumer will clear the flag.
			c.logger.Errorf("failed to clear cue flag for order %s: %v", o.ID, err)
		}
	}
}

func (c *CreatedCue) markSeen(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.seen[id]; ok {
		return false
	}
	c.seen[id] = struct{}{}
	return true
}
