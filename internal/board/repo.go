package board

import (
	"context"

	"github.com/google/uuid"
)

// LedgerRepo is the storage half of the change log client: append-style
// creates, field-level merge patches, and full-snapshot reads. No caller
// ever gets row locks or transactions across orders; the one linearizable
// primitive lives on CounterRepo.
type LedgerRepo interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	ListByDate(ctx context.Context, businessDate string) ([]*Order, error)
	Patch(ctx context.Context, id uuid.UUID, fields Patch) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CounterRepo allocates route-order daily sequences. NextSequence is an
// atomic read-modify-write: concurrent callers on the same date observe
// distinct, gapless, monotonically increasing values, and a value is never
// reused even after the order that held it is deleted.
type CounterRepo interface {
	NextSequence(ctx context.Context, businessDate string) (int, error)
}

type DirectoryRepo interface {
	Create(ctx context.Context, c *Client) error
	CreateMany(ctx context.Context, clients []*Client) error
	Get(ctx context.Context, id uuid.UUID) (*Client, error)
	List(ctx context.Context) ([]*Client, error)
	Save(ctx context.Context, c *Client) error
}
