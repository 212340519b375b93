package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/appetiteclub/comanda/internal/board"
)

// LedgerRepo persists the shared order ledger. Every station writes to the
// same collection; Patch carries the merge semantics the board relies on
// (touch only the named fields, last writer per field wins).
type LedgerRepo struct {
	collection *mongo.Collection
}

func NewLedgerRepo(db *mongo.Database) *LedgerRepo {
	return &LedgerRepo{
		collection: db.Collection("orders"),
	}
}

func (r *LedgerRepo) Create(ctx context.Context, o *board.Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}

	if _, err := r.collection.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("cannot create order: %w", err)
	}

	return nil
}

func (r *LedgerRepo) Get(ctx context.Context, id uuid.UUID) (*board.Order, error) {
	var o board.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get order: %w", err)
	}
	return &o, nil
}

func (r *LedgerRepo) List(ctx context.Context) ([]*board.Order, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("cannot list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*board.Order
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode orders: %w", err)
	}

	return result, nil
}

func (r *LedgerRepo) ListByDate(ctx context.Context, businessDate string) ([]*board.Order, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"business_date": businessDate})
	if err != nil {
		return nil, fmt.Errorf("cannot list orders by date: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*board.Order
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode orders: %w", err)
	}

	return result, nil
}

func (r *LedgerRepo) Patch(ctx context.Context, id uuid.UUID, patch board.Patch) error {
	if len(patch) == 0 {
		return nil
	}

	fields := bson.M{"updated_at": time.Now()}
	for k, v := range patch {
		fields[k] = v
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("cannot patch order: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("order not found")
	}

	return nil
}

func (r *LedgerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("cannot delete order: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("order not found")
	}

	return nil
}
