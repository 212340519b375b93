package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CounterRepo allocates route sequence numbers. One counter document per
// business date; the findAndModify increment is atomic on the server, so
// concurrent stations never receive the same value.
type CounterRepo struct {
	collection *mongo.Collection
}

func NewCounterRepo(db *mongo.Database) *CounterRepo {
	return &CounterRepo{
		collection: db.Collection("route_counters"),
	}
}

func (r *CounterRepo) NextSequence(ctx context.Context, businessDate string) (int, error) {
	if businessDate == "" {
		return 0, fmt.Errorf("business date is empty")
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Value int `bson:"value"`
	}
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": businessDate},
		bson.M{"$inc": bson.M{"value": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("cannot allocate sequence for %s: %w", businessDate, err)
	}

	return doc.Value, nil
}
