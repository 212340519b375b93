package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/appetiteclub/comanda/internal/board"
)

type DirectoryRepo struct {
	collection *mongo.Collection
}

func NewDirectoryRepo(db *mongo.Database) *DirectoryRepo {
	return &DirectoryRepo{
		collection: db.Collection("clients"),
	}
}

func (r *DirectoryRepo) Create(ctx context.Context, c *board.Client) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}

	if _, err := r.collection.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("cannot create client: %w", err)
	}

	return nil
}

func (r *DirectoryRepo) CreateMany(ctx context.Context, clients []*board.Client) error {
	if len(clients) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(clients))
	for _, c := range clients {
		docs = append(docs, c)
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("cannot create clients: %w", err)
	}

	return nil
}

func (r *DirectoryRepo) Get(ctx context.Context, id uuid.UUID) (*board.Client, error) {
	var c board.Client
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get client: %w", err)
	}
	return &c, nil
}

func (r *DirectoryRepo) List(ctx context.Context) ([]*board.Client, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("cannot list clients: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*board.Client
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode clients: %w", err)
	}

	return result, nil
}

func (r *DirectoryRepo) Save(ctx context.Context, c *board.Client) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": c.ID}, bson.M{"$set": c})
	if err != nil {
		return fmt.Errorf("cannot update client: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("client not found")
	}

	return nil
}
