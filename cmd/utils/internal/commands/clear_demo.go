package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/appetiteclub/comanda/internal/mongo"
)

// ClearDemo removes everything seed-demo created: demo directory entries,
// the orders referencing them, and the seed tracker rows so a later
// seed-demo run starts clean.
func ClearDemo(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	logger.Info("Starting demo data cleanup...")

	baseRepo := mongo.NewBaseRepo(config, logger)
	if err := baseRepo.Start(ctx); err != nil {
		return fmt.Errorf("connect to store: %w", err)
	}
	defer baseRepo.Stop(ctx)

	db := baseRepo.GetDatabase()
	demoFilter := bson.M{"$regex": "^" + demoCodePrefix}

	ordersResult, err := db.Collection("orders").DeleteMany(ctx, bson.M{"client_code": demoFilter})
	if err != nil {
		return fmt.Errorf("delete demo orders: %w", err)
	}
	logger.Info("Deleted demo orders", "count", ordersResult.DeletedCount)

	clientsResult, err := db.Collection("clients").DeleteMany(ctx, bson.M{"code": demoFilter})
	if err != nil {
		return fmt.Errorf("delete demo clients: %w", err)
	}
	logger.Info("Deleted demo clients", "count", clientsResult.DeletedCount)

	trackerResult, err := db.Collection("_seeds").DeleteMany(ctx, bson.M{"application": "comanda_demo"})
	if err != nil {
		return fmt.Errorf("delete demo seed tracker: %w", err)
	}
	logger.Info("Cleared demo seed tracker", "count", trackerResult.DeletedCount)

	return nil
}
