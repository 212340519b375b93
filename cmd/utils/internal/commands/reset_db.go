package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/appetiteclub/comanda/internal/mongo"
)

// ResetDB drops the board database, orders, clients, counters and seed
// tracking included. There is no undo.
func ResetDB(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	logger.Infof("DANGER: this drops the whole board database and cannot be undone")

	baseRepo := mongo.NewBaseRepo(config, logger)
	if err := baseRepo.Start(ctx); err != nil {
		return fmt.Errorf("connect to store: %w", err)
	}
	defer baseRepo.Stop(ctx)

	db := baseRepo.GetDatabase()
	logger.Info("Dropping database", "database", db.Name())

	result := db.RunCommand(ctx, bson.D{{Key: "dropDatabase", Value: 1}})
	if result.Err() != nil {
		return fmt.Errorf("drop database %s: %w", db.Name(), result.Err())
	}

	logger.Info("Database dropped", "database", db.Name())
	return nil
}
