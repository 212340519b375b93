package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/seed"
	"go.mongodb.org/mongo-driver/mongo"
)

const demoSeedApplication = "comanda_demo"

// demoClients is a small directory sample so a fresh install has something to
// search against. Names carry diacritics on purpose; the search fold must
// find them from plain ASCII queries.
var demoClients = [][3]string{
	{"Panadería El Trigal", "TRI-01", "Av. San Martín 1420"},
	{"Almacén Doña Rosa", "ROS-02", "Belgrano 233"},
	{"Kiosco El Ñandú", "NAN-03", "Mitre 871"},
	{"Verdulería López", "LOP-04", "Urquiza 95"},
	{"Café Martínez Hnos", "MAR-05", "Sarmiento 1502"},
	{"Despensa La Esquina", "ESQ-06", "Rivadavia 48"},
	{"Carnicería Don José", "JOS-07", "9 de Julio 310"},
	{"Bar El Farol", "FAR-08", "Alsina 1204"},
}

func demoSeeds(directory DirectoryRepo, logger apt.Logger) []seed.Seed {
	return []seed.Seed{
		{
			ID:          "2026-08-20_demo_client_directory",
			Description: "Load demo client directory entries",
			Run: func(ctx context.Context) error {
				return seedDemoClients(ctx, directory, logger)
			},
		},
	}
}

func seedDemoClients(ctx context.Context, directory DirectoryRepo, logger apt.Logger) error {
	clients := make([]*Client, 0, len(demoClients))
	for _, row := range demoClients {
		c, err := NewClient(row[0], row[1], row[2])
		if err != nil {
			return fmt.Errorf("build demo client %q: %w", row[0], err)
		}
		clients = append(clients, c)
	}
	if err := directory.CreateMany(ctx, clients); err != nil {
		return fmt.Errorf("insert demo clients: %w", err)
	}
	logger.Info("Demo clients created", "count", len(clients))
	return nil
}

// DemoSeedingFunc returns a lifecycle OnStart-compatible function that applies
// the demo directory seeds in the background. The seed tracker makes the run
// idempotent across restarts.
func DemoSeedingFunc(seedCtx context.Context, directory DirectoryRepo, dbFn func() *mongo.Database, logger apt.Logger) func(ctx context.Context) error {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	return func(ctx context.Context) error {
		logger.Info("Starting demo directory seeding in background")
		go func() {
			db := dbFn()
			if db == nil {
				logger.Errorf("demo seeding skipped: database is not initialized")
				return
			}
			tracker := seed.NewMongoTracker(db)
			if err := seed.Apply(seedCtx, tracker, demoSeeds(directory, logger), demoSeedApplication); err != nil && !errors.Is(err, context.Canceled) {
				logger.Errorf("demo directory seeds failed: %v", err)
				return
			}
			logger.Info("Demo directory seeding completed")
		}()
		return nil
	}
}
