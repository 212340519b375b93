package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"

	"github.com/appetiteclub/comanda/internal/board"
	"github.com/appetiteclub/comanda/internal/mongo"
	"github.com/appetiteclub/comanda/pkg/enums/route"
)

// demoCodePrefix marks every demo directory entry; clear-demo keys on it.
const demoCodePrefix = "DEMO-"

var demoDirectory = [][3]string{
	{"Panadería El Trigal", demoCodePrefix + "01", "Av. San Martín 1420"},
	{"Almacén Doña Rosa", demoCodePrefix + "02", "Belgrano 233"},
	{"Kiosco El Ñandú", demoCodePrefix + "03", "Mitre 871"},
	{"Verdulería López", demoCodePrefix + "04", "Urquiza 95"},
	{"Bar El Farol", demoCodePrefix + "05", "Alsina 1204"},
}

// SeedDemo fills the board with a recognizable working set: directory
// entries, delivery orders spread across the lifecycle, and route orders on
// both routes. Useful for demos and for exercising the station views by hand.
func SeedDemo(ctx context.Context, config *apt.Config, logger apt.Logger) error {
	logger.Info("Starting demo seeding...")

	baseRepo := mongo.NewBaseRepo(config, logger)
	if err := baseRepo.Start(ctx); err != nil {
		return fmt.Errorf("connect to store: %w", err)
	}
	defer baseRepo.Stop(ctx)

	db := baseRepo.GetDatabase()
	ledger := mongo.NewLedgerRepo(db)
	counters := mongo.NewCounterRepo(db)
	directory := mongo.NewDirectoryRepo(db)

	clients := make([]*board.Client, 0, len(demoDirectory))
	for _, row := range demoDirectory {
		c, err := board.NewClient(row[0], row[1], row[2])
		if err != nil {
			return fmt.Errorf("build demo client %q: %w", row[0], err)
		}
		clients = append(clients, c)
	}
	if err := directory.CreateMany(ctx, clients); err != nil {
		return fmt.Errorf("insert demo clients: %w", err)
	}
	logger.Info("Demo clients created", "count", len(clients))

	now := time.Now()
	if err := seedDeliveryOrders(ctx, ledger, clients, now, logger); err != nil {
		return err
	}
	if err := seedRouteOrders(ctx, ledger, counters, clients, now, logger); err != nil {
		return err
	}
	return nil
}

func seedDeliveryOrders(ctx context.Context, ledger *mongo.LedgerRepo, clients []*board.Client, now time.Time, logger apt.Logger) error {
	scenarios := []struct {
		client  int
		items   string
		seq     int
		cook    string
		ready   bool
		courier string
		age     time.Duration
	}{
		{client: 0, items: "2 docenas de medialunas", seq: 1, cook: "Noel", ready: true, courier: "Carlos", age: 90 * time.Minute},
		{client: 1, items: "1 pizza grande muzzarella", seq: 2, cook: "Noel", ready: true, age: 40 * time.Minute},
		{client: 2, items: "3 empanadas carne, 3 jyq", seq: 3, cook: "Mabel", age: 25 * time.Minute},
		{client: 3, items: "1 tarta de verdura", seq: 4, age: 10 * time.Minute},
		{client: 4, items: "2 lomitos completos", seq: 5, age: 2 * time.Minute},
	}

	for _, s := range scenarios {
		created := now.Add(-s.age)
		o, err := board.NewDeliveryOrder(*clients[s.client], s.items, s.seq, created)
		if err != nil {
			return fmt.Errorf("build demo order %d: %w", s.seq, err)
		}
		// Backfilled orders must not fire station cues on the next snapshot.
		o.JustCreated = false

		if s.cook != "" {
			if _, err := board.Apply(o, board.ActionAssignCook, s.cook, created.Add(5*time.Minute)); err != nil {
				return fmt.Errorf("advance demo order %d: %w", s.seq, err)
			}
		}
		if s.ready {
			if _, err := board.Apply(o, board.ActionMarkReady, "", created.Add(20*time.Minute)); err != nil {
				return fmt.Errorf("advance demo order %d: %w", s.seq, err)
			}
		}
		if s.courier != "" {
			if _, err := board.Apply(o, board.ActionAssignCourier, s.courier, created.Add(30*time.Minute)); err != nil {
				return fmt.Errorf("advance demo order %d: %w", s.seq, err)
			}
		}

		if err := ledger.Create(ctx, o); err != nil {
			return fmt.Errorf("insert demo order %d: %w", s.seq, err)
		}
	}

	logger.Info("Demo delivery orders created", "count", len(scenarios))
	return nil
}

func seedRouteOrders(ctx context.Context, ledger *mongo.LedgerRepo, counters *mongo.CounterRepo, clients []*board.Client, now time.Time, logger apt.Logger) error {
	businessDate := now.Format(board.BusinessDateLayout)
	stops := []struct {
		client int
		items  string
		rt     route.Route
		pos    int
	}{
		{client: 0, items: "10 kg harina", rt: route.Routes.Route1, pos: 1},
		{client: 1, items: "2 cajones gaseosa", rt: route.Routes.Route1, pos: 2},
		{client: 2, items: "1 bolsa pan rallado", rt: route.Routes.Route2, pos: 1},
		{client: 3, items: "5 kg papa", rt: route.Routes.Unassigned, pos: 0},
	}

	for _, s := range stops {
		seq, err := counters.NextSequence(ctx, businessDate)
		if err != nil {
			return fmt.Errorf("allocate demo route sequence: %w", err)
		}
		o, err := board.NewRouteOrder(*clients[s.client], s.items, seq, s.rt, s.pos, businessDate, now)
		if err != nil {
			return fmt.Errorf("build demo route order: %w", err)
		}
		o.JustCreated = false

		if err := ledger.Create(ctx, o); err != nil {
			return fmt.Errorf("insert demo route order: %w", err)
		}
	}

	logger.Info("Demo route orders created", "count", len(stops))
	return nil
}
