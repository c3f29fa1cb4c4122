package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"golang.org/x/sync/errgroup"

	"github.com/padraicbc/f1history/config"
	"github.com/padraicbc/f1history/dataset"
	"github.com/padraicbc/f1history/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(cfg *config.Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	return db
}

// Models lists every stored table, dimensions first.
func Models() []interface{} {
	return []interface{}{
		(*models.Season)(nil),
		(*models.Circuit)(nil),
		(*models.Status)(nil),
		(*models.Driver)(nil),
		(*models.Constructor)(nil),
		(*models.Race)(nil),
		(*models.Result)(nil),
		(*models.Qualifying)(nil),
		(*models.DriverStanding)(nil),
		(*models.ConstructorStanding)(nil),
	}
}

type index struct {
	name   string
	model  interface{}
	column string
}

var indexes = []index{
	{"races_year_idx", (*models.Race)(nil), "year"},
	{"races_circuit_idx", (*models.Race)(nil), "circuit_id"},
	{"results_race_idx", (*models.Result)(nil), "race_id"},
	{"results_driver_idx", (*models.Result)(nil), "driver_id"},
	{"qualifying_race_idx", (*models.Qualifying)(nil), "race_id"},
	{"driver_standings_race_idx", (*models.DriverStanding)(nil), "race_id"},
	{"constructor_standings_race_idx", (*models.ConstructorStanding)(nil), "race_id"},
}

// CreateTables creates all tables in dependency order, then the lookup
// indexes the loader and importers rely on.
func CreateTables(ctx context.Context, db *bun.DB) error {
	for _, model := range Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	for _, ix := range indexes {
		if _, err := db.NewCreateIndex().Model(ix.model).Index(ix.name).Column(ix.column).IfNotExists().Exec(ctx); err != nil {
			log.Printf("index %s: %v", ix.name, err)
		}
	}

	return nil
}

// LoadTables reads every table concurrently. The first failure cancels the
// remaining queries and is returned.
func LoadTables(ctx context.Context, db bun.IDB) (dataset.Tables, error) {
	var t dataset.Tables
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return selectAll(ctx, db, &t.Races, "race_id") })
	g.Go(func() error { return selectAll(ctx, db, &t.Results, "result_id") })
	g.Go(func() error { return selectAll(ctx, db, &t.Drivers, "driver_id") })
	g.Go(func() error { return selectAll(ctx, db, &t.Constructors, "constructor_id") })
	g.Go(func() error { return selectAll(ctx, db, &t.DriverStandings, "driver_standings_id") })
	g.Go(func() error { return selectAll(ctx, db, &t.ConstructorStandings, "constructor_standings_id") })
	g.Go(func() error { return selectAll(ctx, db, &t.Qualifying, "qualify_id") })
	g.Go(func() error { return selectAll(ctx, db, &t.Circuits, "circuit_id") })
	g.Go(func() error { return selectAll(ctx, db, &t.Statuses, "status_id") })
	g.Go(func() error { return selectAll(ctx, db, &t.Seasons, "year") })

	if err := g.Wait(); err != nil {
		return dataset.Tables{}, err
	}
	if len(t.Seasons) == 0 {
		t.Seasons = dataset.SeasonsFromRaces(t.Races)
	}
	return t, nil
}

func selectAll[M any](ctx context.Context, db bun.IDB, dst *[]M, order string) error {
	if err := db.NewSelect().Model(dst).Order(order).Scan(ctx); err != nil {
		var zero M
		return fmt.Errorf("selecting %T: %w", zero, err)
	}
	return nil
}
