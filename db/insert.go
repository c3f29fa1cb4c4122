package db

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/padraicbc/f1history/dataset"
)

// BatchSize is the number of rows per INSERT statement.
const BatchSize = 500

// InsertBatch inserts rows, skipping rows that already exist (idempotent re-runs).
func InsertBatch[T any](ctx context.Context, db bun.IDB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := db.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx)
	return err
}

// InsertAll writes rows in chunks of BatchSize and returns how many were sent.
func InsertAll[T any](ctx context.Context, db bun.IDB, rows []T) (int, error) {
	total := 0
	for start := 0; start < len(rows); start += BatchSize {
		end := min(start+BatchSize, len(rows))
		if err := InsertBatch(ctx, db, rows[start:end]); err != nil {
			return total, err
		}
		total += end - start
	}
	return total, nil
}

// InsertTables writes every table of t in dependency order and reports
// the rows sent per table.
func InsertTables(ctx context.Context, db bun.IDB, t dataset.Tables) (map[string]int, error) {
	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"seasons", func() (int, error) { return InsertAll(ctx, db, t.Seasons) }},
		{"circuits", func() (int, error) { return InsertAll(ctx, db, t.Circuits) }},
		{"status", func() (int, error) { return InsertAll(ctx, db, t.Statuses) }},
		{"drivers", func() (int, error) { return InsertAll(ctx, db, t.Drivers) }},
		{"constructors", func() (int, error) { return InsertAll(ctx, db, t.Constructors) }},
		{"races", func() (int, error) { return InsertAll(ctx, db, t.Races) }},
		{"results", func() (int, error) { return InsertAll(ctx, db, t.Results) }},
		{"qualifying", func() (int, error) { return InsertAll(ctx, db, t.Qualifying) }},
		{"driver_standings", func() (int, error) { return InsertAll(ctx, db, t.DriverStandings) }},
		{"constructor_standings", func() (int, error) { return InsertAll(ctx, db, t.ConstructorStandings) }},
	}

	counts := make(map[string]int, len(steps))
	for _, s := range steps {
		n, err := s.fn()
		counts[s.name] = n
		if err != nil {
			return counts, fmt.Errorf("inserting %s: %w", s.name, err)
		}
	}
	return counts, nil
}
