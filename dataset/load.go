package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gocarina/gocsv"
	"golang.org/x/sync/errgroup"

	"github.com/padraicbc/f1history/models"
)

// Source file names inside a data directory.
const (
	FileRaces                = "races.csv"
	FileResults              = "results.csv"
	FileDrivers              = "drivers.csv"
	FileConstructors         = "constructors.csv"
	FileDriverStandings      = "driver_standings.csv"
	FileConstructorStandings = "constructor_standings.csv"
	FileQualifying           = "qualifying.csv"
	FileCircuits             = "circuits.csv"
	FileStatus               = "status.csv"
	FileSeasons              = "seasons.csv"
)

// LoadDir reads every source table from dir concurrently. The first failure
// cancels the remaining reads and is returned; a partial load is never
// returned. seasons.csv is optional and is derived from races when absent.
func LoadDir(ctx context.Context, dir string) (Tables, error) {
	var t Tables
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return readTable(ctx, dir, FileRaces, false, raceRow.model, &t.Races) })
	g.Go(func() error { return readTable(ctx, dir, FileResults, false, resultRow.model, &t.Results) })
	g.Go(func() error { return readTable(ctx, dir, FileDrivers, false, driverRow.model, &t.Drivers) })
	g.Go(func() error {
		return readTable(ctx, dir, FileConstructors, false, constructorRow.model, &t.Constructors)
	})
	g.Go(func() error {
		return readTable(ctx, dir, FileDriverStandings, false, driverStandingRow.model, &t.DriverStandings)
	})
	g.Go(func() error {
		return readTable(ctx, dir, FileConstructorStandings, false, constructorStandingRow.model, &t.ConstructorStandings)
	})
	g.Go(func() error { return readTable(ctx, dir, FileQualifying, false, qualifyingRow.model, &t.Qualifying) })
	g.Go(func() error { return readTable(ctx, dir, FileCircuits, false, circuitRow.model, &t.Circuits) })
	g.Go(func() error { return readTable(ctx, dir, FileStatus, false, statusRow.model, &t.Statuses) })
	g.Go(func() error { return readTable(ctx, dir, FileSeasons, true, seasonRow.model, &t.Seasons) })

	if err := g.Wait(); err != nil {
		return Tables{}, err
	}
	if len(t.Seasons) == 0 {
		t.Seasons = SeasonsFromRaces(t.Races)
	}
	return t, nil
}

// readTable decodes one CSV file into raw rows and converts them to models.
func readTable[R any, M any](ctx context.Context, dir, name string, optional bool, convert func(R) M, dst *[]M) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(dir, name)
	f, err := os.Open(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	var rows []R
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}

	out := make([]M, 0, len(rows))
	for _, r := range rows {
		out = append(out, convert(r))
	}
	*dst = out
	return nil
}

// SeasonsFromRaces lists the distinct race years in ascending order.
func SeasonsFromRaces(races []models.Race) []models.Season {
	seen := map[int]bool{}
	var out []models.Season
	for _, r := range races {
		if r.Year == 0 || seen[r.Year] {
			continue
		}
		seen[r.Year] = true
		out = append(out, models.Season{Year: r.Year})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
