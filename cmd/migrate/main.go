// cmd/migrate/main.go
// Migrates the Ergast MySQL database dump into the local PostgreSQL database.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/ergastdb" \
//	DB_PASS="pgpass" \
//	go run ./cmd/migrate
package main

import (
	"context"
	"database/sql"
	"log"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/padraicbc/f1history/config"
	bundb "github.com/padraicbc/f1history/db"
	"github.com/padraicbc/f1history/models"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()

	// --- MySQL ---
	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/ergastdb")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	// --- PostgreSQL ---
	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	// Create tables (idempotent)
	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"seasons", func() (int, error) { return migrate(ctx, myDB, pgDB, seasonsQuery, scanSeason) }},
		{"circuits", func() (int, error) { return migrate(ctx, myDB, pgDB, circuitsQuery, scanCircuit) }},
		{"status", func() (int, error) { return migrate(ctx, myDB, pgDB, statusQuery, scanStatus) }},
		{"drivers", func() (int, error) { return migrate(ctx, myDB, pgDB, driversQuery, scanDriver) }},
		{"constructors", func() (int, error) { return migrate(ctx, myDB, pgDB, constructorsQuery, scanConstructor) }},
		{"races", func() (int, error) { return migrate(ctx, myDB, pgDB, racesQuery, scanRace) }},
		{"results", func() (int, error) { return migrate(ctx, myDB, pgDB, resultsQuery, scanResult) }},
		{"qualifying", func() (int, error) { return migrate(ctx, myDB, pgDB, qualifyingQuery, scanQualifying) }},
		{"driver_standings", func() (int, error) {
			return migrate(ctx, myDB, pgDB, driverStandingsQuery, scanDriverStanding)
		}},
		{"constructor_standings", func() (int, error) {
			return migrate(ctx, myDB, pgDB, constructorStandingsQuery, scanConstructorStanding)
		}},
	}

	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			log.Fatalf("migrate %s: %v", s.name, err)
		}
		log.Printf("%-22s  %d rows migrated", s.name, n)
	}

	log.Println("migration complete")
}

// --- helpers ---

func nullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func nullStr(n sql.NullString) *string {
	if !n.Valid || n.String == "" || n.String == `\N` {
		return nil
	}
	return &n.String
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return &n.Float64
}

// parseFloatStr reads numeric text columns such as fastestLapSpeed.
func parseFloatStr(n sql.NullString) *float64 {
	s := nullStr(n)
	if s == nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		return nil
	}
	return &f
}

func str(n sql.NullString) string {
	if s := nullStr(n); s != nil {
		return *s
	}
	return ""
}

// migrate streams query through scan and inserts in batches.
func migrate[T any](ctx context.Context, myDB *sql.DB, pgDB *bun.DB, query string, scan func(*sql.Rows) (T, error)) (int, error) {
	rows, err := myDB.QueryContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []T
	total := 0
	for rows.Next() {
		row, err := scan(rows)
		if err != nil {
			return total, err
		}
		batch = append(batch, row)
		if len(batch) >= bundb.BatchSize {
			if err := bundb.InsertBatch(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bundb.InsertBatch(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

// --- per-table queries ---

const (
	seasonsQuery      = "SELECT year, url FROM seasons"
	circuitsQuery     = "SELECT circuitId, circuitRef, name, location, country, lat, lng, alt, url FROM circuits"
	statusQuery       = "SELECT statusId, status FROM status"
	driversQuery      = "SELECT driverId, driverRef, number, code, forename, surname, DATE_FORMAT(dob, '%Y-%m-%d'), nationality, url FROM drivers"
	constructorsQuery = "SELECT constructorId, constructorRef, name, nationality, url FROM constructors"
	racesQuery        = "SELECT raceId, year, round, circuitId, name, DATE_FORMAT(date, '%Y-%m-%d'), CAST(time AS CHAR), url FROM races"
	resultsQuery      = `SELECT resultId, raceId, driverId, constructorId, number, grid, position, positionText,
		positionOrder, points, laps, time, milliseconds, fastestLap, ` + "`rank`" + `, fastestLapTime,
		fastestLapSpeed, statusId FROM results`
	qualifyingQuery           = "SELECT qualifyId, raceId, driverId, constructorId, number, position, q1, q2, q3 FROM qualifying"
	driverStandingsQuery      = "SELECT driverStandingsId, raceId, driverId, points, position, positionText, wins FROM driverStandings"
	constructorStandingsQuery = "SELECT constructorStandingsId, raceId, constructorId, points, position, positionText, wins FROM constructorStandings"
)

// --- per-table scanners ---

func scanSeason(rows *sql.Rows) (models.Season, error) {
	var (
		s   models.Season
		url sql.NullString
	)
	err := rows.Scan(&s.Year, &url)
	s.URL = str(url)
	return s, err
}

func scanCircuit(rows *sql.Rows) (models.Circuit, error) {
	var (
		c                      models.Circuit
		location, country, url sql.NullString
		lat, lng               sql.NullFloat64
		alt                    sql.NullInt64
	)
	err := rows.Scan(&c.CircuitID, &c.CircuitRef, &c.Name, &location, &country, &lat, &lng, &alt, &url)
	c.Location = str(location)
	c.Country = str(country)
	c.Lat = nullFloat(lat)
	c.Lng = nullFloat(lng)
	c.Alt = nullInt(alt)
	c.URL = str(url)
	return c, err
}

func scanStatus(rows *sql.Rows) (models.Status, error) {
	var s models.Status
	err := rows.Scan(&s.StatusID, &s.Status)
	return s, err
}

func scanDriver(rows *sql.Rows) (models.Driver, error) {
	var (
		d                   models.Driver
		number              sql.NullInt64
		code, dob, nat, url sql.NullString
	)
	err := rows.Scan(&d.DriverID, &d.DriverRef, &number, &code, &d.Forename, &d.Surname, &dob, &nat, &url)
	d.Number = nullInt(number)
	d.Code = nullStr(code)
	d.DOB = nullStr(dob)
	d.Nationality = str(nat)
	d.URL = str(url)
	return d, err
}

func scanConstructor(rows *sql.Rows) (models.Constructor, error) {
	var (
		c        models.Constructor
		nat, url sql.NullString
	)
	err := rows.Scan(&c.ConstructorID, &c.ConstructorRef, &c.Name, &nat, &url)
	c.Nationality = str(nat)
	c.URL = str(url)
	return c, err
}

func scanRace(rows *sql.Rows) (models.Race, error) {
	var (
		r             models.Race
		date, tm, url sql.NullString
	)
	err := rows.Scan(&r.RaceID, &r.Year, &r.Round, &r.CircuitID, &r.Name, &date, &tm, &url)
	r.Date = str(date)
	r.Time = nullStr(tm)
	r.URL = str(url)
	return r, err
}

func scanResult(rows *sql.Rows) (models.Result, error) {
	var (
		r                                              models.Result
		number, position, millis, fastestLap, rank     sql.NullInt64
		grid, laps, positionOrder, statusID            sql.NullInt64
		points                                         sql.NullFloat64
		positionText, tm, fastestLapTime, fastestSpeed sql.NullString
	)
	err := rows.Scan(
		&r.ResultID, &r.RaceID, &r.DriverID, &r.ConstructorID, &number, &grid, &position, &positionText,
		&positionOrder, &points, &laps, &tm, &millis, &fastestLap, &rank, &fastestLapTime,
		&fastestSpeed, &statusID,
	)
	r.Number = nullInt(number)
	r.Grid = int(grid.Int64)
	r.Position = nullInt(position)
	r.PositionText = str(positionText)
	r.PositionOrder = int(positionOrder.Int64)
	r.Points = points.Float64
	r.Laps = int(laps.Int64)
	r.Time = nullStr(tm)
	r.Milliseconds = nullInt(millis)
	r.FastestLap = nullInt(fastestLap)
	r.Rank = nullInt(rank)
	r.FastestLapTime = nullStr(fastestLapTime)
	r.FastestLapKph = parseFloatStr(fastestSpeed)
	r.StatusID = int(statusID.Int64)
	return r, err
}

func scanQualifying(rows *sql.Rows) (models.Qualifying, error) {
	var (
		q                models.Qualifying
		number, position sql.NullInt64
		q1, q2, q3       sql.NullString
	)
	err := rows.Scan(&q.QualifyID, &q.RaceID, &q.DriverID, &q.ConstructorID, &number, &position, &q1, &q2, &q3)
	q.Number = nullInt(number)
	q.Position = nullInt(position)
	q.Q1 = nullStr(q1)
	q.Q2 = nullStr(q2)
	q.Q3 = nullStr(q3)
	return q, err
}

func scanDriverStanding(rows *sql.Rows) (models.DriverStanding, error) {
	var (
		s            models.DriverStanding
		points       sql.NullFloat64
		position     sql.NullInt64
		positionText sql.NullString
		wins         sql.NullInt64
	)
	err := rows.Scan(&s.DriverStandingsID, &s.RaceID, &s.DriverID, &points, &position, &positionText, &wins)
	s.Points = points.Float64
	s.Position = nullInt(position)
	s.PositionText = str(positionText)
	s.Wins = int(wins.Int64)
	return s, err
}

func scanConstructorStanding(rows *sql.Rows) (models.ConstructorStanding, error) {
	var (
		s            models.ConstructorStanding
		points       sql.NullFloat64
		position     sql.NullInt64
		positionText sql.NullString
		wins         sql.NullInt64
	)
	err := rows.Scan(&s.ConstructorStandingsID, &s.RaceID, &s.ConstructorID, &points, &position, &positionText, &wins)
	s.Points = points.Float64
	s.Position = nullInt(position)
	s.PositionText = str(positionText)
	s.Wins = int(wins.Int64)
	return s, err
}
