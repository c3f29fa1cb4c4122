// Package dataset holds the Ergast tables in memory and the lookup indexes
// every aggregation runs over. A Dataset is built once and never mutated, so
// it can be shared freely between goroutines.
package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/padraicbc/f1history/models"
)

// UnknownName is the display name substituted for unresolved references.
const UnknownName = "Unknown"

// Tables are the raw source tables as loaded from CSV or Postgres.
type Tables struct {
	Races                []models.Race
	Results              []models.Result
	Drivers              []models.Driver
	Constructors         []models.Constructor
	DriverStandings      []models.DriverStanding
	ConstructorStandings []models.ConstructorStanding
	Qualifying           []models.Qualifying
	Circuits             []models.Circuit
	Statuses             []models.Status
	Seasons              []models.Season
}

// Counts returns the row count per table, keyed by table name.
func (t Tables) Counts() map[string]int {
	return map[string]int{
		"races":                 len(t.Races),
		"results":               len(t.Results),
		"drivers":               len(t.Drivers),
		"constructors":          len(t.Constructors),
		"driver_standings":      len(t.DriverStandings),
		"constructor_standings": len(t.ConstructorStandings),
		"qualifying":            len(t.Qualifying),
		"circuits":              len(t.Circuits),
		"status":                len(t.Statuses),
		"seasons":               len(t.Seasons),
	}
}

// Dataset is the immutable, indexed view of Tables.
// Slices returned by its accessors are shared and must not be modified.
type Dataset struct {
	races        []models.Race
	raceByID     map[int]models.Race
	racesByYear  map[int][]models.Race
	years        []int
	seasons      []models.Season
	drivers      []models.Driver
	driverByID   map[int]models.Driver
	constructors map[int]models.Constructor
	circuits     []models.Circuit
	circuitByID  map[int]models.Circuit
	statusByID   map[int]string

	resultsByRace   map[int][]models.Result
	resultsByDriver map[int][]models.Result
	qualiByRace     map[int][]models.Qualifying
	driverStandings map[int][]models.DriverStanding
	teamStandings   map[int][]models.ConstructorStanding
}

// New indexes t. Rows are kept in source order within each index, except
// races which are ordered by (year, round).
func New(t Tables) *Dataset {
	ds := &Dataset{
		raceByID:        make(map[int]models.Race, len(t.Races)),
		racesByYear:     map[int][]models.Race{},
		driverByID:      make(map[int]models.Driver, len(t.Drivers)),
		constructors:    make(map[int]models.Constructor, len(t.Constructors)),
		circuitByID:     make(map[int]models.Circuit, len(t.Circuits)),
		statusByID:      make(map[int]string, len(t.Statuses)),
		resultsByRace:   map[int][]models.Result{},
		resultsByDriver: map[int][]models.Result{},
		qualiByRace:     map[int][]models.Qualifying{},
		driverStandings: map[int][]models.DriverStanding{},
		teamStandings:   map[int][]models.ConstructorStanding{},
	}

	ds.races = append([]models.Race(nil), t.Races...)
	sort.SliceStable(ds.races, func(i, j int) bool {
		if ds.races[i].Year != ds.races[j].Year {
			return ds.races[i].Year < ds.races[j].Year
		}
		return ds.races[i].Round < ds.races[j].Round
	})
	for _, r := range ds.races {
		ds.raceByID[r.RaceID] = r
		if _, ok := ds.racesByYear[r.Year]; !ok {
			ds.years = append(ds.years, r.Year)
		}
		ds.racesByYear[r.Year] = append(ds.racesByYear[r.Year], r)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ds.years)))

	ds.seasons = append([]models.Season(nil), t.Seasons...)
	if len(ds.seasons) == 0 {
		ds.seasons = SeasonsFromRaces(t.Races)
	}

	ds.drivers = append([]models.Driver(nil), t.Drivers...)
	for _, d := range t.Drivers {
		ds.driverByID[d.DriverID] = d
	}
	for _, c := range t.Constructors {
		ds.constructors[c.ConstructorID] = c
	}
	ds.circuits = append([]models.Circuit(nil), t.Circuits...)
	for _, c := range t.Circuits {
		ds.circuitByID[c.CircuitID] = c
	}
	for _, s := range t.Statuses {
		ds.statusByID[s.StatusID] = s.Status
	}

	for _, r := range t.Results {
		ds.resultsByRace[r.RaceID] = append(ds.resultsByRace[r.RaceID], r)
		ds.resultsByDriver[r.DriverID] = append(ds.resultsByDriver[r.DriverID], r)
	}
	for _, q := range t.Qualifying {
		ds.qualiByRace[q.RaceID] = append(ds.qualiByRace[q.RaceID], q)
	}
	for _, s := range t.DriverStandings {
		ds.driverStandings[s.RaceID] = append(ds.driverStandings[s.RaceID], s)
	}
	for _, s := range t.ConstructorStandings {
		ds.teamStandings[s.RaceID] = append(ds.teamStandings[s.RaceID], s)
	}

	return ds
}

// Years lists every year with at least one race, most recent first.
func (ds *Dataset) Years() []int { return ds.years }

// Seasons lists the seasons table.
func (ds *Dataset) Seasons() []models.Season { return ds.seasons }

// RacesInYear returns the year's races ordered by round; nil when none.
func (ds *Dataset) RacesInYear(year int) []models.Race { return ds.racesByYear[year] }

// Race looks up a race by id.
func (ds *Dataset) Race(id int) (models.Race, bool) {
	r, ok := ds.raceByID[id]
	return r, ok
}

// RacesAtCircuit returns every race held at circuitID in (year, round) order.
func (ds *Dataset) RacesAtCircuit(circuitID int) []models.Race {
	var out []models.Race
	for _, r := range ds.races {
		if r.CircuitID == circuitID {
			out = append(out, r)
		}
	}
	return out
}

// ResultsForRace returns the result rows of one race.
func (ds *Dataset) ResultsForRace(raceID int) []models.Result { return ds.resultsByRace[raceID] }

// ResultsForDriver returns every result row of one driver, in source order.
func (ds *Dataset) ResultsForDriver(driverID int) []models.Result {
	return ds.resultsByDriver[driverID]
}

// ResultFor returns the first result row for driverID in raceID.
func (ds *Dataset) ResultFor(raceID, driverID int) (models.Result, bool) {
	for _, r := range ds.resultsByRace[raceID] {
		if r.DriverID == driverID {
			return r, true
		}
	}
	return models.Result{}, false
}

// QualifyingForRace returns the qualifying rows of one race.
func (ds *Dataset) QualifyingForRace(raceID int) []models.Qualifying {
	return ds.qualiByRace[raceID]
}

// QualifyingFor returns the first qualifying row for driverID in raceID.
func (ds *Dataset) QualifyingFor(raceID, driverID int) (models.Qualifying, bool) {
	for _, q := range ds.qualiByRace[raceID] {
		if q.DriverID == driverID {
			return q, true
		}
	}
	return models.Qualifying{}, false
}

// DriverStandingsAfter returns the drivers' standings snapshot after raceID.
func (ds *Dataset) DriverStandingsAfter(raceID int) []models.DriverStanding {
	return ds.driverStandings[raceID]
}

// ConstructorStandingsAfter returns the constructors' standings snapshot after raceID.
func (ds *Dataset) ConstructorStandingsAfter(raceID int) []models.ConstructorStanding {
	return ds.teamStandings[raceID]
}

// Driver resolves id. Unknown ids yield a placeholder and false.
func (ds *Dataset) Driver(id int) (models.Driver, bool) {
	if d, ok := ds.driverByID[id]; ok {
		return d, true
	}
	return models.Driver{DriverID: id, Surname: UnknownName}, false
}

// Constructor resolves id. Unknown ids yield a placeholder and false.
func (ds *Dataset) Constructor(id int) (models.Constructor, bool) {
	if c, ok := ds.constructors[id]; ok {
		return c, true
	}
	return models.Constructor{ConstructorID: id, Name: UnknownName}, false
}

// ConstructorByRef finds a constructor by its reference code, case-insensitively.
func (ds *Dataset) ConstructorByRef(ref string) (models.Constructor, bool) {
	for _, c := range ds.constructors {
		if strings.EqualFold(c.ConstructorRef, ref) {
			return c, true
		}
	}
	return models.Constructor{}, false
}

// Circuit resolves id. Unknown ids yield a placeholder and false.
func (ds *Dataset) Circuit(id int) (models.Circuit, bool) {
	if c, ok := ds.circuitByID[id]; ok {
		return c, true
	}
	return models.Circuit{CircuitID: id, Name: UnknownName}, false
}

// Circuits lists all circuits in source order.
func (ds *Dataset) Circuits() []models.Circuit { return ds.circuits }

// Status returns the status text for id, or "Unknown".
func (ds *Dataset) Status(id int) string {
	if s, ok := ds.statusByID[id]; ok {
		return s
	}
	return UnknownName
}

// SearchDrivers matches q against full name, code and reference,
// case-insensitively. An empty query returns every driver. Results are
// ordered by surname then forename.
func (ds *Dataset) SearchDrivers(q string) []models.Driver {
	q = strings.ToLower(strings.TrimSpace(q))
	var out []models.Driver
	for _, d := range ds.drivers {
		if q == "" || matchesDriver(d, q) {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Surname != out[j].Surname {
			return out[i].Surname < out[j].Surname
		}
		return out[i].Forename < out[j].Forename
	})
	return out
}

func matchesDriver(d models.Driver, q string) bool {
	if strings.Contains(strings.ToLower(d.FullName()), q) || strings.Contains(strings.ToLower(d.DriverRef), q) {
		return true
	}
	return d.Code != nil && strings.EqualFold(*d.Code, q)
}

// String summarises the dataset size for logs.
func (ds *Dataset) String() string {
	return fmt.Sprintf("dataset{years=%d races=%d drivers=%d circuits=%d}",
		len(ds.years), len(ds.races), len(ds.driverByID), len(ds.circuitByID))
}
