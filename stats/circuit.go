package stats

import (
	"github.com/padraicbc/f1history/dataset"
	"github.com/padraicbc/f1history/models"
)

const recentRaceLimit = 10

// LapRecord is the fastest valid lap over a set of races.
type LapRecord struct {
	Time       string  `json:"time"`
	Seconds    float64 `json:"seconds"`
	DriverID   int     `json:"driverID"`
	DriverName string  `json:"driverName"`
	RaceID     int     `json:"raceID"`
	Year       int     `json:"year"`
}

// RecentRace is one line of a circuit's recent history.
type RecentRace struct {
	RaceRef
	Year           int    `json:"year"`
	Winner         string `json:"winner,omitempty"`
	WinnerID       int    `json:"winnerID,omitempty"`
	Constructor    string `json:"constructor,omitempty"`
	PoleSitter     string `json:"poleSitter,omitempty"`
	PoleSource     string `json:"poleSource,omitempty"`
	FastestLapBy   string `json:"fastestLapBy,omitempty"`
	FastestLapTime string `json:"fastestLapTime,omitempty"`
}

// CircuitStats summarises every race held at one circuit.
type CircuitStats struct {
	Circuit         models.Circuit `json:"circuit"`
	Available       bool           `json:"available"`
	TotalRaces      int            `json:"totalRaces"`
	FirstYear       int            `json:"firstYear,omitempty"`
	LastYear        int            `json:"lastYear,omitempty"`
	Winners         []Tally        `json:"winners"`
	ConstructorWins []Tally        `json:"constructorWins"`
	Poles           []Tally        `json:"poles"`
	FastestLap      *LapRecord     `json:"fastestLap,omitempty"`
	RecentRaces     []RecentRace   `json:"recentRaces"`
}

// ComputeCircuitStats aggregates wins, poles and the lap record at
// circuitID. Poles use qualifying or grid per race. FastestLap is nil when
// no race there has a parseable fastest lap.
func ComputeCircuitStats(ds *dataset.Dataset, circuitID int) CircuitStats {
	c, _ := ds.Circuit(circuitID)
	out := CircuitStats{
		Circuit:         c,
		Winners:         []Tally{},
		ConstructorWins: []Tally{},
		Poles:           []Tally{},
		RecentRaces:     []RecentRace{},
	}
	races := ds.RacesAtCircuit(circuitID)
	if len(races) == 0 {
		return out
	}
	out.Available = true
	out.TotalRaces = len(races)
	out.FirstYear = races[0].Year
	out.LastYear = races[len(races)-1].Year

	winners, teams, poles := newTallier(), newTallier(), newTallier()
	for _, race := range races {
		for _, r := range ds.ResultsForRace(race.RaceID) {
			if isWin(r) {
				winners.add(r.DriverID)
				teams.add(r.ConstructorID)
			}
		}
		if p, ok := ResolvePole(ds, race.RaceID, RacePoleSource(ds, race.RaceID)); ok {
			poles.add(p.DriverID)
		}
		if lap, ok := raceFastestLap(ds, race); ok {
			if out.FastestLap == nil || lap.Seconds < out.FastestLap.Seconds {
				out.FastestLap = &lap
			}
		}
	}
	out.Winners = winners.sorted(driverName(ds))
	out.ConstructorWins = teams.sorted(constructorName(ds))
	out.Poles = poles.sorted(driverName(ds))

	for i := len(races) - 1; i >= 0 && len(out.RecentRaces) < recentRaceLimit; i-- {
		out.RecentRaces = append(out.RecentRaces, recentRace(ds, races[i]))
	}
	return out
}

func recentRace(ds *dataset.Dataset, race models.Race) RecentRace {
	rr := RecentRace{RaceRef: refOf(race), Year: race.Year}
	for _, r := range ds.ResultsForRace(race.RaceID) {
		if isWin(r) {
			d, _ := ds.Driver(r.DriverID)
			c, _ := ds.Constructor(r.ConstructorID)
			rr.WinnerID = r.DriverID
			rr.Winner = d.FullName()
			rr.Constructor = c.Name
			break
		}
	}
	src := RacePoleSource(ds, race.RaceID)
	if p, ok := ResolvePole(ds, race.RaceID, src); ok {
		d, _ := ds.Driver(p.DriverID)
		rr.PoleSitter = d.FullName()
		rr.PoleSource = string(src)
	}
	if lap, ok := raceFastestLap(ds, race); ok {
		rr.FastestLapBy = lap.DriverName
		rr.FastestLapTime = lap.Time
	}
	return rr
}

// raceFastestLap picks the quickest parseable fastest-lap time of a race.
func raceFastestLap(ds *dataset.Dataset, race models.Race) (LapRecord, bool) {
	var best LapRecord
	found := false
	for _, r := range ds.ResultsForRace(race.RaceID) {
		secs, ok := parseLapPtr(r.FastestLapTime)
		if !ok {
			continue
		}
		if !found || secs < best.Seconds {
			d, _ := ds.Driver(r.DriverID)
			best = LapRecord{
				Time:       *r.FastestLapTime,
				Seconds:    secs,
				DriverID:   r.DriverID,
				DriverName: d.FullName(),
				RaceID:     race.RaceID,
				Year:       race.Year,
			}
			found = true
		}
	}
	return best, found
}

func driverName(ds *dataset.Dataset) func(int) string {
	return func(id int) string {
		d, _ := ds.Driver(id)
		return d.FullName()
	}
}

func constructorName(ds *dataset.Dataset) func(int) string {
	return func(id int) string {
		c, _ := ds.Constructor(id)
		return c.Name
	}
}
