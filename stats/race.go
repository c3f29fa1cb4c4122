package stats

import (
	"sort"

	"github.com/padraicbc/f1history/dataset"
	"github.com/padraicbc/f1history/models"
)

// Placing is a driver and team at one position of a race.
type Placing struct {
	Position        int    `json:"position"`
	DriverID        int    `json:"driverID"`
	DriverName      string `json:"driverName"`
	ConstructorID   int    `json:"constructorID"`
	ConstructorName string `json:"constructorName"`
}

// RaceFastestLap is the driver credited with a race's fastest lap.
type RaceFastestLap struct {
	DriverID   int    `json:"driverID"`
	DriverName string `json:"driverName"`
	Time       string `json:"time"`
}

// RacePole is the pole sitter of a race and the evidence used.
type RacePole struct {
	DriverID        int        `json:"driverID"`
	DriverName      string     `json:"driverName"`
	ConstructorName string     `json:"constructorName"`
	Source          PoleSource `json:"source"`
}

// ResultLine is one row of a race classification.
type ResultLine struct {
	PositionOrder   int     `json:"positionOrder"`
	Position        *int    `json:"position"`
	PositionText    string  `json:"positionText"`
	DriverID        int     `json:"driverID"`
	DriverName      string  `json:"driverName"`
	ConstructorID   int     `json:"constructorID"`
	ConstructorName string  `json:"constructorName"`
	Grid            int     `json:"grid"`
	Laps            int     `json:"laps"`
	Time            *string `json:"time,omitempty"`
	Points          float64 `json:"points"`
	Status          string  `json:"status"`
	DNF             bool    `json:"dnf"`
	FastestLapTime  *string `json:"fastestLapTime,omitempty"`
}

// RaceDetail is the full outcome of one race.
type RaceDetail struct {
	RaceRef
	Year        int             `json:"year"`
	CircuitID   int             `json:"circuitID"`
	CircuitName string          `json:"circuitName"`
	Winner      *Placing        `json:"winner,omitempty"`
	Podium      []Placing       `json:"podium"`
	Pole        *RacePole       `json:"pole,omitempty"`
	FastestLap  *RaceFastestLap `json:"fastestLap,omitempty"`
	Classified  int             `json:"classified"`
	DNFs        int             `json:"dnfs"`
	Results     []ResultLine    `json:"results"`
}

// ComputeRace builds the detail of raceID. It reports false for an
// unknown race.
func ComputeRace(ds *dataset.Dataset, raceID int) (RaceDetail, bool) {
	race, ok := ds.Race(raceID)
	if !ok {
		return RaceDetail{}, false
	}
	ci, _ := ds.Circuit(race.CircuitID)
	out := RaceDetail{
		RaceRef:     refOf(race),
		Year:        race.Year,
		CircuitID:   race.CircuitID,
		CircuitName: ci.Name,
		Podium:      []Placing{},
		Results:     []ResultLine{},
	}

	results := append([]models.Result(nil), ds.ResultsForRace(raceID)...)
	sort.SliceStable(results, func(i, j int) bool {
		return orderLess(results[i].PositionOrder, results[j].PositionOrder)
	})
	for _, r := range results {
		d, _ := ds.Driver(r.DriverID)
		c, _ := ds.Constructor(r.ConstructorID)
		line := ResultLine{
			PositionOrder:   r.PositionOrder,
			Position:        r.Position,
			PositionText:    r.PositionText,
			DriverID:        r.DriverID,
			DriverName:      d.FullName(),
			ConstructorID:   r.ConstructorID,
			ConstructorName: c.Name,
			Grid:            r.Grid,
			Laps:            r.Laps,
			Time:            r.Time,
			Points:          r.Points,
			Status:          ds.Status(r.StatusID),
			DNF:             IsDNF(r),
			FastestLapTime:  r.FastestLapTime,
		}
		out.Results = append(out.Results, line)

		if line.DNF {
			out.DNFs++
		}
		p, ok := r.Classified()
		if !ok {
			continue
		}
		out.Classified++
		if p <= 3 {
			out.Podium = append(out.Podium, Placing{
				Position:        p,
				DriverID:        r.DriverID,
				DriverName:      line.DriverName,
				ConstructorID:   r.ConstructorID,
				ConstructorName: c.Name,
			})
		}
	}
	sort.SliceStable(out.Podium, func(i, j int) bool { return out.Podium[i].Position < out.Podium[j].Position })
	if len(out.Podium) > 0 && out.Podium[0].Position == 1 {
		w := out.Podium[0]
		out.Winner = &w
	}

	out.Pole = racePole(ds, raceID)
	out.FastestLap = creditedFastestLap(ds, results)
	return out, true
}

// orderLess sorts by positionOrder with zero last.
func orderLess(a, b int) bool {
	switch {
	case a <= 0:
		return false
	case b <= 0:
		return true
	}
	return a < b
}

// racePole resolves the pole from qualifying when the race has any and
// falls back to the grid when qualifying names no pole.
func racePole(ds *dataset.Dataset, raceID int) *RacePole {
	src := RacePoleSource(ds, raceID)
	p, ok := ResolvePole(ds, raceID, src)
	if !ok && src == PoleFromQualifying {
		p, ok = ResolvePole(ds, raceID, PoleFromGrid)
	}
	if !ok {
		return nil
	}
	d, _ := ds.Driver(p.DriverID)
	c, _ := ds.Constructor(p.ConstructorID)
	return &RacePole{DriverID: p.DriverID, DriverName: d.FullName(), ConstructorName: c.Name, Source: p.Source}
}

// creditedFastestLap prefers the row ranked 1 with a valid time, then the
// row flagged with fastestLap 1.
func creditedFastestLap(ds *dataset.Dataset, results []models.Result) *RaceFastestLap {
	pick := func(match func(models.Result) bool) *RaceFastestLap {
		for _, r := range results {
			if !match(r) {
				continue
			}
			if _, ok := parseLapPtr(r.FastestLapTime); !ok {
				continue
			}
			d, _ := ds.Driver(r.DriverID)
			return &RaceFastestLap{DriverID: r.DriverID, DriverName: d.FullName(), Time: *r.FastestLapTime}
		}
		return nil
	}
	if fl := pick(func(r models.Result) bool { return r.Rank != nil && *r.Rank == 1 }); fl != nil {
		return fl
	}
	return pick(func(r models.Result) bool { return r.FastestLap != nil && *r.FastestLap == 1 })
}

// DriverChampion is the drivers' champion and the team they mostly drove for.
type DriverChampion struct {
	DriverID        int     `json:"driverID"`
	DriverName      string  `json:"driverName"`
	ConstructorName string  `json:"constructorName"`
	Points          float64 `json:"points"`
}

// RaceWinner is one line of a season's race calendar.
type RaceWinner struct {
	RaceRef
	CircuitID   int    `json:"circuitID"`
	WinnerID    int    `json:"winnerID,omitempty"`
	Winner      string `json:"winner,omitempty"`
	Constructor string `json:"constructor,omitempty"`
}

// SeasonOverview is a year at a glance: calendar, winner spread and
// champions.
type SeasonOverview struct {
	Year                        int              `json:"year"`
	Available                   bool             `json:"available"`
	TotalRaces                  int              `json:"totalRaces"`
	DifferentWinners            int              `json:"differentWinners"`
	DifferentConstructorWinners int              `json:"differentConstructorWinners"`
	Unclassified                int              `json:"unclassified"`
	DriverChampion              *DriverChampion  `json:"driverChampion,omitempty"`
	ConstructorChampion         *ConstructorLine `json:"constructorChampion,omitempty"`
	Races                       []RaceWinner     `json:"races"`
}

// ComputeSeasonOverview summarises year. Unclassified counts every result
// row without a finishing position, retirements or not.
func ComputeSeasonOverview(ds *dataset.Dataset, year int) SeasonOverview {
	out := SeasonOverview{Year: year, Races: []RaceWinner{}}
	races := ds.RacesInYear(year)
	if len(races) == 0 {
		return out
	}
	out.Available = true
	out.TotalRaces = len(races)

	winners, teams := map[int]bool{}, map[int]bool{}
	for _, race := range races {
		line := RaceWinner{RaceRef: refOf(race), CircuitID: race.CircuitID}
		for _, r := range ds.ResultsForRace(race.RaceID) {
			if _, ok := r.Classified(); !ok {
				out.Unclassified++
			}
			if isWin(r) {
				winners[r.DriverID] = true
				teams[r.ConstructorID] = true
				if line.WinnerID == 0 {
					d, _ := ds.Driver(r.DriverID)
					c, _ := ds.Constructor(r.ConstructorID)
					line.WinnerID = r.DriverID
					line.Winner = d.FullName()
					line.Constructor = c.Name
				}
			}
		}
		out.Races = append(out.Races, line)
	}
	out.DifferentWinners = len(winners)
	out.DifferentConstructorWinners = len(teams)

	if final := FinalDriverStandings(ds, races); len(final) > 0 {
		top := final[0]
		d, _ := ds.Driver(top.DriverID)
		out.DriverChampion = &DriverChampion{
			DriverID:        top.DriverID,
			DriverName:      d.FullName(),
			ConstructorName: mainConstructor(ds, races, top.DriverID),
			Points:          top.Points,
		}
	}
	if cs := ComputeConstructorStandings(ds, year); len(cs.Standings) > 0 {
		champ := cs.Standings[0]
		out.ConstructorChampion = &champ
	}
	return out
}

// mainConstructor is the team driverID raced for most often over races.
func mainConstructor(ds *dataset.Dataset, races []models.Race, driverID int) string {
	teams := newTallier()
	for _, race := range races {
		if r, ok := ds.ResultFor(race.RaceID, driverID); ok && r.ConstructorID != 0 {
			teams.add(r.ConstructorID)
		}
	}
	id, ok := teams.top()
	if !ok {
		return dataset.UnknownName
	}
	c, _ := ds.Constructor(id)
	return c.Name
}
