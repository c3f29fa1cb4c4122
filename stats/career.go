package stats

import (
	"sort"

	"github.com/padraicbc/f1history/dataset"
	"github.com/padraicbc/f1history/models"
)

// CareerSeason is one year of a driver's career.
type CareerSeason struct {
	Year     int      `json:"year"`
	Races    int      `json:"races"`
	Wins     int      `json:"wins"`
	Podiums  int      `json:"podiums"`
	DNFs     int      `json:"dnfs"`
	Poles    int      `json:"poles"`
	Points   float64  `json:"points"`
	Position *int     `json:"position"`
	Teams    []string `json:"teams"`
}

// TeamStint is the time a driver spent with one constructor.
type TeamStint struct {
	ConstructorID int    `json:"constructorID"`
	Name          string `json:"name"`
	Races         int    `json:"races"`
	Wins          int    `json:"wins"`
	Podiums       int    `json:"podiums"`
	Years         []int  `json:"years"`
	YearRanges    string `json:"yearRanges"`
}

// CareerTotals sums a whole career.
type CareerTotals struct {
	Championships int     `json:"championships"`
	Races         int     `json:"races"`
	Wins          int     `json:"wins"`
	Podiums       int     `json:"podiums"`
	Poles         int     `json:"poles"`
	DNFs          int     `json:"dnfs"`
	Points        float64 `json:"points"`
	Seasons       int     `json:"seasons"`
	Teams         int     `json:"teams"`
}

// CareerStats is a driver's full record.
type CareerStats struct {
	Driver    models.Driver  `json:"driver"`
	Available bool           `json:"available"`
	FirstYear int            `json:"firstYear,omitempty"`
	LastYear  int            `json:"lastYear,omitempty"`
	Seasons   []CareerSeason `json:"seasons"`
	Teams     []TeamStint    `json:"teams"`
	Totals    CareerTotals   `json:"totals"`
}

// ComputeDriverCareer aggregates every result of driverID by season and by
// constructor. A driver with no results yields Available=false.
func ComputeDriverCareer(ds *dataset.Dataset, driverID int) CareerStats {
	d, _ := ds.Driver(driverID)
	out := CareerStats{Driver: d, Seasons: []CareerSeason{}, Teams: []TeamStint{}}

	byYear := map[int][]models.Result{}
	var years []int
	for _, r := range ds.ResultsForDriver(driverID) {
		race, ok := ds.Race(r.RaceID)
		if !ok {
			continue
		}
		if _, seen := byYear[race.Year]; !seen {
			years = append(years, race.Year)
		}
		byYear[race.Year] = append(byYear[race.Year], r)
	}
	if len(years) == 0 {
		return out
	}
	sort.Ints(years)
	out.Available = true
	out.FirstYear = years[0]
	out.LastYear = years[len(years)-1]

	stints := map[int]*TeamStint{}
	var stintOrder []int
	for _, year := range years {
		season := CareerSeason{Year: year, Teams: []string{}}
		seenTeam := map[int]bool{}
		poleRaces := map[int]bool{}
		for _, r := range byYear[year] {
			season.Races++
			if isWin(r) {
				season.Wins++
			}
			if isPodium(r) {
				season.Podiums++
			}
			if IsDNF(r) {
				season.DNFs++
			}
			if !poleRaces[r.RaceID] {
				if p, ok := ResolvePole(ds, r.RaceID, RacePoleSource(ds, r.RaceID)); ok && p.DriverID == driverID {
					poleRaces[r.RaceID] = true
					season.Poles++
				}
			}

			st, ok := stints[r.ConstructorID]
			if !ok {
				c, _ := ds.Constructor(r.ConstructorID)
				st = &TeamStint{ConstructorID: r.ConstructorID, Name: c.Name}
				stints[r.ConstructorID] = st
				stintOrder = append(stintOrder, r.ConstructorID)
			}
			st.Races++
			if isWin(r) {
				st.Wins++
			}
			if isPodium(r) {
				st.Podiums++
			}
			if !seenTeam[r.ConstructorID] {
				seenTeam[r.ConstructorID] = true
				season.Teams = append(season.Teams, st.Name)
				st.Years = append(st.Years, year)
			}
		}
		season.Points, season.Position = latestStanding(ds, ds.RacesInYear(year), driverID)
		if isChampion(ds, year, driverID) {
			out.Totals.Championships++
		}

		out.Totals.Races += season.Races
		out.Totals.Wins += season.Wins
		out.Totals.Podiums += season.Podiums
		out.Totals.Poles += season.Poles
		out.Totals.DNFs += season.DNFs
		out.Totals.Points += season.Points
		out.Seasons = append(out.Seasons, season)
	}

	for _, id := range stintOrder {
		st := stints[id]
		st.YearRanges = YearRanges(st.Years)
		out.Teams = append(out.Teams, *st)
	}
	sort.SliceStable(out.Teams, func(i, j int) bool { return out.Teams[i].Years[0] < out.Teams[j].Years[0] })
	out.Totals.Seasons = len(out.Seasons)
	out.Totals.Teams = len(out.Teams)
	return out
}

// latestStanding is driverID's standing after the latest race of the
// season in which the driver has one.
func latestStanding(ds *dataset.Dataset, races []models.Race, driverID int) (float64, *int) {
	for i := len(races) - 1; i >= 0; i-- {
		for _, s := range ds.DriverStandingsAfter(races[i].RaceID) {
			if s.DriverID == driverID {
				return s.Points, s.Position
			}
		}
	}
	return 0, nil
}

func isChampion(ds *dataset.Dataset, year, driverID int) bool {
	final := FinalDriverStandings(ds, ds.RacesInYear(year))
	if len(final) == 0 {
		return false
	}
	p := final[0].Position
	return final[0].DriverID == driverID && p != nil && *p == 1
}
