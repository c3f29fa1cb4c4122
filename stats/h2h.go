package stats

import (
	"github.com/padraicbc/f1history/dataset"
	"github.com/padraicbc/f1history/models"
)

// H2HStats compares two drivers over a set of races.
type H2HStats struct {
	DriverA     int    `json:"driverA"`
	DriverB     int    `json:"driverB"`
	NameA       string `json:"nameA"`
	NameB       string `json:"nameB"`
	CommonRaces int    `json:"commonRaces"`

	FinishWinsA     int `json:"finishWinsA"`
	FinishWinsB     int `json:"finishWinsB"`
	QualifyingWinsA int `json:"qualifyingWinsA"`
	QualifyingWinsB int `json:"qualifyingWinsB"`
	WinsA           int `json:"winsA"`
	WinsB           int `json:"winsB"`
}

// CompareDrivers tallies a against b over races. Finish and qualifying
// comparisons use only races both entered; outright wins are counted for
// each driver independently.
func CompareDrivers(ds *dataset.Dataset, a, b int, races []models.Race) H2HStats {
	da, _ := ds.Driver(a)
	db, _ := ds.Driver(b)
	h := H2HStats{DriverA: a, DriverB: b, NameA: da.FullName(), NameB: db.FullName()}

	for _, race := range races {
		ra, okA := ds.ResultFor(race.RaceID, a)
		rb, okB := ds.ResultFor(race.RaceID, b)
		if okA && isWin(ra) {
			h.WinsA++
		}
		if okB && isWin(rb) {
			h.WinsB++
		}
		if !okA || !okB {
			continue
		}
		h.CommonRaces++

		switch finishWinner(ra, rb) {
		case 1:
			h.FinishWinsA++
		case 2:
			h.FinishWinsB++
		}
		switch qualifyingWinner(ds, race.RaceID, ra, rb) {
		case 1:
			h.QualifyingWinsA++
		case 2:
			h.QualifyingWinsB++
		}
	}
	return h
}

// CompareDriversInYear is CompareDrivers over one season.
func CompareDriversInYear(ds *dataset.Dataset, a, b, year int) H2HStats {
	return CompareDrivers(ds, a, b, ds.RacesInYear(year))
}

// finishWinner returns 1 or 2 for the better finisher, 0 when neither
// was classified or they share a position.
func finishWinner(a, b models.Result) int {
	pa, okA := a.Classified()
	pb, okB := b.Classified()
	switch {
	case okA && okB:
		return better(pa, pb)
	case okA:
		return 1
	case okB:
		return 2
	}
	return 0
}

// qualifyingWinner compares qualifying positions when both drivers have
// one, then grid slots. Races with neither contribute nothing.
func qualifyingWinner(ds *dataset.Dataset, raceID int, a, b models.Result) int {
	qa, okA := ds.QualifyingFor(raceID, a.DriverID)
	qb, okB := ds.QualifyingFor(raceID, b.DriverID)
	if okA && okB && validPos(qa.Position) && validPos(qb.Position) {
		return better(*qa.Position, *qb.Position)
	}
	if a.Grid > 0 && b.Grid > 0 {
		return better(a.Grid, b.Grid)
	}
	return 0
}

func validPos(p *int) bool { return p != nil && *p > 0 }

func better(a, b int) int {
	switch {
	case a < b:
		return 1
	case b < a:
		return 2
	}
	return 0
}
