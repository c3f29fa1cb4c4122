package stats

import (
	"github.com/padraicbc/f1history/dataset"
	"github.com/padraicbc/f1history/models"
)

// PoleSource names where pole position evidence comes from.
type PoleSource string

const (
	PoleFromQualifying PoleSource = "qualifying"
	PoleFromGrid       PoleSource = "grid"
)

// PoleEvidence identifies the pole sitter of a race.
type PoleEvidence struct {
	RaceID        int        `json:"raceID"`
	DriverID      int        `json:"driverID"`
	ConstructorID int        `json:"constructorID"`
	Source        PoleSource `json:"source"`
}

// ResolvePole finds the pole sitter of raceID using src: qualifying
// position 1, or grid slot 1 of the race results.
func ResolvePole(ds *dataset.Dataset, raceID int, src PoleSource) (PoleEvidence, bool) {
	switch src {
	case PoleFromQualifying:
		for _, q := range ds.QualifyingForRace(raceID) {
			if q.IsPole() {
				return PoleEvidence{RaceID: raceID, DriverID: q.DriverID, ConstructorID: q.ConstructorID, Source: src}, true
			}
		}
	case PoleFromGrid:
		for _, r := range ds.ResultsForRace(raceID) {
			if r.Grid == 1 {
				return PoleEvidence{RaceID: raceID, DriverID: r.DriverID, ConstructorID: r.ConstructorID, Source: src}, true
			}
		}
	}
	return PoleEvidence{}, false
}

// RacePoleSource picks qualifying when the race has any qualifying rows and
// the starting grid otherwise.
func RacePoleSource(ds *dataset.Dataset, raceID int) PoleSource {
	if len(ds.QualifyingForRace(raceID)) > 0 {
		return PoleFromQualifying
	}
	return PoleFromGrid
}

// SeasonPoleSource picks qualifying for the whole season when any of its
// races has a recorded qualifying pole, and the starting grid otherwise.
// The choice is all-or-nothing per season.
func SeasonPoleSource(ds *dataset.Dataset, races []models.Race) PoleSource {
	for _, race := range races {
		for _, q := range ds.QualifyingForRace(race.RaceID) {
			if q.IsPole() {
				return PoleFromQualifying
			}
		}
	}
	return PoleFromGrid
}

// seasonPoles counts driverID's poles over races using src.
func seasonPoles(ds *dataset.Dataset, races []models.Race, driverID int, src PoleSource) int {
	n := 0
	for _, race := range races {
		if src == PoleFromQualifying {
			for _, q := range ds.QualifyingForRace(race.RaceID) {
				if q.DriverID == driverID && q.IsPole() {
					n++
				}
			}
			continue
		}
		for _, r := range ds.ResultsForRace(race.RaceID) {
			if r.DriverID == driverID && r.Grid == 1 {
				n++
			}
		}
	}
	return n
}
