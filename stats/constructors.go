package stats

import (
	"sort"

	"github.com/padraicbc/f1history/dataset"
	"github.com/padraicbc/f1history/models"
)

const (
	StandingsOfficial = "official"
	StandingsResults  = "results"
)

// PointsAdjustment overrides a constructor's championship for one year.
type PointsAdjustment struct {
	Year           int    `json:"year"`
	ConstructorRef string `json:"constructorRef"`
	Excluded       bool   `json:"excluded"`
	Note           string `json:"note"`
}

// DefaultAdjustments are the known constructors' championship overrides.
var DefaultAdjustments = []PointsAdjustment{
	{Year: 2007, ConstructorRef: "mclaren", Excluded: true, Note: "McLaren was excluded from the Constructors' Championship"},
}

// ConstructorLine is one row of a constructors' table.
type ConstructorLine struct {
	Position      int     `json:"position"`
	ConstructorID int     `json:"constructorID"`
	Name          string  `json:"name"`
	Ref           string  `json:"ref"`
	Points        float64 `json:"points"`
	Wins          int     `json:"wins"`
}

// ConstructorPoint is a constructor's championship state after one race.
// Present is false when the team had no standings row for that race.
type ConstructorPoint struct {
	ConstructorID int     `json:"constructorID"`
	Points        float64 `json:"points"`
	Wins          int     `json:"wins"`
	Position      int     `json:"position"`
	Present       bool    `json:"present"`
}

// ConstructorProgressionEntry holds every ranked team's state after one race.
type ConstructorProgressionEntry struct {
	RaceRef
	Standings []ConstructorPoint `json:"standings"`
}

// ConstructorStandings is a season's constructors' championship.
type ConstructorStandings struct {
	Year        int                           `json:"year"`
	Available   bool                          `json:"available"`
	Source      string                        `json:"source,omitempty"`
	TotalTeams  int                           `json:"totalTeams"`
	Champion    *ConstructorLine              `json:"champion,omitempty"`
	Standings   []ConstructorLine             `json:"standings"`
	Progression []ConstructorProgressionEntry `json:"progression"`
	Notes       []string                      `json:"notes"`
}

// ComputeConstructorStandings uses DefaultAdjustments.
func ComputeConstructorStandings(ds *dataset.Dataset, year int) ConstructorStandings {
	return ComputeConstructorStandingsWith(ds, year, DefaultAdjustments)
}

// ComputeConstructorStandingsWith returns the official final standings of
// year, or, when there are none or an adjustment applies, standings summed
// from race results with the adjustments applied.
func ComputeConstructorStandingsWith(ds *dataset.Dataset, year int, adjustments []PointsAdjustment) ConstructorStandings {
	out := ConstructorStandings{
		Year:        year,
		Standings:   []ConstructorLine{},
		Progression: []ConstructorProgressionEntry{},
		Notes:       []string{},
	}
	races := ds.RacesInYear(year)
	if len(races) == 0 {
		return out
	}

	var applied []PointsAdjustment
	for _, a := range adjustments {
		if a.Year == year {
			applied = append(applied, a)
			if a.Note != "" {
				out.Notes = append(out.Notes, a.Note)
			}
		}
	}

	wins := map[int]int{}
	for _, race := range races {
		for _, r := range ds.ResultsForRace(race.RaceID) {
			if isWin(r) {
				wins[r.ConstructorID]++
			}
		}
	}

	official := finalConstructorStandings(ds, races)
	if len(official) > 0 && len(applied) == 0 {
		out.Source = StandingsOfficial
		for i, s := range official {
			c, _ := ds.Constructor(s.ConstructorID)
			pos := i + 1
			if s.Position != nil && *s.Position > 0 {
				pos = *s.Position
			}
			out.Standings = append(out.Standings, ConstructorLine{
				Position:      pos,
				ConstructorID: s.ConstructorID,
				Name:          c.Name,
				Ref:           c.ConstructorRef,
				Points:        s.Points,
				Wins:          wins[s.ConstructorID],
			})
		}
		return finishStandings(ds, races, out)
	}

	excluded := map[int]bool{}
	for _, a := range applied {
		if c, ok := ds.ConstructorByRef(a.ConstructorRef); ok && a.Excluded {
			excluded[c.ConstructorID] = true
		}
	}

	points := map[int]float64{}
	var order []int
	for _, race := range races {
		for _, r := range ds.ResultsForRace(race.RaceID) {
			if r.ConstructorID == 0 || r.Points <= 0 || excluded[r.ConstructorID] {
				continue
			}
			if _, ok := points[r.ConstructorID]; !ok {
				order = append(order, r.ConstructorID)
			}
			points[r.ConstructorID] += r.Points
		}
	}
	for _, id := range order {
		c, _ := ds.Constructor(id)
		out.Standings = append(out.Standings, ConstructorLine{
			ConstructorID: id,
			Name:          c.Name,
			Ref:           c.ConstructorRef,
			Points:        points[id],
			Wins:          wins[id],
		})
	}
	sort.SliceStable(out.Standings, func(i, j int) bool { return out.Standings[i].Points > out.Standings[j].Points })
	for i := range out.Standings {
		out.Standings[i].Position = i + 1
	}
	out.Source = StandingsResults
	return finishStandings(ds, races, out)
}

// finishStandings fills the champion, team count and per-race progression
// of the teams in out.Standings.
func finishStandings(ds *dataset.Dataset, races []models.Race, out ConstructorStandings) ConstructorStandings {
	out.Available = true
	out.TotalTeams = len(out.Standings)
	if len(out.Standings) > 0 {
		champ := out.Standings[0]
		out.Champion = &champ
	}
	for _, race := range races {
		byTeam := map[int]models.ConstructorStanding{}
		for _, s := range ds.ConstructorStandingsAfter(race.RaceID) {
			if _, seen := byTeam[s.ConstructorID]; !seen {
				byTeam[s.ConstructorID] = s
			}
		}
		entry := ConstructorProgressionEntry{RaceRef: refOf(race), Standings: make([]ConstructorPoint, 0, len(out.Standings))}
		for _, line := range out.Standings {
			p := ConstructorPoint{ConstructorID: line.ConstructorID}
			if s, ok := byTeam[line.ConstructorID]; ok {
				p.Present = true
				p.Points = s.Points
				p.Wins = s.Wins
				if s.Position != nil && *s.Position > 0 {
					p.Position = *s.Position
				}
			}
			entry.Standings = append(entry.Standings, p)
		}
		out.Progression = append(out.Progression, entry)
	}
	return out
}

func finalConstructorStandings(ds *dataset.Dataset, races []models.Race) []models.ConstructorStanding {
	for i := len(races) - 1; i >= 0; i-- {
		rows := ds.ConstructorStandingsAfter(races[i].RaceID)
		if len(rows) == 0 {
			continue
		}
		out := append([]models.ConstructorStanding(nil), rows...)
		sort.SliceStable(out, func(a, b int) bool {
			return standingLess(out[a].Position, out[a].Points, out[b].Position, out[b].Points)
		})
		return out
	}
	return nil
}
