package stats

import (
	"math"
	"sort"

	"github.com/padraicbc/f1history/dataset"
	"github.com/padraicbc/f1history/models"
)

const (
	DefaultContenderLimit   = 5
	DefaultMaxPointsPerRace = 25
)

// SeasonOptions tunes ComputeSeasonSummary. Zero values take the defaults.
type SeasonOptions struct {
	ContenderLimit int
	// MaxPointsPerRace is the per-race ceiling used by clinch detection. It
	// ignores sprint and fastest-lap points and older scoring scales.
	MaxPointsPerRace float64
}

func (o SeasonOptions) withDefaults() SeasonOptions {
	if o.ContenderLimit <= 0 {
		o.ContenderLimit = DefaultContenderLimit
	}
	if o.MaxPointsPerRace <= 0 {
		o.MaxPointsPerRace = DefaultMaxPointsPerRace
	}
	return o
}

// RaceRef identifies a race inside a summary.
type RaceRef struct {
	RaceID int    `json:"raceID"`
	Round  int    `json:"round"`
	Name   string `json:"name"`
	Date   string `json:"date,omitempty"`
}

func refOf(r models.Race) RaceRef {
	return RaceRef{RaceID: r.RaceID, Round: r.Round, Name: r.Name, Date: r.Date}
}

// DriverSeasonStats are one driver's counts over a season's races.
type DriverSeasonStats struct {
	Entries    int `json:"entries"`
	Classified int `json:"classified"`
	Wins       int `json:"wins"`
	Podiums    int `json:"podiums"`
	DNFs       int `json:"dnfs"`
	Poles      int `json:"poles"`

	ConstructorID   int    `json:"constructorID,omitempty"`
	ConstructorName string `json:"constructorName"`
	ConstructorRef  string `json:"constructorRef,omitempty"`
}

// Contender is a driver from the top of the final classification.
type Contender struct {
	DriverID   int     `json:"driverID"`
	DriverName string  `json:"driverName"`
	DriverRef  string  `json:"driverRef,omitempty"`
	Position   *int    `json:"position"`
	Points     float64 `json:"points"`
	DriverSeasonStats
}

// ContenderStanding is a contender's championship state after one race.
// Present is false when the driver had no standings row for that race.
type ContenderStanding struct {
	DriverID int     `json:"driverID"`
	Position int     `json:"position"`
	Points   float64 `json:"points"`
	Present  bool    `json:"present"`
}

// ProgressionEntry holds every contender's standing after one race.
type ProgressionEntry struct {
	RaceRef
	Standings []ContenderStanding `json:"standings"`
	LeaderID  int                 `json:"leaderID,omitempty"`
}

// LeadChange marks a race after which a different contender led.
type LeadChange struct {
	RaceRef
	DriverID         int    `json:"driverID"`
	DriverName       string `json:"driverName"`
	PreviousDriverID int    `json:"previousDriverID"`
}

// Clinch is the earliest race after which the champion could no longer be
// caught by any other contender.
type Clinch struct {
	RaceRef
	DriverID       int `json:"driverID"`
	RacesRemaining int `json:"racesRemaining"`
}

// SeasonSummary is the championship picture of one year.
type SeasonSummary struct {
	Year             int                `json:"year"`
	Available        bool               `json:"available"`
	TotalRaces       int                `json:"totalRaces"`
	Races            []RaceRef          `json:"races"`
	Contenders       []Contender        `json:"contenders"`
	Champion         *Contender         `json:"champion,omitempty"`
	Progression      []ProgressionEntry `json:"progression"`
	LeadChanges      []LeadChange       `json:"leadChanges"`
	Clinch           *Clinch            `json:"clinch,omitempty"`
	FinalMargin      float64            `json:"finalMargin"`
	ClosestGap       float64            `json:"closestGap"`
	PoleSource       PoleSource         `json:"poleSource,omitempty"`
	MaxPointsPerRace float64            `json:"maxPointsPerRace"`
}

// ComputeSeasonSummary builds the season summary for year. A year without
// races yields Available=false. Contenders are drawn from rows of the final
// snapshot that carry a position.
func ComputeSeasonSummary(ds *dataset.Dataset, year int, opts SeasonOptions) SeasonSummary {
	opts = opts.withDefaults()
	out := SeasonSummary{
		Year:             year,
		Races:            []RaceRef{},
		Contenders:       []Contender{},
		Progression:      []ProgressionEntry{},
		LeadChanges:      []LeadChange{},
		MaxPointsPerRace: opts.MaxPointsPerRace,
	}

	races := ds.RacesInYear(year)
	if len(races) == 0 {
		return out
	}
	out.Available = true
	out.TotalRaces = len(races)
	for _, r := range races {
		out.Races = append(out.Races, refOf(r))
	}
	out.PoleSource = SeasonPoleSource(ds, races)

	var final []models.DriverStanding
	for _, s := range FinalDriverStandings(ds, races) {
		if s.Position != nil && *s.Position > 0 {
			final = append(final, s)
		}
	}
	if len(final) > opts.ContenderLimit {
		final = final[:opts.ContenderLimit]
	}
	for _, s := range final {
		d, _ := ds.Driver(s.DriverID)
		c := Contender{
			DriverID:          s.DriverID,
			DriverName:        d.FullName(),
			DriverRef:         d.DriverRef,
			Position:          s.Position,
			Points:            s.Points,
			DriverSeasonStats: driverSeason(ds, races, s.DriverID, out.PoleSource),
		}
		out.Contenders = append(out.Contenders, c)
	}
	for i := range out.Contenders {
		if p := out.Contenders[i].Position; p != nil && *p == 1 {
			out.Champion = &out.Contenders[i]
			break
		}
	}

	out.Progression = progression(ds, races, out.Contenders)
	out.LeadChanges = leadChanges(ds, out.Progression)
	if out.Champion != nil {
		out.Clinch = clinch(out.Progression, out.Champion.DriverID, opts.MaxPointsPerRace)
	}
	if len(out.Contenders) >= 2 {
		out.FinalMargin = out.Contenders[0].Points - out.Contenders[1].Points
		out.ClosestGap = closestGap(out.Progression, out.FinalMargin)
	}
	return out
}

// FinalDriverStandings returns the standings snapshot of the last race of
// races that has one, ordered by official position. Rows without a position
// sort last, by points descending; ties keep snapshot order.
func FinalDriverStandings(ds *dataset.Dataset, races []models.Race) []models.DriverStanding {
	for i := len(races) - 1; i >= 0; i-- {
		rows := ds.DriverStandingsAfter(races[i].RaceID)
		if len(rows) == 0 {
			continue
		}
		out := append([]models.DriverStanding(nil), rows...)
		sort.SliceStable(out, func(a, b int) bool {
			return standingLess(out[a].Position, out[a].Points, out[b].Position, out[b].Points)
		})
		return out
	}
	return nil
}

func standingLess(pa *int, pointsA float64, pb *int, pointsB float64) bool {
	okA := pa != nil && *pa > 0
	okB := pb != nil && *pb > 0
	switch {
	case okA && okB:
		return *pa < *pb
	case okA != okB:
		return okA
	default:
		return pointsA > pointsB
	}
}

// SeasonStatsFor computes driverID's counts over year using the season's
// pole source.
func SeasonStatsFor(ds *dataset.Dataset, year, driverID int) DriverSeasonStats {
	races := ds.RacesInYear(year)
	return driverSeason(ds, races, driverID, SeasonPoleSource(ds, races))
}

func driverSeason(ds *dataset.Dataset, races []models.Race, driverID int, poleSrc PoleSource) DriverSeasonStats {
	var st DriverSeasonStats
	teams := newTallier()
	for _, race := range races {
		for _, r := range ds.ResultsForRace(race.RaceID) {
			if r.DriverID != driverID {
				continue
			}
			st.Entries++
			if _, ok := r.Classified(); ok {
				st.Classified++
			}
			if isWin(r) {
				st.Wins++
			}
			if isPodium(r) {
				st.Podiums++
			}
			if IsDNF(r) {
				st.DNFs++
			}
			if r.ConstructorID != 0 {
				teams.add(r.ConstructorID)
			}
		}
	}
	st.Poles = seasonPoles(ds, races, driverID, poleSrc)

	st.ConstructorName = dataset.UnknownName
	if id, ok := teams.top(); ok {
		c, _ := ds.Constructor(id)
		st.ConstructorID = id
		st.ConstructorName = c.Name
		st.ConstructorRef = c.ConstructorRef
	}
	return st
}

func progression(ds *dataset.Dataset, races []models.Race, contenders []Contender) []ProgressionEntry {
	out := make([]ProgressionEntry, 0, len(races))
	for _, race := range races {
		byDriver := map[int]models.DriverStanding{}
		for _, s := range ds.DriverStandingsAfter(race.RaceID) {
			if _, seen := byDriver[s.DriverID]; !seen {
				byDriver[s.DriverID] = s
			}
		}

		entry := ProgressionEntry{RaceRef: refOf(race), Standings: make([]ContenderStanding, 0, len(contenders))}
		bestPos := math.MaxInt
		for _, c := range contenders {
			cs := ContenderStanding{DriverID: c.DriverID}
			if s, ok := byDriver[c.DriverID]; ok {
				cs.Present = true
				cs.Points = s.Points
				if s.Position != nil && *s.Position > 0 {
					cs.Position = *s.Position
				}
				pos := cs.Position
				if pos == 0 {
					pos = math.MaxInt - 1
				}
				if pos < bestPos {
					bestPos = pos
					entry.LeaderID = c.DriverID
				}
			}
			entry.Standings = append(entry.Standings, cs)
		}
		out = append(out, entry)
	}
	return out
}

func leadChanges(ds *dataset.Dataset, prog []ProgressionEntry) []LeadChange {
	out := []LeadChange{}
	prev := 0
	for _, e := range prog {
		if e.LeaderID == 0 {
			continue
		}
		if prev != 0 && e.LeaderID != prev {
			d, _ := ds.Driver(e.LeaderID)
			out = append(out, LeadChange{
				RaceRef:          e.RaceRef,
				DriverID:         e.LeaderID,
				DriverName:       d.FullName(),
				PreviousDriverID: prev,
			})
		}
		prev = e.LeaderID
	}
	return out
}

// clinch walks back from the final race while the leader stays out of reach
// and reports the earliest race of that run.
func clinch(prog []ProgressionEntry, leaderID int, maxPerRace float64) *Clinch {
	var found *Clinch
	for i := len(prog) - 1; i >= 0; i-- {
		remaining := len(prog) - 1 - i
		if catchable(prog[i], leaderID, float64(remaining)*maxPerRace) {
			break
		}
		found = &Clinch{RaceRef: prog[i].RaceRef, DriverID: leaderID, RacesRemaining: remaining}
	}
	return found
}

func catchable(e ProgressionEntry, leaderID int, available float64) bool {
	var leaderPts float64
	for _, s := range e.Standings {
		if s.DriverID == leaderID {
			leaderPts = s.Points
		}
	}
	for _, s := range e.Standings {
		if s.DriverID != leaderID && s.Points+available >= leaderPts {
			return true
		}
	}
	return false
}

// closestGap is the smallest points gap between the top two present
// contenders after any race, capped by the final margin.
func closestGap(prog []ProgressionEntry, finalMargin float64) float64 {
	gap := finalMargin
	for _, e := range prog {
		present := make([]ContenderStanding, 0, len(e.Standings))
		for _, s := range e.Standings {
			if s.Present {
				present = append(present, s)
			}
		}
		if len(present) < 2 {
			continue
		}
		sort.SliceStable(present, func(a, b int) bool {
			pa, pb := present[a].Position, present[b].Position
			if pa == 0 {
				pa = math.MaxInt
			}
			if pb == 0 {
				pb = math.MaxInt
			}
			return pa < pb
		})
		if g := math.Abs(present[0].Points - present[1].Points); g < gap {
			gap = g
		}
	}
	return gap
}
