package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/padraicbc/f1history/dataset"
	"github.com/padraicbc/f1history/models"
)

// QualifyingFormat describes how the grid was set in an era.
type QualifyingFormat struct {
	Era         string `json:"era"`
	Description string `json:"description"`
	Details     string `json:"details"`
}

var qualifyingFormats = []struct {
	lastYear int
	format   QualifyingFormat
}{
	{1995, QualifyingFormat{"1950-1995", "Best time across multiple sessions", "Qualifying over two days. Best time from any session counts."}},
	{2002, QualifyingFormat{"1996-2002", "Single one-hour session", "One hour session on Saturday with 12 laps per driver."}},
	{2003, QualifyingFormat{"2003", "Single-lap qualifying (two days)", "Two single-lap sessions on Friday and Saturday."}},
	{2004, QualifyingFormat{"2004", "Single-lap qualifying (Saturday only)", "One single-lap session on Saturday."}},
	{2005, QualifyingFormat{"2005", "Aggregate qualifying", "Grid set by the sum of two single-lap sessions, later a single session."}},
}

var knockoutFormat = QualifyingFormat{"2006-present", "Knockout qualifying (Q1, Q2, Q3)", "Three sessions with the slowest drivers eliminated after each."}

// FormatForYear returns the qualifying format in use in year.
func FormatForYear(year int) QualifyingFormat {
	for _, f := range qualifyingFormats {
		if year <= f.lastYear {
			return f.format
		}
	}
	return knockoutFormat
}

// HasKnockoutFormat reports whether year used Q1/Q2/Q3.
func HasKnockoutFormat(year int) bool { return year >= 2006 }

// QualifyingRace is the qualifying outcome of one race.
type QualifyingRace struct {
	RaceRef
	PoleDriverID   int     `json:"poleDriverID,omitempty"`
	PoleDriver     string  `json:"poleDriver,omitempty"`
	PoleTime       string  `json:"poleTime,omitempty"`
	Q3Participants int     `json:"q3Participants"`
	MeanGapToPole  float64 `json:"meanGapToPole"`
	MeanGap        string  `json:"meanGap,omitempty"`
}

// QualifyingSeason summarises a year's qualifying sessions.
type QualifyingSeason struct {
	Year                int              `json:"year"`
	Available           bool             `json:"available"`
	Format              QualifyingFormat `json:"format"`
	Knockout            bool             `json:"knockout"`
	TotalRaces          int              `json:"totalRaces"`
	RacesWithQualifying int              `json:"racesWithQualifying"`
	Poles               []Tally          `json:"poles"`
	TopPoleSitter       *Tally           `json:"topPoleSitter,omitempty"`
	DistinctPoleSitters int              `json:"distinctPoleSitters"`
	AvgQ3Participants   float64          `json:"avgQ3Participants"`
	Races               []QualifyingRace `json:"races"`
	Teams               []TeamQualifying `json:"teams"`
}

// TeamQualifying is one constructor's qualifying record over a season.
// Q3Rate is only set in knockout years.
type TeamQualifying struct {
	ConstructorID int      `json:"constructorID"`
	Name          string   `json:"name"`
	Ref           string   `json:"ref"`
	Sessions      int      `json:"sessions"`
	AvgPosition   float64  `json:"avgPosition"`
	Q3Appearances int      `json:"q3Appearances"`
	Q3Rate        *float64 `json:"q3Rate,omitempty"`
	Poles         int      `json:"poles"`
}

// ComputeQualifyingSeason aggregates the qualifying rows of year. Only
// knockout years report Q3 participation.
func ComputeQualifyingSeason(ds *dataset.Dataset, year int) QualifyingSeason {
	out := QualifyingSeason{
		Year:     year,
		Format:   FormatForYear(year),
		Knockout: HasKnockoutFormat(year),
		Poles:    []Tally{},
		Races:    []QualifyingRace{},
		Teams:    []TeamQualifying{},
	}
	races := ds.RacesInYear(year)
	if len(races) == 0 {
		return out
	}
	out.Available = true
	out.TotalRaces = len(races)

	poles := newTallier()
	teams := newTeamQualifier()
	var q3Counts []float64
	for _, race := range races {
		rows := ds.QualifyingForRace(race.RaceID)
		if len(rows) == 0 {
			continue
		}
		out.RacesWithQualifying++
		for _, q := range rows {
			teams.add(q, out.Knockout)
		}
		qr := QualifyingRace{RaceRef: refOf(race)}

		var pole *models.Qualifying
		for i := range rows {
			if rows[i].IsPole() {
				pole = &rows[i]
				break
			}
		}
		if pole != nil {
			poles.add(pole.DriverID)
			d, _ := ds.Driver(pole.DriverID)
			qr.PoleDriverID = pole.DriverID
			qr.PoleDriver = d.FullName()
			if t, ok := bestSession(*pole); ok {
				qr.PoleTime = t
			}
			if secs, ok := parseLapPtr(pole.Q1); ok {
				qr.MeanGapToPole = meanGap(rows, pole.DriverID, secs)
				if qr.MeanGapToPole > 0 {
					qr.MeanGap = FormatGap(qr.MeanGapToPole)
				}
			}
		}

		if out.Knockout {
			for _, q := range rows {
				if _, ok := parseLapPtr(q.Q3); ok {
					qr.Q3Participants++
				}
			}
			if qr.Q3Participants > 0 {
				q3Counts = append(q3Counts, float64(qr.Q3Participants))
			}
		}
		out.Races = append(out.Races, qr)
	}

	out.Poles = poles.sorted(driverName(ds))
	out.DistinctPoleSitters = len(out.Poles)
	if len(out.Poles) > 0 {
		top := out.Poles[0]
		out.TopPoleSitter = &top
	}
	if len(q3Counts) > 0 {
		out.AvgQ3Participants = stat.Mean(q3Counts, nil)
	}
	out.Teams = teams.summary(ds, out.Knockout)
	return out
}

type teamQualifier struct {
	order     []int
	positions map[int][]float64
	sessions  map[int]int
	q3        map[int]int
	poles     map[int]int
}

func newTeamQualifier() *teamQualifier {
	return &teamQualifier{
		positions: map[int][]float64{},
		sessions:  map[int]int{},
		q3:        map[int]int{},
		poles:     map[int]int{},
	}
}

func (t *teamQualifier) add(q models.Qualifying, knockout bool) {
	id := q.ConstructorID
	if _, ok := t.sessions[id]; !ok {
		t.order = append(t.order, id)
	}
	t.sessions[id]++
	if q.Position != nil && *q.Position > 0 {
		t.positions[id] = append(t.positions[id], float64(*q.Position))
	}
	if knockout {
		if _, ok := parseLapPtr(q.Q3); ok {
			t.q3[id]++
		}
	}
	if q.IsPole() {
		t.poles[id]++
	}
}

// summary orders teams by average qualifying position; teams without a
// ranked session sort last.
func (t *teamQualifier) summary(ds *dataset.Dataset, knockout bool) []TeamQualifying {
	out := make([]TeamQualifying, 0, len(t.order))
	for _, id := range t.order {
		c, _ := ds.Constructor(id)
		tq := TeamQualifying{
			ConstructorID: id,
			Name:          c.Name,
			Ref:           c.ConstructorRef,
			Sessions:      t.sessions[id],
			Q3Appearances: t.q3[id],
			Poles:         t.poles[id],
		}
		if p := t.positions[id]; len(p) > 0 {
			tq.AvgPosition = stat.Mean(p, nil)
		}
		if knockout {
			rate := float64(tq.Q3Appearances) / float64(tq.Sessions)
			tq.Q3Rate = &rate
		}
		out = append(out, tq)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return avgKey(out[i].AvgPosition) < avgKey(out[j].AvgPosition)
	})
	return out
}

func avgKey(v float64) float64 {
	if v <= 0 {
		return math.Inf(1)
	}
	return v
}

// QualifyingLine is one driver's row of a qualifying classification.
// Best is the latest session time set and Gap its deficit to pole.
type QualifyingLine struct {
	Position        *int    `json:"position"`
	DriverID        int     `json:"driverID"`
	DriverName      string  `json:"driverName"`
	ConstructorID   int     `json:"constructorID"`
	ConstructorName string  `json:"constructorName"`
	Q1              *string `json:"q1,omitempty"`
	Q2              *string `json:"q2,omitempty"`
	Q3              *string `json:"q3,omitempty"`
	Best            string  `json:"best,omitempty"`
	GapSeconds      float64 `json:"gapSeconds"`
	Gap             string  `json:"gap,omitempty"`
}

// SessionBests are the fastest valid times of each knockout session.
type SessionBests struct {
	Q1 string `json:"q1,omitempty"`
	Q2 string `json:"q2,omitempty"`
	Q3 string `json:"q3,omitempty"`
}

// RaceQualifying is the qualifying classification of one race.
type RaceQualifying struct {
	RaceRef
	Year      int              `json:"year"`
	Available bool             `json:"available"`
	Knockout  bool             `json:"knockout"`
	Format    QualifyingFormat `json:"format"`
	Fastest   SessionBests     `json:"fastest"`
	Rows      []QualifyingLine `json:"rows"`
}

// ComputeRaceQualifying classifies raceID's qualifying by position, rows
// without a position last. It reports false for an unknown race and
// Available=false when the race has no qualifying rows.
func ComputeRaceQualifying(ds *dataset.Dataset, raceID int) (RaceQualifying, bool) {
	race, ok := ds.Race(raceID)
	if !ok {
		return RaceQualifying{}, false
	}
	out := RaceQualifying{
		RaceRef:  refOf(race),
		Year:     race.Year,
		Knockout: HasKnockoutFormat(race.Year),
		Format:   FormatForYear(race.Year),
		Rows:     []QualifyingLine{},
	}
	rows := append([]models.Qualifying(nil), ds.QualifyingForRace(raceID)...)
	if len(rows) == 0 {
		return out, true
	}
	out.Available = true
	sort.SliceStable(rows, func(i, j int) bool { return qualiKey(rows[i]) < qualiKey(rows[j]) })

	out.Fastest = SessionBests{
		Q1: fastestSession(rows, func(q models.Qualifying) *string { return q.Q1 }),
		Q2: fastestSession(rows, func(q models.Qualifying) *string { return q.Q2 }),
		Q3: fastestSession(rows, func(q models.Qualifying) *string { return q.Q3 }),
	}

	var poleSecs float64
	if t, ok := bestSession(rows[0]); ok {
		poleSecs, _ = ParseLapTime(t)
	}
	for _, q := range rows {
		d, _ := ds.Driver(q.DriverID)
		c, _ := ds.Constructor(q.ConstructorID)
		line := QualifyingLine{
			Position:        q.Position,
			DriverID:        q.DriverID,
			DriverName:      d.FullName(),
			ConstructorID:   q.ConstructorID,
			ConstructorName: c.Name,
			Q1:              q.Q1,
			Q2:              q.Q2,
			Q3:              q.Q3,
		}
		if t, ok := bestSession(q); ok {
			line.Best = t
			if secs, _ := ParseLapTime(t); poleSecs > 0 && !q.IsPole() {
				line.GapSeconds = secs - poleSecs
				line.Gap = FormatGap(line.GapSeconds)
			}
		}
		out.Rows = append(out.Rows, line)
	}
	return out, true
}

func qualiKey(q models.Qualifying) int {
	if q.Position == nil || *q.Position <= 0 {
		return math.MaxInt
	}
	return *q.Position
}

func fastestSession(rows []models.Qualifying, session func(models.Qualifying) *string) string {
	best, bestSecs := "", math.Inf(1)
	for _, q := range rows {
		t := session(q)
		if secs, ok := parseLapPtr(t); ok && secs < bestSecs {
			best, bestSecs = *t, secs
		}
	}
	return best
}

// bestSession is a driver's latest-session time: Q3, else Q2, else Q1.
func bestSession(q models.Qualifying) (string, bool) {
	for _, t := range []*string{q.Q3, q.Q2, q.Q1} {
		if _, ok := parseLapPtr(t); ok {
			return *t, true
		}
	}
	return "", false
}

// meanGap is the mean Q1 deficit of every other driver to the pole
// sitter's Q1 time.
func meanGap(rows []models.Qualifying, poleDriver int, poleSecs float64) float64 {
	var gaps []float64
	for _, q := range rows {
		if q.DriverID == poleDriver {
			continue
		}
		if secs, ok := parseLapPtr(q.Q1); ok && secs >= poleSecs {
			gaps = append(gaps, secs-poleSecs)
		}
	}
	if len(gaps) == 0 {
		return 0
	}
	return stat.Mean(gaps, nil)
}
