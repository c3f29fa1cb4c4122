package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/padraicbc/f1history/models"
)

// nullMarker is the Ergast export's "not applicable" value.
const nullMarker = `\N`

// Raw CSV rows. Every column is read as text and normalised into a model:
// counters default to 0, identifiers, positions and times default to nil.

type raceRow struct {
	RaceID    string `csv:"raceId"`
	Year      string `csv:"year"`
	Round     string `csv:"round"`
	CircuitID string `csv:"circuitId"`
	Name      string `csv:"name"`
	Date      string `csv:"date"`
	Time      string `csv:"time"`
	URL       string `csv:"url"`
}

func (r raceRow) model() models.Race {
	return models.Race{
		RaceID:    parseInt(r.RaceID),
		Year:      parseInt(r.Year),
		Round:     parseInt(r.Round),
		CircuitID: parseInt(r.CircuitID),
		Name:      text(r.Name),
		Date:      text(r.Date),
		Time:      parseNullString(r.Time),
		URL:       text(r.URL),
	}
}

type resultRow struct {
	ResultID        string `csv:"resultId"`
	RaceID          string `csv:"raceId"`
	DriverID        string `csv:"driverId"`
	ConstructorID   string `csv:"constructorId"`
	Number          string `csv:"number"`
	Grid            string `csv:"grid"`
	Position        string `csv:"position"`
	PositionText    string `csv:"positionText"`
	PositionOrder   string `csv:"positionOrder"`
	Points          string `csv:"points"`
	Laps            string `csv:"laps"`
	Time            string `csv:"time"`
	Milliseconds    string `csv:"milliseconds"`
	FastestLap      string `csv:"fastestLap"`
	Rank            string `csv:"rank"`
	FastestLapTime  string `csv:"fastestLapTime"`
	FastestLapSpeed string `csv:"fastestLapSpeed"`
	StatusID        string `csv:"statusId"`
}

func (r resultRow) model() models.Result {
	return models.Result{
		ResultID:       parseInt(r.ResultID),
		RaceID:         parseInt(r.RaceID),
		DriverID:       parseInt(r.DriverID),
		ConstructorID:  parseInt(r.ConstructorID),
		Number:         parseNullInt(r.Number),
		Grid:           parseInt(r.Grid),
		Position:       parseNullInt(r.Position),
		PositionText:   text(r.PositionText),
		PositionOrder:  parseInt(r.PositionOrder),
		Points:         parseFloat(r.Points),
		Laps:           parseInt(r.Laps),
		Time:           parseNullString(r.Time),
		Milliseconds:   parseNullInt(r.Milliseconds),
		FastestLap:     parseNullInt(r.FastestLap),
		Rank:           parseNullInt(r.Rank),
		FastestLapTime: parseNullString(r.FastestLapTime),
		FastestLapKph:  parseNullFloat(r.FastestLapSpeed),
		StatusID:       parseInt(r.StatusID),
	}
}

type driverRow struct {
	DriverID    string `csv:"driverId"`
	DriverRef   string `csv:"driverRef"`
	Number      string `csv:"number"`
	Code        string `csv:"code"`
	Forename    string `csv:"forename"`
	Surname     string `csv:"surname"`
	DOB         string `csv:"dob"`
	Nationality string `csv:"nationality"`
	URL         string `csv:"url"`
}

func (r driverRow) model() models.Driver {
	return models.Driver{
		DriverID:    parseInt(r.DriverID),
		DriverRef:   text(r.DriverRef),
		Number:      parseNullInt(r.Number),
		Code:        parseNullString(r.Code),
		Forename:    text(r.Forename),
		Surname:     text(r.Surname),
		DOB:         parseNullString(r.DOB),
		Nationality: text(r.Nationality),
		URL:         text(r.URL),
	}
}

type constructorRow struct {
	ConstructorID  string `csv:"constructorId"`
	ConstructorRef string `csv:"constructorRef"`
	Name           string `csv:"name"`
	Nationality    string `csv:"nationality"`
	URL            string `csv:"url"`
}

func (r constructorRow) model() models.Constructor {
	return models.Constructor{
		ConstructorID:  parseInt(r.ConstructorID),
		ConstructorRef: text(r.ConstructorRef),
		Name:           text(r.Name),
		Nationality:    text(r.Nationality),
		URL:            text(r.URL),
	}
}

type driverStandingRow struct {
	DriverStandingsID string `csv:"driverStandingsId"`
	RaceID            string `csv:"raceId"`
	DriverID          string `csv:"driverId"`
	Points            string `csv:"points"`
	Position          string `csv:"position"`
	PositionText      string `csv:"positionText"`
	Wins              string `csv:"wins"`
}

func (r driverStandingRow) model() models.DriverStanding {
	return models.DriverStanding{
		DriverStandingsID: parseInt(r.DriverStandingsID),
		RaceID:            parseInt(r.RaceID),
		DriverID:          parseInt(r.DriverID),
		Points:            parseFloat(r.Points),
		Position:          parseNullInt(r.Position),
		PositionText:      text(r.PositionText),
		Wins:              parseInt(r.Wins),
	}
}

type constructorStandingRow struct {
	ConstructorStandingsID string `csv:"constructorStandingsId"`
	RaceID                 string `csv:"raceId"`
	ConstructorID          string `csv:"constructorId"`
	Points                 string `csv:"points"`
	Position               string `csv:"position"`
	PositionText           string `csv:"positionText"`
	Wins                   string `csv:"wins"`
}

func (r constructorStandingRow) model() models.ConstructorStanding {
	return models.ConstructorStanding{
		ConstructorStandingsID: parseInt(r.ConstructorStandingsID),
		RaceID:                 parseInt(r.RaceID),
		ConstructorID:          parseInt(r.ConstructorID),
		Points:                 parseFloat(r.Points),
		Position:               parseNullInt(r.Position),
		PositionText:           text(r.PositionText),
		Wins:                   parseInt(r.Wins),
	}
}

type qualifyingRow struct {
	QualifyID     string `csv:"qualifyId"`
	RaceID        string `csv:"raceId"`
	DriverID      string `csv:"driverId"`
	ConstructorID string `csv:"constructorId"`
	Number        string `csv:"number"`
	Position      string `csv:"position"`
	Q1            string `csv:"q1"`
	Q2            string `csv:"q2"`
	Q3            string `csv:"q3"`
}

func (r qualifyingRow) model() models.Qualifying {
	return models.Qualifying{
		QualifyID:     parseInt(r.QualifyID),
		RaceID:        parseInt(r.RaceID),
		DriverID:      parseInt(r.DriverID),
		ConstructorID: parseInt(r.ConstructorID),
		Number:        parseNullInt(r.Number),
		Position:      parseNullInt(r.Position),
		Q1:            parseNullString(r.Q1),
		Q2:            parseNullString(r.Q2),
		Q3:            parseNullString(r.Q3),
	}
}

type circuitRow struct {
	CircuitID  string `csv:"circuitId"`
	CircuitRef string `csv:"circuitRef"`
	Name       string `csv:"name"`
	Location   string `csv:"location"`
	Country    string `csv:"country"`
	Lat        string `csv:"lat"`
	Lng        string `csv:"lng"`
	Alt        string `csv:"alt"`
	URL        string `csv:"url"`
}

func (r circuitRow) model() models.Circuit {
	return models.Circuit{
		CircuitID:  parseInt(r.CircuitID),
		CircuitRef: text(r.CircuitRef),
		Name:       text(r.Name),
		Location:   text(r.Location),
		Country:    text(r.Country),
		Lat:        parseNullFloat(r.Lat),
		Lng:        parseNullFloat(r.Lng),
		Alt:        parseNullInt(r.Alt),
		URL:        text(r.URL),
	}
}

type statusRow struct {
	StatusID string `csv:"statusId"`
	Status   string `csv:"status"`
}

func (r statusRow) model() models.Status {
	return models.Status{StatusID: parseInt(r.StatusID), Status: text(r.Status)}
}

type seasonRow struct {
	Year string `csv:"year"`
	URL  string `csv:"url"`
}

func (r seasonRow) model() models.Season {
	return models.Season{Year: parseInt(r.Year), URL: text(r.URL)}
}

// --- field normalisation ---

func isNull(s string) bool {
	return s == "" || s == nullMarker
}

func text(s string) string {
	s = strings.TrimSpace(s)
	if isNull(s) {
		return ""
	}
	return s
}

// parseInt treats sentinels and malformed numbers as 0.
func parseInt(s string) int {
	n := parseNullInt(s)
	if n == nil {
		return 0
	}
	return *n
}

func parseNullInt(s string) *int {
	s = strings.TrimSpace(s)
	if isNull(s) {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Some exports write integer columns as "3.0".
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return nil
		}
		n = int(f)
	}
	return &n
}

func parseFloat(s string) float64 {
	f := parseNullFloat(s)
	if f == nil {
		return 0
	}
	return *f
}

func parseNullFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if isNull(s) {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func parseNullString(s string) *string {
	s = strings.TrimSpace(s)
	if isNull(s) {
		return nil
	}
	return &s
}
