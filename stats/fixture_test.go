package stats

import (
	"github.com/padraicbc/f1history/dataset"
	"github.com/padraicbc/f1history/models"
)

func ip(i int) *int       { return &i }
func sp(s string) *string { return &s }

func res(raceID, driverID, constructorID int, pos *int, grid int, points float64, status int) models.Result {
	return models.Result{
		ResultID:      raceID*100 + driverID,
		RaceID:        raceID,
		DriverID:      driverID,
		ConstructorID: constructorID,
		Position:      pos,
		Grid:          grid,
		Points:        points,
		StatusID:      status,
	}
}

func withLap(r models.Result, lap string) models.Result {
	r.FastestLapTime = sp(lap)
	return r
}

func standing(raceID, driverID int, points float64, pos int) models.DriverStanding {
	return models.DriverStanding{RaceID: raceID, DriverID: driverID, Points: points, Position: ip(pos)}
}

// fixture is a small synthetic history:
//   - 2020: three races, driver 1 wins all and clinches after round 2
//   - 2021: two races, the lead changes at round 2
//   - 2022: qualifying recorded for round 1 only
//   - 2007: constructor standings with McLaren excluded
//   - constructor standings are missing after 2020 round 2 and for
//     Ferrari after round 1
func fixture() *dataset.Dataset {
	return dataset.New(fixtureTables())
}

func fixtureTables() dataset.Tables {
	return dataset.Tables{
		Drivers: []models.Driver{
			{DriverID: 1, DriverRef: "hamilton", Code: sp("HAM"), Forename: "Lewis", Surname: "Hamilton"},
			{DriverID: 2, DriverRef: "max_verstappen", Code: sp("VER"), Forename: "Max", Surname: "Verstappen"},
			{DriverID: 3, DriverRef: "leclerc", Code: sp("LEC"), Forename: "Charles", Surname: "Leclerc"},
			{DriverID: 4, DriverRef: "alonso", Code: sp("ALO"), Forename: "Fernando", Surname: "Alonso"},
		},
		Constructors: []models.Constructor{
			{ConstructorID: 1, ConstructorRef: "mercedes", Name: "Mercedes"},
			{ConstructorID: 2, ConstructorRef: "red_bull", Name: "Red Bull"},
			{ConstructorID: 3, ConstructorRef: "ferrari", Name: "Ferrari"},
			{ConstructorID: 4, ConstructorRef: "mclaren", Name: "McLaren"},
		},
		Circuits: []models.Circuit{
			{CircuitID: 1, CircuitRef: "silverstone", Name: "Silverstone Circuit", Country: "UK"},
			{CircuitID: 2, CircuitRef: "monza", Name: "Autodromo Nazionale di Monza", Country: "Italy"},
		},
		Statuses: []models.Status{{StatusID: 1, Status: "Finished"}, {StatusID: 5, Status: "Engine"}, {StatusID: 11, Status: "+1 Lap"}},
		Races: []models.Race{
			{RaceID: 103, Year: 2020, Round: 3, CircuitID: 1, Name: "70th Anniversary Grand Prix"},
			{RaceID: 101, Year: 2020, Round: 1, CircuitID: 1, Name: "British Grand Prix"},
			{RaceID: 102, Year: 2020, Round: 2, CircuitID: 2, Name: "Italian Grand Prix"},
			{RaceID: 201, Year: 2021, Round: 1, CircuitID: 2, Name: "Italian Grand Prix"},
			{RaceID: 202, Year: 2021, Round: 2, CircuitID: 2, Name: "Italian Grand Prix"},
			{RaceID: 301, Year: 2022, Round: 1, CircuitID: 1, Name: "British Grand Prix"},
			{RaceID: 302, Year: 2022, Round: 2, CircuitID: 2, Name: "Italian Grand Prix"},
			{RaceID: 701, Year: 2007, Round: 1, CircuitID: 2, Name: "Italian Grand Prix"},
			{RaceID: 702, Year: 2007, Round: 2, CircuitID: 1, Name: "British Grand Prix"},
		},
		Results: []models.Result{
			withLap(res(101, 1, 1, ip(1), 1, 25, 1), "1:27.097"),
			withLap(res(101, 2, 2, ip(2), 2, 18, 1), "1:27.500"),
			res(101, 3, 3, ip(3), 3, 15, 1),
			res(102, 1, 1, ip(1), 2, 25, 1),
			res(102, 2, 2, ip(3), 1, 15, 1),
			res(102, 3, 3, ip(2), 3, 18, 1),
			withLap(res(103, 1, 1, ip(1), 1, 25, 1), `\N`),
			withLap(res(103, 2, 3, ip(2), 3, 18, 1), "1:26.900"),
			withLap(res(103, 3, 3, nil, 2, 0, 5), "bad"),

			res(201, 2, 2, ip(1), 1, 25, 1),
			res(201, 1, 1, ip(2), 2, 18, 1),
			res(202, 1, 1, ip(1), 1, 25, 1),
			res(202, 2, 2, ip(2), 2, 18, 1),

			res(301, 2, 2, ip(1), 1, 25, 1),
			res(301, 1, 1, ip(2), 2, 18, 1),
			res(301, 3, 3, ip(3), 3, 15, 1),
			res(302, 1, 1, ip(1), 1, 25, 1),
			res(302, 2, 2, ip(2), 2, 18, 1),
			res(302, 3, 3, ip(3), 3, 15, 1),

			res(701, 4, 4, ip(1), 1, 10, 1),
			res(701, 3, 3, ip(2), 2, 8, 1),
			res(702, 3, 3, ip(1), 1, 10, 1),
			res(702, 4, 4, ip(2), 2, 8, 1),
		},
		DriverStandings: []models.DriverStanding{
			standing(101, 1, 25, 1), standing(101, 2, 18, 2), standing(101, 3, 10, 3),
			standing(102, 1, 50, 1), standing(102, 2, 24, 2), standing(102, 3, 20, 3),
			standing(103, 1, 75, 1), standing(103, 2, 42, 2), standing(103, 3, 20, 3),

			standing(201, 2, 25, 1), standing(201, 1, 18, 2),
			standing(202, 1, 43, 1), standing(202, 2, 40, 2),

			standing(301, 2, 25, 1), standing(301, 1, 18, 2), standing(301, 3, 15, 3),
			standing(302, 1, 43, 1), standing(302, 2, 40, 2), standing(302, 3, 30, 3),
		},
		ConstructorStandings: []models.ConstructorStanding{
			{RaceID: 101, ConstructorID: 1, Points: 25, Wins: 1, Position: ip(1)},
			{RaceID: 101, ConstructorID: 2, Points: 18, Position: ip(2)},
			{RaceID: 103, ConstructorID: 1, Points: 75, Wins: 3, Position: ip(1)},
			{RaceID: 103, ConstructorID: 3, Points: 50, Position: ip(2)},
			{RaceID: 103, ConstructorID: 2, Points: 33, Position: ip(3)},
			{RaceID: 702, ConstructorID: 4, Points: 18, Position: ip(1)},
			{RaceID: 702, ConstructorID: 3, Points: 18, Position: ip(2)},
		},
		Qualifying: []models.Qualifying{
			{QualifyID: 1, RaceID: 301, DriverID: 2, ConstructorID: 2, Position: ip(1), Q1: sp("1:27.800"), Q2: sp("1:27.200"), Q3: sp("1:26.800")},
			{QualifyID: 2, RaceID: 301, DriverID: 1, ConstructorID: 1, Position: ip(2), Q1: sp("1:28.000"), Q2: sp("1:27.500"), Q3: sp("1:27.000")},
			{QualifyID: 3, RaceID: 301, DriverID: 3, ConstructorID: 3, Position: ip(3), Q1: sp("1:28.300"), Q2: sp("1:27.900"), Q3: sp(`\N`)},
		},
	}
}
