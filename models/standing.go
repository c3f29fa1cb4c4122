package models

import "github.com/uptrace/bun"

// DriverStanding is the cumulative drivers' championship state after a race.
type DriverStanding struct {
	bun.BaseModel `bun:"table:driver_standings,alias:ds"`

	DriverStandingsID int     `bun:"driver_standings_id,pk" json:"driverStandingsID"`
	RaceID            int     `bun:"race_id,notnull" json:"raceID"`
	DriverID          int     `bun:"driver_id,notnull" json:"driverID"`
	Points            float64 `bun:"points,notnull,default:0" json:"points"`
	Position          *int    `bun:"position" json:"position,omitempty"`
	PositionText      string  `bun:"position_text" json:"positionText"`
	Wins              int     `bun:"wins,notnull,default:0" json:"wins"`
}

// ConstructorStanding is the cumulative constructors' championship state after a race.
type ConstructorStanding struct {
	bun.BaseModel `bun:"table:constructor_standings,alias:cs"`

	ConstructorStandingsID int     `bun:"constructor_standings_id,pk" json:"constructorStandingsID"`
	RaceID                 int     `bun:"race_id,notnull" json:"raceID"`
	ConstructorID          int     `bun:"constructor_id,notnull" json:"constructorID"`
	Points                 float64 `bun:"points,notnull,default:0" json:"points"`
	Position               *int    `bun:"position" json:"position,omitempty"`
	PositionText           string  `bun:"position_text" json:"positionText"`
	Wins                   int     `bun:"wins,notnull,default:0" json:"wins"`
}
