package models

import "github.com/uptrace/bun"

// Qualifying is one driver's qualifying classification.
// Q2 and Q3 are only set in knockout-format seasons.
type Qualifying struct {
	bun.BaseModel `bun:"table:qualifying,alias:q"`

	QualifyID     int     `bun:"qualify_id,pk" json:"qualifyID"`
	RaceID        int     `bun:"race_id,notnull" json:"raceID"`
	DriverID      int     `bun:"driver_id,notnull" json:"driverID"`
	ConstructorID int     `bun:"constructor_id,notnull" json:"constructorID"`
	Number        *int    `bun:"number" json:"number,omitempty"`
	Position      *int    `bun:"position" json:"position,omitempty"`
	Q1            *string `bun:"q1" json:"q1,omitempty"`
	Q2            *string `bun:"q2" json:"q2,omitempty"`
	Q3            *string `bun:"q3" json:"q3,omitempty"`
}

// IsPole reports whether the row is the qualifying pole.
func (q Qualifying) IsPole() bool {
	return q.Position != nil && *q.Position == 1
}
