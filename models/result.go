package models

import "github.com/uptrace/bun"

// Result holds one driver's race result.
// Position is nil when the driver was not classified.
type Result struct {
	bun.BaseModel `bun:"table:results,alias:r"`

	ResultID       int      `bun:"result_id,pk" json:"resultID"`
	RaceID         int      `bun:"race_id,notnull" json:"raceID"`
	DriverID       int      `bun:"driver_id,notnull" json:"driverID"`
	ConstructorID  int      `bun:"constructor_id,notnull" json:"constructorID"`
	Number         *int     `bun:"number" json:"number,omitempty"`
	Grid           int      `bun:"grid,notnull,default:0" json:"grid"`
	Position       *int     `bun:"position" json:"position,omitempty"`
	PositionText   string   `bun:"position_text" json:"positionText"`
	PositionOrder  int      `bun:"position_order,notnull,default:0" json:"positionOrder"`
	Points         float64  `bun:"points,notnull,default:0" json:"points"`
	Laps           int      `bun:"laps,notnull,default:0" json:"laps"`
	Time           *string  `bun:"time" json:"time,omitempty"`
	Milliseconds   *int     `bun:"milliseconds" json:"milliseconds,omitempty"`
	FastestLap     *int     `bun:"fastest_lap" json:"fastestLap,omitempty"`
	Rank           *int     `bun:"rank" json:"rank,omitempty"`
	FastestLapTime *string  `bun:"fastest_lap_time" json:"fastestLapTime,omitempty"`
	FastestLapKph  *float64 `bun:"fastest_lap_speed" json:"fastestLapSpeed,omitempty"`
	StatusID       int      `bun:"status_id,notnull" json:"statusID"`
}

// Classified returns the finishing position and whether the driver was ranked.
// A zero or negative position counts as not classified.
func (r Result) Classified() (int, bool) {
	if r.Position == nil || *r.Position <= 0 {
		return 0, false
	}
	return *r.Position, true
}
