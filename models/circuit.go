package models

import "github.com/uptrace/bun"

// Circuit is a venue.
type Circuit struct {
	bun.BaseModel `bun:"table:circuits,alias:ci"`

	CircuitID  int      `bun:"circuit_id,pk" json:"circuitID"`
	CircuitRef string   `bun:"circuit_ref,notnull" json:"circuitRef"`
	Name       string   `bun:"name,notnull" json:"name"`
	Location   string   `bun:"location" json:"location"`
	Country    string   `bun:"country" json:"country"`
	Lat        *float64 `bun:"lat" json:"lat,omitempty"`
	Lng        *float64 `bun:"lng" json:"lng,omitempty"`
	Alt        *int     `bun:"alt" json:"alt,omitempty"`
	URL        string   `bun:"url" json:"url,omitempty"`
}

// Status is a result status such as "Finished", "+1 Lap" or "Engine".
type Status struct {
	bun.BaseModel `bun:"table:status,alias:st"`

	StatusID int    `bun:"status_id,pk" json:"statusID"`
	Status   string `bun:"status,notnull" json:"status"`
}
