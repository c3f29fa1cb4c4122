package models

import "github.com/uptrace/bun"

// Race is one championship round.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	RaceID    int     `bun:"race_id,pk" json:"raceID"`
	Year      int     `bun:"year,notnull" json:"year"`
	Round     int     `bun:"round,notnull" json:"round"`
	CircuitID int     `bun:"circuit_id,notnull" json:"circuitID"`
	Name      string  `bun:"name,notnull" json:"name"`
	Date      string  `bun:"date,notnull" json:"date"`
	Time      *string `bun:"time" json:"time,omitempty"`
	URL       string  `bun:"url" json:"url,omitempty"`
}

// Season is a championship year.
type Season struct {
	bun.BaseModel `bun:"table:seasons,alias:se"`

	Year int    `bun:"year,pk" json:"year"`
	URL  string `bun:"url" json:"url,omitempty"`
}
