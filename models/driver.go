package models

import "github.com/uptrace/bun"

// Driver is a championship entrant.
type Driver struct {
	bun.BaseModel `bun:"table:drivers,alias:d"`

	DriverID    int     `bun:"driver_id,pk" json:"driverID"`
	DriverRef   string  `bun:"driver_ref,notnull" json:"driverRef"`
	Number      *int    `bun:"number" json:"number,omitempty"`
	Code        *string `bun:"code" json:"code,omitempty"`
	Forename    string  `bun:"forename,notnull" json:"forename"`
	Surname     string  `bun:"surname,notnull" json:"surname"`
	DOB         *string `bun:"dob" json:"dob,omitempty"`
	Nationality string  `bun:"nationality" json:"nationality"`
	URL         string  `bun:"url" json:"url,omitempty"`
}

// FullName joins forename and surname.
func (d Driver) FullName() string {
	switch {
	case d.Forename == "":
		return d.Surname
	case d.Surname == "":
		return d.Forename
	}
	return d.Forename + " " + d.Surname
}

// Constructor is a team.
type Constructor struct {
	bun.BaseModel `bun:"table:constructors,alias:co"`

	ConstructorID  int    `bun:"constructor_id,pk" json:"constructorID"`
	ConstructorRef string `bun:"constructor_ref,notnull" json:"constructorRef"`
	Name           string `bun:"name,notnull" json:"name"`
	Nationality    string `bun:"nationality" json:"nationality"`
	URL            string `bun:"url" json:"url,omitempty"`
}
