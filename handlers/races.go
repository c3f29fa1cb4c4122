package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/f1history/stats"
)

// Race returns the classification and highlights of one race.
func (h *Handler) Race(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	ds := h.Dataset()
	if _, ok := ds.Race(id); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "race not found")
	}
	detail := timed(h, "race", func() stats.RaceDetail {
		d, _ := stats.ComputeRace(ds, id)
		return d
	})
	return c.JSON(http.StatusOK, detail)
}

// RaceQualifying returns the qualifying classification of one race.
func (h *Handler) RaceQualifying(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	ds := h.Dataset()
	if _, ok := ds.Race(id); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "race not found")
	}
	q := timed(h, "race_qualifying", func() stats.RaceQualifying {
		q, _ := stats.ComputeRaceQualifying(ds, id)
		return q
	})
	return c.JSON(http.StatusOK, q)
}

// SeasonOverview returns the calendar, winner spread and champions of one year.
func (h *Handler) SeasonOverview(c echo.Context) error {
	year, err := intParam(c, "year")
	if err != nil {
		return err
	}
	ds := h.Dataset()
	o := timed(h, "season_overview", func() stats.SeasonOverview {
		return stats.ComputeSeasonOverview(ds, year)
	})
	return c.JSON(http.StatusOK, o)
}
