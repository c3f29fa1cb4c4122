package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/f1history/stats"
)

type seasonData struct {
	Year  int    `json:"year"`
	URL   string `json:"url,omitempty"`
	Races int    `json:"races"`
}

type h2hData struct {
	Year       int                     `json:"year"`
	Comparison stats.H2HStats          `json:"comparison"`
	SeasonA    stats.DriverSeasonStats `json:"seasonA"`
	SeasonB    stats.DriverSeasonStats `json:"seasonB"`
}

// Years returns every season with at least one race, most recent first.
func (h *Handler) Years(c echo.Context) error {
	ds := h.Dataset()
	seasons := ds.Seasons()
	urls := make(map[int]string, len(seasons))
	for _, s := range seasons {
		urls[s.Year] = s.URL
	}

	years := ds.Years()
	result := make([]seasonData, len(years))
	for i, y := range years {
		result[i] = seasonData{Year: y, URL: urls[y], Races: len(ds.RacesInYear(y))}
	}
	return c.JSON(http.StatusOK, result)
}

// Season returns the championship summary of one year.
func (h *Handler) Season(c echo.Context) error {
	year, err := intParam(c, "year")
	if err != nil {
		return err
	}
	ds := h.Dataset()
	summary := timed(h, "season", func() stats.SeasonSummary {
		return stats.ComputeSeasonSummary(ds, year, h.season)
	})
	return c.JSON(http.StatusOK, summary)
}

// SeasonConstructors returns the constructors' championship of one year.
func (h *Handler) SeasonConstructors(c echo.Context) error {
	year, err := intParam(c, "year")
	if err != nil {
		return err
	}
	ds := h.Dataset()
	standings := timed(h, "constructors", func() stats.ConstructorStandings {
		return stats.ComputeConstructorStandings(ds, year)
	})
	return c.JSON(http.StatusOK, standings)
}

// SeasonQualifying returns qualifying statistics of one year.
func (h *Handler) SeasonQualifying(c echo.Context) error {
	year, err := intParam(c, "year")
	if err != nil {
		return err
	}
	ds := h.Dataset()
	q := timed(h, "qualifying", func() stats.QualifyingSeason {
		return stats.ComputeQualifyingSeason(ds, year)
	})
	return c.JSON(http.StatusOK, q)
}

// HeadToHead compares drivers a and b over one season.
func (h *Handler) HeadToHead(c echo.Context) error {
	year, err := intParam(c, "year")
	if err != nil {
		return err
	}
	a, err := intQuery(c, "a")
	if err != nil {
		return err
	}
	b, err := intQuery(c, "b")
	if err != nil {
		return err
	}
	if a == b {
		return echo.NewHTTPError(http.StatusBadRequest, "a and b must be different drivers")
	}

	ds := h.Dataset()
	for _, id := range []int{a, b} {
		if _, ok := ds.Driver(id); !ok {
			return echo.NewHTTPError(http.StatusNotFound, "driver not found")
		}
	}

	result := timed(h, "h2h", func() h2hData {
		return h2hData{
			Year:       year,
			Comparison: stats.CompareDriversInYear(ds, a, b, year),
			SeasonA:    stats.SeasonStatsFor(ds, year, a),
			SeasonB:    stats.SeasonStatsFor(ds, year, b),
		}
	})
	return c.JSON(http.StatusOK, result)
}
