package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/f1history/models"
	"github.com/padraicbc/f1history/stats"
)

type driverData struct {
	DriverID    int     `json:"driverID"`
	Ref         string  `json:"ref"`
	Code        *string `json:"code"`
	Name        string  `json:"name"`
	Nationality string  `json:"nationality"`
}

func toDriverData(d models.Driver) driverData {
	return driverData{
		DriverID:    d.DriverID,
		Ref:         d.DriverRef,
		Code:        d.Code,
		Name:        d.FullName(),
		Nationality: d.Nationality,
	}
}

// Drivers searches drivers by name, code or reference. An empty q lists all.
func (h *Handler) Drivers(c echo.Context) error {
	found := h.Dataset().SearchDrivers(c.QueryParam("q"))

	result := make([]driverData, len(found))
	for i, d := range found {
		result[i] = toDriverData(d)
	}
	return c.JSON(http.StatusOK, result)
}

// DriverCareer returns one driver's career record.
func (h *Handler) DriverCareer(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	ds := h.Dataset()
	if _, ok := ds.Driver(id); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "driver not found")
	}
	career := timed(h, "career", func() stats.CareerStats {
		return stats.ComputeDriverCareer(ds, id)
	})
	return c.JSON(http.StatusOK, career)
}
