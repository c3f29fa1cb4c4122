package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/f1history/stats"
)

type circuitData struct {
	CircuitID int      `json:"circuitID"`
	Ref       string   `json:"ref"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Country   string   `json:"country"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
	Races     int      `json:"races"`
}

// Circuits lists every circuit with the number of races held there.
func (h *Handler) Circuits(c echo.Context) error {
	ds := h.Dataset()
	circuits := ds.Circuits()

	result := make([]circuitData, len(circuits))
	for i, ci := range circuits {
		result[i] = circuitData{
			CircuitID: ci.CircuitID,
			Ref:       ci.CircuitRef,
			Name:      ci.Name,
			Location:  ci.Location,
			Country:   ci.Country,
			Lat:       ci.Lat,
			Lng:       ci.Lng,
			Races:     len(ds.RacesAtCircuit(ci.CircuitID)),
		}
	}
	return c.JSON(http.StatusOK, result)
}

// Circuit returns the history of one circuit.
func (h *Handler) Circuit(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	ds := h.Dataset()
	if _, ok := ds.Circuit(id); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "circuit not found")
	}
	result := timed(h, "circuit", func() stats.CircuitStats {
		return stats.ComputeCircuitStats(ds, id)
	})
	return c.JSON(http.StatusOK, result)
}
