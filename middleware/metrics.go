package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/f1history/metrics"
)

// Metrics counts and times every request by its route pattern.
func Metrics(m *metrics.Collector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			t := m.NewTimer(m.APIRequestDuration.WithLabelValues(route))
			err := next(c)
			t.ObserveDuration()

			status := c.Response().Status
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			} else if err != nil {
				status = http.StatusInternalServerError
			}
			m.RecordAPIRequest(route, c.Request().Method, strconv.Itoa(status))
			return err
		}
	}
}
