package handlers

import (
	"github.com/labstack/echo/v4"

	mw "github.com/padraicbc/f1history/middleware"
)

// Register mounts the API, admin and metrics routes on e.
func Register(e *echo.Echo, h *Handler) {
	e.GET("/metrics", echo.WrapHandler(h.metrics.Handler()))

	// Public
	api := e.Group("/api", mw.Metrics(h.metrics))
	api.GET("/years", h.Years)
	api.GET("/seasons/:year", h.Season)
	api.GET("/seasons/:year/constructors", h.SeasonConstructors)
	api.GET("/seasons/:year/qualifying", h.SeasonQualifying)
	api.GET("/seasons/:year/h2h", h.HeadToHead)
	api.GET("/seasons/:year/overview", h.SeasonOverview)
	api.GET("/races/:id", h.Race)
	api.GET("/races/:id/qualifying", h.RaceQualifying)
	api.GET("/drivers", h.Drivers)
	api.GET("/drivers/:id/career", h.DriverCareer)
	api.GET("/circuits", h.Circuits)
	api.GET("/circuits/:id", h.Circuit)
	api.POST("/signin", h.Signin)

	// Protected: admin-role JWT in the Authorization header
	admin := api.Group("/admin", mw.JWT(h.JWTKey), mw.RequireRole(mw.RoleAdmin))
	admin.POST("/reload", h.Reload)
}
