package handlers

import (
	"context"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/f1history/dataset"
	"github.com/padraicbc/f1history/metrics"
	"github.com/padraicbc/f1history/stats"
)

// Loader builds a fresh dataset from the configured source.
type Loader func(ctx context.Context) (*dataset.Dataset, error)

// Options configures a Handler.
type Options struct {
	JWTKey            []byte
	AdminUsername     string
	AdminPasswordHash string
	Season            stats.SeasonOptions
	Metrics           *metrics.Collector
	Load              Loader
}

// Handler holds shared dependencies used by all route handlers. The
// dataset is replaced whole on reload and never mutated.
type Handler struct {
	data    atomic.Pointer[dataset.Dataset]
	load    Loader
	metrics *metrics.Collector
	season  stats.SeasonOptions

	JWTKey        []byte
	adminUser     string
	adminPassHash string
}

// New creates a Handler serving ds.
func New(ds *dataset.Dataset, opts Options) *Handler {
	m := opts.Metrics
	if m == nil {
		m = metrics.NewCollector("f1history")
	}
	h := &Handler{
		load:          opts.Load,
		metrics:       m,
		season:        opts.Season,
		JWTKey:        opts.JWTKey,
		adminUser:     opts.AdminUsername,
		adminPassHash: opts.AdminPasswordHash,
	}
	h.data.Store(ds)
	return h
}

// Dataset returns the dataset currently being served.
func (h *Handler) Dataset() *dataset.Dataset {
	return h.data.Load()
}

func (h *Handler) swap(ds *dataset.Dataset) {
	h.data.Store(ds)
}

// timed runs fn under the aggregation timer for op.
func timed[T any](h *Handler, op string, fn func() T) T {
	t := h.metrics.TimeAggregation(op)
	defer t.ObserveDuration()
	return fn()
}

func intParam(c echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return v, nil
}

func intQuery(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is required")
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return v, nil
}
