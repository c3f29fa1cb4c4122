package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/f1history/config"
	"github.com/padraicbc/f1history/dataset"
	"github.com/padraicbc/f1history/db"
	"github.com/padraicbc/f1history/handlers"
	applog "github.com/padraicbc/f1history/logger"
	"github.com/padraicbc/f1history/metrics"
	"github.com/padraicbc/f1history/stats"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	m := metrics.NewCollector("f1history")

	var bdb *bun.DB
	if cfg.DataSource == config.SourcePostgres {
		bdb = db.Setup(cfg)
		defer bdb.Close()
	}
	load := newLoader(cfg, bdb, logger, m)

	ds, err := load(context.Background())
	if err != nil {
		logger.Fatal("initial dataset load failed", zap.String("source", cfg.DataSource), zap.Error(err))
	}

	h := handlers.New(ds, handlers.Options{
		JWTKey:            cfg.JWTKey(),
		AdminUsername:     cfg.AdminUsername,
		AdminPasswordHash: cfg.AdminPasswordHash,
		Season: stats.SeasonOptions{
			ContenderLimit:   cfg.ContenderLimit,
			MaxPointsPerRace: cfg.MaxPointsPerRace,
		},
		Metrics: m,
		Load:    load,
	})
	if !cfg.AdminEnabled() {
		logger.Warn("admin sign-in disabled: ADMIN_PASSWORD_HASH or JWT_SECRET not set")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"*", "Authorization"},
	}))

	handlers.Register(e, h)

	if cfg.Debug || len(cfg.TLSDomains) == 0 {
		logger.Info("starting server", zap.Bool("debug", cfg.Debug), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	logger.Info("starting server", zap.String("mode", "tls"), zap.Strings("domains", cfg.TLSDomains))
	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}

// newLoader returns the dataset loader for the configured source. Each call
// reads every table afresh and builds a new immutable dataset.
func newLoader(cfg *config.Config, bdb *bun.DB, logger *zap.Logger, m *metrics.Collector) handlers.Loader {
	return func(ctx context.Context) (*dataset.Dataset, error) {
		t := m.TimeLoad(cfg.DataSource)

		tables, err := readTables(ctx, cfg, bdb)
		if err != nil {
			m.RecordLoadError(cfg.DataSource)
			return nil, err
		}
		counts := tables.Counts()
		m.SetTableRows(counts)

		ds := dataset.New(tables)
		elapsed := t.ObserveDuration()
		logger.Info("dataset loaded",
			append(applog.Counts(counts),
				zap.String("source", cfg.DataSource),
				zap.Duration("elapsed", elapsed),
				zap.Stringer("dataset", ds),
			)...)
		return ds, nil
	}
}

func readTables(ctx context.Context, cfg *config.Config, bdb *bun.DB) (dataset.Tables, error) {
	switch cfg.DataSource {
	case config.SourcePostgres:
		return db.LoadTables(ctx, bdb)
	case config.SourceCSV:
		return dataset.LoadDir(ctx, cfg.DataDir)
	}
	return dataset.Tables{}, fmt.Errorf("unknown data source %q", cfg.DataSource)
}
