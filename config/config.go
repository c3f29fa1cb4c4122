// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Data sources the API can load its tables from.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	// Where the dataset comes from: a directory of CSV files or PostgreSQL.
	DataSource string
	DataDir    string

	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// Admin sign-in. The hash is a bcrypt hash, see cmd/hashpass.
	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string

	// Season analysis
	ContenderLimit   int
	MaxPointsPerRace float64

	// MySQL – used only by cmd/migrate.
	MySQLDSN string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	cfg := fromViper(newViper())
	if err := cfg.validate(); err != nil {
		log.Fatal(err)
	}
	return cfg
}

func fromViper(v *viper.Viper) *Config {
	// Defaults
	v.SetDefault("DATA_SOURCE", SourceCSV)
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("DB_USER", "f1")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "f1history")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "")
	v.SetDefault("DEBUG", false)
	v.SetDefault("CONTENDER_LIMIT", 5)
	v.SetDefault("MAX_POINTS_PER_RACE", 25)

	return &Config{
		DataSource:        strings.ToLower(strings.TrimSpace(v.GetString("DATA_SOURCE"))),
		DataDir:           v.GetString("DATA_DIR"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		DBUser:            v.GetString("DB_USER"),
		DBPass:            v.GetString("DB_PASS"),
		DBHost:            v.GetString("DB_HOST"),
		DBPort:            v.GetString("DB_PORT"),
		DBName:            v.GetString("DB_NAME"),
		DBSSLMode:         v.GetString("DB_SSLMODE"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		AdminUsername:     v.GetString("ADMIN_USERNAME"),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		Debug:             v.GetBool("DEBUG"),
		Port:              v.GetString("PORT"),
		TLSDomains:        splitTrimmed(v.GetString("TLS_DOMAINS")),
		ContenderLimit:    v.GetInt("CONTENDER_LIMIT"),
		MaxPointsPerRace:  v.GetFloat64("MAX_POINTS_PER_RACE"),
		MySQLDSN:          v.GetString("MYSQL_DSN"),
	}
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// HasPostgres reports whether enough is set to reach PostgreSQL.
func (c *Config) HasPostgres() bool {
	return c.DatabaseURL != "" || c.DBPass != ""
}

// AdminEnabled reports whether admin sign-in is configured.
func (c *Config) AdminEnabled() bool {
	return c.AdminPasswordHash != "" && c.JWTSecret != ""
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

func (c *Config) validate() error {
	switch c.DataSource {
	case SourceCSV:
		if c.DataDir == "" {
			return fmt.Errorf("config: DATA_DIR must be set when DATA_SOURCE=%s", SourceCSV)
		}
	case SourcePostgres:
		if !c.HasPostgres() {
			return fmt.Errorf("config: DATABASE_URL or DB_PASS must be set when DATA_SOURCE=%s", SourcePostgres)
		}
	default:
		return fmt.Errorf("config: unknown DATA_SOURCE %q", c.DataSource)
	}
	if c.AdminPasswordHash != "" && c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET must be set when ADMIN_PASSWORD_HASH is set")
	}
	if c.ContenderLimit <= 0 {
		return fmt.Errorf("config: CONTENDER_LIMIT must be positive, got %d", c.ContenderLimit)
	}
	if c.MaxPointsPerRace <= 0 {
		return fmt.Errorf("config: MAX_POINTS_PER_RACE must be positive, got %v", c.MaxPointsPerRace)
	}
	return nil
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
