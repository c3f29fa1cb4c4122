// cmd/import/main.go
// Loads a directory of Ergast CSV files into the PostgreSQL database.
//
// Usage:
//
//	DB_PASS="pgpass" go run ./cmd/import -dir data
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/padraicbc/f1history/config"
	"github.com/padraicbc/f1history/dataset"
	bundb "github.com/padraicbc/f1history/db"
)

func main() {
	cfg := config.Load()
	dir := flag.String("dir", cfg.DataDir, "directory holding the CSV files")
	flag.Parse()

	ctx := context.Background()
	start := time.Now()

	tables, err := dataset.LoadDir(ctx, *dir)
	if err != nil {
		log.Fatalf("load %s: %v", *dir, err)
	}
	log.Printf("read %s in %s", *dir, time.Since(start).Round(time.Millisecond))

	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	counts, err := bundb.InsertTables(ctx, pgDB, tables)
	for name, n := range counts {
		log.Printf("%-22s  %d rows imported", name, n)
	}
	if err != nil {
		log.Fatalf("import: %v", err)
	}
	log.Printf("import complete in %s", time.Since(start).Round(time.Millisecond))
}
