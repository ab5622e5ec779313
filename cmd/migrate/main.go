package main

import (
	"context"
	"log"
	"os"

	"langtrends/adapters/sqlstore"
	"langtrends/internal/migration"
)

// Creates (or with "reset", drops) the export tables without running a report.
func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: migrate <sqlite|postgres> <dsn> [reset]")
	}

	driver, dsn := os.Args[1], os.Args[2]
	reset := len(os.Args) > 3 && os.Args[3] == "reset"

	ctx := context.Background()
	db, err := sqlstore.Open(ctx, driver, dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	runner := migration.NewRunner()
	if reset {
		if err := runner.Reset(ctx, db); err != nil {
			log.Fatalf("Reset failed: %v", err)
		}
		log.Printf("Dropped export tables %v", migration.Tables)
		return
	}

	if err := runner.Run(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Export schema %s applied on %s", runner.Version(), driver)
}
