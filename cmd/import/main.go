// Command import loads registration rows from a CSV export into the database.
//
// Usage:
//
//	import [-db raknong.db] [-dry-run] registrations.csv
//
// Expected columns: STDID, NAME, NICKNAME, FACULTY, DIEREQ, PH, FOODALG, EMAIL, GRP.
// Rows are upserted keyed by student id; re-running the import is safe.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"raknong/internal/adapters/storage"
	registrationStore "raknong/internal/adapters/storage/registration"
	"raknong/internal/application/orchestrators"
)

func main() {
	_ = godotenv.Load()

	dbPath := flag.String("db", envOrDefault("RAKNONG_DB", "raknong.db"), "path to the SQLite database")
	dryRun := flag.Bool("dry-run", false, "validate the CSV without writing")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: import [-db raknong.db] [-dry-run] registrations.csv")
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("failed to open CSV: %v", err)
	}
	defer f.Close()

	dsn := *dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := storage.MigrateDB(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	input := orchestrators.ImportRegistrationsInput{Reader: f, DryRun: *dryRun}
	deps := orchestrators.ImportRegistrationsDeps{
		RegistrationStore: registrationStore.NewSQLiteStore(db),
	}

	result, err := orchestrators.ExecuteImportRegistrations(context.Background(), input, deps)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	for _, rowErr := range result.Errors {
		fmt.Fprintf(os.Stderr, "row %d: %s\n", rowErr.Row, rowErr.Message)
	}
	mode := ""
	if result.DryRun {
		mode = " (dry run)"
	}
	fmt.Printf("imported %d of %d rows, %d skipped%s\n", result.Imported, result.Total, result.Skipped, mode)
	if result.Skipped > 0 {
		os.Exit(1)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
