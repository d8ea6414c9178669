package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "raknong/internal/adapters/email"
	web "raknong/internal/adapters/http"
	"raknong/internal/adapters/storage"
	accountStore "raknong/internal/adapters/storage/account"
	registrationStore "raknong/internal/adapters/storage/registration"
	reportStore "raknong/internal/adapters/storage/report"
	"raknong/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("RAKNONG_DB", "raknong.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	// Run database migrations
	if err := storage.MigrateDB(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Wrap DB with slow-query logging
	timedDB := storage.NewTimedDB(db)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		RegistrationStore: registrationStore.NewSQLiteStore(timedDB),
		ReportStore:       reportStore.NewSQLiteStore(timedDB),
		AccountStore:      acctStore,
	}

	// Seed the admin account if no accounts exist. The password is never
	// hardcoded: a fresh database without credentials refuses to start.
	adminEmail := os.Getenv("RAKNONG_ADMIN_EMAIL")
	adminPassword := os.Getenv("RAKNONG_ADMIN_PASSWORD")
	if adminEmail != "" && adminPassword != "" {
		seedDeps := orchestrators.SeedAdminDeps{AccountStore: acctStore}
		if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, adminEmail, adminPassword); err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}
	} else {
		count, err := acctStore.Count(context.Background())
		if err != nil {
			log.Fatalf("failed to check accounts: %v", err)
		}
		if count == 0 {
			log.Fatal("RAKNONG_ADMIN_EMAIL and RAKNONG_ADMIN_PASSWORD are required on first startup")
		}
	}

	// Configure email sender
	resendKey := os.Getenv("RAKNONG_RESEND_KEY")
	emailFrom := envOrDefault("RAKNONG_RESEND_FROM", "Rak Nong <noreply@raknong.example.com>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom)
		if os.Getenv("RAKNONG_ENV") == "production" {
			log.Println("WARNING: RAKNONG_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set RAKNONG_RESEND_KEY for real delivery)")
		}
	}

	// Create HTTP handler with middleware
	staticDir := envOrDefault("RAKNONG_STATIC_DIR", "static")
	ticketsDir := envOrDefault("RAKNONG_TICKETS_DIR", "tickets")
	mux := web.NewMux(staticDir, ticketsDir, stores)

	// Start server
	addr := envOrDefault("RAKNONG_ADDR", ":8080")
	log.Printf("Raknong %s starting on %s (env=%s, schema=%d)", version, addr, envOrDefault("RAKNONG_ENV", "development"), storage.LatestSchemaVersion())

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
