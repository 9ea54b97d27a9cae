package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/lib/pq"
	"github.com/studyshare/api/config"
)

// EnsureDatabase connects to the default postgres database and creates the
// application database when it does not exist yet. Useful for first runs on a
// fresh PostgreSQL instance; a live database makes this a no-op.
func EnsureDatabase() error {
	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	connectStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		getEnv.DB_HOST, getEnv.DB_PORT, getEnv.DB_USER_NAME, getEnv.DB_PASSWORD, getEnv.DB_SSL_MODE,
	)

	db, err := sql.Open("postgres", connectStr)
	if err != nil {
		return fmt.Errorf("unable to open postgres bootstrap connection: %w", err)
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", getEnv.DB_NAME).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check database existence: %w", err)
	}

	if exists {
		return nil
	}

	// Identifier, not a bind parameter; restrict to a safe charset first.
	if strings.ContainsAny(getEnv.DB_NAME, `"';`) {
		return fmt.Errorf("invalid database name %q", getEnv.DB_NAME)
	}

	if _, err := db.Exec(fmt.Sprintf(`CREATE DATABASE "%s"`, getEnv.DB_NAME)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", getEnv.DB_NAME, err)
	}

	log.Printf("Created database %s", getEnv.DB_NAME)
	return nil
}
