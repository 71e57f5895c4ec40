// Package testutil provides in-memory SQLite databases for tests.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/jbweber/homelab/cornerstone/internal/migrations"
	_ "modernc.org/sqlite"
)

var dsnNameReplacer = strings.NewReplacer("/", "_", " ", "_", "?", "_", "&", "_")

// NewTestDSN generates a DSN for a named, shared in-memory SQLite database
// with foreign keys enforced on every connection.
func NewTestDSN(testName string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", dsnNameReplacer.Replace(testName))
}

// SetupTestDB opens an empty in-memory database named after the test.
// The database is closed, and thereby discarded, when the test ends.
func SetupTestDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", NewTestDSN(t.Name()))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}
	return db
}

// SetupTestDBWithMigrations opens an in-memory database with the full schema applied.
func SetupTestDBWithMigrations(t testing.TB) *sql.DB {
	t.Helper()

	db := SetupTestDB(t)
	if err := migrations.NewDefaultMigrator(db).RunMigrations(context.Background()); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}
