// Package testutil provides shared test helpers for setting up stores and services.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/mauvelian/internal/almanac"
	"github.com/starford/mauvelian/internal/dateservice"
)

// TestDB opens a throwaway SQLite almanac under t.TempDir.
func TestDB(t *testing.T) *almanac.DB {
	t.Helper()
	db, err := almanac.Open(filepath.Join(t.TempDir(), "almanac.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestService creates a date service over a temporary almanac with the
// clock pinned to now.
func TestService(t *testing.T, now time.Time) *dateservice.Service {
	t.Helper()
	return dateservice.NewService(TestDB(t), func() time.Time { return now })
}
