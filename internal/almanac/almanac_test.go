package almanac

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/starford/mauvelian/internal/apperr"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "almanac-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM events`).Scan(&count); err != nil {
		t.Fatalf("events table missing: %v", err)
	}
}

func TestUpsertAndGetEvent(t *testing.T) {
	db := testDB(t)
	row := EventRow{
		Name:      "Exodus Festival",
		Year:      1328,
		DayOfYear: 305,
		Note:      "first day of the festival week",
		UpdatedAt: time.Now(),
	}
	if err := db.UpsertEvent(row); err != nil {
		t.Fatalf("UpsertEvent: %v", err)
	}
	got, err := db.GetEvent("Exodus Festival")
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if got.Year != 1328 || got.DayOfYear != 305 {
		t.Errorf("event date = %d/%d, want 1328/305", got.Year, got.DayOfYear)
	}
	if got.Note != row.Note {
		t.Errorf("note = %q, want %q", got.Note, row.Note)
	}
}

func TestGetEvent_NotFound(t *testing.T) {
	db := testDB(t)
	if _, err := db.GetEvent("nothing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertEvent(EventRow{Name: "Founding", Year: 1, DayOfYear: 1, Note: "old", UpdatedAt: now})
	_ = db.UpsertEvent(EventRow{Name: "Founding", Year: 2, DayOfYear: 40, Note: "new", UpdatedAt: now})

	got, err := db.GetEvent("Founding")
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if got.Year != 2 || got.DayOfYear != 40 || got.Note != "new" {
		t.Errorf("event = %+v, want updated row", got)
	}
}

func TestDeleteEvent(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertEvent(EventRow{Name: "Temp", Year: 10, DayOfYear: 10, UpdatedAt: time.Now()})

	if err := db.DeleteEvent("Temp"); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if _, err := db.GetEvent("Temp"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err after delete = %v, want ErrNotFound", err)
	}
	if err := db.DeleteEvent("Temp"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestListEvents_ChronologicalOrder(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	// Inserted out of order on purpose; BE dates sort before AE ones.
	_ = db.UpsertEvent(EventRow{Name: "late", Year: 1328, DayOfYear: 305, UpdatedAt: now})
	_ = db.UpsertEvent(EventRow{Name: "early", Year: -2, DayOfYear: 1, UpdatedAt: now})
	_ = db.UpsertEvent(EventRow{Name: "middle", Year: 1, DayOfYear: 1, UpdatedAt: now})

	events, err := db.ListEvents()
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("len = %d, want 3", len(events))
	}
	want := []string{"early", "middle", "late"}
	for i, name := range want {
		if events[i].Name != name {
			t.Errorf("events[%d] = %q, want %q", i, events[i].Name, name)
		}
	}
}

func TestSearchEvents(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertEvent(EventRow{Name: "Harvest Feast", Year: 1300, DayOfYear: 200, Note: "granary opens", UpdatedAt: now})
	_ = db.UpsertEvent(EventRow{Name: "Winter Market", Year: 1300, DayOfYear: 300, Note: "feast stalls", UpdatedAt: now})
	_ = db.UpsertEvent(EventRow{Name: "Quiet Day", Year: 1300, DayOfYear: 10, UpdatedAt: now})

	// Matches name on one row and note on the other, in date order.
	hits, err := db.SearchEvents("east", 10)
	if err != nil {
		t.Fatalf("SearchEvents: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("len = %d, want 2", len(hits))
	}
	if hits[0].Name != "Harvest Feast" || hits[1].Name != "Winter Market" {
		t.Errorf("hits = [%q %q], want [Harvest Feast, Winter Market]", hits[0].Name, hits[1].Name)
	}

	hits, err = db.SearchEvents("nomatch", 10)
	if err != nil {
		t.Fatalf("SearchEvents: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("len = %d, want 0", len(hits))
	}
}

func TestSearchEvents_Limit(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertEvent(EventRow{Name: "a day", Year: 1, DayOfYear: 1, UpdatedAt: now})
	_ = db.UpsertEvent(EventRow{Name: "b day", Year: 1, DayOfYear: 2, UpdatedAt: now})
	_ = db.UpsertEvent(EventRow{Name: "c day", Year: 1, DayOfYear: 3, UpdatedAt: now})

	hits, err := db.SearchEvents("day", 2)
	if err != nil {
		t.Fatalf("SearchEvents: %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("len = %d, want 2", len(hits))
	}
}
