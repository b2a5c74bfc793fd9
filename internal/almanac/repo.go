package almanac

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/starford/mauvelian/internal/apperr"
)

// EventRow represents a row in the events table. The date is stored as
// its (year, day_of_year) pair; chronological order is recovered with
// epochDayExpr.
type EventRow struct {
	Name      string
	Year      int
	DayOfYear int
	Note      string
	UpdatedAt time.Time
}

// epochDayExpr computes the signed day offset of a row's date from the
// calendar epoch, the same encoding the Date type uses internally.
const epochDayExpr = `CASE WHEN year > 0
	THEN day_of_year + 365 * (year - 1)
	ELSE -day_of_year + 365 * (year + 1) END`

// UpsertEvent inserts or replaces an event by name.
func (db *DB) UpsertEvent(e EventRow) error {
	_, err := db.conn.Exec(`
		INSERT INTO events (name, year, day_of_year, note, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			year        = excluded.year,
			day_of_year = excluded.day_of_year,
			note        = excluded.note,
			updated_at  = excluded.updated_at
	`, e.Name, e.Year, e.DayOfYear, e.Note, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("almanac: upsert event: %w", err)
	}
	return nil
}

// GetEvent returns the event with the given name.
func (db *DB) GetEvent(name string) (EventRow, error) {
	var e EventRow
	err := db.conn.QueryRow(`
		SELECT name, year, day_of_year, note, updated_at
		FROM events WHERE name = ?
	`, name).Scan(&e.Name, &e.Year, &e.DayOfYear, &e.Note, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return EventRow{}, apperr.ErrNotFound
	}
	if err != nil {
		return EventRow{}, fmt.Errorf("almanac: get event: %w", err)
	}
	return e, nil
}

// DeleteEvent removes the event with the given name.
func (db *DB) DeleteEvent(name string) error {
	res, err := db.conn.Exec(`DELETE FROM events WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("almanac: delete event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// ListEvents returns every event in chronological order.
func (db *DB) ListEvents() ([]EventRow, error) {
	rows, err := db.conn.Query(`
		SELECT name, year, day_of_year, note, updated_at
		FROM events ORDER BY ` + epochDayExpr + `, name`)
	if err != nil {
		return nil, fmt.Errorf("almanac: list events: %w", err)
	}
	return scanEvents(rows)
}

// SearchEvents returns events whose name or note matches the query,
// in chronological order.
func (db *DB) SearchEvents(query string, limit int) ([]EventRow, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT name, year, day_of_year, note, updated_at
		FROM events
		WHERE name LIKE ? OR note LIKE ?
		ORDER BY `+epochDayExpr+`, name
		LIMIT ?
	`, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("almanac: search events: %w", err)
	}
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]EventRow, error) {
	defer rows.Close()
	var out []EventRow
	for rows.Next() {
		var e EventRow
		if err := rows.Scan(&e.Name, &e.Year, &e.DayOfYear, &e.Note, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
