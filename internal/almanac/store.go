package almanac

// Store is the persistence interface the date service consumes.
// *DB is the SQLite implementation.
type Store interface {
	UpsertEvent(e EventRow) error
	GetEvent(name string) (EventRow, error)
	DeleteEvent(name string) error
	ListEvents() ([]EventRow, error)
	SearchEvents(query string, limit int) ([]EventRow, error)
	Close() error
}

var _ Store = (*DB)(nil)
