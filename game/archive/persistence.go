package archive

import (
	"github.com/JaredCorduan/rush-hour-solver/game/service"
)

// RecordPersistence defines the interface for persisting solve records.
// Implementations must be safe for concurrent use.
type RecordPersistence interface {
	// Save persists a record
	Save(record *service.Record) error

	// Load retrieves a record by ID
	Load(id string) (*service.Record, error)

	// Delete removes a persisted record
	Delete(id string) error

	// ListAll returns all persisted record IDs
	ListAll() ([]string, error)

	// Exists checks if a record is persisted
	Exists(id string) bool
}
