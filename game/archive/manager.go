package archive

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/JaredCorduan/rush-hour-solver/game/board"
	"github.com/JaredCorduan/rush-hour-solver/game/service"
)

var (
	ErrRecordNotFound      = errors.New("solve record not found")
	ErrRecordAlreadyExists = errors.New("solve record already exists")
)

// Manager handles solve record lifecycle
type Manager struct {
	records     map[string]*service.Record
	persistence RecordPersistence
	mu          sync.RWMutex
}

// NewManager creates a new record manager
func NewManager() *Manager {
	return &Manager{
		records: make(map[string]*service.Record),
	}
}

// NewManagerWithPersistence creates a new record manager with persistence
func NewManagerWithPersistence(persistence RecordPersistence) *Manager {
	return &Manager{
		records:     make(map[string]*service.Record),
		persistence: persistence,
	}
}

// Create creates a new running record with the given ID. An empty ID asks
// the manager to generate one.
func (m *Manager) Create(id, puzzleName string, def *board.Definition) (*service.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = m.generateRecordID()
	}

	if _, exists := m.records[id]; exists {
		return nil, ErrRecordAlreadyExists
	}

	record := &service.Record{
		ID:         id,
		PuzzleName: puzzleName,
		Definition: def,
		Status:     service.StatusRunning,
		CreatedAt:  time.Now(),
	}

	m.records[id] = record

	return copyRecord(record), nil
}

// Get retrieves a record by ID, falling back to persistence when the
// record is not in memory.
func (m *Manager) Get(id string) (*service.Record, error) {
	m.mu.RLock()
	record, exists := m.records[id]
	if exists {
		defer m.mu.RUnlock()
		return copyRecord(record), nil
	}
	m.mu.RUnlock()

	if m.persistence != nil && m.persistence.Exists(id) {
		record, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted record: %w", err)
		}

		m.mu.Lock()
		m.records[id] = record
		m.mu.Unlock()

		return copyRecord(record), nil
	}

	return nil, ErrRecordNotFound
}

// List returns all records currently in memory
func (m *Manager) List() []*service.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Record, 0, len(m.records))
	for _, record := range m.records {
		result = append(result, copyRecord(record))
	}

	return result
}

// Update mutates a record under the manager's lock
func (m *Manager) Update(id string, fn func(*service.Record)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, exists := m.records[id]
	if !exists {
		return ErrRecordNotFound
	}

	fn(record)
	return nil
}

// Delete removes a record from memory and persistence
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, inMemory := m.records[id]
	if inMemory {
		delete(m.records, id)
	}

	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted record: %w", err)
		}
		return nil
	}

	if !inMemory {
		return ErrRecordNotFound
	}

	return nil
}

// Save writes a record to persistence
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil // No persistence configured
	}

	m.mu.RLock()
	record, exists := m.records[id]
	if !exists {
		m.mu.RUnlock()
		return ErrRecordNotFound
	}
	snapshot := copyRecord(record)
	m.mu.RUnlock()

	return m.persistence.Save(snapshot)
}

// CleanupExpiredRecords removes finished records older than maxAge and
// returns how many were removed. Running records are never pruned.
func (m *Manager) CleanupExpiredRecords(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, record := range m.records {
		if record.Status == service.StatusRunning {
			continue
		}
		if record.FinishedAt.Before(cutoff) {
			delete(m.records, id)
			removed++
		}
	}

	return removed
}

// Count returns the number of records in memory
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// LoadPersistedRecords loads all persisted records into memory
func (m *Manager) LoadPersistedRecords() error {
	if m.persistence == nil {
		return nil // No persistence configured
	}

	ids, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted records: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loaded := 0
	for _, id := range ids {
		if _, exists := m.records[id]; exists {
			continue
		}

		record, err := m.persistence.Load(id)
		if err != nil {
			log.Printf("Warning: failed to load persisted record %s: %v", id, err)
			continue
		}

		m.records[id] = record
		loaded++
	}

	if loaded > 0 {
		log.Printf("Loaded %d persisted solve records", loaded)
	}

	return nil
}

// generateRecordID generates a random 4-character record ID. Callers must
// hold the write lock.
func (m *Manager) generateRecordID() string {
	for {
		bytes := make([]byte, 2)
		rand.Read(bytes)
		id := hex.EncodeToString(bytes)
		if _, exists := m.records[id]; !exists {
			return id
		}
	}
}

// copyRecord returns a shallow copy so callers never observe concurrent
// mutation of a live record. Moves and Definition are treated as immutable
// once set.
func copyRecord(r *service.Record) *service.Record {
	c := *r
	return &c
}
