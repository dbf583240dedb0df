package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JaredCorduan/rush-hour-solver/game/service"
)

// FilePersistence implements RecordPersistence using file system storage.
// Each record is one indented JSON file named <id>.json.
type FilePersistence struct {
	recordsDir string
}

// NewFilePersistence creates a new file-based record persistence layer
func NewFilePersistence(recordsDir string) (*FilePersistence, error) {
	if err := os.MkdirAll(recordsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create records directory: %w", err)
	}

	return &FilePersistence{recordsDir: recordsDir}, nil
}

// Save persists a record to a JSON file
func (fp *FilePersistence) Save(record *service.Record) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	path := fp.filePath(record.ID)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write record file: %w", err)
	}

	return nil
}

// Load retrieves a record from a JSON file
func (fp *FilePersistence) Load(id string) (*service.Record, error) {
	path := fp.filePath(id)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, ErrRecordNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}

	var record service.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return &record, nil
}

// Delete removes a record file
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrRecordNotFound
	}

	if err := os.Remove(fp.filePath(id)); err != nil {
		return fmt.Errorf("failed to remove record file: %w", err)
	}

	return nil
}

// ListAll returns all persisted record IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.recordsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read records directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			ids = append(ids, strings.TrimSuffix(name, ".json"))
		}
	}

	return ids, nil
}

// Exists checks if a record file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.filePath(id))
	return err == nil
}

// filePath returns the full file path for a record ID
func (fp *FilePersistence) filePath(id string) string {
	return filepath.Join(fp.recordsDir, fmt.Sprintf("%s.json", id))
}
