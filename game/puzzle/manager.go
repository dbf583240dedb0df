package puzzle

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/JaredCorduan/rush-hour-solver/game/board"
	"github.com/JaredCorduan/rush-hour-solver/game/service"
)

var (
	ErrPuzzleNotFound = errors.New("puzzle not found")
	ErrInvalidPuzzle  = errors.New("invalid puzzle")
)

// Manager handles puzzle definition loading and caching
type Manager struct {
	puzzleDir  string
	defaultDef *board.Definition
	defs       map[string]*board.Definition
	mu         sync.RWMutex
}

// NewManager creates a new puzzle manager
func NewManager(puzzleDir string) (*Manager, error) {
	if _, err := os.Stat(puzzleDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("puzzle directory does not exist: %s", puzzleDir)
	}

	m := &Manager{
		puzzleDir: puzzleDir,
		defs:      make(map[string]*board.Definition),
	}

	if err := m.loadDefault(); err != nil {
		return nil, fmt.Errorf("failed to load default puzzle: %w", err)
	}

	return m, nil
}

// LoadPuzzle loads a puzzle definition by name
func (m *Manager) LoadPuzzle(name string) (*board.Definition, error) {
	m.mu.RLock()
	if def, exists := m.defs[name]; exists {
		m.mu.RUnlock()
		return def, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if def, exists := m.defs[name]; exists {
		return def, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	path := filepath.Join(m.puzzleDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPuzzleNotFound
		}
		return nil, fmt.Errorf("failed to read puzzle file: %w", err)
	}

	var def board.Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse puzzle: %w", err)
	}

	if err := board.ValidateDefinition(&def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}

	m.defs[name] = &def
	return &def, nil
}

// ListPuzzles returns information about all available puzzle definitions
func (m *Manager) ListPuzzles() ([]*service.PuzzleInfo, error) {
	entries, err := os.ReadDir(m.puzzleDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read puzzle directory: %w", err)
	}

	var puzzles []*service.PuzzleInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")

		def, err := m.LoadPuzzle(name)
		if err != nil {
			// Skip invalid puzzles
			continue
		}

		puzzles = append(puzzles, &service.PuzzleInfo{
			Filename:    entry.Name(),
			PuzzleID:    name, // This is the identifier to use when starting a solve
			Name:        def.Name,
			Description: def.Description,
			GridSize:    def.GridSize,
			Vehicles:    len(def.Vehicles),
			Player:      def.Player,
		})
	}

	return puzzles, nil
}

// GetDefault returns the default puzzle definition
func (m *Manager) GetDefault() *board.Definition {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultDef
}

// SetDefault sets the default puzzle by name
func (m *Manager) SetDefault(name string) error {
	def, err := m.LoadPuzzle(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultDef = def
	return nil
}

// RefreshCache reloads all cached puzzle definitions from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.defs = make(map[string]*board.Definition)
	m.mu.Unlock()

	return m.loadDefault()
}

// SavePuzzle validates a definition and writes it to the puzzle directory
func (m *Manager) SavePuzzle(name string, def *board.Definition) error {
	if err := board.ValidateDefinition(def); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	path := filepath.Join(m.puzzleDir, filename)

	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal puzzle: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write puzzle file: %w", err)
	}

	m.mu.Lock()
	m.defs[name] = def
	m.mu.Unlock()

	return nil
}

// loadDefault loads the default puzzle definition
func (m *Manager) loadDefault() error {
	// Try classic.json first
	def, err := m.LoadPuzzle("classic")
	if err != nil {
		puzzles, listErr := m.ListPuzzles()
		if listErr != nil || len(puzzles) == 0 {
			m.mu.Lock()
			m.defaultDef = ClassicDefinition()
			m.mu.Unlock()
			return nil
		}

		def, err = m.LoadPuzzle(strings.TrimSuffix(puzzles[0].Filename, ".json"))
		if err != nil {
			m.mu.Lock()
			m.defaultDef = ClassicDefinition()
			m.mu.Unlock()
			return nil
		}
	}

	m.mu.Lock()
	m.defaultDef = def
	m.mu.Unlock()
	return nil
}

// ClassicDefinition returns the built-in classic 6x6 puzzle.
func ClassicDefinition() *board.Definition {
	return &board.Definition{
		Name:        "classic",
		Description: "Classic 6x6 starting position, exit on row 3",
		GridSize:    board.DefaultSize,
		ExitRow:     board.DefaultExitRow,
		Player:      "R",
		Vehicles: []board.VehicleSpec{
			{Name: "R", Model: board.ModelHCar, X: 2, Y: 3},
			{Name: "a", Model: board.ModelHCar, X: 1, Y: 1},
			{Name: "b", Model: board.ModelVBus, X: 6, Y: 1},
			{Name: "c", Model: board.ModelVBus, X: 1, Y: 2},
			{Name: "d", Model: board.ModelVBus, X: 4, Y: 2},
			{Name: "e", Model: board.ModelVCar, X: 1, Y: 5},
			{Name: "f", Model: board.ModelHCar, X: 5, Y: 5},
			{Name: "g", Model: board.ModelHBus, X: 3, Y: 6},
		},
	}
}
