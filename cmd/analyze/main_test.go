package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAnalysisPuzzle(t *testing.T) {
	puzzle := AnalysisPuzzle{
		Name:     "Test Puzzle",
		GridSize: 6,
		ExitRow:  3,
		Player:   "R",
		Vehicles: []AnalysisVehicle{
			{Name: "R", Model: "hcar", X: 1, Y: 3},
			{Name: "b", Model: "vbus", X: 6, Y: 1},
		},
	}

	if puzzle.Name != "Test Puzzle" {
		t.Errorf("Expected Name 'Test Puzzle', got '%s'", puzzle.Name)
	}

	if puzzle.GridSize != 6 {
		t.Errorf("Expected GridSize 6, got %d", puzzle.GridSize)
	}

	if len(puzzle.Vehicles) != 2 {
		t.Errorf("Expected 2 vehicles, got %d", len(puzzle.Vehicles))
	}
}

func TestAnalysisVehicle(t *testing.T) {
	vehicle := AnalysisVehicle{Name: "b", Model: "vbus", X: 6, Y: 1}

	if vehicle.Name != "b" {
		t.Errorf("Expected Name 'b', got '%s'", vehicle.Name)
	}

	if vehicle.X != 6 || vehicle.Y != 1 {
		t.Errorf("Expected position (6,1), got (%d,%d)", vehicle.X, vehicle.Y)
	}
}

func TestAnalyzePuzzle_ValidFile(t *testing.T) {
	validPuzzle := `{
		"name": "Test Puzzle",
		"player": "R",
		"vehicles": [
			{"name": "R", "model": "hcar", "x": 1, "y": 3},
			{"name": "b", "model": "vbus", "x": 6, "y": 1},
			{"name": "c", "model": "vcar", "x": 4, "y": 2}
		]
	}`

	tmpfile, err := os.CreateTemp("", "test_puzzle_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(validPuzzle)); err != nil {
		t.Fatalf("Failed to write puzzle: %v", err)
	}
	tmpfile.Close()

	// Test that analyzePuzzle doesn't panic
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzePuzzle panicked: %v", r)
		}
	}()

	analyzePuzzle(tmpfile.Name())
}

func TestAnalyzePuzzle_MissingFile(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzePuzzle panicked on missing file: %v", r)
		}
	}()

	analyzePuzzle(filepath.Join(t.TempDir(), "absent.json"))
}

func TestAnalyzePuzzle_InvalidJSON(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "bad_puzzle_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(`{"name": "bad", invalid}`))
	tmpfile.Close()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzePuzzle panicked on invalid JSON: %v", r)
		}
	}()

	analyzePuzzle(tmpfile.Name())
}

func TestAnalyzePuzzle_MissingPlayer(t *testing.T) {
	noPlayer := `{
		"name": "No Player",
		"player": "R",
		"vehicles": [
			{"name": "a", "model": "hcar", "x": 1, "y": 1}
		]
	}`

	tmpfile, err := os.CreateTemp("", "no_player_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(noPlayer))
	tmpfile.Close()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzePuzzle panicked on missing player: %v", r)
		}
	}()

	analyzePuzzle(tmpfile.Name())
}
